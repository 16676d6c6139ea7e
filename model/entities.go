package model

import (
	"math/big"
)

// Entity kinds, used as store key prefixes and export file names.
const (
	KindGlobalSettings = "GlobalSettings"
	KindRelease        = "Release"
	KindPlatform       = "Platform"
	KindRelayer        = "Relayer"
	KindRelayerAdmin   = "RelayerAdmin"
	KindAdministrator  = "Administrator"
	KindOwner          = "Owner"
	KindCreator        = "Creator"
	KindTagger         = "Tagger"
	KindTag            = "Tag"
	KindTarget         = "Target"
	KindTaggingRecord  = "TaggingRecord"
	KindAuction        = "Auction"
	KindBid            = "Bid"
	KindCheckpoint     = "Checkpoint"
)

// Kinds lists every persisted entity kind.
var Kinds = []string{
	KindGlobalSettings,
	KindRelease,
	KindPlatform,
	KindRelayer,
	KindRelayerAdmin,
	KindAdministrator,
	KindOwner,
	KindCreator,
	KindTagger,
	KindTag,
	KindTarget,
	KindTaggingRecord,
	KindAuction,
	KindBid,
	KindCheckpoint,
}

type GlobalSettings struct {
	ID                                string   `json:"id"`
	TagMinStringLength                int64    `json:"tagMinStringLength"`
	TagMaxStringLength                int64    `json:"tagMaxStringLength"`
	OwnershipTermLength               *big.Int `json:"ownershipTermLength"`
	TaggingFee                        *big.Int `json:"taggingFee"`
	PlatformPercentage                int64    `json:"platformPercentage"`
	RelayerPercentage                 int64    `json:"relayerPercentage"`
	MaxAuctions                       int64    `json:"maxAuctions"`
	AuctionDuration                   int64    `json:"auctionDuration"`
	AuctionReservePrice               *big.Int `json:"auctionReservePrice"`
	AuctionMinBidIncrementPercentage  int64    `json:"auctionMinBidIncrementPercentage"`
	AuctionTimeBuffer                 int64    `json:"auctionTimeBuffer"`
	AuctionProceedsPlatformPercentage int64    `json:"auctionProceedsPlatformPercentage"`
	AuctionProceedsRelayerPercentage  int64    `json:"auctionProceedsRelayerPercentage"`
	AuctionProceedsCreatorPercentage  int64    `json:"auctionProceedsCreatorPercentage"`
}

// ContractRelease is the deployment state of one core contract.
type ContractRelease struct {
	Address        string `json:"address"`
	Version        int64  `json:"version"`
	VersionDate    uint64 `json:"versionDate"`
	Implementation string `json:"implementation"`
}

type Release struct {
	ID                string          `json:"id"`
	ETS               ContractRelease `json:"ets"`
	ETSToken          ContractRelease `json:"etsToken"`
	ETSAccessControls ContractRelease `json:"etsAccessControls"`
	ETSAuctionHouse   ContractRelease `json:"etsAuctionHouse"`
	ETSTarget         ContractRelease `json:"etsTarget"`
}

// Contract returns the release slot for kind, or nil when kind is not a core contract.
func (r *Release) Contract(kind ContractKind) *ContractRelease {
	switch kind {
	case ContractETS:
		return &r.ETS
	case ContractToken:
		return &r.ETSToken
	case ContractAccessControls:
		return &r.ETSAccessControls
	case ContractAuctionHouse:
		return &r.ETSAuctionHouse
	case ContractTarget:
		return &r.ETSTarget
	}
	return nil
}

type Platform struct {
	ID                          string   `json:"id"`
	Address                     string   `json:"address"`
	TargetsCount                int64    `json:"targetsCount"`
	TagsCount                   int64    `json:"tagsCount"`
	TaggingRecordsCount         int64    `json:"taggingRecordsCount"`
	TaggingRecordTxns           int64    `json:"taggingRecordTxns"`
	TagAppliedInTaggingRecord   int64    `json:"tagAppliedInTaggingRecord"`
	TagRemovedFromTaggingRecord int64    `json:"tagRemovedFromTaggingRecord"`
	TaggingFeeRevenue           *big.Int `json:"taggingFeeRevenue"`
	AuctionRevenue              *big.Int `json:"auctionRevenue"`
	RelayersActive              int64    `json:"relayersActive"`
	RelayersLifetime            int64    `json:"relayersLifetime"`
	TaggersCount                int64    `json:"taggersCount"`
	CreatorsCount               int64    `json:"creatorsCount"`
	OwnersCount                 int64    `json:"ownersCount"`
	AuctionsCount               int64    `json:"auctionsCount"`
	AuctionsSettledCount        int64    `json:"auctionsSettledCount"`
}

type Relayer struct {
	ID                          string   `json:"id"`
	Name                        string   `json:"name"`
	FirstSeen                   uint64   `json:"firstSeen"`
	IsAdmin                     bool     `json:"isAdmin"`
	LockedByPlatform            bool     `json:"lockedByPlatform"`
	PausedByOwner               bool     `json:"pausedByOwner"`
	Owner                       string   `json:"owner"`
	Creator                     string   `json:"creator"`
	PublishedTags               int64    `json:"publishedTags"`
	TaggingRecordsPublished     int64    `json:"taggingRecordsPublished"`
	TaggingRecordTxns           int64    `json:"taggingRecordTxns"`
	TagAppliedInTaggingRecord   int64    `json:"tagAppliedInTaggingRecord"`
	TagRemovedFromTaggingRecord int64    `json:"tagRemovedFromTaggingRecord"`
	TaggingFeeRevenue           *big.Int `json:"taggingFeeRevenue"`
	AuctionRevenue              *big.Int `json:"auctionRevenue"`
	LifetimeRevenue             *big.Int `json:"lifetimeRevenue"`
}

type Administrator struct {
	ID        string `json:"id"`
	FirstSeen uint64 `json:"firstSeen"`
	GrantedBy string `json:"grantedBy"`
}

type RelayerAdmin struct {
	ID        string `json:"id"`
	FirstSeen uint64 `json:"firstSeen"`
	GrantedBy string `json:"grantedBy"`
}

type Owner struct {
	ID                          string   `json:"id"`
	FirstSeen                   uint64   `json:"firstSeen"`
	TagsOwned                   int64    `json:"tagsOwned"`
	TagsOwnedLifetime           int64    `json:"tagsOwnedLifetime"`
	TagAppliedInTaggingRecord   int64    `json:"tagAppliedInTaggingRecord"`
	TagRemovedFromTaggingRecord int64    `json:"tagRemovedFromTaggingRecord"`
	TaggingFeeRevenue           *big.Int `json:"taggingFeeRevenue"`
}

type Creator struct {
	ID                          string   `json:"id"`
	FirstSeen                   uint64   `json:"firstSeen"`
	TagsCreated                 int64    `json:"tagsCreated"`
	TagAppliedInTaggingRecord   int64    `json:"tagAppliedInTaggingRecord"`
	TagRemovedFromTaggingRecord int64    `json:"tagRemovedFromTaggingRecord"`
	TaggingFeeRevenue           *big.Int `json:"taggingFeeRevenue"`
	AuctionRevenue              *big.Int `json:"auctionRevenue"`
	LifetimeRevenue             *big.Int `json:"lifetimeRevenue"`
}

type Tagger struct {
	ID                          string   `json:"id"`
	FirstSeen                   uint64   `json:"firstSeen"`
	TaggingRecordsCreated       int64    `json:"taggingRecordsCreated"`
	TaggingRecordTxns           int64    `json:"taggingRecordTxns"`
	TagAppliedInTaggingRecord   int64    `json:"tagAppliedInTaggingRecord"`
	TagRemovedFromTaggingRecord int64    `json:"tagRemovedFromTaggingRecord"`
	FeesPaid                    *big.Int `json:"feesPaid"`
}

// Tag is a CTAG token. Owner, Creator and Relayer hold entity ids.
type Tag struct {
	ID                          string   `json:"id"`
	Display                     string   `json:"display"`
	MachineName                 string   `json:"machineName"`
	Timestamp                   uint64   `json:"timestamp"`
	Owner                       string   `json:"owner"`
	Creator                     string   `json:"creator"`
	Relayer                     string   `json:"relayer"`
	Premium                     bool     `json:"premium"`
	Reserved                    bool     `json:"reserved"`
	TagAppliedInTaggingRecord   int64    `json:"tagAppliedInTaggingRecord"`
	TagRemovedFromTaggingRecord int64    `json:"tagRemovedFromTaggingRecord"`
	RelayerRevenue              *big.Int `json:"relayerRevenue"`
	PlatformRevenue             *big.Int `json:"platformRevenue"`
	CreatorRevenue              *big.Int `json:"creatorRevenue"`
	OwnerRevenue                *big.Int `json:"ownerRevenue"`
	AuctionRevenue              *big.Int `json:"auctionRevenue"`
}

type Target struct {
	ID                 string   `json:"id"`
	TargetURI          string   `json:"targetURI"`
	TargetType         string   `json:"targetType"`
	TargetTypeKeywords []string `json:"targetTypeKeywords"`
	Created            uint64   `json:"created"`
	CreatedBy          string   `json:"createdBy"`
	Enriched           uint64   `json:"enriched"`
	HTTPStatus         uint64   `json:"httpStatus"`
	IPFSHash           string   `json:"ipfsHash"`
}

type TaggingRecord struct {
	ID         string   `json:"id"`
	Tags       []string `json:"tags"`
	Target     string   `json:"target"`
	RecordType string   `json:"recordType"`
	Tagger     string   `json:"tagger"`
	Relayer    string   `json:"relayer"`
	Timestamp  uint64   `json:"timestamp"`
	TxnCount   int64    `json:"txnCount"`
}

type Auction struct {
	ID           string   `json:"id"`
	Tag          string   `json:"tag"`
	Bidder       string   `json:"bidder"`
	Auctioneer   string   `json:"auctioneer"`
	Amount       *big.Int `json:"amount"`
	ReservePrice *big.Int `json:"reservePrice"`
	StartTime    uint64   `json:"startTime"`
	EndTime      uint64   `json:"endTime"`
	Extended     bool     `json:"extended"`
	Settled      bool     `json:"settled"`
	BidsCount    int64    `json:"bidsCount"`
}

type Bid struct {
	ID          string   `json:"id"`
	Auction     string   `json:"auction"`
	Bidder      string   `json:"bidder"`
	Amount      *big.Int `json:"amount"`
	Extended    bool     `json:"extended"`
	Timestamp   uint64   `json:"timestamp"`
	BlockNumber uint64   `json:"blockNumber"`
}

// Checkpoint is the position of the last fully applied event.
type Checkpoint struct {
	ID          string `json:"id"`
	BlockNumber uint64 `json:"blockNumber"`
	BlockHash   string `json:"blockHash"`
	LogIndex    uint64 `json:"logIndex"`
}

// After reports whether the event at (blockNum, logIndex) has not been applied yet.
func (c *Checkpoint) After(blockNum, logIndex uint64) bool {
	if c == nil {
		return true
	}
	if blockNum != c.BlockNumber {
		return blockNum > c.BlockNumber
	}
	return logIndex > c.LogIndex
}
