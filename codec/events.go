package codec

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Event is the closed set of decoded contract events.
type Event interface {
	Origin() *Meta
}

// Meta locates an event on chain.
type Meta struct {
	Name     string
	Contract common.Address
	TxHash   string
	TxIndex  uint64
	LogIndex uint64
}

func (m *Meta) Origin() *Meta { return m }

// Proxy lifecycle, emitted by every core contract.

type Initialized struct {
	Meta
	Version int64
}

type Upgraded struct {
	Meta
	Implementation common.Address
}

// Access controls.

type RoleGranted struct {
	Meta
	Role    common.Hash
	Account common.Address
	Sender  common.Address
}

type RoleRevoked struct {
	Meta
	Role    common.Hash
	Account common.Address
	Sender  common.Address
}

type PlatformSet struct {
	Meta
	NewAddress common.Address
}

type RelayerAdded struct {
	Meta
	Relayer common.Address
}

type RelayerLockToggled struct {
	Meta
	Relayer common.Address
}

// Fee and parameter setters.

type TaggingFeeSet struct {
	Meta
	Fee *big.Int
}

type PercentagesSet struct {
	Meta
	PlatformPercentage int64
	RelayerPercentage  int64
}

type AuctionsMaxSet struct {
	Meta
	MaxAuctions int64
}

type AuctionDurationSet struct {
	Meta
	Duration int64
}

type AuctionReservePriceSet struct {
	Meta
	ReservePrice *big.Int
}

type AuctionMinBidIncrementPercentageSet struct {
	Meta
	Percentage int64
}

type AuctionTimeBufferSet struct {
	Meta
	TimeBuffer int64
}

type AuctionProceedPercentagesSet struct {
	Meta
	PlatformPercentage int64
	RelayerPercentage  int64
	CreatorPercentage  int64
}

type TagMinStringLengthSet struct {
	Meta
	Size int64
}

type TagMaxStringLengthSet struct {
	Meta
	Size int64
}

type OwnershipTermLengthSet struct {
	Meta
	TermLength *big.Int
}

// Core tagging contract.

type TaggingRecordCreated struct {
	Meta
	ID *big.Int
}

type TaggingRecordUpdated struct {
	Meta
	ID     *big.Int
	Action uint64
}

// Token.

type Transfer struct {
	Meta
	From    common.Address
	To      common.Address
	TokenID *big.Int
}

type PremiumFlagSet struct {
	Meta
	TokenID   *big.Int
	IsPremium bool
}

type ReservedFlagSet struct {
	Meta
	TokenID    *big.Int
	IsReserved bool
}

// Auction house.

type AuctionCreated struct {
	Meta
	AuctionID *big.Int
}

type AuctionBid struct {
	Meta
	AuctionID *big.Int
	Sender    common.Address
	Value     *big.Int
	Extended  bool
}

type AuctionExtended struct {
	Meta
	AuctionID *big.Int
	EndTime   *big.Int
}

type AuctionSettled struct {
	Meta
	AuctionID *big.Int
}

// Relayer instances.

type RelayerPauseToggledByOwner struct {
	Meta
	RelayerAddress common.Address
}

type RelayerOwnerChanged struct {
	Meta
	NewOwner common.Address
}

// Target contract.

type TargetCreated struct {
	Meta
	TargetID *big.Int
}

type TargetUpdated struct {
	Meta
	TargetID *big.Int
}
