// Package chaintest provides an in-memory chain.Reader for handler tests.
package chaintest

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/graphprotocol/ets-indexer/chain"
)

// Reader serves contract reads from maps. Reads of unknown ids revert, and
// Fail makes every call to a method revert.
type Reader struct {
	Contracts chain.Contracts

	Names    map[common.Address]string
	Admins   map[common.Address]bool
	Locked   map[common.Address]bool
	Paused   map[common.Address]bool
	Owners   map[common.Address]common.Address
	Creators map[common.Address]common.Address
	Platform common.Address

	Tags      map[string]*chain.TagView
	TagOwners map[string]common.Address
	Records   map[string]*chain.TaggingRecordView
	Targets   map[string]*chain.TargetView
	Auctions  map[string]*chain.AuctionView

	failing map[string]bool
	calls   map[string]int
}

var _ chain.Reader = (*Reader)(nil)

func NewReader() *Reader {
	return &Reader{
		Names:     map[common.Address]string{},
		Admins:    map[common.Address]bool{},
		Locked:    map[common.Address]bool{},
		Paused:    map[common.Address]bool{},
		Owners:    map[common.Address]common.Address{},
		Creators:  map[common.Address]common.Address{},
		Tags:      map[string]*chain.TagView{},
		TagOwners: map[string]common.Address{},
		Records:   map[string]*chain.TaggingRecordView{},
		Targets:   map[string]*chain.TargetView{},
		Auctions:  map[string]*chain.AuctionView{},
		failing:   map[string]bool{},
		calls:     map[string]int{},
	}
}

// Fail makes method revert from now on.
func (r *Reader) Fail(method string) { r.failing[method] = true }

// Calls returns how many times method was called.
func (r *Reader) Calls(method string) int { return r.calls[method] }

// AddRelayer registers a regular relayer instance owned and created by owner.
func (r *Reader) AddRelayer(addr common.Address, name string, owner common.Address) {
	r.Names[addr] = name
	r.Owners[addr] = owner
	r.Creators[addr] = owner
}

// AddTag registers a CTAG and its current owner.
func (r *Reader) AddTag(tokenID int64, display string, creator, relayer, owner common.Address) {
	id := big.NewInt(tokenID).String()
	r.Tags[id] = &chain.TagView{Relayer: relayer, Creator: creator, Display: display}
	r.TagOwners[id] = owner
}

// SetRecord registers the current state of a tagging record.
func (r *Reader) SetRecord(recordID int64, targetID int64, relayer, tagger common.Address, tagIDs ...int64) {
	ids := make([]*big.Int, len(tagIDs))
	for i, id := range tagIDs {
		ids[i] = big.NewInt(id)
	}

	r.Records[big.NewInt(recordID).String()] = &chain.TaggingRecordView{
		TagIDs:     ids,
		TargetID:   big.NewInt(targetID),
		RecordType: "bookmark",
		Relayer:    relayer,
		Tagger:     tagger,
	}
}

func (r *Reader) call(contract common.Address, method string, args ...interface{}) error {
	r.calls[method]++
	if r.failing[method] {
		return r.revert(contract, method, args...)
	}
	return nil
}

func (r *Reader) revert(contract common.Address, method string, args ...interface{}) error {
	return &chain.CallError{Contract: contract, Method: method, Args: args, Err: chain.ErrReverted}
}

func (r *Reader) RelayerName(ctx context.Context, relayer common.Address) (string, error) {
	if err := r.call(r.Contracts.AccessControls, "relayerContractToName", relayer); err != nil {
		return "", err
	}
	return r.Names[relayer], nil
}

func (r *Reader) IsRelayerAdmin(ctx context.Context, addr common.Address) (bool, error) {
	if err := r.call(r.Contracts.AccessControls, "isRelayerAdmin", addr); err != nil {
		return false, err
	}
	return r.Admins[addr], nil
}

func (r *Reader) IsRelayerLocked(ctx context.Context, relayer common.Address) (bool, error) {
	if err := r.call(r.Contracts.AccessControls, "isRelayerLocked", relayer); err != nil {
		return false, err
	}
	return r.Locked[relayer], nil
}

func (r *Reader) PlatformAddress(ctx context.Context) (common.Address, error) {
	if err := r.call(r.Contracts.AccessControls, "getPlatformAddress"); err != nil {
		return common.Address{}, err
	}
	return r.Platform, nil
}

func (r *Reader) RelayerOwner(ctx context.Context, relayer common.Address) (common.Address, error) {
	if err := r.call(relayer, "getOwner"); err != nil {
		return common.Address{}, err
	}
	return r.Owners[relayer], nil
}

func (r *Reader) RelayerCreator(ctx context.Context, relayer common.Address) (common.Address, error) {
	if err := r.call(relayer, "getCreator"); err != nil {
		return common.Address{}, err
	}
	return r.Creators[relayer], nil
}

func (r *Reader) RelayerPaused(ctx context.Context, relayer common.Address) (bool, error) {
	if err := r.call(relayer, "isPaused"); err != nil {
		return false, err
	}
	return r.Paused[relayer], nil
}

func (r *Reader) Tag(ctx context.Context, tokenID *big.Int) (*chain.TagView, error) {
	if err := r.call(r.Contracts.Token, "getTagById", tokenID); err != nil {
		return nil, err
	}
	tag, found := r.Tags[tokenID.String()]
	if !found {
		return nil, r.revert(r.Contracts.Token, "getTagById", tokenID)
	}
	copied := *tag
	return &copied, nil
}

func (r *Reader) TagOwner(ctx context.Context, tokenID *big.Int) (common.Address, error) {
	if err := r.call(r.Contracts.Token, "ownerOf", tokenID); err != nil {
		return common.Address{}, err
	}
	owner, found := r.TagOwners[tokenID.String()]
	if !found {
		return common.Address{}, r.revert(r.Contracts.Token, "ownerOf", tokenID)
	}
	return owner, nil
}

func (r *Reader) TaggingRecord(ctx context.Context, recordID *big.Int) (*chain.TaggingRecordView, error) {
	if err := r.call(r.Contracts.ETS, "getTaggingRecordFromId", recordID); err != nil {
		return nil, err
	}
	record, found := r.Records[recordID.String()]
	if !found {
		return nil, r.revert(r.Contracts.ETS, "getTaggingRecordFromId", recordID)
	}
	copied := *record
	copied.TagIDs = append([]*big.Int(nil), record.TagIDs...)
	return &copied, nil
}

// Target returns a registered target, or a plain URL target for unknown ids.
func (r *Reader) Target(ctx context.Context, targetID *big.Int) (*chain.TargetView, error) {
	if err := r.call(r.Contracts.Target, "getTargetById", targetID); err != nil {
		return nil, err
	}
	target, found := r.Targets[targetID.String()]
	if !found {
		return &chain.TargetView{
			TargetURI:  "https://example.com/" + targetID.String(),
			Enriched:   new(big.Int),
			HTTPStatus: new(big.Int),
		}, nil
	}
	copied := *target
	return &copied, nil
}

func (r *Reader) Auction(ctx context.Context, auctionID *big.Int) (*chain.AuctionView, error) {
	if err := r.call(r.Contracts.AuctionHouse, "getAuction", auctionID); err != nil {
		return nil, err
	}
	auction, found := r.Auctions[auctionID.String()]
	if !found {
		return nil, r.revert(r.Contracts.AuctionHouse, "getAuction", auctionID)
	}
	copied := *auction
	return &copied, nil
}
