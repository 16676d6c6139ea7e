package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ErrReverted is wrapped by every CallError whose underlying eth_call reverted.
var ErrReverted = errors.New("call reverted")

// CallError describes a failed contract read.
type CallError struct {
	Contract common.Address
	Method   string
	Args     []interface{}
	Err      error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("call %s(%s) on %s: %s", e.Method, e.ArgsString(), strings.ToLower(e.Contract.Hex()), e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }

// ArgsString renders the call arguments the way they are logged.
func (e *CallError) ArgsString() string {
	out := make([]string, len(e.Args))
	for i, arg := range e.Args {
		switch v := arg.(type) {
		case common.Address:
			out[i] = strings.ToLower(v.Hex())
		default:
			out[i] = fmt.Sprintf("%v", v)
		}
	}
	return strings.Join(out, ",")
}

type TagView struct {
	Relayer  common.Address
	Creator  common.Address
	Display  string
	Premium  bool
	Reserved bool
}

type TaggingRecordView struct {
	TagIDs     []*big.Int
	TargetID   *big.Int
	RecordType string
	Relayer    common.Address
	Tagger     common.Address
}

type TargetView struct {
	TargetURI  string
	CreatedBy  common.Address
	Enriched   *big.Int
	HTTPStatus *big.Int
	IPFSHash   string
}

type AuctionView struct {
	AuctionID    *big.Int
	TokenID      *big.Int
	Amount       *big.Int
	StartTime    *big.Int
	EndTime      *big.Int
	ReservePrice *big.Int
	Bidder       common.Address
	Auctioneer   common.Address
	Settled      bool
}

// Reader performs the point-in-time contract reads needed to backfill
// entities. Every error it returns is a *CallError.
type Reader interface {
	RelayerName(ctx context.Context, relayer common.Address) (string, error)
	IsRelayerAdmin(ctx context.Context, addr common.Address) (bool, error)
	IsRelayerLocked(ctx context.Context, relayer common.Address) (bool, error)
	PlatformAddress(ctx context.Context) (common.Address, error)

	RelayerOwner(ctx context.Context, relayer common.Address) (common.Address, error)
	RelayerCreator(ctx context.Context, relayer common.Address) (common.Address, error)
	RelayerPaused(ctx context.Context, relayer common.Address) (bool, error)

	Tag(ctx context.Context, tokenID *big.Int) (*TagView, error)
	TagOwner(ctx context.Context, tokenID *big.Int) (common.Address, error)
	TaggingRecord(ctx context.Context, recordID *big.Int) (*TaggingRecordView, error)
	Target(ctx context.Context, targetID *big.Int) (*TargetView, error)
	Auction(ctx context.Context, auctionID *big.Int) (*AuctionView, error)
}

// Contracts holds the deployed core contract addresses.
type Contracts struct {
	ETS            common.Address
	Token          common.Address
	AccessControls common.Address
	AuctionHouse   common.Address
	Target         common.Address
}
