package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"
)

// Caller is the subset of *ethclient.Client used to read contracts.
type Caller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

type blockNumberKey struct{}

// WithBlockNumber pins every read made with the returned context to the given block.
func WithBlockNumber(ctx context.Context, blockNum uint64) context.Context {
	return context.WithValue(ctx, blockNumberKey{}, new(big.Int).SetUint64(blockNum))
}

// BlockNumberFromContext returns the pinned block, or nil for the latest block.
func BlockNumberFromContext(ctx context.Context) *big.Int {
	if v, ok := ctx.Value(blockNumberKey{}).(*big.Int); ok {
		return v
	}
	return nil
}

// RPCReader implements Reader with eth_call requests.
type RPCReader struct {
	client    Caller
	contracts Contracts
}

func NewRPCReader(client Caller, contracts Contracts) *RPCReader {
	return &RPCReader{
		client:    client,
		contracts: contracts,
	}
}

// Dial connects to a JSON-RPC endpoint.
func Dial(ctx context.Context, endpoint string, contracts Contracts) (*RPCReader, error) {
	client, err := ethclient.DialContext(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("dial rpc endpoint %q: %w", endpoint, err)
	}

	return NewRPCReader(client, contracts), nil
}

func (r *RPCReader) RelayerName(ctx context.Context, relayer common.Address) (string, error) {
	out, err := r.call(ctx, accessControlsABI, r.contracts.AccessControls, "relayerContractToName", relayer)
	if err != nil {
		return "", err
	}
	return out[0].(string), nil
}

func (r *RPCReader) IsRelayerAdmin(ctx context.Context, addr common.Address) (bool, error) {
	out, err := r.call(ctx, accessControlsABI, r.contracts.AccessControls, "isRelayerAdmin", addr)
	if err != nil {
		return false, err
	}
	return out[0].(bool), nil
}

func (r *RPCReader) IsRelayerLocked(ctx context.Context, relayer common.Address) (bool, error) {
	out, err := r.call(ctx, accessControlsABI, r.contracts.AccessControls, "isRelayerLocked", relayer)
	if err != nil {
		return false, err
	}
	return out[0].(bool), nil
}

func (r *RPCReader) PlatformAddress(ctx context.Context) (common.Address, error) {
	out, err := r.call(ctx, accessControlsABI, r.contracts.AccessControls, "getPlatformAddress")
	if err != nil {
		return common.Address{}, err
	}
	return out[0].(common.Address), nil
}

func (r *RPCReader) RelayerOwner(ctx context.Context, relayer common.Address) (common.Address, error) {
	out, err := r.call(ctx, relayerABI, relayer, "getOwner")
	if err != nil {
		return common.Address{}, err
	}
	return out[0].(common.Address), nil
}

func (r *RPCReader) RelayerCreator(ctx context.Context, relayer common.Address) (common.Address, error) {
	out, err := r.call(ctx, relayerABI, relayer, "getCreator")
	if err != nil {
		return common.Address{}, err
	}
	return out[0].(common.Address), nil
}

func (r *RPCReader) RelayerPaused(ctx context.Context, relayer common.Address) (bool, error) {
	out, err := r.call(ctx, relayerABI, relayer, "isPaused")
	if err != nil {
		return false, err
	}
	return out[0].(bool), nil
}

type tagTuple struct {
	Relayer  common.Address
	Creator  common.Address
	Display  string
	Premium  bool
	Reserved bool
}

func (r *RPCReader) Tag(ctx context.Context, tokenID *big.Int) (*TagView, error) {
	out, err := r.call(ctx, tokenABI, r.contracts.Token, "getTagById", tokenID)
	if err != nil {
		return nil, err
	}

	tag := *abi.ConvertType(out[0], new(tagTuple)).(*tagTuple)
	return &TagView{
		Relayer:  tag.Relayer,
		Creator:  tag.Creator,
		Display:  tag.Display,
		Premium:  tag.Premium,
		Reserved: tag.Reserved,
	}, nil
}

func (r *RPCReader) TagOwner(ctx context.Context, tokenID *big.Int) (common.Address, error) {
	out, err := r.call(ctx, tokenABI, r.contracts.Token, "ownerOf", tokenID)
	if err != nil {
		return common.Address{}, err
	}
	return out[0].(common.Address), nil
}

func (r *RPCReader) TaggingRecord(ctx context.Context, recordID *big.Int) (*TaggingRecordView, error) {
	out, err := r.call(ctx, etsABI, r.contracts.ETS, "getTaggingRecordFromId", recordID)
	if err != nil {
		return nil, err
	}

	return &TaggingRecordView{
		TagIDs:     out[0].([]*big.Int),
		TargetID:   out[1].(*big.Int),
		RecordType: out[2].(string),
		Relayer:    out[3].(common.Address),
		Tagger:     out[4].(common.Address),
	}, nil
}

type targetTuple struct {
	TargetURI  string
	CreatedBy  common.Address
	Enriched   *big.Int
	HttpStatus *big.Int
	IpfsHash   string
}

func (r *RPCReader) Target(ctx context.Context, targetID *big.Int) (*TargetView, error) {
	out, err := r.call(ctx, targetABI, r.contracts.Target, "getTargetById", targetID)
	if err != nil {
		return nil, err
	}

	target := *abi.ConvertType(out[0], new(targetTuple)).(*targetTuple)
	return &TargetView{
		TargetURI:  target.TargetURI,
		CreatedBy:  target.CreatedBy,
		Enriched:   target.Enriched,
		HTTPStatus: target.HttpStatus,
		IPFSHash:   target.IpfsHash,
	}, nil
}

type auctionTuple struct {
	AuctionId    *big.Int
	TokenId      *big.Int
	Amount       *big.Int
	StartTime    *big.Int
	EndTime      *big.Int
	ReservePrice *big.Int
	Bidder       common.Address
	Auctioneer   common.Address
	Settled      bool
}

func (r *RPCReader) Auction(ctx context.Context, auctionID *big.Int) (*AuctionView, error) {
	out, err := r.call(ctx, auctionHouseABI, r.contracts.AuctionHouse, "getAuction", auctionID)
	if err != nil {
		return nil, err
	}

	auction := *abi.ConvertType(out[0], new(auctionTuple)).(*auctionTuple)
	return &AuctionView{
		AuctionID:    auction.AuctionId,
		TokenID:      auction.TokenId,
		Amount:       auction.Amount,
		StartTime:    auction.StartTime,
		EndTime:      auction.EndTime,
		ReservePrice: auction.ReservePrice,
		Bidder:       auction.Bidder,
		Auctioneer:   auction.Auctioneer,
		Settled:      auction.Settled,
	}, nil
}

func (r *RPCReader) call(ctx context.Context, contract abi.ABI, to common.Address, method string, args ...interface{}) ([]interface{}, error) {
	callErr := func(err error) error {
		return &CallError{Contract: to, Method: method, Args: args, Err: err}
	}

	data, err := contract.Pack(method, args...)
	if err != nil {
		return nil, callErr(fmt.Errorf("pack arguments: %w", err))
	}

	blockNum := BlockNumberFromContext(ctx)
	if tracer.Enabled() {
		zlog.Debug("eth_call", zap.String("method", method), zap.Stringer("to", to), zap.Stringer("block", blockNum))
	}

	raw, err := r.client.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, blockNum)
	if err != nil {
		if isRevert(err) {
			return nil, callErr(fmt.Errorf("%w: %s", ErrReverted, err))
		}
		return nil, callErr(err)
	}

	// A call to an address without code returns no data at all.
	if len(raw) == 0 {
		return nil, callErr(fmt.Errorf("%w: empty return data", ErrReverted))
	}

	out, err := contract.Unpack(method, raw)
	if err != nil {
		return nil, callErr(fmt.Errorf("%w: unpack result: %s", ErrReverted, err))
	}
	return out, nil
}

func isRevert(err error) bool {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "revert")
}
