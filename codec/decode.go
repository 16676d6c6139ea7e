package codec

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ErrUnknownEvent is returned for event names no handler is interested in.
var ErrUnknownEvent = errors.New("unknown event")

type decoderFunc func(m Meta, p *params) Event

var decoders = map[string]decoderFunc{
	"Initialized": func(m Meta, p *params) Event {
		return &Initialized{Meta: m, Version: p.int64("version")}
	},
	"Upgraded": func(m Meta, p *params) Event {
		return &Upgraded{Meta: m, Implementation: p.address("implementation")}
	},
	"RoleGranted": func(m Meta, p *params) Event {
		return &RoleGranted{Meta: m, Role: p.hash("role"), Account: p.address("account"), Sender: p.address("sender")}
	},
	"RoleRevoked": func(m Meta, p *params) Event {
		return &RoleRevoked{Meta: m, Role: p.hash("role"), Account: p.address("account"), Sender: p.address("sender")}
	},
	"PlatformSet": func(m Meta, p *params) Event {
		return &PlatformSet{Meta: m, NewAddress: p.address("newAddress")}
	},
	"RelayerAdded": func(m Meta, p *params) Event {
		return &RelayerAdded{Meta: m, Relayer: p.address("relayer")}
	},
	"RelayerLockToggled": func(m Meta, p *params) Event {
		return &RelayerLockToggled{Meta: m, Relayer: p.address("relayer")}
	},
	"TaggingFeeSet": func(m Meta, p *params) Event {
		return &TaggingFeeSet{Meta: m, Fee: p.bigInt("newTaggingFee")}
	},
	"PercentagesSet": func(m Meta, p *params) Event {
		return &PercentagesSet{Meta: m, PlatformPercentage: p.int64("platformPercentage"), RelayerPercentage: p.int64("relayerPercentage")}
	},
	"AuctionsMaxSet": func(m Meta, p *params) Event {
		return &AuctionsMaxSet{Meta: m, MaxAuctions: p.int64("maxAuctions")}
	},
	"AuctionDurationSet": func(m Meta, p *params) Event {
		return &AuctionDurationSet{Meta: m, Duration: p.int64("duration")}
	},
	"AuctionReservePriceSet": func(m Meta, p *params) Event {
		return &AuctionReservePriceSet{Meta: m, ReservePrice: p.bigInt("reservePrice")}
	},
	"AuctionMinBidIncrementPercentageSet": func(m Meta, p *params) Event {
		return &AuctionMinBidIncrementPercentageSet{Meta: m, Percentage: p.int64("minBidIncrementPercentagePrice")}
	},
	"AuctionTimeBufferSet": func(m Meta, p *params) Event {
		return &AuctionTimeBufferSet{Meta: m, TimeBuffer: p.int64("timeBuffer")}
	},
	"AuctionProceedPercentagesSet": func(m Meta, p *params) Event {
		return &AuctionProceedPercentagesSet{
			Meta:               m,
			PlatformPercentage: p.int64("platformPercentage"),
			RelayerPercentage:  p.int64("relayerPercentage"),
			CreatorPercentage:  p.int64("creatorPercentage"),
		}
	},
	"TagMinStringLengthSet": func(m Meta, p *params) Event {
		return &TagMinStringLengthSet{Meta: m, Size: p.int64("size")}
	},
	"TagMaxStringLengthSet": func(m Meta, p *params) Event {
		return &TagMaxStringLengthSet{Meta: m, Size: p.int64("size")}
	},
	"OwnershipTermLengthSet": func(m Meta, p *params) Event {
		return &OwnershipTermLengthSet{Meta: m, TermLength: p.bigInt("termLength")}
	},
	"TaggingRecordCreated": func(m Meta, p *params) Event {
		return &TaggingRecordCreated{Meta: m, ID: p.bigInt("id")}
	},
	"TaggingRecordUpdated": func(m Meta, p *params) Event {
		return &TaggingRecordUpdated{Meta: m, ID: p.bigInt("id"), Action: p.uint64("action")}
	},
	"Transfer": func(m Meta, p *params) Event {
		return &Transfer{Meta: m, From: p.address("from"), To: p.address("to"), TokenID: p.bigInt("tokenId")}
	},
	"PremiumFlagSet": func(m Meta, p *params) Event {
		return &PremiumFlagSet{Meta: m, TokenID: p.bigInt("tokenId"), IsPremium: p.bool("isPremium")}
	},
	"ReservedFlagSet": func(m Meta, p *params) Event {
		return &ReservedFlagSet{Meta: m, TokenID: p.bigInt("tokenId"), IsReserved: p.bool("isReserved")}
	},
	"AuctionCreated": func(m Meta, p *params) Event {
		return &AuctionCreated{Meta: m, AuctionID: p.bigInt("auctionId")}
	},
	"AuctionBid": func(m Meta, p *params) Event {
		return &AuctionBid{
			Meta:      m,
			AuctionID: p.bigInt("auctionId"),
			Sender:    p.address("sender"),
			Value:     p.bigInt("value"),
			Extended:  p.bool("extended"),
		}
	},
	"AuctionExtended": func(m Meta, p *params) Event {
		return &AuctionExtended{Meta: m, AuctionID: p.bigInt("auctionId"), EndTime: p.bigInt("endTime")}
	},
	"AuctionSettled": func(m Meta, p *params) Event {
		return &AuctionSettled{Meta: m, AuctionID: p.bigInt("auctionId")}
	},
	"RelayerPauseToggledByOwner": func(m Meta, p *params) Event {
		return &RelayerPauseToggledByOwner{Meta: m, RelayerAddress: p.address("relayerAddress")}
	},
	"RelayerOwnerChanged": func(m Meta, p *params) Event {
		return &RelayerOwnerChanged{Meta: m, NewOwner: p.address("newOwner")}
	},
	"TargetCreated": func(m Meta, p *params) Event {
		return &TargetCreated{Meta: m, TargetID: p.bigInt("targetId")}
	},
	"TargetUpdated": func(m Meta, p *params) Event {
		return &TargetUpdated{Meta: m, TargetID: p.bigInt("targetId")}
	},
}

// DecodeEvent turns a raw log into its typed event.
func DecodeEvent(log *Log) (Event, error) {
	decode, found := decoders[log.Event]
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, log.Event)
	}
	if !common.IsHexAddress(log.Address) {
		return nil, fmt.Errorf("event %s: invalid contract address %q", log.Event, log.Address)
	}

	meta := Meta{
		Name:     log.Event,
		Contract: common.HexToAddress(log.Address),
		TxHash:   log.TxHash,
		TxIndex:  log.TxIndex,
		LogIndex: log.LogIndex,
	}

	p := &params{values: log.Params}
	event := decode(meta, p)
	if p.err != nil {
		return nil, fmt.Errorf("event %s at tx %s log %d: %w", log.Event, log.TxHash, log.LogIndex, p.err)
	}
	return event, nil
}

// params decodes named event arguments, keeping the first error.
type params struct {
	values map[string]string
	err    error
}

func (p *params) fail(name string, format string, args ...interface{}) {
	if p.err == nil {
		p.err = fmt.Errorf("param %q: %s", name, fmt.Sprintf(format, args...))
	}
}

func (p *params) raw(name string) (string, bool) {
	v, found := p.values[name]
	if !found {
		p.fail(name, "missing")
	}
	return strings.TrimSpace(v), found
}

func (p *params) address(name string) common.Address {
	v, ok := p.raw(name)
	if !ok {
		return common.Address{}
	}
	if !common.IsHexAddress(v) {
		p.fail(name, "invalid address %q", v)
		return common.Address{}
	}
	return common.HexToAddress(v)
}

func (p *params) hash(name string) common.Hash {
	v, ok := p.raw(name)
	if !ok {
		return common.Hash{}
	}
	if len(strings.TrimPrefix(v, "0x")) != 2*common.HashLength {
		p.fail(name, "invalid hash %q", v)
		return common.Hash{}
	}
	return common.HexToHash(v)
}

// bigInt accepts decimal and 0x-prefixed hex numbers.
func (p *params) bigInt(name string) *big.Int {
	v, ok := p.raw(name)
	if !ok {
		return new(big.Int)
	}
	var n *big.Int
	var valid bool
	if hex := strings.TrimPrefix(v, "0x"); hex != v {
		n, valid = new(big.Int).SetString(hex, 16)
	} else {
		n, valid = new(big.Int).SetString(v, 10)
	}
	if !valid || n.Sign() < 0 {
		p.fail(name, "invalid unsigned number %q", v)
		return new(big.Int)
	}
	return n
}

func (p *params) int64(name string) int64 {
	n := p.bigInt(name)
	if !n.IsInt64() {
		p.fail(name, "%s overflows int64", n)
		return 0
	}
	return n.Int64()
}

func (p *params) uint64(name string) uint64 {
	n := p.bigInt(name)
	if !n.IsUint64() {
		p.fail(name, "%s overflows uint64", n)
		return 0
	}
	return n.Uint64()
}

func (p *params) bool(name string) bool {
	v, ok := p.raw(name)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(name, "invalid bool %q", v)
	}
	return b
}
