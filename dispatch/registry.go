package dispatch

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/graphprotocol/ets-indexer/chain"
	"github.com/graphprotocol/ets-indexer/model"
)

// Registry maps the deployed core contract addresses to their kind.
type Registry struct {
	contracts map[common.Address]model.ContractKind
}

func NewRegistry(contracts chain.Contracts) *Registry {
	r := &Registry{contracts: map[common.Address]model.ContractKind{}}
	r.add(contracts.ETS, model.ContractETS)
	r.add(contracts.Token, model.ContractToken)
	r.add(contracts.AccessControls, model.ContractAccessControls)
	r.add(contracts.AuctionHouse, model.ContractAuctionHouse)
	r.add(contracts.Target, model.ContractTarget)
	return r
}

func (r *Registry) add(addr common.Address, kind model.ContractKind) {
	if addr == (common.Address{}) {
		return
	}
	r.contracts[addr] = kind
}

// Kind returns the contract kind at addr, or ContractUnknown.
func (r *Registry) Kind(addr common.Address) model.ContractKind {
	return r.contracts[addr]
}

// eventSources lists the contract kind each event is accepted from.
// ContractUnknown stands for any core contract.
var eventSources = map[string]model.ContractKind{
	"Initialized": model.ContractUnknown,
	"Upgraded":    model.ContractUnknown,

	"RoleGranted":        model.ContractAccessControls,
	"RoleRevoked":        model.ContractAccessControls,
	"PlatformSet":        model.ContractAccessControls,
	"RelayerAdded":       model.ContractAccessControls,
	"RelayerLockToggled": model.ContractAccessControls,

	"TaggingFeeSet":        model.ContractETS,
	"PercentagesSet":       model.ContractETS,
	"TaggingRecordCreated": model.ContractETS,
	"TaggingRecordUpdated": model.ContractETS,

	"Transfer":               model.ContractToken,
	"PremiumFlagSet":         model.ContractToken,
	"ReservedFlagSet":        model.ContractToken,
	"TagMinStringLengthSet":  model.ContractToken,
	"TagMaxStringLengthSet":  model.ContractToken,
	"OwnershipTermLengthSet": model.ContractToken,

	"AuctionsMaxSet":                      model.ContractAuctionHouse,
	"AuctionDurationSet":                  model.ContractAuctionHouse,
	"AuctionReservePriceSet":              model.ContractAuctionHouse,
	"AuctionMinBidIncrementPercentageSet": model.ContractAuctionHouse,
	"AuctionTimeBufferSet":                model.ContractAuctionHouse,
	"AuctionProceedPercentagesSet":        model.ContractAuctionHouse,
	"AuctionCreated":                      model.ContractAuctionHouse,
	"AuctionBid":                          model.ContractAuctionHouse,
	"AuctionExtended":                     model.ContractAuctionHouse,
	"AuctionSettled":                      model.ContractAuctionHouse,

	"RelayerPauseToggledByOwner": model.ContractRelayer,
	"RelayerOwnerChanged":        model.ContractRelayer,

	"TargetCreated": model.ContractTarget,
	"TargetUpdated": model.ContractTarget,
}

func accepts(kind model.ContractKind, event string) bool {
	want, found := eventSources[event]
	if !found {
		return false
	}
	if want == model.ContractUnknown {
		return kind != model.ContractUnknown && kind != model.ContractRelayer
	}
	return want == kind
}
