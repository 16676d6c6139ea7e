package dispatch

import (
	"fmt"

	"github.com/graphprotocol/ets-indexer/aggregate"
	"github.com/graphprotocol/ets-indexer/codec"
	"github.com/graphprotocol/ets-indexer/model"
)

// handle routes one decoded event to its aggregators.
func handle(s *aggregate.Session, kind model.ContractKind, event codec.Event) error {
	switch ev := event.(type) {
	case *codec.Initialized:
		return s.ContractInitialized(kind, ev.Contract, ev.Version)
	case *codec.Upgraded:
		return s.ContractUpgraded(kind, ev.Contract, ev.Implementation)

	case *codec.RoleGranted:
		return s.RoleGranted(ev.Role, ev.Account, ev.Sender)
	case *codec.RoleRevoked:
		return s.RoleRevoked(ev.Role, ev.Account)
	case *codec.PlatformSet:
		return s.SetPlatformAddress(ev.NewAddress)
	case *codec.RelayerAdded:
		_, err := s.EnsureRelayer(ev.Relayer)
		return err
	case *codec.RelayerLockToggled:
		return s.RelayerLockToggled(ev.Relayer)

	case *codec.TaggingFeeSet:
		return s.UpdateGlobalSettings(func(g *model.GlobalSettings) { g.TaggingFee = ev.Fee })
	case *codec.PercentagesSet:
		return s.UpdateGlobalSettings(func(g *model.GlobalSettings) {
			g.PlatformPercentage = ev.PlatformPercentage
			g.RelayerPercentage = ev.RelayerPercentage
		})
	case *codec.AuctionsMaxSet:
		return s.UpdateGlobalSettings(func(g *model.GlobalSettings) { g.MaxAuctions = ev.MaxAuctions })
	case *codec.AuctionDurationSet:
		return s.UpdateGlobalSettings(func(g *model.GlobalSettings) { g.AuctionDuration = ev.Duration })
	case *codec.AuctionReservePriceSet:
		return s.UpdateGlobalSettings(func(g *model.GlobalSettings) { g.AuctionReservePrice = ev.ReservePrice })
	case *codec.AuctionMinBidIncrementPercentageSet:
		return s.UpdateGlobalSettings(func(g *model.GlobalSettings) { g.AuctionMinBidIncrementPercentage = ev.Percentage })
	case *codec.AuctionTimeBufferSet:
		return s.UpdateGlobalSettings(func(g *model.GlobalSettings) { g.AuctionTimeBuffer = ev.TimeBuffer })
	case *codec.AuctionProceedPercentagesSet:
		return s.UpdateGlobalSettings(func(g *model.GlobalSettings) {
			g.AuctionProceedsPlatformPercentage = ev.PlatformPercentage
			g.AuctionProceedsRelayerPercentage = ev.RelayerPercentage
			g.AuctionProceedsCreatorPercentage = ev.CreatorPercentage
		})
	case *codec.TagMinStringLengthSet:
		return s.UpdateGlobalSettings(func(g *model.GlobalSettings) { g.TagMinStringLength = ev.Size })
	case *codec.TagMaxStringLengthSet:
		return s.UpdateGlobalSettings(func(g *model.GlobalSettings) { g.TagMaxStringLength = ev.Size })
	case *codec.OwnershipTermLengthSet:
		return s.UpdateGlobalSettings(func(g *model.GlobalSettings) { g.OwnershipTermLength = ev.TermLength })

	case *codec.TaggingRecordCreated:
		return s.CreateTaggingRecord(ev.ID)
	case *codec.TaggingRecordUpdated:
		action, err := model.ActionFromCode(ev.Action)
		if err != nil {
			return fmt.Errorf("%w: tagging record %s: %s", ErrInconsistentState, ev.ID, err)
		}
		return s.UpdateTaggingRecord(ev.ID, action)

	case *codec.Transfer:
		return s.Transfer(ev.From, ev.To, ev.TokenID)
	case *codec.PremiumFlagSet:
		return s.SetTagPremium(ev.TokenID, ev.IsPremium)
	case *codec.ReservedFlagSet:
		return s.SetTagReserved(ev.TokenID, ev.IsReserved)

	case *codec.AuctionCreated:
		return s.AuctionCreated(ev.AuctionID)
	case *codec.AuctionBid:
		return s.AuctionBid(ev.AuctionID, ev.TxHash, ev.Extended)
	case *codec.AuctionExtended:
		return s.AuctionExtended(ev.AuctionID)
	case *codec.AuctionSettled:
		return s.AuctionSettled(ev.AuctionID)

	case *codec.RelayerPauseToggledByOwner:
		return s.RelayerPauseToggled(ev.Contract)
	case *codec.RelayerOwnerChanged:
		return s.RelayerOwnerChanged(ev.Contract)

	case *codec.TargetCreated:
		_, err := s.EnsureTarget(ev.TargetID)
		return err
	case *codec.TargetUpdated:
		return s.TargetUpdated(ev.TargetID)
	}

	return fmt.Errorf("no handler for event %T", event)
}
