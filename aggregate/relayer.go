package aggregate

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/graphprotocol/ets-indexer/model"
	"github.com/graphprotocol/ets-indexer/store"
	"go.uber.org/zap"
)

// EnsureRelayer returns the relayer at addr, backfilling it from the access
// controls and, for regular relayers, from the relayer instance itself.
func (s *Session) EnsureRelayer(addr common.Address) (*model.Relayer, error) {
	id := model.AddressID(addr)
	relayer, err := store.Relayers.Find(s.tx, id)
	if err != nil || relayer != nil {
		return relayer, err
	}

	relayer = &model.Relayer{
		ID:                id,
		FirstSeen:         s.block.Timestamp,
		Owner:             model.ZeroAddress,
		Creator:           model.ZeroAddress,
		TaggingFeeRevenue: model.Zero(),
		AuctionRevenue:    model.Zero(),
		LifetimeRevenue:   model.Zero(),
	}

	if relayer.Name, err = s.reader.RelayerName(s.ctx, addr); err != nil {
		return nil, s.readFailed(err)
	}
	if relayer.IsAdmin, err = s.reader.IsRelayerAdmin(s.ctx, addr); err != nil {
		return nil, s.readFailed(err)
	}
	if relayer.LockedByPlatform, err = s.reader.IsRelayerLocked(s.ctx, addr); err != nil {
		return nil, s.readFailed(err)
	}

	// Admin relayers are plain accounts with no relayer contract to query.
	if !relayer.IsAdmin {
		owner, err := s.reader.RelayerOwner(s.ctx, addr)
		if err != nil {
			return nil, s.readFailed(err)
		}
		creator, err := s.reader.RelayerCreator(s.ctx, addr)
		if err != nil {
			return nil, s.readFailed(err)
		}
		if relayer.PausedByOwner, err = s.reader.RelayerPaused(s.ctx, addr); err != nil {
			return nil, s.readFailed(err)
		}

		relayer.Owner = model.AddressID(owner)
		relayer.Creator = model.AddressID(creator)
	}

	if err := store.Relayers.Save(s.tx, id, relayer); err != nil {
		return nil, err
	}

	err = s.updatePlatform(func(p *model.Platform) {
		p.RelayersLifetime++
		if !relayer.LockedByPlatform {
			p.RelayersActive++
		}
	})
	if err != nil {
		return nil, err
	}

	if tracer.Enabled() {
		s.logger.Debug("relayer created", zap.String("id", id), zap.String("name", relayer.Name), zap.Bool("is_admin", relayer.IsAdmin))
	}
	return relayer, nil
}

// IsKnownRelayer reports whether addr was already indexed as a relayer.
func (s *Session) IsKnownRelayer(addr common.Address) (bool, error) {
	relayer, err := store.Relayers.Find(s.tx, model.AddressID(addr))
	return relayer != nil, err
}

// RelayerLockToggled re-reads the platform lock and keeps the active relayer count in step.
func (s *Session) RelayerLockToggled(addr common.Address) error {
	relayer, err := s.EnsureRelayer(addr)
	if err != nil {
		return err
	}

	locked, err := s.reader.IsRelayerLocked(s.ctx, addr)
	if err != nil {
		return s.readFailed(err)
	}
	if locked == relayer.LockedByPlatform {
		return nil
	}

	if err := update(s, store.Relayers, relayer.ID, func(r *model.Relayer) { r.LockedByPlatform = locked }); err != nil {
		return err
	}

	return s.updatePlatform(func(p *model.Platform) {
		if locked {
			p.RelayersActive--
		} else {
			p.RelayersActive++
		}
	})
}

func (s *Session) RelayerPauseToggled(addr common.Address) error {
	relayer, err := s.EnsureRelayer(addr)
	if err != nil {
		return err
	}

	paused, err := s.reader.RelayerPaused(s.ctx, addr)
	if err != nil {
		return s.readFailed(err)
	}

	return update(s, store.Relayers, relayer.ID, func(r *model.Relayer) { r.PausedByOwner = paused })
}

func (s *Session) RelayerOwnerChanged(addr common.Address) error {
	relayer, err := s.EnsureRelayer(addr)
	if err != nil {
		return err
	}

	owner, err := s.reader.RelayerOwner(s.ctx, addr)
	if err != nil {
		return s.readFailed(err)
	}

	return update(s, store.Relayers, relayer.ID, func(r *model.Relayer) { r.Owner = model.AddressID(owner) })
}
