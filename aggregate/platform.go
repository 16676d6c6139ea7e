package aggregate

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/graphprotocol/ets-indexer/model"
	"github.com/graphprotocol/ets-indexer/store"
)

// EnsurePlatform returns the platform singleton, creating it with zero
// counters and the treasury address read from the access controls contract.
func (s *Session) EnsurePlatform() (*model.Platform, error) {
	platform, err := store.Platforms.Find(s.tx, model.PlatformID)
	if err != nil || platform != nil {
		return platform, err
	}

	addr, err := s.reader.PlatformAddress(s.ctx)
	if err != nil {
		return nil, s.readFailed(err)
	}

	platform = &model.Platform{
		ID:                model.PlatformID,
		Address:           model.AddressID(addr),
		TaggingFeeRevenue: model.Zero(),
		AuctionRevenue:    model.Zero(),
	}
	return platform, store.Platforms.Save(s.tx, model.PlatformID, platform)
}

func (s *Session) updatePlatform(fn func(p *model.Platform)) error {
	if _, err := s.EnsurePlatform(); err != nil {
		return err
	}
	return update(s, store.Platforms, model.PlatformID, fn)
}

// SetPlatformAddress records the treasury address announced by PlatformSet.
func (s *Session) SetPlatformAddress(addr common.Address) error {
	return s.updatePlatform(func(p *model.Platform) {
		p.Address = model.AddressID(addr)
	})
}

// platformAddress returns the treasury address id.
func (s *Session) platformAddress() (string, error) {
	platform, err := s.EnsurePlatform()
	if err != nil {
		return "", err
	}
	return platform.Address, nil
}
