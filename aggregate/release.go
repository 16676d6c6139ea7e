package aggregate

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/graphprotocol/ets-indexer/model"
	"github.com/graphprotocol/ets-indexer/store"
)

func (s *Session) EnsureRelease() (*model.Release, error) {
	release, err := store.Releases.Find(s.tx, model.ReleaseID)
	if err != nil || release != nil {
		return release, err
	}

	release = &model.Release{ID: model.ReleaseID}
	return release, store.Releases.Save(s.tx, model.ReleaseID, release)
}

func (s *Session) updateRelease(kind model.ContractKind, fn func(c *model.ContractRelease)) error {
	if _, err := s.EnsureRelease(); err != nil {
		return err
	}

	var unknown bool
	err := update(s, store.Releases, model.ReleaseID, func(r *model.Release) {
		c := r.Contract(kind)
		if c == nil {
			unknown = true
			return
		}
		fn(c)
	})
	if unknown {
		return fmt.Errorf("%w: contract %s is not part of a release", ErrInconsistentState, kind)
	}
	return err
}

// ContractInitialized records the proxy address and version of a core contract.
func (s *Session) ContractInitialized(kind model.ContractKind, proxy common.Address, version int64) error {
	return s.updateRelease(kind, func(c *model.ContractRelease) {
		c.Address = model.AddressID(proxy)
		c.Version = version
		c.VersionDate = s.block.Timestamp
	})
}

// ContractUpgraded records the new implementation behind a core contract proxy.
func (s *Session) ContractUpgraded(kind model.ContractKind, proxy, implementation common.Address) error {
	return s.updateRelease(kind, func(c *model.ContractRelease) {
		c.Address = model.AddressID(proxy)
		c.Implementation = model.AddressID(implementation)
	})
}
