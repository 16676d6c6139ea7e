package store

import (
	"fmt"

	"github.com/graphprotocol/ets-indexer/model"
)

// Entity provides typed access to one entity kind.
type Entity[T any] struct {
	kind string
}

func NewEntity[T any](kind string) Entity[T] {
	return Entity[T]{kind: kind}
}

func (e Entity[T]) Kind() string { return e.kind }

// Find returns the entity with id, or nil when it does not exist.
func (e Entity[T]) Find(tx *Tx, id string) (*T, error) {
	var v T
	found, err := tx.get(e.kind, id, &v)
	if err != nil || !found {
		return nil, err
	}
	return &v, nil
}

// Get is Find for entities that must already exist.
func (e Entity[T]) Get(tx *Tx, id string) (*T, error) {
	v, err := e.Find(tx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, fmt.Errorf("%s %q: %w", e.kind, id, ErrNotFound)
	}
	return v, nil
}

func (e Entity[T]) Save(tx *Tx, id string, v *T) error {
	return tx.put(e.kind, id, v)
}

func (e Entity[T]) Delete(tx *Tx, id string) error {
	return tx.delete(e.kind, id)
}

var (
	GlobalSettings = NewEntity[model.GlobalSettings](model.KindGlobalSettings)
	Releases       = NewEntity[model.Release](model.KindRelease)
	Platforms      = NewEntity[model.Platform](model.KindPlatform)
	Relayers       = NewEntity[model.Relayer](model.KindRelayer)
	RelayerAdmins  = NewEntity[model.RelayerAdmin](model.KindRelayerAdmin)
	Administrators = NewEntity[model.Administrator](model.KindAdministrator)
	Owners         = NewEntity[model.Owner](model.KindOwner)
	Creators       = NewEntity[model.Creator](model.KindCreator)
	Taggers        = NewEntity[model.Tagger](model.KindTagger)
	Tags           = NewEntity[model.Tag](model.KindTag)
	Targets        = NewEntity[model.Target](model.KindTarget)
	TaggingRecords = NewEntity[model.TaggingRecord](model.KindTaggingRecord)
	Auctions       = NewEntity[model.Auction](model.KindAuction)
	Bids           = NewEntity[model.Bid](model.KindBid)
	Checkpoints    = NewEntity[model.Checkpoint](model.KindCheckpoint)
)

// LoadCheckpoint returns the stored checkpoint, or nil when nothing was applied yet.
func (s *Store) LoadCheckpoint() (cp *model.Checkpoint, err error) {
	err = s.View(func(tx *Tx) error {
		cp, err = Checkpoints.Find(tx, model.CheckpointID)
		return err
	})
	return cp, err
}
