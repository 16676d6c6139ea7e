package aggregate

import (
	"math/big"

	"github.com/graphprotocol/ets-indexer/chain"
	"github.com/graphprotocol/ets-indexer/model"
	"github.com/graphprotocol/ets-indexer/store"
)

// EnsureTarget returns the target with targetID, backfilling it from the target contract.
func (s *Session) EnsureTarget(targetID *big.Int) (*model.Target, error) {
	id := model.NumericID(targetID)
	target, err := store.Targets.Find(s.tx, id)
	if err != nil || target != nil {
		return target, err
	}

	view, err := s.reader.Target(s.ctx, targetID)
	if err != nil {
		return nil, s.readFailed(err)
	}

	target = &model.Target{ID: id, Created: s.block.Timestamp}
	applyTargetView(target, view)

	if err := store.Targets.Save(s.tx, id, target); err != nil {
		return nil, err
	}
	return target, s.updatePlatform(func(p *model.Platform) { p.TargetsCount++ })
}

// TargetUpdated refreshes the enrichment fields of an existing target.
func (s *Session) TargetUpdated(targetID *big.Int) error {
	target, err := s.EnsureTarget(targetID)
	if err != nil {
		return err
	}

	view, err := s.reader.Target(s.ctx, targetID)
	if err != nil {
		return s.readFailed(err)
	}

	return update(s, store.Targets, target.ID, func(t *model.Target) { applyTargetView(t, view) })
}

func applyTargetView(target *model.Target, view *chain.TargetView) {
	target.TargetURI = view.TargetURI
	target.TargetType, target.TargetTypeKeywords = ClassifyTarget(view.TargetURI)
	target.CreatedBy = model.AddressID(view.CreatedBy)
	target.Enriched = uint64Of(view.Enriched)
	target.HTTPStatus = uint64Of(view.HTTPStatus)
	target.IPFSHash = view.IPFSHash
}

func uint64Of(n *big.Int) uint64 {
	if n == nil || !n.IsUint64() {
		return 0
	}
	return n.Uint64()
}
