package aggregate

import (
	"fmt"
	"math/big"

	"github.com/graphprotocol/ets-indexer/calc"
	"github.com/graphprotocol/ets-indexer/chain"
	"github.com/graphprotocol/ets-indexer/model"
	"github.com/graphprotocol/ets-indexer/store"
	"go.uber.org/zap"
)

// CreateTaggingRecord applies TaggingRecordCreated: the record is read back
// from the core contract and every tag in it counts as applied.
func (s *Session) CreateTaggingRecord(recordID *big.Int) error {
	id := model.NumericID(recordID)
	existing, err := store.TaggingRecords.Find(s.tx, id)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	view, err := s.reader.TaggingRecord(s.ctx, recordID)
	if err != nil {
		return s.readFailed(err)
	}

	if _, err := s.EnsureTarget(view.TargetID); err != nil {
		return err
	}
	participants, err := s.recordParticipants(view)
	if err != nil {
		return err
	}

	record := &model.TaggingRecord{
		ID:         id,
		Tags:       numericIDs(view.TagIDs),
		Target:     model.NumericID(view.TargetID),
		RecordType: view.RecordType,
		Tagger:     participants.tagger,
		Relayer:    participants.relayer,
		Timestamp:  s.block.Timestamp,
		TxnCount:   1,
	}
	if err := store.TaggingRecords.Save(s.tx, id, record); err != nil {
		return err
	}

	if err := s.countRecordTxn(participants, true); err != nil {
		return err
	}
	return s.applyTags(model.ActionCreate, participants, view.TagIDs)
}

// UpdateTaggingRecord applies TaggingRecordUpdated. Only the tags that
// changed relative to the stored record are counted.
func (s *Session) UpdateTaggingRecord(recordID *big.Int, action model.Action) error {
	if action != model.ActionAppend && action != model.ActionRemove {
		return fmt.Errorf("%w: tagging record %s cannot be updated with action %s", ErrInconsistentState, recordID, action)
	}

	record, err := get(s, store.TaggingRecords, model.NumericID(recordID))
	if err != nil {
		return err
	}

	view, err := s.reader.TaggingRecord(s.ctx, recordID)
	if err != nil {
		return s.readFailed(err)
	}
	participants, err := s.recordParticipants(view)
	if err != nil {
		return err
	}

	next := numericIDs(view.TagIDs)
	var changed []string
	if action == model.ActionAppend {
		changed = calc.Diff(next, record.Tags)
	} else {
		changed = calc.Diff(record.Tags, next)
	}

	if tracer.Enabled() {
		s.logger.Debug("tagging record updated",
			zap.String("id", record.ID),
			zap.Stringer("action", action),
			zap.Strings("previous", record.Tags),
			zap.Strings("next", next),
			zap.Strings("changed", changed),
		)
	}

	err = update(s, store.TaggingRecords, record.ID, func(r *model.TaggingRecord) {
		r.Tags = next
		r.TxnCount++
	})
	if err != nil {
		return err
	}

	if err := s.countRecordTxn(participants, false); err != nil {
		return err
	}

	changedIDs := make([]*big.Int, 0, len(changed))
	for _, tagID := range changed {
		n, ok := new(big.Int).SetString(tagID, 10)
		if !ok {
			return fmt.Errorf("%w: tagging record %s holds invalid tag id %q", ErrInconsistentState, record.ID, tagID)
		}
		changedIDs = append(changedIDs, n)
	}
	return s.applyTags(action, participants, changedIDs)
}

type recordParticipants struct {
	relayer string
	tagger  string
}

func (s *Session) recordParticipants(view *chain.TaggingRecordView) (recordParticipants, error) {
	relayer, err := s.EnsureRelayer(view.Relayer)
	if err != nil {
		return recordParticipants{}, err
	}
	tagger, err := s.EnsureTagger(view.Tagger)
	if err != nil {
		return recordParticipants{}, err
	}
	return recordParticipants{relayer: relayer.ID, tagger: tagger.ID}, nil
}

func (s *Session) countRecordTxn(p recordParticipants, created bool) error {
	err := s.updatePlatform(func(pl *model.Platform) {
		pl.TaggingRecordTxns++
		if created {
			pl.TaggingRecordsCount++
		}
	})
	if err != nil {
		return err
	}

	err = update(s, store.Relayers, p.relayer, func(r *model.Relayer) {
		r.TaggingRecordTxns++
		if created {
			r.TaggingRecordsPublished++
		}
	})
	if err != nil {
		return err
	}

	return update(s, store.Taggers, p.tagger, func(t *model.Tagger) {
		t.TaggingRecordTxns++
		if created {
			t.TaggingRecordsCreated++
		}
	})
}

// applyTags updates the six aggregates touched by each tag entering or
// leaving a tagging record. Fees are only paid when tags are applied.
func (s *Session) applyTags(action model.Action, p recordParticipants, tagIDs []*big.Int) error {
	removal := action == model.ActionRemove

	settings, err := s.EnsureGlobalSettings()
	if err != nil {
		return err
	}
	platformAddr, err := s.platformAddress()
	if err != nil {
		return err
	}

	for _, tokenID := range tagIDs {
		tag, err := s.EnsureTag(tokenID)
		if err != nil {
			return err
		}
		if _, err := s.EnsureOwner(commonAddress(tag.Owner)); err != nil {
			return err
		}

		shares := feeShares{}
		if !removal {
			shares = splitFee(settings, calc.RemainingRole(tag.Owner, platformAddr))
		}

		count := func(applied, removed *int64) {
			if removal {
				*removed++
			} else {
				*applied++
			}
		}

		err = update(s, store.Tags, tag.ID, func(t *model.Tag) {
			count(&t.TagAppliedInTaggingRecord, &t.TagRemovedFromTaggingRecord)
			add(&t.PlatformRevenue, shares.platform)
			add(&t.RelayerRevenue, shares.relayer)
			add(&t.CreatorRevenue, shares.creator)
			add(&t.OwnerRevenue, shares.owner)
		})
		if err != nil {
			return err
		}

		err = s.updatePlatform(func(pl *model.Platform) {
			count(&pl.TagAppliedInTaggingRecord, &pl.TagRemovedFromTaggingRecord)
			add(&pl.TaggingFeeRevenue, shares.platform)
		})
		if err != nil {
			return err
		}

		err = update(s, store.Relayers, p.relayer, func(r *model.Relayer) {
			count(&r.TagAppliedInTaggingRecord, &r.TagRemovedFromTaggingRecord)
			add(&r.TaggingFeeRevenue, shares.relayer)
			add(&r.LifetimeRevenue, shares.relayer)
		})
		if err != nil {
			return err
		}

		err = update(s, store.Taggers, p.tagger, func(t *model.Tagger) {
			count(&t.TagAppliedInTaggingRecord, &t.TagRemovedFromTaggingRecord)
			add(&t.FeesPaid, shares.tagger)
		})
		if err != nil {
			return err
		}

		err = update(s, store.Creators, tag.Creator, func(c *model.Creator) {
			count(&c.TagAppliedInTaggingRecord, &c.TagRemovedFromTaggingRecord)
			add(&c.TaggingFeeRevenue, shares.creator)
			add(&c.LifetimeRevenue, shares.creator)
		})
		if err != nil {
			return err
		}

		err = update(s, store.Owners, tag.Owner, func(o *model.Owner) {
			count(&o.TagAppliedInTaggingRecord, &o.TagRemovedFromTaggingRecord)
			add(&o.TaggingFeeRevenue, shares.owner)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

type feeShares struct {
	platform *big.Int
	relayer  *big.Int
	creator  *big.Int
	owner    *big.Int
	tagger   *big.Int
}

func splitFee(settings *model.GlobalSettings, remaining model.Role) feeShares {
	shares := feeShares{
		platform: calc.FeeShare(settings, model.RolePlatform),
		relayer:  calc.FeeShare(settings, model.RoleRelayer),
		creator:  model.Zero(),
		owner:    model.Zero(),
		tagger:   calc.FeeShare(settings, model.RoleTagger),
	}

	if remaining == model.RoleCreator {
		shares.creator = calc.FeeShare(settings, model.RoleCreator)
	} else {
		shares.owner = calc.FeeShare(settings, model.RoleOwner)
	}
	return shares
}

func numericIDs(ids []*big.Int) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = model.NumericID(id)
	}
	return out
}
