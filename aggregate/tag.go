package aggregate

import (
	"math/big"
	"strings"

	"github.com/graphprotocol/ets-indexer/model"
	"github.com/graphprotocol/ets-indexer/store"
	"go.uber.org/zap"
)

// EnsureTag returns the CTAG with tokenID, backfilling it from the token
// contract. Creating a tag credits its creator and publishing relayer.
func (s *Session) EnsureTag(tokenID *big.Int) (*model.Tag, error) {
	id := model.NumericID(tokenID)
	tag, err := store.Tags.Find(s.tx, id)
	if err != nil || tag != nil {
		return tag, err
	}

	view, err := s.reader.Tag(s.ctx, tokenID)
	if err != nil {
		return nil, s.readFailed(err)
	}
	owner, err := s.reader.TagOwner(s.ctx, tokenID)
	if err != nil {
		return nil, s.readFailed(err)
	}

	if _, err := s.EnsureCreator(view.Creator); err != nil {
		return nil, err
	}
	if _, err := s.EnsureRelayer(view.Relayer); err != nil {
		return nil, err
	}

	tag = &model.Tag{
		ID:              id,
		Display:         view.Display,
		MachineName:     strings.ToLower(view.Display),
		Timestamp:       s.block.Timestamp,
		Owner:           model.AddressID(owner),
		Creator:         model.AddressID(view.Creator),
		Relayer:         model.AddressID(view.Relayer),
		Premium:         view.Premium,
		Reserved:        view.Reserved,
		RelayerRevenue:  model.Zero(),
		PlatformRevenue: model.Zero(),
		CreatorRevenue:  model.Zero(),
		OwnerRevenue:    model.Zero(),
		AuctionRevenue:  model.Zero(),
	}
	if err := store.Tags.Save(s.tx, id, tag); err != nil {
		return nil, err
	}

	if err := update(s, store.Creators, tag.Creator, func(c *model.Creator) { c.TagsCreated++ }); err != nil {
		return nil, err
	}
	if err := update(s, store.Relayers, tag.Relayer, func(r *model.Relayer) { r.PublishedTags++ }); err != nil {
		return nil, err
	}
	if err := s.updatePlatform(func(p *model.Platform) { p.TagsCount++ }); err != nil {
		return nil, err
	}

	if tracer.Enabled() {
		s.logger.Debug("tag created", zap.String("id", id), zap.String("display", tag.Display))
	}
	return tag, nil
}

// SetTagPremium applies PremiumFlagSet.
func (s *Session) SetTagPremium(tokenID *big.Int, premium bool) error {
	tag, err := s.EnsureTag(tokenID)
	if err != nil {
		return err
	}
	return update(s, store.Tags, tag.ID, func(t *model.Tag) { t.Premium = premium })
}

// SetTagReserved applies ReservedFlagSet.
func (s *Session) SetTagReserved(tokenID *big.Int, reserved bool) error {
	tag, err := s.EnsureTag(tokenID)
	if err != nil {
		return err
	}
	return update(s, store.Tags, tag.ID, func(t *model.Tag) { t.Reserved = reserved })
}
