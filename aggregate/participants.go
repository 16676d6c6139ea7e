package aggregate

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/graphprotocol/ets-indexer/model"
	"github.com/graphprotocol/ets-indexer/store"
)

// EnsureOwner, EnsureCreator and EnsureTagger create address-keyed
// participants on first sight and bump the matching platform counter.

func (s *Session) EnsureOwner(addr common.Address) (*model.Owner, error) {
	id := model.AddressID(addr)
	owner, err := store.Owners.Find(s.tx, id)
	if err != nil || owner != nil {
		return owner, err
	}

	owner = &model.Owner{ID: id, FirstSeen: s.block.Timestamp, TaggingFeeRevenue: model.Zero()}
	if err := store.Owners.Save(s.tx, id, owner); err != nil {
		return nil, err
	}
	return owner, s.updatePlatform(func(p *model.Platform) { p.OwnersCount++ })
}

func (s *Session) EnsureCreator(addr common.Address) (*model.Creator, error) {
	id := model.AddressID(addr)
	creator, err := store.Creators.Find(s.tx, id)
	if err != nil || creator != nil {
		return creator, err
	}

	creator = &model.Creator{
		ID:                id,
		FirstSeen:         s.block.Timestamp,
		TaggingFeeRevenue: model.Zero(),
		AuctionRevenue:    model.Zero(),
		LifetimeRevenue:   model.Zero(),
	}
	if err := store.Creators.Save(s.tx, id, creator); err != nil {
		return nil, err
	}
	return creator, s.updatePlatform(func(p *model.Platform) { p.CreatorsCount++ })
}

func (s *Session) EnsureTagger(addr common.Address) (*model.Tagger, error) {
	id := model.AddressID(addr)
	tagger, err := store.Taggers.Find(s.tx, id)
	if err != nil || tagger != nil {
		return tagger, err
	}

	tagger = &model.Tagger{ID: id, FirstSeen: s.block.Timestamp, FeesPaid: model.Zero()}
	if err := store.Taggers.Save(s.tx, id, tagger); err != nil {
		return nil, err
	}
	return tagger, s.updatePlatform(func(p *model.Platform) { p.TaggersCount++ })
}
