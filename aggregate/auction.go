package aggregate

import (
	"math/big"

	"github.com/graphprotocol/ets-indexer/calc"
	"github.com/graphprotocol/ets-indexer/chain"
	"github.com/graphprotocol/ets-indexer/model"
	"github.com/graphprotocol/ets-indexer/store"
	"go.uber.org/zap"
)

// EnsureAuction returns the auction with auctionID, reading it from the auction house.
func (s *Session) EnsureAuction(auctionID *big.Int) (*model.Auction, error) {
	id := model.NumericID(auctionID)
	auction, err := store.Auctions.Find(s.tx, id)
	if err != nil || auction != nil {
		return auction, err
	}

	view, err := s.reader.Auction(s.ctx, auctionID)
	if err != nil {
		return nil, s.readFailed(err)
	}
	if _, err := s.EnsureTag(view.TokenID); err != nil {
		return nil, err
	}

	auction = &model.Auction{ID: id, Tag: model.NumericID(view.TokenID)}
	applyAuctionView(auction, view)

	if err := store.Auctions.Save(s.tx, id, auction); err != nil {
		return nil, err
	}
	return auction, s.updatePlatform(func(p *model.Platform) { p.AuctionsCount++ })
}

// refreshAuction re-reads the auction house and applies fn on top of the fresh state.
func (s *Session) refreshAuction(auctionID *big.Int, fn func(a *model.Auction)) (*model.Auction, error) {
	auction, err := s.EnsureAuction(auctionID)
	if err != nil {
		return nil, err
	}

	view, err := s.reader.Auction(s.ctx, auctionID)
	if err != nil {
		return nil, s.readFailed(err)
	}

	var out model.Auction
	err = update(s, store.Auctions, auction.ID, func(a *model.Auction) {
		applyAuctionView(a, view)
		if fn != nil {
			fn(a)
		}
		out = *a
	})
	return &out, err
}

func (s *Session) AuctionCreated(auctionID *big.Int) error {
	_, err := s.EnsureAuction(auctionID)
	return err
}

// AuctionBid records an immutable Bid keyed by the transaction hash.
func (s *Session) AuctionBid(auctionID *big.Int, txHash string, extended bool) error {
	auction, err := s.refreshAuction(auctionID, func(a *model.Auction) {
		a.BidsCount++
		if extended {
			a.Extended = true
		}
	})
	if err != nil {
		return err
	}

	return store.Bids.Save(s.tx, txHash, &model.Bid{
		ID:          txHash,
		Auction:     auction.ID,
		Bidder:      auction.Bidder,
		Amount:      auction.Amount,
		Extended:    extended,
		Timestamp:   s.block.Timestamp,
		BlockNumber: s.block.Number,
	})
}

func (s *Session) AuctionExtended(auctionID *big.Int) error {
	_, err := s.refreshAuction(auctionID, func(a *model.Auction) { a.Extended = true })
	return err
}

// AuctionSettled marks the auction settled and attributes the proceeds to
// the tag's creator and relayer and to the platform.
func (s *Session) AuctionSettled(auctionID *big.Int) error {
	previous, err := s.EnsureAuction(auctionID)
	if err != nil {
		return err
	}
	alreadySettled := previous.Settled

	auction, err := s.refreshAuction(auctionID, func(a *model.Auction) { a.Settled = true })
	if err != nil {
		return err
	}
	if alreadySettled {
		s.logger.Warn("auction settled twice, proceeds already attributed", zap.String("auction", auction.ID))
		return nil
	}

	settings, err := s.EnsureGlobalSettings()
	if err != nil {
		return err
	}
	tag, err := get(s, store.Tags, auction.Tag)
	if err != nil {
		return err
	}

	creatorShare := calc.AuctionShare(auction.Amount, settings.AuctionProceedsCreatorPercentage)
	relayerShare := calc.AuctionShare(auction.Amount, settings.AuctionProceedsRelayerPercentage)
	platformShare := calc.AuctionShare(auction.Amount, settings.AuctionProceedsPlatformPercentage)

	err = update(s, store.Creators, tag.Creator, func(c *model.Creator) {
		add(&c.AuctionRevenue, creatorShare)
		add(&c.LifetimeRevenue, creatorShare)
	})
	if err != nil {
		return err
	}

	err = update(s, store.Relayers, tag.Relayer, func(r *model.Relayer) {
		add(&r.AuctionRevenue, relayerShare)
		add(&r.LifetimeRevenue, relayerShare)
	})
	if err != nil {
		return err
	}

	err = update(s, store.Tags, tag.ID, func(t *model.Tag) { add(&t.AuctionRevenue, auction.Amount) })
	if err != nil {
		return err
	}

	return s.updatePlatform(func(p *model.Platform) {
		add(&p.AuctionRevenue, platformShare)
		p.AuctionsSettledCount++
	})
}

// applyAuctionView copies the auction house state. Settled is only set by AuctionSettled.
func applyAuctionView(auction *model.Auction, view *chain.AuctionView) {
	auction.Bidder = model.AddressID(view.Bidder)
	auction.Auctioneer = model.AddressID(view.Auctioneer)
	auction.Amount = nonNil(view.Amount)
	auction.ReservePrice = nonNil(view.ReservePrice)
	auction.StartTime = uint64Of(view.StartTime)
	auction.EndTime = uint64Of(view.EndTime)
}

func nonNil(n *big.Int) *big.Int {
	if n == nil {
		return model.Zero()
	}
	return new(big.Int).Set(n)
}
