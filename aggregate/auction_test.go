package aggregate

import (
	"math/big"

	"github.com/graphprotocol/ets-indexer/chain"
	"github.com/graphprotocol/ets-indexer/model"
	"github.com/graphprotocol/ets-indexer/store"
)

func (s *AggregateTest) setupAuctions() {
	s.Require().NoError(s.session().UpdateGlobalSettings(func(g *model.GlobalSettings) {
		g.AuctionProceedsCreatorPercentage = 40
		g.AuctionProceedsRelayerPercentage = 20
		g.AuctionProceedsPlatformPercentage = 40
	}))
	s.reader.AddTag(1, "#Love", creatorA, relayerA, platformAddr)

	for _, id := range []int64{1, 2} {
		s.reader.Auctions[big.NewInt(id).String()] = &chain.AuctionView{
			AuctionID:    big.NewInt(id),
			TokenID:      big.NewInt(1),
			Amount:       big.NewInt(0),
			StartTime:    big.NewInt(10),
			EndTime:      big.NewInt(20),
			ReservePrice: big.NewInt(5),
			Auctioneer:   platformAddr,
		}
	}
}

func (s *AggregateTest) bid(auctionID int64, amount int64) {
	view := s.reader.Auctions[big.NewInt(auctionID).String()]
	view.Amount = big.NewInt(amount)
	view.Bidder = buyerX
}

func (s *AggregateTest) TestAuction_SettlementRevenueIsAdditive() {
	s.setupAuctions()

	s.Require().NoError(s.session().AuctionCreated(big.NewInt(1)))
	s.bid(1, 1000)
	s.Require().NoError(s.session().AuctionBid(big.NewInt(1), "0xbid1", false))
	s.Require().NoError(s.session().AuctionSettled(big.NewInt(1)))

	s.amount(400, s.creator(creatorA).AuctionRevenue)
	s.amount(200, s.relayer(relayerA).AuctionRevenue)

	s.Require().NoError(s.session().AuctionCreated(big.NewInt(2)))
	s.bid(2, 1000)
	s.Require().NoError(s.session().AuctionSettled(big.NewInt(2)))

	creator := s.creator(creatorA)
	s.amount(800, creator.AuctionRevenue)
	s.amount(800, creator.LifetimeRevenue)

	relayer := s.relayer(relayerA)
	s.amount(400, relayer.AuctionRevenue)
	s.amount(400, relayer.LifetimeRevenue)

	platform := s.platform()
	s.amount(800, platform.AuctionRevenue)
	s.Equal(int64(2), platform.AuctionsCount)
	s.Equal(int64(2), platform.AuctionsSettledCount)
	s.amount(2000, s.tag("1").AuctionRevenue)

	s.Require().NoError(s.session().AuctionSettled(big.NewInt(1)))
	s.amount(800, s.creator(creatorA).AuctionRevenue)
}

func (s *AggregateTest) TestAuction_BidAndExtension() {
	s.setupAuctions()

	s.Require().NoError(s.session().AuctionCreated(big.NewInt(1)))
	s.bid(1, 700)
	s.reader.Auctions["1"].EndTime = big.NewInt(25)
	s.Require().NoError(s.session().AuctionBid(big.NewInt(1), "0xbid1", true))

	auction, err := store.Auctions.Get(s.tx, "1")
	s.Require().NoError(err)
	s.Equal("1", auction.Tag)
	s.Equal(model.AddressID(buyerX), auction.Bidder)
	s.amount(700, auction.Amount)
	s.Equal(uint64(25), auction.EndTime)
	s.Equal(int64(1), auction.BidsCount)
	s.True(auction.Extended)
	s.False(auction.Settled)

	bid, err := store.Bids.Get(s.tx, "0xbid1")
	s.Require().NoError(err)
	s.Equal("1", bid.Auction)
	s.amount(700, bid.Amount)
	s.True(bid.Extended)
	s.Equal(s.block, bid.BlockNumber)

	s.reader.Auctions["1"].EndTime = big.NewInt(30)
	s.Require().NoError(s.session().AuctionExtended(big.NewInt(1)))

	auction, err = store.Auctions.Get(s.tx, "1")
	s.Require().NoError(err)
	s.Equal(uint64(30), auction.EndTime)
	s.True(auction.Extended)
}

func (s *AggregateTest) TestAuction_RevertedReadAbortsCreation() {
	s.setupAuctions()
	s.reader.Fail("getAuction")

	s.Error(s.session().AuctionCreated(big.NewInt(1)))

	auction, err := store.Auctions.Find(s.tx, "1")
	s.Require().NoError(err)
	s.Nil(auction)
	s.Equal(1, s.logs.FilterMessage("on-chain read failed").Len())
}
