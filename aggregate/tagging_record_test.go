package aggregate

import (
	"errors"
	"math/big"

	"github.com/graphprotocol/ets-indexer/model"
	"github.com/graphprotocol/ets-indexer/store"
)

func (s *AggregateTest) setupTagging() {
	sess := s.session()
	s.Require().NoError(sess.SetPlatformAddress(platformAddr))
	s.Require().NoError(sess.UpdateGlobalSettings(func(g *model.GlobalSettings) {
		g.TaggingFee = big.NewInt(1000)
		g.PlatformPercentage = 20
		g.RelayerPercentage = 30
	}))

	for _, id := range []int64{1, 2, 3} {
		s.reader.AddTag(id, "#tag", creatorA, relayerA, platformAddr)
	}
}

func (s *AggregateTest) TestTaggingRecord_CreateAppendRemove() {
	s.setupTagging()

	s.reader.SetRecord(100, 9, relayerA, taggerA, 1, 2)
	s.Require().NoError(s.session().CreateTaggingRecord(big.NewInt(100)))

	for _, id := range []string{"1", "2"} {
		tag := s.tag(id)
		s.Equal(int64(1), tag.TagAppliedInTaggingRecord)
		s.amount(200, tag.PlatformRevenue)
		s.amount(300, tag.RelayerRevenue)
		s.amount(500, tag.CreatorRevenue)
		s.amount(0, tag.OwnerRevenue)
	}

	platform := s.platform()
	s.Equal(int64(1), platform.TaggingRecordsCount)
	s.Equal(int64(1), platform.TaggingRecordTxns)
	s.Equal(int64(2), platform.TagAppliedInTaggingRecord)
	s.Equal(int64(1), platform.TargetsCount)
	s.amount(400, platform.TaggingFeeRevenue)

	relayer := s.relayer(relayerA)
	s.Equal(int64(1), relayer.TaggingRecordsPublished)
	s.Equal(int64(2), relayer.TagAppliedInTaggingRecord)
	s.amount(600, relayer.TaggingFeeRevenue)

	tagger := s.tagger(taggerA)
	s.Equal(int64(1), tagger.TaggingRecordsCreated)
	s.amount(2000, tagger.FeesPaid)

	s.amount(1000, s.creator(creatorA).TaggingFeeRevenue)
	s.Equal(int64(2), s.owner(platformAddr).TagAppliedInTaggingRecord)

	s.commit()

	s.reader.SetRecord(100, 9, relayerA, taggerA, 1, 2, 3)
	s.Require().NoError(s.session().UpdateTaggingRecord(big.NewInt(100), model.ActionAppend))

	s.Equal(int64(1), s.tag("1").TagAppliedInTaggingRecord)
	s.Equal(int64(1), s.tag("2").TagAppliedInTaggingRecord)
	s.Equal(int64(1), s.tag("3").TagAppliedInTaggingRecord)
	s.amount(3000, s.tagger(taggerA).FeesPaid)
	s.Equal(int64(3), s.platform().TagAppliedInTaggingRecord)

	record, err := store.TaggingRecords.Get(s.tx, "100")
	s.Require().NoError(err)
	s.Equal([]string{"1", "2", "3"}, record.Tags)
	s.Equal(int64(2), record.TxnCount)

	s.commit()

	s.reader.SetRecord(100, 9, relayerA, taggerA, 2, 3)
	s.Require().NoError(s.session().UpdateTaggingRecord(big.NewInt(100), model.ActionRemove))

	s.Equal(int64(1), s.tag("1").TagRemovedFromTaggingRecord)
	s.Equal(int64(0), s.tag("2").TagRemovedFromTaggingRecord)
	s.Equal(int64(0), s.tag("3").TagRemovedFromTaggingRecord)
	s.Equal(int64(1), s.platform().TagRemovedFromTaggingRecord)
	s.Equal(int64(1), s.relayer(relayerA).TagRemovedFromTaggingRecord)
	s.Equal(int64(1), s.tagger(taggerA).TagRemovedFromTaggingRecord)
	s.Equal(int64(1), s.creator(creatorA).TagRemovedFromTaggingRecord)
	s.Equal(int64(1), s.owner(platformAddr).TagRemovedFromTaggingRecord)

	s.amount(3000, s.tagger(taggerA).FeesPaid)
	s.amount(600, s.platform().TaggingFeeRevenue)
	s.Equal(int64(3), s.platform().TaggingRecordTxns)
	s.Equal(int64(3), s.tagger(taggerA).TaggingRecordTxns)

	record, err = store.TaggingRecords.Get(s.tx, "100")
	s.Require().NoError(err)
	s.Equal([]string{"2", "3"}, record.Tags)
}

func (s *AggregateTest) TestTaggingRecord_RemainingShareGoesToOwnerAfterSale() {
	s.setupTagging()
	s.reader.TagOwners["1"] = buyerX

	s.reader.SetRecord(100, 9, relayerA, taggerA, 1)
	s.Require().NoError(s.session().CreateTaggingRecord(big.NewInt(100)))

	tag := s.tag("1")
	s.amount(500, tag.OwnerRevenue)
	s.amount(0, tag.CreatorRevenue)
	s.amount(500, s.owner(buyerX).TaggingFeeRevenue)
	s.amount(0, s.creator(creatorA).TaggingFeeRevenue)
}

func (s *AggregateTest) TestTaggingRecord_CreateIsIdempotent() {
	s.setupTagging()
	s.reader.SetRecord(100, 9, relayerA, taggerA, 1)

	s.Require().NoError(s.session().CreateTaggingRecord(big.NewInt(100)))
	s.Require().NoError(s.session().CreateTaggingRecord(big.NewInt(100)))

	s.Equal(1, s.reader.Calls("getTaggingRecordFromId"))
	s.Equal(int64(1), s.tag("1").TagAppliedInTaggingRecord)
}

func (s *AggregateTest) TestTaggingRecord_Inconsistent() {
	s.setupTagging()

	err := s.session().UpdateTaggingRecord(big.NewInt(404), model.ActionAppend)
	s.True(errors.Is(err, ErrInconsistentState))

	s.reader.SetRecord(100, 9, relayerA, taggerA, 1)
	s.Require().NoError(s.session().CreateTaggingRecord(big.NewInt(100)))

	err = s.session().UpdateTaggingRecord(big.NewInt(100), model.ActionCreate)
	s.True(errors.Is(err, ErrInconsistentState))
}

func (s *AggregateTest) TestTaggingRecord_ZeroFeePaysNothing() {
	s.setupTagging()
	s.Require().NoError(s.session().UpdateGlobalSettings(func(g *model.GlobalSettings) {
		g.TaggingFee = model.Zero()
	}))

	s.reader.SetRecord(100, 9, relayerA, taggerA, 1, 2)
	s.Require().NoError(s.session().CreateTaggingRecord(big.NewInt(100)))

	s.amount(0, s.platform().TaggingFeeRevenue)
	s.amount(0, s.tagger(taggerA).FeesPaid)
	s.Equal(int64(2), s.platform().TagAppliedInTaggingRecord)
}

func (s *AggregateTest) TestTaggingRecord_TreasuryFromChainPaysCreator() {
	s.reader.Platform = platformAddr
	s.Require().NoError(s.session().UpdateGlobalSettings(func(g *model.GlobalSettings) {
		g.TaggingFee = big.NewInt(1000)
		g.PlatformPercentage = 20
		g.RelayerPercentage = 30
	}))
	s.reader.AddTag(1, "#tag", creatorA, relayerA, platformAddr)

	s.reader.SetRecord(100, 9, relayerA, taggerA, 1)
	s.Require().NoError(s.session().CreateTaggingRecord(big.NewInt(100)))

	tag := s.tag("1")
	s.amount(500, tag.CreatorRevenue)
	s.amount(0, tag.OwnerRevenue)
	s.amount(500, s.creator(creatorA).TaggingFeeRevenue)
	s.Equal(1, s.reader.Calls("getPlatformAddress"))
}
