package aggregate

import (
	"errors"

	"github.com/graphprotocol/ets-indexer/chain"
	"github.com/graphprotocol/ets-indexer/model"
	"github.com/graphprotocol/ets-indexer/store"
	"github.com/sugawarayuuta/sonnet"
)

func (s *AggregateTest) TestEnsureRelayer_Idempotent() {
	first, err := s.session().EnsureRelayer(relayerA)
	s.Require().NoError(err)
	second, err := s.session().EnsureRelayer(relayerA)
	s.Require().NoError(err)

	firstJSON, err := sonnet.Marshal(first)
	s.Require().NoError(err)
	secondJSON, err := sonnet.Marshal(second)
	s.Require().NoError(err)
	s.Equal(string(firstJSON), string(secondJSON))

	s.Equal(1, s.reader.Calls("relayerContractToName"))
	s.Equal(1, s.reader.Calls("getOwner"))

	s.Equal("Hashtag Relayer", first.Name)
	s.Equal(model.AddressID(relayerOwner), first.Owner)
	s.Equal(model.AddressID(relayerOwner), first.Creator)
	s.Equal(int64(1), s.platform().RelayersLifetime)
	s.Equal(int64(1), s.platform().RelayersActive)
}

func (s *AggregateTest) TestEnsureRelayer_AdminSkipsInstanceReads() {
	s.reader.Names[relayerOwner] = "Admin"
	s.reader.Admins[relayerOwner] = true

	relayer, err := s.session().EnsureRelayer(relayerOwner)
	s.Require().NoError(err)

	s.True(relayer.IsAdmin)
	s.Equal(model.ZeroAddress, relayer.Owner)
	s.Equal(0, s.reader.Calls("getOwner"))
	s.Equal(0, s.reader.Calls("isPaused"))
}

func (s *AggregateTest) TestEnsureRelayer_RevertedReadIsFatal() {
	s.reader.Fail("relayerContractToName")

	_, err := s.session().EnsureRelayer(relayerA)
	s.Require().Error(err)
	s.True(errors.Is(err, chain.ErrReverted))

	entries := s.logs.FilterMessage("on-chain read failed").All()
	s.Require().Len(entries, 1)
	fields := entries[0].ContextMap()
	s.Equal("relayerContractToName", fields["method"])
	s.Equal(model.AddressID(relayerA), fields["args"])
	s.Equal(true, fields["critical"])

	relayer, err := store.Relayers.Find(s.tx, model.AddressID(relayerA))
	s.Require().NoError(err)
	s.Nil(relayer)

	s.tx.Discard()
	s.tx = s.store.Begin()
	s.Equal(0, s.countKind(model.KindRelayer))
	s.Equal(0, s.countKind(model.KindPlatform))
}

func (s *AggregateTest) TestRelayerLockToggled() {
	_, err := s.session().EnsureRelayer(relayerA)
	s.Require().NoError(err)

	s.reader.Locked[relayerA] = true
	s.Require().NoError(s.session().RelayerLockToggled(relayerA))

	s.True(s.relayer(relayerA).LockedByPlatform)
	s.Equal(int64(0), s.platform().RelayersActive)
	s.Equal(int64(1), s.platform().RelayersLifetime)

	s.reader.Locked[relayerA] = false
	s.Require().NoError(s.session().RelayerLockToggled(relayerA))
	s.False(s.relayer(relayerA).LockedByPlatform)
	s.Equal(int64(1), s.platform().RelayersActive)
}

func (s *AggregateTest) TestRelayerInstanceEvents() {
	_, err := s.session().EnsureRelayer(relayerA)
	s.Require().NoError(err)

	s.reader.Paused[relayerA] = true
	s.reader.Owners[relayerA] = buyerX
	s.Require().NoError(s.session().RelayerPauseToggled(relayerA))
	s.Require().NoError(s.session().RelayerOwnerChanged(relayerA))

	relayer := s.relayer(relayerA)
	s.True(relayer.PausedByOwner)
	s.Equal(model.AddressID(buyerX), relayer.Owner)
	s.Equal(model.AddressID(relayerOwner), relayer.Creator)
}

func (s *AggregateTest) TestRoles() {
	sess := s.session()
	other := model.RelayerAdminRole
	other[0] ^= 0xff

	s.Require().NoError(sess.RoleGranted(model.DefaultAdminRole, creatorA, platformAddr))
	s.Require().NoError(sess.RoleGranted(model.RelayerAdminRole, taggerA, platformAddr))
	s.Require().NoError(sess.RoleGranted(other, buyerX, platformAddr))

	admin, err := store.Administrators.Get(s.tx, model.AddressID(creatorA))
	s.Require().NoError(err)
	s.Equal(model.AddressID(platformAddr), admin.GrantedBy)

	relayerAdmin, err := store.RelayerAdmins.Get(s.tx, model.AddressID(taggerA))
	s.Require().NoError(err)
	s.Equal(uint64(1_650_000_100), relayerAdmin.FirstSeen)

	s.Require().NoError(sess.RoleRevoked(model.DefaultAdminRole, creatorA))
	admin, err = store.Administrators.Find(s.tx, model.AddressID(creatorA))
	s.Require().NoError(err)
	s.Nil(admin)

	s.Require().NoError(s.tx.Commit())
	s.tx = s.store.Begin()
	s.Equal(0, s.countKind(model.KindAdministrator))
	s.Equal(1, s.countKind(model.KindRelayerAdmin))
}

func (s *AggregateTest) TestRelease() {
	sess := s.session()
	token := relayerOwner
	implementation := buyerX

	s.Require().NoError(sess.ContractInitialized(model.ContractToken, token, 1))
	s.Require().NoError(sess.ContractUpgraded(model.ContractToken, token, implementation))

	release, err := store.Releases.Get(s.tx, model.ReleaseID)
	s.Require().NoError(err)
	s.Equal(model.AddressID(token), release.ETSToken.Address)
	s.Equal(int64(1), release.ETSToken.Version)
	s.Equal(uint64(1_650_000_100), release.ETSToken.VersionDate)
	s.Equal(model.AddressID(implementation), release.ETSToken.Implementation)
	s.Empty(release.ETS.Address)

	err = sess.ContractInitialized(model.ContractRelayer, relayerA, 1)
	s.True(errors.Is(err, ErrInconsistentState))
}
