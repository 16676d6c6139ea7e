package aggregate

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/graphprotocol/ets-indexer/model"
	"github.com/graphprotocol/ets-indexer/store"
)

// RoleGranted records administrators and relayer admins. Other roles are not tracked.
func (s *Session) RoleGranted(role common.Hash, account, sender common.Address) error {
	id := model.AddressID(account)

	switch role {
	case model.DefaultAdminRole:
		admin, err := store.Administrators.Find(s.tx, id)
		if err != nil || admin != nil {
			return err
		}
		return store.Administrators.Save(s.tx, id, &model.Administrator{
			ID:        id,
			FirstSeen: s.block.Timestamp,
			GrantedBy: model.AddressID(sender),
		})

	case model.RelayerAdminRole:
		admin, err := store.RelayerAdmins.Find(s.tx, id)
		if err != nil || admin != nil {
			return err
		}
		return store.RelayerAdmins.Save(s.tx, id, &model.RelayerAdmin{
			ID:        id,
			FirstSeen: s.block.Timestamp,
			GrantedBy: model.AddressID(sender),
		})
	}

	return nil
}

// RoleRevoked removes the capability record. Revoking an unknown grant is a no-op.
func (s *Session) RoleRevoked(role common.Hash, account common.Address) error {
	id := model.AddressID(account)

	switch role {
	case model.DefaultAdminRole:
		return store.Administrators.Delete(s.tx, id)
	case model.RelayerAdminRole:
		return store.RelayerAdmins.Delete(s.tx, id)
	}
	return nil
}
