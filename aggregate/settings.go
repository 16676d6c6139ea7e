package aggregate

import (
	"github.com/graphprotocol/ets-indexer/model"
	"github.com/graphprotocol/ets-indexer/store"
)

// EnsureGlobalSettings returns the settings singleton, zero-valued until the setters fire.
func (s *Session) EnsureGlobalSettings() (*model.GlobalSettings, error) {
	settings, err := store.GlobalSettings.Find(s.tx, model.GlobalSettingsID)
	if err != nil || settings != nil {
		return settings, err
	}

	settings = &model.GlobalSettings{
		ID:                  model.GlobalSettingsID,
		OwnershipTermLength: model.Zero(),
		TaggingFee:          model.Zero(),
		AuctionReservePrice: model.Zero(),
	}
	return settings, store.GlobalSettings.Save(s.tx, model.GlobalSettingsID, settings)
}

// UpdateGlobalSettings applies one setter event to the settings singleton.
func (s *Session) UpdateGlobalSettings(fn func(settings *model.GlobalSettings)) error {
	if _, err := s.EnsureGlobalSettings(); err != nil {
		return err
	}
	return update(s, store.GlobalSettings, model.GlobalSettingsID, fn)
}
