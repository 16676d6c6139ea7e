package calc

import (
	"math/big"

	"github.com/graphprotocol/ets-indexer/model"
)

var hundred = big.NewInt(model.PercentModulo)

// FeeShare returns the part of the current tagging fee owed to role.
// RoleOwner and RoleCreator both receive the remaining share; which one is
// credited for a given tag is decided by RemainingRole.
func FeeShare(settings *model.GlobalSettings, role model.Role) *big.Int {
	if settings == nil || settings.TaggingFee == nil || settings.TaggingFee.Sign() == 0 {
		return model.Zero()
	}

	switch role {
	case model.RolePlatform:
		return percentOf(settings.TaggingFee, settings.PlatformPercentage)
	case model.RoleRelayer:
		return percentOf(settings.TaggingFee, settings.RelayerPercentage)
	case model.RoleOwner, model.RoleCreator:
		return percentOf(settings.TaggingFee, model.PercentModulo-settings.PlatformPercentage-settings.RelayerPercentage)
	case model.RoleTagger:
		return new(big.Int).Set(settings.TaggingFee)
	}
	return model.Zero()
}

// RemainingRole tells who collects the remaining share of a tagging fee for a
// tag: its creator while the platform still holds it, its owner afterwards.
func RemainingRole(tagOwner, platformAddress string) model.Role {
	if tagOwner == platformAddress {
		return model.RoleCreator
	}
	return model.RoleOwner
}

// AuctionShare applies an auction proceeds percentage to a settled amount.
func AuctionShare(amount *big.Int, pct int64) *big.Int {
	if amount == nil || amount.Sign() == 0 {
		return model.Zero()
	}
	return percentOf(amount, pct)
}

func percentOf(amount *big.Int, pct int64) *big.Int {
	if pct <= 0 {
		return model.Zero()
	}
	out := new(big.Int).Mul(amount, big.NewInt(pct))
	return out.Div(out, hundred)
}
