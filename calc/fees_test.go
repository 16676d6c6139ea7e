package calc

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/graphprotocol/ets-indexer/model"
)

func settings(fee int64, platformPct, relayerPct int64) *model.GlobalSettings {
	return &model.GlobalSettings{
		TaggingFee:         big.NewInt(fee),
		PlatformPercentage: platformPct,
		RelayerPercentage:  relayerPct,
	}
}

func TestFeeShare(t *testing.T) {
	examples := []struct {
		name     string
		settings *model.GlobalSettings
		role     model.Role
		expected int64
	}{
		{"platform", settings(1000, 20, 30), model.RolePlatform, 200},
		{"relayer", settings(1000, 20, 30), model.RoleRelayer, 300},
		{"owner", settings(1000, 20, 30), model.RoleOwner, 500},
		{"creator", settings(1000, 20, 30), model.RoleCreator, 500},
		{"tagger pays the whole fee", settings(1000, 20, 30), model.RoleTagger, 1000},
		{"zero fee", settings(0, 20, 30), model.RolePlatform, 0},
		{"zero fee remaining", settings(0, 20, 30), model.RoleCreator, 0},
		{"nil settings", nil, model.RoleRelayer, 0},
		{"floor division", settings(999, 33, 33), model.RolePlatform, 329},
	}

	for _, ex := range examples {
		t.Run(ex.name, func(t *testing.T) {
			assert.Equal(t, big.NewInt(ex.expected), FeeShare(ex.settings, ex.role))
		})
	}
}

func TestFeeShare_Conservation(t *testing.T) {
	for _, fee := range []int64{0, 1, 7, 99, 100, 101, 999, 1000, 123456789} {
		for p := int64(0); p <= 100; p += 7 {
			for r := int64(0); p+r <= 100; r += 11 {
				s := settings(fee, p, r)

				sum := new(big.Int)
				sum.Add(sum, FeeShare(s, model.RolePlatform))
				sum.Add(sum, FeeShare(s, model.RoleRelayer))
				sum.Add(sum, FeeShare(s, model.RoleCreator))

				leak := new(big.Int).Sub(big.NewInt(fee), sum)
				// Three floor divisions lose strictly less than one unit each.
				assert.True(t, leak.Sign() >= 0 && leak.Cmp(big.NewInt(3)) < 0, "fee=%d p=%d r=%d leak=%s", fee, p, r, leak)
			}
		}
	}
}

func TestRemainingRole(t *testing.T) {
	platform := "0x00000000000000000000000000000000000000aa"

	assert.Equal(t, model.RoleCreator, RemainingRole(platform, platform))
	assert.Equal(t, model.RoleOwner, RemainingRole("0x00000000000000000000000000000000000000bb", platform))
}

func TestAuctionShare(t *testing.T) {
	amount := big.NewInt(1000)

	assert.Equal(t, big.NewInt(400), AuctionShare(amount, 40))
	assert.Equal(t, big.NewInt(200), AuctionShare(amount, 20))
	assert.Equal(t, big.NewInt(0), AuctionShare(amount, 0))
	assert.Equal(t, big.NewInt(0), AuctionShare(nil, 40))
}
