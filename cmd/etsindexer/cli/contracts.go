package cli

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/graphprotocol/ets-indexer/chain"
	"github.com/spf13/viper"
)

func contractsFromFlags() (chain.Contracts, error) {
	var contracts chain.Contracts

	for _, entry := range []struct {
		flag     string
		dst      *common.Address
		required bool
	}{
		{"ets-address", &contracts.ETS, true},
		{"token-address", &contracts.Token, true},
		{"access-controls-address", &contracts.AccessControls, true},
		{"auction-house-address", &contracts.AuctionHouse, false},
		{"target-address", &contracts.Target, true},
	} {
		value := viper.GetString(entry.flag)
		if value == "" {
			if entry.required {
				return contracts, fmt.Errorf("flag --%s is required", entry.flag)
			}
			continue
		}
		if !common.IsHexAddress(value) {
			return contracts, fmt.Errorf("flag --%s: invalid address %q", entry.flag, value)
		}
		*entry.dst = common.HexToAddress(value)
	}

	return contracts, nil
}
