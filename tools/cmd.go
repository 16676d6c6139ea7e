package tools

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/graphprotocol/ets-indexer/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	Cmd = &cobra.Command{
		Use:   "tools",
		Short: "Operator tools working on the entity store",
	}
)

func init() {
	Cmd.AddCommand(exportCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(checkpointCmd)
	Cmd.AddCommand(countCmd)

	exportCmd.Flags().StringSlice("kinds", nil, "Entity kinds to export, all of them when empty")
}

// openStore opens the entity store configured on the root command.
func openStore() (*store.Store, error) {
	dataDir, err := filepath.Abs(viper.GetString("data-dir"))
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	path := strings.ReplaceAll(viper.GetString("store-path"), "{data-dir}", dataDir)
	zlog.Debug("opening entity store")
	return store.Open(path, false)
}
