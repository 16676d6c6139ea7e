package cli

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	resetCommand = &cobra.Command{
		Use:   "reset",
		Short: "Removes the entity store, the next start indexes from scratch",
		RunE:  runResetCommand,
		Args:  cobra.NoArgs,
	}
)

func runResetCommand(cmd *cobra.Command, args []string) error {
	storePath := MustReplaceDataDir(DataDir, viper.GetString("store-path"))
	if !dirExists(storePath) {
		zlog.Info("store directory does not exist, skipping", zap.String("dir", storePath))
		return nil
	}

	zlog.Info("removing store directory", zap.String("dir", storePath))
	return os.RemoveAll(storePath)
}
