package cli

import (
	"fmt"

	"github.com/graphprotocol/ets-indexer/tools"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/streamingfast/derr"
	"github.com/streamingfast/logging"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	zlog, _  = logging.RootLogger("etsindexer", "github.com/graphprotocol/ets-indexer/cmd/etsindexer")
	allFlags = map[string]bool{}

	RootCmd = &cobra.Command{
		Use:   "etsindexer",
		Short: "Aggregates Ethereum Tag Service events into a queryable entity store",
		// Version:  // set by cmd/main.go
	}
)

func Main() {
	cobra.OnInitialize(func() {
		allFlags = autoBind(RootCmd, "ETS")
	})

	initCommonFlags(RootCmd.PersistentFlags())
	initStartFlags(startCommand.Flags())
	RootCmd.PersistentPreRunE = preRun

	RootCmd.AddCommand(
		startCommand,
		resetCommand,
		versionCommand,
		tools.Cmd,
	)

	derr.Check("executing root command", RootCmd.Execute())
}

func preRun(cmd *cobra.Command, args []string) error {
	DataDir = viper.GetString("data-dir")

	configFile := viper.GetString("config")
	if cmd.Flags().Changed("config") && !fileExists(configFile) {
		cliErrorAndExit(fmt.Sprintf("Config file %q does not exist", configFile))
	}

	if configFile != "" && fileExists(configFile) {
		if err := loadConfigFile(configFile, cmd.Name()); err != nil {
			return err
		}
	}

	logging.InstantiateLoggers(logging.WithDefaultLevel(verbosityLevel(viper.GetInt("verbose"))))
	return nil
}

// loadConfigFile applies the `<command>.flags` section of the YAML config
// file as flag defaults. Flags given on the command line or through the
// environment still win.
func loadConfigFile(path, command string) error {
	config := viper.New()
	config.SetConfigFile(path)
	if err := config.ReadInConfig(); err != nil {
		return fmt.Errorf("read config file %q: %w", path, err)
	}

	for name, value := range config.GetStringMap(command + ".flags") {
		if !allFlags[name] {
			return fmt.Errorf("invalid flag %v in config file %q", name, path)
		}
		viper.SetDefault(name, value)
	}

	zlog.Debug("config file loaded", zap.String("path", path), zap.String("command", command))
	return nil
}

func verbosityLevel(verbose int) zapcore.Level {
	switch {
	case verbose >= 4:
		return zap.DebugLevel
	case verbose == 3:
		return zap.InfoLevel
	case verbose == 2:
		return zap.WarnLevel
	default:
		return zap.ErrorLevel
	}
}
