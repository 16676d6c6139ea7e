package cli

import (
	"strings"
	"time"

	"github.com/graphprotocol/ets-indexer/noderunner"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	modeLogs  = "logs"  // Consume events from the extractor log file(s)
	modeStdin = "stdin" // Consume events from the STDOUT of another process
	modeNode  = "node"  // Consume events from a spawned extractor process
)

var (
	// Data dir (for local operations only)
	DataDir = "./ets-data"

	MetricsServingAddr = "0.0.0.0:9102"
	StorePath          = "{data-dir}/store"
)

func initCommonFlags(flags *pflag.FlagSet) {
	// General
	flags.IntP("verbose", "v", 3, "Logging verbosity, 4 and above logs at debug level")
	flags.StringP("config", "c", "etsindexer.yaml", "Configuration file, its <command>.flags section provides flag defaults")
	flags.StringP("data-dir", "d", DataDir, "Path to data storage for all components of the indexer")
	flags.String("store-path", StorePath, "Directory of the entity store")
}

func initStartFlags(flags *pflag.FlagSet) {
	// Event source
	flags.String("source-mode", modeStdin, "Mode of operation, one of (stdin, logs, node)")
	flags.Int("source-line-buffer-size", noderunner.DefaultBufferSize, "Buffer size in bytes for the line reader")
	flags.Int("source-lines-chan-capacity", 10000, "Number of extractor lines buffered ahead of the indexer")
	flags.String("source-logs-dir", "", "Extractor logs source directory")
	flags.String("source-logs-pattern", "\\.log(\\.[\\d]+)?$", "Extractor logs file pattern")
	flags.Bool("source-logs-follow", true, "Keep tailing the log files once they were all read")
	flags.Duration("source-logs-poll-interval", time.Second, "Delay between two scans of the logs directory")
	flags.String("source-node-path", "", "Path to the extractor binary")
	flags.String("source-node-dir", "", "Extractor working directory")
	flags.String("source-node-args", "", "Extractor process arguments")
	flags.String("source-node-env", "", "Extractor process env vars, as KEY=VALUE pairs separated by commas")
	flags.String("source-node-logs-filter", "", "Extractor stderr lines matching this expression are not forwarded")

	// Chain reads
	flags.String("rpc-endpoint", "http://localhost:8545", "JSON-RPC endpoint used for contract reads")
	flags.String("ets-address", "", "Address of the ETS core contract")
	flags.String("token-address", "", "Address of the ETS token contract")
	flags.String("access-controls-address", "", "Address of the ETS access controls contract")
	flags.String("auction-house-address", "", "Address of the ETS auction house contract")
	flags.String("target-address", "", "Address of the ETS target contract")

	// Indexing
	flags.Uint64("start-block", 0, "Blocks below this one are read but not applied")
	flags.Uint64("stop-block", 0, "If non-zero, the indexer shuts down once this block is applied")

	// System behavior
	flags.String("metrics-listen-addr", MetricsServingAddr, "If non-empty, the process will listen on this address to serve Prometheus metrics")
	flags.Duration("shutdown-delay", 0, "Delay between receiving SIGTERM and shutting down the indexer")
}

// autoBind binds every flag of root and its sub-commands to viper, with
// <PREFIX>_<FLAG_NAME> as environment override. It returns the bound flag names.
func autoBind(root *cobra.Command, prefix string) map[string]bool {
	bound := map[string]bool{}

	var bind func(cmd *cobra.Command)
	bind = func(cmd *cobra.Command) {
		visit := func(flag *pflag.Flag) {
			if bound[flag.Name] {
				return
			}
			bound[flag.Name] = true

			_ = viper.BindPFlag(flag.Name, flag)
			_ = viper.BindEnv(flag.Name, envName(prefix, flag.Name))
		}

		cmd.PersistentFlags().VisitAll(visit)
		cmd.Flags().VisitAll(visit)
		for _, sub := range cmd.Commands() {
			bind(sub)
		}
	}
	bind(root)

	return bound
}

func envName(prefix, flag string) string {
	return prefix + "_" + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}
