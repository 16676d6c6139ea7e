package cli

import (
	"context"
	"fmt"

	"github.com/graphprotocol/ets-indexer/chain"
	"github.com/graphprotocol/ets-indexer/dispatch"
	"github.com/graphprotocol/ets-indexer/indexer"
	"github.com/graphprotocol/ets-indexer/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/streamingfast/derr"
	"github.com/streamingfast/dmetrics"
	"go.uber.org/zap"
)

var (
	startCommand = &cobra.Command{
		Use:   "start",
		Short: "Indexes the event stream until it is exhausted or interrupted",
		Long: dedentf(`
			Reads the ETS events printed by the extractor, either on standard input,
			from its log files in %q mode or by spawning it in %q mode. Every event
			is applied to the entity store along with its position, so a restart
			resumes right after the last applied event.
		`, modeLogs, modeNode),
		RunE:  runStartCommand,
		Args:  cobra.NoArgs,
	}
)

func runStartCommand(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	contracts, err := contractsFromFlags()
	if err != nil {
		return err
	}

	source, err := lineSourceFromFlags()
	if err != nil {
		return err
	}

	storePath := MustReplaceDataDir(DataDir, viper.GetString("store-path"))
	st, err := store.Open(storePath, false)
	if err != nil {
		return err
	}
	defer st.Close()

	rpcEndpoint := viper.GetString("rpc-endpoint")
	reader, err := chain.Dial(context.Background(), rpcEndpoint, contracts)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", rpcEndpoint, err)
	}

	dispatcher, err := dispatch.New(st, reader, contracts, zlog)
	if err != nil {
		return err
	}

	if addr := viper.GetString("metrics-listen-addr"); addr != "" {
		indexer.RegisterMetrics()
		go dmetrics.Serve(addr)
	}

	app := indexer.New(&indexer.Config{
		StartBlock:        viper.GetUint64("start-block"),
		StopBlock:         viper.GetUint64("stop-block"),
		LinesChanCapacity: viper.GetInt("source-lines-chan-capacity"),
	}, source, dispatcher, zlog)

	zlog.Info("starting indexer",
		zap.String("store_path", storePath),
		zap.String("source_mode", viper.GetString("source-mode")),
		zap.String("rpc_endpoint", rpcEndpoint),
	)
	app.Launch()

	signalHandler := derr.SetupSignalHandler(viper.GetDuration("shutdown-delay"))
	select {
	case <-signalHandler:
		zlog.Info("received termination signal, quitting")
		app.Shutdown(nil)
	case <-app.Terminating():
		if app.Err() == nil {
			zlog.Info("indexer triggered a clean shutdown, quitting")
		} else {
			zlog.Error("indexer shutdown unexpectedly, quitting", zap.Error(app.Err()))
		}
	}

	<-app.Terminated()
	if checkpoint := dispatcher.Checkpoint(); checkpoint != nil {
		zlog.Info("indexer stopped", zap.Uint64("block_num", checkpoint.BlockNumber), zap.Uint64("log_index", checkpoint.LogIndex))
	}
	return app.Err()
}
