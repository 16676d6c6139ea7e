// Package indexer drives the event source through the dispatcher, one block at a time.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/graphprotocol/ets-indexer/codec"
	"github.com/graphprotocol/ets-indexer/dispatch"
	"github.com/streamingfast/shutter"
	"go.uber.org/zap"
)

const defaultLinesChanCapacity = 10000

type Config struct {
	// Blocks below StartBlock are read but not applied.
	StartBlock uint64
	// StopBlock, when non-zero, is the last block applied before shutting down.
	StopBlock         uint64
	LinesChanCapacity int
}

type Indexer struct {
	*shutter.Shutter

	config     *Config
	source     LineSource
	dispatcher *dispatch.Dispatcher
	logger     *zap.Logger
}

func New(config *Config, source LineSource, dispatcher *dispatch.Dispatcher, logger *zap.Logger) *Indexer {
	if logger == nil {
		logger = zlog
	}

	return &Indexer{
		Shutter:    shutter.New(),
		config:     config,
		source:     source,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Launch runs the indexer in the background. It shuts itself down once the
// source is exhausted, the stop block is applied or an event fails.
func (i *Indexer) Launch() {
	ctx, cancel := context.WithCancel(context.Background())
	i.OnTerminating(func(err error) {
		cancel()
	})

	go func() {
		i.Shutdown(i.Run(ctx))
	}()
}

// Run blocks until the source is exhausted, the stop block is applied, ctx is
// done or an event fails. Only the latter is reported as an error.
func (i *Indexer) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	capacity := i.config.LinesChanCapacity
	if capacity <= 0 {
		capacity = defaultLinesChanCapacity
	}

	lines := make(chan string, capacity)
	sourceDone := make(chan error, 1)
	go func() {
		err := i.source.Stream(ctx, func(line string) {
			select {
			case lines <- line:
			case <-ctx.Done():
			}
		})
		close(lines)
		sourceDone <- err
	}()

	reader, err := codec.NewConsoleReader(lines, i.logger)
	if err != nil {
		return err
	}

	if checkpoint := i.dispatcher.Checkpoint(); checkpoint != nil {
		i.logger.Info("resuming after checkpoint",
			zap.Uint64("block_num", checkpoint.BlockNumber),
			zap.String("block_hash", checkpoint.BlockHash),
			zap.Uint64("log_index", checkpoint.LogIndex),
		)
	}

	for {
		block, err := reader.ReadBlock()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read block: %w", err)
		}

		stop, err := i.processBlock(ctx, block)
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			i.logger.Info("indexer interrupted", zap.Uint64("block_num", block.Number))
			return nil
		}
		if err != nil {
			return err
		}
		if stop {
			i.logger.Info("stop block reached", zap.Uint64("stop_block", i.config.StopBlock))
			return nil
		}
	}

	if err := <-sourceDone; err != nil && ctx.Err() == nil {
		return fmt.Errorf("event source: %w", err)
	}
	i.logger.Info("event source exhausted")
	return nil
}

func (i *Indexer) processBlock(ctx context.Context, block *codec.Block) (stop bool, err error) {
	blocksProcessed.Inc()

	if block.Number < i.config.StartBlock {
		return false, nil
	}
	if i.config.StopBlock != 0 && block.Number > i.config.StopBlock {
		return true, nil
	}

	if checkpoint := i.dispatcher.Checkpoint(); checkpoint != nil && block.Number < checkpoint.BlockNumber {
		if tracer.Enabled() {
			i.logger.Debug("skipping block before checkpoint", zap.Uint64("block_num", block.Number))
		}
		return false, nil
	}

	applied, err := i.dispatcher.HandleBlock(ctx, block)
	eventsApplied.AddInt(applied)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			i.logger.Error("cannot apply block",
				zap.Uint64("block_num", block.Number),
				zap.String("block_hash", block.Hash),
				zap.Int("applied", applied),
				zap.Error(err),
			)
		}
		return false, err
	}

	headBlockNumber.SetUint64(block.Number)
	headTimeDrift.SetBlockTime(time.Unix(int64(block.Timestamp), 0))

	if applied > 0 {
		i.logger.Debug("block applied", zap.Stringer("block", block.AsRef()), zap.Int("events", applied))
	}

	return i.config.StopBlock != 0 && block.Number >= i.config.StopBlock, nil
}
