package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/graphprotocol/ets-indexer/aggregate"
	"github.com/graphprotocol/ets-indexer/chain"
	"github.com/graphprotocol/ets-indexer/codec"
	"github.com/graphprotocol/ets-indexer/model"
	"github.com/graphprotocol/ets-indexer/store"
	"go.uber.org/zap"
)

var ErrInconsistentState = aggregate.ErrInconsistentState

// Outcome describes what happened to a single log.
type Outcome int

const (
	Applied Outcome = iota
	// Skipped logs were not emitted by a tracked contract or carry an event nobody handles.
	Skipped
	// Replayed logs sit at or before the checkpoint.
	Replayed
)

// Dispatcher applies decoded logs to the store, one atomic transaction per log.
type Dispatcher struct {
	store    *store.Store
	reader   chain.Reader
	registry *Registry
	logger   *zap.Logger

	checkpoint *model.Checkpoint
}

func New(st *store.Store, reader chain.Reader, contracts chain.Contracts, logger *zap.Logger) (*Dispatcher, error) {
	if logger == nil {
		logger = zlog
	}

	checkpoint, err := st.LoadCheckpoint()
	if err != nil {
		return nil, fmt.Errorf("load checkpoint: %w", err)
	}

	return &Dispatcher{
		store:      st,
		reader:     reader,
		registry:   NewRegistry(contracts),
		logger:     logger,
		checkpoint: checkpoint,
	}, nil
}

// Checkpoint returns the position of the last applied log, nil if none.
func (d *Dispatcher) Checkpoint() *model.Checkpoint {
	return d.checkpoint
}

// HandleBlock applies every log of block in order and returns how many were applied.
func (d *Dispatcher) HandleBlock(ctx context.Context, block *codec.Block) (applied int, err error) {
	for _, log := range block.Logs {
		if err := ctx.Err(); err != nil {
			return applied, err
		}

		outcome, err := d.HandleLog(ctx, block, log)
		if err != nil {
			return applied, err
		}
		if outcome == Applied {
			applied++
		}
	}
	return applied, nil
}

// HandleLog decodes log and applies it along with the new checkpoint. On
// failure nothing written on behalf of the log is kept.
func (d *Dispatcher) HandleLog(ctx context.Context, block *codec.Block, log *codec.Log) (Outcome, error) {
	if !d.checkpoint.After(block.Number, log.LogIndex) {
		return Replayed, nil
	}

	event, err := codec.DecodeEvent(log)
	if errors.Is(err, codec.ErrUnknownEvent) {
		if tracer.Enabled() {
			d.logger.Debug("skipping unknown event", zap.String("event", log.Event), zap.String("contract", log.Address))
		}
		return Skipped, nil
	}
	if err != nil {
		return Skipped, fmt.Errorf("block %d: %w", block.Number, err)
	}

	meta := event.Origin()
	tx := d.store.Begin()
	defer tx.Discard()

	session := aggregate.NewSession(ctx, tx, d.reader, aggregate.Block{Number: block.Number, Timestamp: block.Timestamp}, d.logger)

	kind, err := d.route(session, meta.Contract)
	if err != nil {
		return Skipped, err
	}
	if !accepts(kind, meta.Name) {
		if tracer.Enabled() {
			d.logger.Debug("skipping event from untracked source",
				zap.String("event", meta.Name),
				zap.Stringer("contract", meta.Contract),
				zap.Stringer("kind", kind),
			)
		}
		return Skipped, nil
	}

	if err := handle(session, kind, event); err != nil {
		return Skipped, fmt.Errorf("apply %s at block %d tx %s log %d: %w", meta.Name, block.Number, meta.TxHash, meta.LogIndex, err)
	}

	checkpoint := &model.Checkpoint{
		ID:          model.CheckpointID,
		BlockNumber: block.Number,
		BlockHash:   block.Hash,
		LogIndex:    log.LogIndex,
	}
	if err := store.Checkpoints.Save(tx, checkpoint.ID, checkpoint); err != nil {
		return Skipped, fmt.Errorf("save checkpoint: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Skipped, fmt.Errorf("commit %s at block %d log %d: %w", meta.Name, block.Number, meta.LogIndex, err)
	}

	d.checkpoint = checkpoint
	if tracer.Enabled() {
		d.logger.Debug("applied event",
			zap.String("event", meta.Name),
			zap.Uint64("block_num", block.Number),
			zap.Uint64("log_index", meta.LogIndex),
		)
	}
	return Applied, nil
}

// route resolves the kind of the emitting contract. Relayer instances are
// deployed at runtime and are only known through their stored entity.
func (d *Dispatcher) route(s *aggregate.Session, addr common.Address) (model.ContractKind, error) {
	if kind := d.registry.Kind(addr); kind != model.ContractUnknown {
		return kind, nil
	}

	known, err := s.IsKnownRelayer(addr)
	if err != nil {
		return model.ContractUnknown, fmt.Errorf("lookup relayer %s: %w", model.AddressID(addr), err)
	}
	if known {
		return model.ContractRelayer, nil
	}
	return model.ContractUnknown, nil
}
