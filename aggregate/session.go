package aggregate

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/graphprotocol/ets-indexer/chain"
	"github.com/graphprotocol/ets-indexer/model"
	"github.com/graphprotocol/ets-indexer/store"
	"go.uber.org/zap"
)

// ErrInconsistentState is returned when an event references an entity that
// should exist but does not, or carries a value the handlers cannot interpret.
var ErrInconsistentState = errors.New("inconsistent state")

// Block is the position of the event being applied.
type Block struct {
	Number    uint64
	Timestamp uint64
}

// Session applies the entity mutations of a single event. Every write lands
// in tx; the caller decides whether to commit or discard it.
type Session struct {
	ctx    context.Context
	tx     *store.Tx
	reader chain.Reader
	block  Block
	logger *zap.Logger
}

func NewSession(ctx context.Context, tx *store.Tx, reader chain.Reader, block Block, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zlog
	}

	return &Session{
		ctx:    chain.WithBlockNumber(ctx, block.Number),
		tx:     tx,
		reader: reader,
		block:  block,
		logger: logger,
	}
}

func (s *Session) Block() Block { return s.block }

// readFailed logs the single critical entry of a failed contract read.
func (s *Session) readFailed(err error) error {
	fields := []zap.Field{zap.Bool("critical", true), zap.Uint64("block_num", s.block.Number)}

	var callErr *chain.CallError
	if errors.As(err, &callErr) {
		fields = append(fields,
			zap.String("method", callErr.Method),
			zap.String("args", callErr.ArgsString()),
			zap.String("contract", model.AddressID(callErr.Contract)),
			zap.Error(callErr.Err),
		)
	} else {
		fields = append(fields, zap.Error(err))
	}

	s.logger.Error("on-chain read failed", fields...)
	return err
}

func missing(kind, id string) error {
	return fmt.Errorf("%w: %s %q does not exist", ErrInconsistentState, kind, id)
}

// get loads an entity that an earlier event must have created.
func get[T any](s *Session, e store.Entity[T], id string) (*T, error) {
	v, err := e.Find(s.tx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, missing(e.Kind(), id)
	}
	return v, nil
}

// update loads, mutates and saves an existing entity. Entities are never held
// across calls so that nested ensures never overwrite each other's writes.
func update[T any](s *Session, e store.Entity[T], id string, fn func(v *T)) error {
	v, err := get(s, e, id)
	if err != nil {
		return err
	}

	fn(v)
	return e.Save(s.tx, id, v)
}

// add accumulates amount into *dst, allocating it on first use.
func add(dst **big.Int, amount *big.Int) {
	if amount == nil {
		return
	}
	if *dst == nil {
		*dst = model.Zero()
	}
	(*dst).Add(*dst, amount)
}

// commonAddress turns a stored address id back into an address.
func commonAddress(id string) common.Address {
	return common.HexToAddress(id)
}
