package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/sugawarayuuta/sonnet"
	"go.uber.org/zap"
)

const keySeparator = ":"

// Store persists entities in a badger database, keyed "<kind>:<id>".
type Store struct {
	db *badger.DB
}

// Open opens the database at path. An in-memory database ignores path.
func Open(path string, inMemory bool) (*Store, error) {
	opts := badger.DefaultOptions(path)
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = &badgerLogger{zlog.Sugar()}
	opts.SyncWrites = !inMemory
	opts.CompactL0OnClose = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db %q: %w", path, err)
	}

	zlog.Info("entity store opened", zap.String("path", path), zap.Bool("in_memory", inMemory))
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	zlog.Info("closing entity store")
	return s.db.Close()
}

// Begin starts a read-write transaction. Writes become visible to other
// transactions only once Commit succeeds.
func (s *Store) Begin() *Tx {
	return &Tx{txn: s.db.NewTransaction(true)}
}

// View runs fn in a read-only transaction.
func (s *Store) View(fn func(tx *Tx) error) error {
	tx := &Tx{txn: s.db.NewTransaction(false)}
	defer tx.Discard()

	return fn(tx)
}

// Each calls fn with the id and raw JSON value of every entity of kind, in key order.
func (s *Store) Each(ctx context.Context, kind string, fn func(id string, value []byte) error) error {
	prefix := []byte(kind + keySeparator)

	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			item := it.Item()
			id := strings.TrimPrefix(string(item.Key()), string(prefix))
			err := item.Value(func(val []byte) error {
				return fn(id, val)
			})
			if err != nil {
				return fmt.Errorf("%s %q: %w", kind, id, err)
			}
		}
		return nil
	})
}

// Lookup returns the raw JSON value of one entity.
func (s *Store) Lookup(kind, id string) (value []byte, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(kind, id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
		}
		if err != nil {
			return err
		}

		value, err = item.ValueCopy(nil)
		return err
	})
	return value, err
}

// Reset removes every entity and the checkpoint.
func (s *Store) Reset() error {
	return s.db.DropAll()
}

// Tx accumulates the writes of one event. Reads observe the transaction's own
// pending writes.
type Tx struct {
	txn  *badger.Txn
	done bool
}

func (t *Tx) get(kind, id string, dest interface{}) (bool, error) {
	item, err := t.txn.Get(key(kind, id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s %q: %w", kind, id, err)
	}

	err = item.Value(func(val []byte) error {
		return sonnet.Unmarshal(val, dest)
	})
	if err != nil {
		return false, fmt.Errorf("decode %s %q: %w", kind, id, err)
	}
	return true, nil
}

func (t *Tx) put(kind, id string, value interface{}) error {
	data, err := sonnet.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s %q: %w", kind, id, err)
	}

	if err := t.txn.Set(key(kind, id), data); err != nil {
		return fmt.Errorf("set %s %q: %w", kind, id, err)
	}
	return nil
}

func (t *Tx) delete(kind, id string) error {
	if err := t.txn.Delete(key(kind, id)); err != nil {
		return fmt.Errorf("delete %s %q: %w", kind, id, err)
	}
	return nil
}

// Commit persists every pending write atomically.
func (t *Tx) Commit() error {
	if t.done {
		return ErrTxDone
	}
	t.done = true

	if err := t.txn.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Discard drops pending writes. It is safe to call after Commit.
func (t *Tx) Discard() {
	t.done = true
	t.txn.Discard()
}

func key(kind, id string) []byte {
	return []byte(kind + keySeparator + id)
}

type badgerLogger struct {
	*zap.SugaredLogger
}

func (l *badgerLogger) Warningf(template string, args ...interface{}) {
	l.Warnf(template, args...)
}

// badger is chatty at info level.
func (l *badgerLogger) Infof(template string, args ...interface{}) {
	l.Debugf(template, args...)
}
