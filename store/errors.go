package store

import "errors"

var (
	ErrNotFound = errors.New("entity not found")
	ErrTxDone   = errors.New("transaction already committed or discarded")
)
