package indexer

import (
	"context"
	"io"

	"github.com/graphprotocol/ets-indexer/noderunner"
	"go.uber.org/zap"
)

// LineSource produces the raw extractor output. Stream returns once the
// source is exhausted or ctx is done.
type LineSource interface {
	Stream(ctx context.Context, fn func(line string)) error
}

// ReaderSource reads lines from an already open stream, typically stdin.
type ReaderSource struct {
	input      io.Reader
	bufferSize int
	logger     *zap.Logger
}

func NewReaderSource(input io.Reader, bufferSize int, logger *zap.Logger) *ReaderSource {
	if logger == nil {
		logger = zlog
	}
	return &ReaderSource{input: input, bufferSize: bufferSize, logger: logger}
}

func (s *ReaderSource) Stream(ctx context.Context, fn func(line string)) error {
	return noderunner.ReadLines(s.input, s.bufferSize, fn, s.logger)
}
