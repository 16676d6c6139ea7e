package codec

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// ConsoleReader assembles blocks from ETSLOG lines. Block numbers must
// strictly increase and logs inside a block must be in (tx index, log index) order.
type ConsoleReader struct {
	lines  chan string
	logger *zap.Logger
	done   chan interface{}

	height uint64
	block  *Block
}

func NewConsoleReader(lines chan string, logger *zap.Logger) (*ConsoleReader, error) {
	return &ConsoleReader{
		lines:  lines,
		logger: logger,
		done:   make(chan interface{}),
	}, nil
}

func (cr *ConsoleReader) Done() <-chan interface{} {
	return cr.done
}

func (cr *ConsoleReader) Close() {}

// ReadBlock returns the next complete block, or io.EOF once the lines channel is closed.
func (cr *ConsoleReader) ReadBlock() (*Block, error) {
	for line := range cr.lines {
		pl, err := parseLine(strings.TrimSpace(line))
		if err != nil {
			return nil, fmt.Errorf("%s (line %q)", err, line)
		}
		if pl == nil {
			continue
		}

		switch pl.Kind {
		case MsgBegin:
			if err := cr.startHeight(pl.Data.(uint64)); err != nil {
				return nil, err
			}
		case MsgBlock:
			header := pl.Data.(*blockHeader)
			if header.Number != cr.height {
				return nil, fmt.Errorf("unexpected block header height %d in block %d", header.Number, cr.height)
			}
			cr.block = &Block{Number: header.Number, Hash: header.Hash, Timestamp: header.Timestamp}
		case MsgEvent:
			if err := cr.appendLog(pl.Data.(*Log)); err != nil {
				return nil, err
			}
		case MsgEnd:
			height := pl.Data.(uint64)
			if cr.height != height || cr.block == nil {
				return nil, fmt.Errorf("unexpected end height end: %d", height)
			}

			block := cr.block
			cr.block = nil
			return block, nil
		}
	}

	cr.logger.Info("lines channel has been closed")
	return nil, io.EOF
}

func (cr *ConsoleReader) startHeight(height uint64) error {
	if height <= cr.height {
		return fmt.Errorf("unexpected start height %d", height)
	}

	cr.height = height
	cr.block = nil
	return nil
}

func (cr *ConsoleReader) appendLog(log *Log) error {
	if cr.block == nil {
		return fmt.Errorf("event %s received outside of a block", log.Event)
	}

	if n := len(cr.block.Logs); n > 0 {
		prev := cr.block.Logs[n-1]
		if log.TxIndex < prev.TxIndex || (log.TxIndex == prev.TxIndex && log.LogIndex <= prev.LogIndex) {
			return fmt.Errorf("out of order event %s at tx %d log %d in block %d", log.Event, log.TxIndex, log.LogIndex, cr.block.Number)
		}
	}

	cr.block.Logs = append(cr.block.Logs, log)
	return nil
}
