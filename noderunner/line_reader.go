package noderunner

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"go.uber.org/zap"
)

const DefaultBufferSize = 10 * 1024 * 1024

// ReadLines calls fn with every line of input, trimmed, until input is exhausted.
func ReadLines(input io.Reader, bufferSize int, fn func(string), logger *zap.Logger) error {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	logger.Debug("starting line reader", zap.Int("buffer_size", bufferSize))
	reader := bufio.NewReaderSize(input, bufferSize)

	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			logger.Debug("line reader aborted", zap.Error(err))
			return err
		}

		if err != nil && line == "" {
			logger.Debug("line reader reached end of input")
			return nil
		}

		fn(strings.TrimSpace(line))

		if err != nil {
			return nil
		}
	}
}
