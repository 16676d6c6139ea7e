// Package filereader tails the rotating log files an extractor writes.
package filereader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"go.uber.org/zap"
)

const defaultPollInterval = time.Second

type Config struct {
	Dir     string
	Pattern string
	// Follow keeps polling for new content once every file was read.
	Follow       bool
	PollInterval time.Duration
}

// Reader reads the files of a directory in name order, then keeps tailing
// them. Offsets are only remembered for the life of the Reader.
type Reader struct {
	config  *Config
	pattern *regexp.Regexp
	offsets map[string]int64
	logger  *zap.Logger
}

func NewReader(config *Config, logger *zap.Logger) (*Reader, error) {
	if config.Dir == "" {
		return nil, errors.New("logs directory is not provided")
	}

	info, err := os.Stat(config.Dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%q is not a directory", config.Dir)
	}

	pattern, err := regexp.Compile(config.Pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid logs pattern %q: %w", config.Pattern, err)
	}

	if logger == nil {
		logger = zlog
	}

	return &Reader{
		config:  config,
		pattern: pattern,
		offsets: map[string]int64{},
		logger:  logger,
	}, nil
}

// Stream hands every line to fn until ctx is done, or until the files are
// exhausted when not following.
func (r *Reader) Stream(ctx context.Context, fn func(string)) error {
	interval := r.config.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}

	for {
		if err := r.poll(ctx, fn); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}

		if !r.config.Follow {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(interval):
		}
	}
}

func (r *Reader) poll(ctx context.Context, fn func(string)) error {
	files, err := r.logFiles()
	if err != nil {
		return err
	}

	for _, file := range files {
		path := filepath.Join(r.config.Dir, file.Name())
		info, err := file.Info()
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}

		offset := r.offsets[path]
		if info.Size() == offset {
			continue
		}
		if info.Size() < offset {
			r.logger.Warn("log file shrank, reading it again from the start", zap.String("path", path), zap.Int64("offset", offset), zap.Int64("size", info.Size()))
			offset = 0
		}

		next, err := readLines(ctx, path, offset, fn)
		r.offsets[path] = next
		if err != nil {
			return err
		}

		if next != offset {
			r.logger.Debug("read log file", zap.String("path", path), zap.Int64("from", offset), zap.Int64("to", next))
		}
	}
	return nil
}

// logFiles lists the matching files, sorted by name.
func (r *Reader) logFiles() ([]os.DirEntry, error) {
	entries, err := os.ReadDir(r.config.Dir)
	if err != nil {
		return nil, fmt.Errorf("read logs directory: %w", err)
	}

	files := entries[:0]
	for _, entry := range entries {
		if !entry.IsDir() && r.pattern.MatchString(entry.Name()) {
			files = append(files, entry)
		}
	}
	return files, nil
}
