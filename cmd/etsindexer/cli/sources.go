package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/graphprotocol/ets-indexer/filereader"
	"github.com/graphprotocol/ets-indexer/indexer"
	"github.com/graphprotocol/ets-indexer/noderunner"
	"github.com/spf13/viper"
)

func lineSourceFromFlags() (indexer.LineSource, error) {
	mode := viper.GetString("source-mode")
	bufferSize := viper.GetInt("source-line-buffer-size")

	switch mode {
	case modeStdin:
		return indexer.NewReaderSource(os.Stdin, bufferSize, zlog), nil

	case modeNode:
		binPath := viper.GetString("source-node-path")
		if err := checkNodeBinPath(binPath); err != nil {
			return nil, err
		}

		env, err := noderunner.ParseEnv(viper.GetString("source-node-env"))
		if err != nil {
			return nil, err
		}

		return noderunner.New(&noderunner.Config{
			Bin:           binPath,
			Args:          strings.Fields(viper.GetString("source-node-args")),
			Dir:           viper.GetString("source-node-dir"),
			Env:           env,
			ForwardStderr: true,
			StderrFilter:  viper.GetString("source-node-logs-filter"),
			BufferSize:    bufferSize,
		}, zlog)

	case modeLogs:
		dir, err := checkLogsSource(viper.GetString("source-logs-dir"))
		if err != nil {
			return nil, err
		}

		return filereader.NewReader(&filereader.Config{
			Dir:          dir,
			Pattern:      viper.GetString("source-logs-pattern"),
			Follow:       viper.GetBool("source-logs-follow"),
			PollInterval: viper.GetDuration("source-logs-poll-interval"),
		}, zlog)
	}

	return nil, fmt.Errorf("invalid source mode: %v", mode)
}

func checkLogsSource(dir string) (string, error) {
	if dir == "" {
		return "", errors.New("source logs dir must be set")
	}

	dir, err := expandDir(dir)
	if err != nil {
		return "", err
	}

	if !dirExists(dir) {
		return "", fmt.Errorf("source logs dir %q must exist", dir)
	}

	return dir, nil
}

func checkNodeBinPath(binPath string) error {
	if binPath == "" {
		return errors.New("extractor path must be set")
	}

	stat, err := os.Stat(binPath)
	if err != nil {
		return fmt.Errorf("cant inspect extractor path: %w", err)
	}

	if stat.IsDir() {
		return fmt.Errorf("path %v is a directory", binPath)
	}

	return nil
}
