// Package noderunner spawns the log extractor process and streams its stdout.
package noderunner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

const defaultKillTimeout = 10 * time.Second

type Config struct {
	Bin  string
	Args []string
	Dir  string
	Env  map[string]string

	// ForwardStderr copies the extractor stderr to ours, minus the lines matching StderrFilter.
	ForwardStderr bool
	StderrFilter  string

	BufferSize  int
	KillTimeout time.Duration
}

// Runner runs the extractor and feeds every line it prints to a callback.
type Runner struct {
	config *Config
	stderr io.Writer
	logger *zap.Logger
}

func New(config *Config, logger *zap.Logger) (*Runner, error) {
	if config.Bin == "" {
		return nil, errors.New("extractor binary path is not provided")
	}
	if logger == nil {
		logger = zlog
	}

	runner := &Runner{config: config, logger: logger}
	if config.ForwardStderr {
		stderr, err := newStderrFilter(os.Stderr, config.StderrFilter)
		if err != nil {
			return nil, fmt.Errorf("invalid stderr filter %q: %w", config.StderrFilter, err)
		}
		runner.stderr = stderr
	}
	return runner, nil
}

// Stream starts the extractor and blocks until it exits and every line it
// printed was handed to fn. Cancelling ctx interrupts the process, and kills
// it if it is still alive after the kill timeout.
func (r *Runner) Stream(ctx context.Context, fn func(string)) error {
	cmd := exec.Command(r.config.Bin, r.config.Args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Dir = r.config.Dir
	cmd.Stderr = r.stderr

	if len(r.config.Env) > 0 {
		cmd.Env = os.Environ()
		for k, v := range r.config.Env {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}

	r.logger.Info("starting extractor", zap.String("bin", r.config.Bin), zap.Strings("args", r.config.Args))
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start extractor: %w", err)
	}
	r.logger.Debug("extractor started", zap.Int("pid", cmd.Process.Pid))

	stopWatch := r.watch(ctx, cmd)
	defer stopWatch()

	readerDone := make(chan error, 1)
	go func() {
		readerDone <- ReadLines(stdout, r.config.BufferSize, fn, r.logger)
	}()

	// Lines still buffered in the pipe must reach fn before cmd.Wait closes it.
	if readErr := <-readerDone; readErr != nil {
		r.logger.Debug("extractor output reader failed", zap.Error(readErr))
	}

	err = cmd.Wait()
	r.logger.Info("extractor exited", zap.Error(err))
	return err
}

// watch interrupts the process once ctx is done. The returned func stops
// watching and cancels any pending kill.
func (r *Runner) watch(ctx context.Context, cmd *exec.Cmd) func() {
	killTimeout := r.config.KillTimeout
	if killTimeout <= 0 {
		killTimeout = defaultKillTimeout
	}

	var (
		lock      sync.Mutex
		killTimer *time.Timer
	)
	exited := make(chan struct{})

	go func() {
		select {
		case <-exited:
			return
		case <-ctx.Done():
		}

		pid := cmd.Process.Pid
		r.logger.Info("interrupting extractor", zap.Int("pid", pid))
		if err := cmd.Process.Signal(os.Interrupt); err != nil {
			if errors.Is(err, os.ErrProcessDone) {
				return
			}
			r.logger.Warn("cannot interrupt extractor", zap.Int("pid", pid), zap.Error(err))
		}

		lock.Lock()
		defer lock.Unlock()
		killTimer = time.AfterFunc(killTimeout, func() {
			r.logger.Warn("killing extractor", zap.Int("pid", pid))
			if err := cmd.Process.Kill(); err != nil {
				r.logger.Debug("cannot kill extractor", zap.Int("pid", pid), zap.Error(err))
			}
		})
	}()

	return func() {
		close(exited)
		lock.Lock()
		defer lock.Unlock()
		if killTimer != nil {
			killTimer.Stop()
		}
	}
}

// ParseEnv parses a comma separated list of KEY=VALUE pairs.
func ParseEnv(in string) (map[string]string, error) {
	env := map[string]string{}
	if strings.TrimSpace(in) == "" {
		return env, nil
	}

	for _, pair := range strings.Split(in, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(pair), "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid env entry %q, expected KEY=VALUE", pair)
		}
		env[key] = value
	}
	return env, nil
}
