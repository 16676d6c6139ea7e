package noderunner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunner(t *testing.T) {
	t.Run("missing binary", func(t *testing.T) {
		_, err := New(&Config{}, nil)
		assert.EqualError(t, err, "extractor binary path is not provided")
	})

	t.Run("streams stdout", func(t *testing.T) {
		runner, err := New(&Config{Bin: "echo", Args: []string{"ETSLOG", "BEGIN", "1"}}, zap.NewNop())
		require.NoError(t, err)

		lines := []string{}
		err = runner.Stream(context.Background(), func(line string) { lines = append(lines, line) })
		assert.NoError(t, err)
		assert.Equal(t, []string{"ETSLOG BEGIN 1"}, lines)
	})

	t.Run("passes env", func(t *testing.T) {
		runner, err := New(&Config{Bin: "sh", Args: []string{"-c", "echo $ETS_NETWORK"}, Env: map[string]string{"ETS_NETWORK": "mumbai"}}, zap.NewNop())
		require.NoError(t, err)

		lines := []string{}
		err = runner.Stream(context.Background(), func(line string) { lines = append(lines, line) })
		assert.NoError(t, err)
		assert.Equal(t, []string{"mumbai"}, lines)
	})

	t.Run("interrupted on cancel", func(t *testing.T) {
		runner, err := New(&Config{Bin: "sleep", Args: []string{"10"}, KillTimeout: time.Second}, zap.NewNop())
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()

		err = runner.Stream(ctx, func(string) {})
		assert.Error(t, err)
	})
}

func TestParseEnv(t *testing.T) {
	env, err := ParseEnv("")
	require.NoError(t, err)
	assert.Empty(t, env)

	env, err = ParseEnv("RPC_URL=http://localhost:8545, START=15000000")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"RPC_URL": "http://localhost:8545", "START": "15000000"}, env)

	_, err = ParseEnv("RPC_URL")
	assert.EqualError(t, err, `invalid env entry "RPC_URL", expected KEY=VALUE`)
}
