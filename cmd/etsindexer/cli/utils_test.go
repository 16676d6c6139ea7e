package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustReplaceDataDir(t *testing.T) {
	abs, err := filepath.Abs("./ets-data")
	require.NoError(t, err)

	examples := []struct {
		in       string
		expected string
	}{
		{"{data-dir}/store", abs + "/store"},
		{"/var/lib/ets/store", "/var/lib/ets/store"},
		{"", ""},
	}

	for _, test := range examples {
		t.Run(test.in, func(t *testing.T) {
			assert.Equal(t, test.expected, MustReplaceDataDir("./ets-data", test.in))
		})
	}
}

func TestDedentf(t *testing.T) {
	assert.Equal(t, "first 1\n  second\n", dedentf(`
		first %d
		  second
	`, 1))
}

func TestCheckLogsSource(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "extractor.log")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	got, err := checkLogsSource(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	_, err = checkLogsSource("")
	assert.EqualError(t, err, "source logs dir must be set")

	_, err = checkLogsSource(file)
	assert.Error(t, err)
}

func TestCheckNodeBinPath(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "extractor")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"), 0755))

	assert.NoError(t, checkNodeBinPath(bin))
	assert.EqualError(t, checkNodeBinPath(""), "extractor path must be set")
	assert.EqualError(t, checkNodeBinPath(dir), "path "+dir+" is a directory")
	assert.Error(t, checkNodeBinPath(filepath.Join(dir, "missing")))
}
