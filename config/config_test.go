package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte("max_steps: 500\nverbose: true\ncolor: never\nvars:\n  x0: 5\n  x1: 7\n"))
	require.NoError(t, err)
	assert.Equal(t, uint64(500), cfg.MaxSteps)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, ColorNever, cfg.Color)
	assert.Equal(t, map[string]uint64{"x0": 5, "x1": 7}, cfg.Vars)
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte("verbose: false\n"))
	require.NoError(t, err)
	assert.Equal(t, ColorAuto, cfg.Color)
	assert.Zero(t, cfg.MaxSteps)
	assert.Nil(t, cfg.Vars)
}

func TestParseRejectsBadValues(t *testing.T) {
	_, err := Parse([]byte("color: rainbow\n"))
	assert.ErrorContains(t, err, "color must be auto, always or never")

	_, err = Parse([]byte("vars:\n  x0: -1\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("max_steps: [1\n"))
	assert.Error(t, err)
}

func TestParseRejectsBadVarNames(t *testing.T) {
	for _, name := range []string{"LOOP", "1x", `"x 0"`, `"x-1"`} {
		_, err := Parse([]byte("vars:\n  " + name + ": 2\n"))
		assert.ErrorContains(t, err, "invalid variable name", name)
	}
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lwg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_steps: 42\n"), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), cfg.MaxSteps)
}

func TestLoadFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lwg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("color: always\n"), 0o644))
	t.Setenv(EnvVar, path)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ColorAlways, cfg.Color)
}

func TestLoadDefault(t *testing.T) {
	t.Setenv(EnvVar, "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "reading config")
}
