package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	assert := assert.New(t)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(wd)

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	def := DefaultConfig()
	assert.Equal(def.Log.Level, cfg.Log.Level)
	assert.Equal(def.Cache.Literals, cfg.Cache.Literals)
	assert.Equal("text", cfg.Output.Format)
	assert.Equal(time.Duration(0), cfg.Exec.Timeout)
	assert.Equal("./data", cfg.Store.Path)
}

func TestLoadConfigFile(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "bscp.yaml")
	data := []byte(`
log:
  level: DEBUG
  filename: ""
  console: true
cache:
  literals: 64
exec:
  timeout: 2s
  rate: 100
  burst: 10
output:
  format: yaml
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal("DEBUG", cfg.Log.Level)
	assert.Equal("", cfg.Log.FileName)
	assert.True(cfg.Log.Console)
	assert.Equal(64, cfg.Cache.Literals)
	assert.Equal(2*time.Second, cfg.Exec.Timeout)
	assert.Equal(100.0, cfg.Exec.Rate)
	assert.Equal(10, cfg.Exec.Burst)
	assert.Equal("yaml", cfg.Output.Format)
	// untouched keys keep their defaults
	assert.Equal(DefaultConfig().Log.MaxSize, cfg.Log.MaxSize)
}

func TestLoadConfigEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bscp.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  format: yaml\n"), 0644))

	os.Setenv("BSCP_OUTPUT_FORMAT", "cbor")
	defer os.Unsetenv("BSCP_OUTPUT_FORMAT")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "cbor", cfg.Output.Format)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
