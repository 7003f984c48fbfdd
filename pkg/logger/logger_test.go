package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNopBeforeInit(t *testing.T) {
	assert.NotPanics(t, func() {
		Info("not initialized", zap.Int("n", 1))
		With(zap.String("k", "v")).Debug("child")
	})
}

func TestInitLogger(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Level = "DEBUG"
	cfg.FileName = filepath.Join(dir, "bscp.log")
	cfg.Compress = false

	old := Logger
	defer func() { Logger, SugarLogger = old, old.Sugar() }()

	require.NoError(t, InitLogger(cfg))
	Info("hello", zap.String("who", "logger"))
	SugarLogger.Debugw("sugar", "n", 2)
	_ = Sync()

	data, err := os.ReadFile(cfg.FileName)
	require.NoError(t, err)
	assert.Contains(string(data), `"msg":"hello"`)
	assert.Contains(string(data), `"level":"INFO"`)
	assert.Contains(string(data), `"msg":"sugar"`)
}

func TestBadLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level = "LOUD"
	_, err := NewLogger(cfg)
	assert.Error(t, err)
}
