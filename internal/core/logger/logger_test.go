package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"ecommerce-services/internal/core/config"
)

func TestBuildLevel(t *testing.T) {
	l, cleanup := Build(Options{Level: "warn"})
	defer cleanup()
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	l2, cleanup2 := Build(Options{Level: "nonsense"})
	defer cleanup2()
	assert.True(t, l2.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l2.Core().Enabled(zapcore.DebugLevel))
}

func TestNewWritesRotatedFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.log")
	l, cleanup := New(config.Log{
		Level: "info",
		JSON:  true,
		File:  config.FileRotate{Enable: true, Filename: file, MaxSizeMB: 1},
	}, "user-service")

	l.Info("hello", zap.String("k", "v"))
	cleanup()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"service":"user-service"`)
	assert.Contains(t, string(data), `"k":"v"`)
}

func TestToStdLogger(t *testing.T) {
	file := filepath.Join(t.TempDir(), "std.log")
	l, cleanup := Build(Options{Level: "info", JSON: true, Rotate: config.FileRotate{Enable: true, Filename: file}})

	ToStdLogger(l, zapcore.WarnLevel).Print("slow query")
	cleanup()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"level":"warn"`)
	assert.Contains(t, string(data), "slow query")
}
