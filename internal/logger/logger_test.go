package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSetupReplacesGlobals(t *testing.T) {
	prev := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	l, err := Setup("production", "")
	require.NoError(t, err)

	assert.Same(t, l, zap.L())
}

func TestSetupWithFile(t *testing.T) {
	prev := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	file := filepath.Join(t.TempDir(), "storefront.log")
	l, err := Setup("development", file)
	require.NoError(t, err)

	l.Info("hello")
	_ = l.Sync()
	assert.FileExists(t, file)
}
