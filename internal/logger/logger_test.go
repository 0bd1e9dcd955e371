// SPDX-License-Identifier: MIT

package logger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/dynhung/internal/logger"
)

func TestNew(t *testing.T) {
	for _, dev := range []bool{true, false} {
		log, err := logger.New("debug", dev)
		require.NoError(t, err)
		require.True(t, log.Core().Enabled(zapcore.DebugLevel))
	}

	log, err := logger.New("warn", false)
	require.NoError(t, err)
	require.False(t, log.Core().Enabled(zapcore.InfoLevel))
	require.True(t, log.Core().Enabled(zapcore.ErrorLevel))
}

func TestNew_BadLevel(t *testing.T) {
	_, err := logger.New("loud", false)
	require.Error(t, err)
	require.Contains(t, err.Error(), "logger:")
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewConsole(&buf, zapcore.InfoLevel)
	log.Debug("hidden")
	log.Info("shown", zap.Int("n", 3))
	require.NoError(t, log.Sync())

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "shown")
	require.Contains(t, out, "3")
}
