package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"project-gallery-backend/internal/logging"
)

func TestNew_Levels(t *testing.T) {
	logger, err := logging.New("production", "warn")
	require.NoError(t, err)

	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestNew_Development(t *testing.T) {
	logger, err := logging.New("development", "debug")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := logging.New("development", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}
