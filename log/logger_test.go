package log_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/oneshot/log"
)

// TestLogger tests the logger by using the leveled logging methods and the ability to create nested loggers with
// individual log levels.
func TestLogger(t *testing.T) {
	var output bytes.Buffer

	logger := log.NewLogger(log.WithName("app"), log.WithOutput(&output))
	logger.LogDebug("invisible due to log level")
	require.Empty(t, output.String())

	logger.SetLogLevel(log.LevelDebug)
	logger.LogDebug("dispatched", "data", 5)
	require.Contains(t, output.String(), "DEBUG")
	require.Contains(t, output.String(), "app")
	require.Contains(t, output.String(), "dispatched")
	require.Contains(t, output.String(), `"data": 5`)

	effectLogger := logger.NewChildLogger("effect")
	require.Equal(t, "app.effect", effectLogger.LogPath())
	require.Equal(t, log.LevelDebug, effectLogger.LogLevel())

	effectLogger.SetLogLevel(log.LevelWarning)
	output.Reset()
	effectLogger.LogInfof("consumed %d", 1)
	require.Empty(t, output.String())

	effectLogger.LogErrorf("handler failed: %s", "boom")
	require.Contains(t, output.String(), "app.effect")
	require.Contains(t, output.String(), "handler failed: boom")

	require.Equal(t, "effect0", logger.NewChildLogger("effect", true).LogName())
	require.Equal(t, "effect1", logger.NewChildLogger("effect", true).LogName())
}

func TestEmptyLogger(t *testing.T) {
	log.EmptyLogger.LogError("nothing happens")
	log.EmptyLogger.SetLogLevel(log.LevelDebug)

	require.Equal(t, log.LevelInfo, log.EmptyLogger.LogLevel())
	require.Equal(t, log.EmptyLogger, log.EmptyLogger.NewChildLogger("child"))
	require.NoError(t, log.EmptyLogger.Sync())
}

func TestLevelFromString(t *testing.T) {
	level, err := log.LevelFromString("warn")
	require.NoError(t, err)
	require.Equal(t, log.LevelWarning, level)

	_, err = log.LevelFromString("loud")
	require.Error(t, err)
}

func TestNewLoggerFromParameters(t *testing.T) {
	var output bytes.Buffer

	logger, err := log.NewLoggerFromParameters("demo", &log.Parameters{Level: "warn", TimeFormat: "15:04"}, log.WithOutput(&output))
	require.NoError(t, err)
	require.Equal(t, "demo", logger.LogName())
	require.Equal(t, log.LevelWarning, logger.LogLevel())

	logger.LogInfo("invisible due to log level")
	require.Empty(t, output.String())

	_, err = log.NewLoggerFromParameters("demo", &log.Parameters{Level: "loud"})
	require.Error(t, err)
}
