package log

import (
	"go.uber.org/zap/zapcore"

	"github.com/iotaledger/oneshot/ierrors"
)

// Level is the type of log levels.
type Level = zapcore.Level

const (
	// LevelDebug is the log level for debug messages.
	LevelDebug = zapcore.DebugLevel

	// LevelInfo is the log level for info messages.
	LevelInfo = zapcore.InfoLevel

	// LevelWarning is the log level for warning messages.
	LevelWarning = zapcore.WarnLevel

	// LevelError is the log level for error messages.
	LevelError = zapcore.ErrorLevel
)

// LevelFromString returns the log level for the given string.
func LevelFromString(level string) (Level, error) {
	var parsedLevel Level
	if err := parsedLevel.UnmarshalText([]byte(level)); err != nil {
		return LevelInfo, ierrors.Wrapf(err, "unknown log level: %s", level)
	}

	return parsedLevel, nil
}
