package log

import (
	"github.com/iotaledger/oneshot/runtime/options"
)

// Logger is a named, leveled logger that can spawn child loggers with their own log level.
type Logger interface {
	// LogName returns the name of the logger instance.
	LogName() string

	// LogPath returns the full path of the logger that is formed by a combination of the names of its ancestors and
	// its own name.
	LogPath() string

	// LogLevel returns the current log level of the logger.
	LogLevel() Level

	// SetLogLevel sets the log level of the logger.
	SetLogLevel(level Level)

	// LogDebug emits a log message with the DEBUG level and the given key value pairs.
	LogDebug(msg string, args ...any)

	// LogDebugf emits a formatted log message with the DEBUG level.
	LogDebugf(fmtString string, args ...any)

	// LogInfo emits a log message with the INFO level and the given key value pairs.
	LogInfo(msg string, args ...any)

	// LogInfof emits a formatted log message with the INFO level.
	LogInfof(fmtString string, args ...any)

	// LogWarn emits a log message with the WARN level and the given key value pairs.
	LogWarn(msg string, args ...any)

	// LogWarnf emits a formatted log message with the WARN level.
	LogWarnf(fmtString string, args ...any)

	// LogError emits a log message with the ERROR level and the given key value pairs.
	LogError(msg string, args ...any)

	// LogErrorf emits a formatted log message with the ERROR level.
	LogErrorf(fmtString string, args ...any)

	// NewChildLogger creates a new child logger with the given name. If enumerateChildren is true, the child logger
	// will extend the name with the number of existing child loggers with the same name.
	NewChildLogger(name string, enumerateChildren ...bool) Logger

	// Sync flushes any buffered log entries.
	Sync() error
}

// NewLogger creates a new logger with the given options.
// If no options are provided, the logger uses the info level and writes to stdout.
func NewLogger(opts ...options.Option[Options]) Logger {
	return newRootLogger(newOptions(opts...))
}

// EmptyLogger is a logger that does not log anything.
var EmptyLogger Logger = (*logger)(nil)
