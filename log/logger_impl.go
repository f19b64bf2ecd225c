package log

import (
	"strconv"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logger is the default implementation of the Logger interface.
type logger struct {
	// name is the name of the logger instance.
	name string

	// path is the full path of the logger that is formed by a combination of the names of its ancestors and its own
	// name.
	path string

	// level is the current log level of the logger.
	level zap.AtomicLevel

	// sugaredLogger is the zap logger that emits the messages.
	sugaredLogger *zap.SugaredLogger

	// encoder and output are shared by all loggers of the same tree.
	encoder zapcore.Encoder
	output  zapcore.WriteSyncer

	// childNameCounters holds the instance counters for enumerated child loggers.
	childNameCounters map[string]int

	// childNameCountersMutex is used to synchronize access to the childNameCounters.
	childNameCountersMutex sync.Mutex
}

// newRootLogger creates the root logger of a logger tree.
func newRootLogger(opts *Options) *logger {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(opts.TimeFormat)
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	return newLogger(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(opts.Output), "", opts.Name, opts.Level)
}

// newLogger creates a new logger instance with the given name that shares the encoder and output of its ancestors.
func newLogger(encoder zapcore.Encoder, output zapcore.WriteSyncer, parentPath, name string, level Level) *logger {
	path := name
	if parentPath != "" {
		path = parentPath + "." + name
	}

	l := &logger{
		name:              name,
		path:              path,
		level:             zap.NewAtomicLevelAt(level),
		encoder:           encoder,
		output:            output,
		childNameCounters: make(map[string]int),
	}

	l.sugaredLogger = zap.New(zapcore.NewCore(encoder, output, l.level)).Named(l.path).Sugar()

	return l
}

// LogName returns the name of the logger instance.
func (l *logger) LogName() string {
	if l == nil {
		return "<nil>"
	}

	return l.name
}

// LogPath returns the full path of the logger.
func (l *logger) LogPath() string {
	if l == nil {
		return "<nil>"
	}

	return l.path
}

// LogLevel returns the current log level of the logger.
func (l *logger) LogLevel() Level {
	if l == nil {
		return LevelInfo
	}

	return l.level.Level()
}

// SetLogLevel sets the log level of the logger.
func (l *logger) SetLogLevel(level Level) {
	if l != nil {
		l.level.SetLevel(level)
	}
}

// LogDebug emits a log message with the DEBUG level.
func (l *logger) LogDebug(msg string, args ...any) {
	if l != nil {
		l.sugaredLogger.Debugw(msg, args...)
	}
}

// LogDebugf emits a formatted log message with the DEBUG level.
func (l *logger) LogDebugf(fmtString string, args ...any) {
	if l != nil {
		l.sugaredLogger.Debugf(fmtString, args...)
	}
}

// LogInfo emits a log message with the INFO level.
func (l *logger) LogInfo(msg string, args ...any) {
	if l != nil {
		l.sugaredLogger.Infow(msg, args...)
	}
}

// LogInfof emits a formatted log message with the INFO level.
func (l *logger) LogInfof(fmtString string, args ...any) {
	if l != nil {
		l.sugaredLogger.Infof(fmtString, args...)
	}
}

// LogWarn emits a log message with the WARN level.
func (l *logger) LogWarn(msg string, args ...any) {
	if l != nil {
		l.sugaredLogger.Warnw(msg, args...)
	}
}

// LogWarnf emits a formatted log message with the WARN level.
func (l *logger) LogWarnf(fmtString string, args ...any) {
	if l != nil {
		l.sugaredLogger.Warnf(fmtString, args...)
	}
}

// LogError emits a log message with the ERROR level.
func (l *logger) LogError(msg string, args ...any) {
	if l != nil {
		l.sugaredLogger.Errorw(msg, args...)
	}
}

// LogErrorf emits a formatted log message with the ERROR level.
func (l *logger) LogErrorf(fmtString string, args ...any) {
	if l != nil {
		l.sugaredLogger.Errorf(fmtString, args...)
	}
}

// NewChildLogger creates a new child logger with the given name that inherits the current log level of its parent.
func (l *logger) NewChildLogger(name string, enumerateChildren ...bool) Logger {
	if l == nil {
		return EmptyLogger
	}

	if len(enumerateChildren) != 0 && enumerateChildren[0] {
		l.childNameCountersMutex.Lock()
		instanceID := l.childNameCounters[name]
		l.childNameCounters[name] = instanceID + 1
		l.childNameCountersMutex.Unlock()

		name += strconv.Itoa(instanceID)
	}

	return newLogger(l.encoder, l.output, l.path, name, l.LogLevel())
}

// Sync flushes any buffered log entries.
func (l *logger) Sync() error {
	if l == nil {
		return nil
	}

	return l.sugaredLogger.Sync()
}
