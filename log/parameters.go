package log

import (
	"github.com/iotaledger/oneshot/runtime/options"
)

// Parameters contains the configurable settings of the root Logger.
type Parameters struct {
	// Level is the minimum level of the emitted messages.
	Level string `default:"info" usage:"the minimum enabled logging level (debug/info/warn/error)"`

	// TimeFormat is the layout of the timestamps.
	TimeFormat string `default:"2006-01-02T15:04:05.000Z07:00" usage:"the layout of the timestamps"`
}

// ParamsLogger contains the configuration of the root Logger.
var ParamsLogger = &Parameters{}

// NewLoggerFromParameters creates a new root Logger with the given name from the configured Parameters.
func NewLoggerFromParameters(name string, parameters *Parameters, opts ...options.Option[Options]) (Logger, error) {
	level, err := LevelFromString(parameters.Level)
	if err != nil {
		return nil, err
	}

	return NewLogger(append([]options.Option[Options]{
		WithName(name),
		WithLevel(level),
		WithTimeFormat(parameters.TimeFormat),
	}, opts...)...), nil
}
