package scope

import (
	"github.com/iotaledger/oneshot/log"
	"github.com/iotaledger/oneshot/runtime/options"
)

// WithPoolSize sets the maximum number of tasks that are executed concurrently by the scope tree (values <= 0 mean
// unbounded).
func WithPoolSize(poolSize int) options.Option[Scope] {
	return func(s *Scope) {
		s.optsPoolSize = poolSize
	}
}

// WithLogger sets the logger that is used to report failures of the scope tree.
func WithLogger(logger log.Logger) options.Option[Scope] {
	return func(s *Scope) {
		s.logger = logger
	}
}

// WithName sets the name of the scope that is used in log messages.
func WithName(name string) options.Option[Scope] {
	return func(s *Scope) {
		s.name = name
	}
}
