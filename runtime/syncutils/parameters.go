package syncutils

import (
	"time"
)

// Parameters contains the debug settings of the mutexes.
type Parameters struct {
	// DeadlockDetection enables the deadlock detection of the mutexes.
	DeadlockDetection bool `default:"false" usage:"report locks that are held for longer than the deadlock timeout"`

	// DeadlockTimeout is the time after which a lock that can not be acquired is reported.
	DeadlockTimeout time.Duration `default:"20s" usage:"the time after which a blocked lock is reported"`
}

// ParamsSyncUtils contains the configuration of the mutexes.
var ParamsSyncUtils = &Parameters{}

// ApplyParameters enables the deadlock detection if the given parameters ask for it.
func ApplyParameters(params *Parameters) {
	if params.DeadlockDetection {
		EnableDeadlockDetection(params.DeadlockTimeout)
	}
}
