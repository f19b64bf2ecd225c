// Package syncutils contains the mutexes that guard the shared state of the event runtime.
//
// The mutexes are backed by go-deadlock. Its detection is switched off until EnableDeadlockDetection is called, in which
// case they behave like the mutexes of the sync package.
package syncutils

import (
	"time"

	"github.com/sasha-s/go-deadlock"
)

// Mutex is a mutual exclusion lock.
type Mutex = deadlock.Mutex

// RWMutex is a reader/writer mutual exclusion lock.
type RWMutex = deadlock.RWMutex

func init() {
	deadlock.Opts.Disable = true
}

// EnableDeadlockDetection makes the mutexes report lock order violations and locks that can not be acquired within the
// given timeout. It has to be called before any of the mutexes is used.
func EnableDeadlockDetection(timeout time.Duration) {
	deadlock.Opts.DeadlockTimeout = timeout
	deadlock.Opts.Disable = false
}

// DeadlockDetectionEnabled returns true if EnableDeadlockDetection was called.
func DeadlockDetectionEnabled() bool {
	return !deadlock.Opts.Disable
}
