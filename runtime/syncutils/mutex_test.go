package syncutils

import (
	"testing"
	"time"

	"github.com/sasha-s/go-deadlock"
	"github.com/stretchr/testify/require"
)

func TestApplyParameters(t *testing.T) {
	require.False(t, DeadlockDetectionEnabled())

	ApplyParameters(&Parameters{DeadlockTimeout: time.Second})
	require.False(t, DeadlockDetectionEnabled())

	t.Cleanup(func() {
		deadlock.Opts.Disable = true
	})

	ApplyParameters(&Parameters{DeadlockDetection: true, DeadlockTimeout: time.Second})
	require.True(t, DeadlockDetectionEnabled())
	require.Equal(t, time.Second, deadlock.Opts.DeadlockTimeout)

	var mutex Mutex
	mutex.Lock()
	mutex.Unlock()
}
