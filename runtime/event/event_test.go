package event

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

func TestEvent1_Hook(t *testing.T) {
	var sum atomic.Int64

	testEvent := New1[int]()
	hook := testEvent.Hook(func(i int) { sum.Add(int64(i)) })
	testEvent.Hook(func(i int) { sum.Add(int64(i)) })
	require.Equal(t, 2, testEvent.HookCount())

	testEvent.Trigger(2)
	require.EqualValues(t, 4, sum.Load())

	hook.Unhook()
	hook.Unhook()
	require.Equal(t, 1, testEvent.HookCount())

	testEvent.Trigger(3)
	require.EqualValues(t, 7, sum.Load())
	require.Equal(t, 2, testEvent.TriggerCount())
	require.True(t, testEvent.WasTriggered())
}

func TestEvent_MaxTriggerCount(t *testing.T) {
	var eventCount, hookCount atomic.Int64

	testEvent := New(WithMaxTriggerCount(2))
	testEvent.Hook(func() { eventCount.Inc() })
	testEvent.Hook(func() { hookCount.Inc() }, WithMaxTriggerCount(1))

	for i := 0; i < 5; i++ {
		testEvent.Trigger()
	}

	require.EqualValues(t, 2, eventCount.Load())
	require.EqualValues(t, 1, hookCount.Load())
	require.Equal(t, 1, testEvent.HookCount())
}

func TestEvent2_Trigger(t *testing.T) {
	var collected []string

	testEvent := New2[string, int]()
	testEvent.Hook(func(name string, count int) {
		collected = append(collected, name)
		require.Equal(t, len(collected), count)
	})

	testEvent.Trigger("a", 1)
	testEvent.Trigger("b", 2)

	require.Equal(t, []string{"a", "b"}, collected)
}
