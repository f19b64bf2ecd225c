package reactive

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVariable(t *testing.T) {
	myInt := NewVariable[int]()

	var wg sync.WaitGroup
	wg.Add(2)

	myInt.OnUpdate(func(prevValue, newValue int) {
		require.Equal(t, prevValue+1, newValue)

		if newValue == 3 {
			wg.Done()
		}
	})

	go myInt.OnUpdate(func(prevValue, newValue int) {
		if prevValue != 0 {
			require.Equal(t, prevValue+1, newValue)
		}

		if newValue == 3 {
			wg.Done()
		}
	})

	myInt.Set(1)
	myInt.Set(2)
	myInt.Set(3)

	wg.Wait()
}

func TestVariable_SkipsEqualValues(t *testing.T) {
	value := NewVariable[string]()

	var updates []string
	unsubscribe := value.OnUpdate(func(_, newValue string) {
		updates = append(updates, newValue)
	})

	value.Set("a")
	value.Set("a")
	value.Compute(func(currentValue string) string { return currentValue })
	value.Set("b")

	require.Equal(t, []string{"a", "b"}, updates)

	unsubscribe()
	value.Set("c")

	require.Equal(t, []string{"a", "b"}, updates)
	require.Equal(t, "c", value.Get())
}

func TestVariable_OnUpdateInitialValue(t *testing.T) {
	value := NewVariable[int]().Init(7)

	var received []int
	value.OnUpdate(func(prevValue, newValue int) {
		require.Equal(t, 0, prevValue)
		received = append(received, newValue)
	})
	require.Equal(t, []int{7}, received)

	empty := NewVariable[int]()

	var zeroTriggered, zeroSkipped bool
	empty.OnUpdate(func(_, _ int) { zeroTriggered = true }, true)
	empty.OnUpdate(func(_, _ int) { zeroSkipped = true })

	require.True(t, zeroTriggered)
	require.False(t, zeroSkipped)
}

func TestVariable_SubscribeWhileWriting(t *testing.T) {
	counter := NewVariable[int]()

	var writers sync.WaitGroup
	writers.Add(1)
	go func() {
		defer writers.Done()

		for i := 1; i <= 1000; i++ {
			counter.Set(i)
		}
	}()

	var received []int
	var receivedMutex sync.Mutex
	counter.OnUpdate(func(_, newValue int) {
		receivedMutex.Lock()
		defer receivedMutex.Unlock()

		received = append(received, newValue)
	}, true)

	writers.Wait()

	receivedMutex.Lock()
	defer receivedMutex.Unlock()

	require.NotEmpty(t, received)
	require.Equal(t, 1000, received[len(received)-1])
	for i := 1; i < len(received); i++ {
		require.Equal(t, received[i-1]+1, received[i], "changes must be delivered in order without gaps")
	}
}

func TestVariable_UnsubscribeFromCallback(t *testing.T) {
	value := NewVariable[int]()

	var calls int
	var unsubscribe func()
	unsubscribe = value.OnUpdate(func(_, _ int) {
		calls++
		unsubscribe()
	})

	value.Set(1)
	value.Set(2)

	require.Equal(t, 1, calls)
	require.Equal(t, 2, value.Get())
}
