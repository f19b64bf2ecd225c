package ierrors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/oneshot/ierrors"
)

var errBase = ierrors.New("base")

func TestWrap(t *testing.T) {
	err := ierrors.Wrapf(errBase, "handling %d", 1)
	require.True(t, ierrors.Is(err, errBase))
	require.Contains(t, err.Error(), "handling 1")
	require.Contains(t, fmt.Sprintf("%+v", err), "ierrors_test.go")

	require.NoError(t, ierrors.Wrap(nil, "noop"))
}

func TestChain(t *testing.T) {
	require.NoError(t, ierrors.Chain(nil, nil))

	other := ierrors.New("other")
	err := ierrors.Chain(nil, errBase, other)
	require.True(t, ierrors.Is(err, errBase))
	require.Equal(t, errBase.Error(), err.Error())
}
