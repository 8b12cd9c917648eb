package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorsClone(t *testing.T) {
	e := AlreadyVoted
	e0 := AlreadyVoted.Clone()
	require.NotEqual(t, fmt.Sprintf("%p", e), fmt.Sprintf("%p", e0))

	e0.SetData("voter", "GABC")
	require.Empty(t, e.Data)
	require.Equal(t, "GABC", e0.Data["voter"])
}

func TestErrorsIs(t *testing.T) {
	cloned := InsufficientPayment.Clone().SetData("required", "6.9")

	require.True(t, stderrors.Is(cloned, InsufficientPayment))
	require.False(t, stderrors.Is(cloned, InvalidCurrency))
	require.Equal(t, InsufficientPayment.Code, Code(cloned))
	require.Equal(t, uint(0), Code(stderrors.New("plain")))
}

func TestErrorsSerialize(t *testing.T) {
	b, err := VotingClosed.Serialize()
	require.NoError(t, err)
	require.Equal(t, `{"code":113,"message":"voting has ended"}`, string(b))
	require.Equal(t, string(b), VotingClosed.Error())
}

func TestErrorsWrapKeepsCode(t *testing.T) {
	err := Wrap(PollNotFound, "failed to load poll")
	require.Equal(t, PollNotFound.Code, Code(err))
	require.Contains(t, err.Error(), "failed to load poll")
}
