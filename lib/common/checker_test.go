package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type countingChecker struct {
	DefaultChecker

	Visited []int
}

func checkFirst(c Checker, args ...interface{}) error {
	checker := c.(*countingChecker)
	checker.Visited = append(checker.Visited, 0)
	return nil
}

func checkSecond(c Checker, args ...interface{}) error {
	checker := c.(*countingChecker)
	checker.Visited = append(checker.Visited, 1)
	if len(args) > 0 {
		return args[0].(error)
	}
	return nil
}

func checkThird(c Checker, args ...interface{}) error {
	checker := c.(*countingChecker)
	checker.Visited = append(checker.Visited, 2)
	return nil
}

func TestRunChecker(t *testing.T) {
	funcs := []CheckerFunc{checkFirst, checkSecond, checkThird}

	{ // all passed
		checker := &countingChecker{DefaultChecker: DefaultChecker{Funcs: funcs}}
		require.NoError(t, RunChecker(checker, nil))
		require.Equal(t, []int{0, 1, 2}, checker.Visited)
	}

	{ // stops at the first error
		failed := errors.New("showme")

		var deferred []int
		var deferredErr error
		deferFunc := func(i int, c Checker, err error) {
			deferred = append(deferred, i)
			deferredErr = err
		}

		checker := &countingChecker{DefaultChecker: DefaultChecker{Funcs: funcs}}
		err := RunChecker(checker, deferFunc, failed)
		require.Equal(t, failed, err)
		require.Equal(t, []int{0, 1}, checker.Visited)
		require.Equal(t, []int{0, 1}, deferred)
		require.Equal(t, failed, deferredErr)
	}
}

func TestCheckerFuncName(t *testing.T) {
	require.Equal(t, "checkSecond", CheckerFuncName(checkSecond))
}
