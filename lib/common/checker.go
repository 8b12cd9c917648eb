package common

import (
	"reflect"
	"runtime"
	"strings"
)

// Checker carries the state shared by the check funcs of one pipeline.
type Checker interface {
	GetFuncs() []CheckerFunc
}

// CheckerDeferFunc is called after every check with the index of the func.
type CheckerDeferFunc func(int, Checker, error)

var DefaultDeferFunc CheckerDeferFunc = func(int, Checker, error) {}

type CheckerFunc func(Checker, ...interface{}) error

type DefaultChecker struct {
	Funcs []CheckerFunc
}

func (c *DefaultChecker) GetFuncs() []CheckerFunc {
	return c.Funcs
}

// RunChecker runs the check funcs in order and stops at the first error.
func RunChecker(checker Checker, deferFunc CheckerDeferFunc, args ...interface{}) error {
	if deferFunc == nil {
		deferFunc = DefaultDeferFunc
	}

	for i, f := range checker.GetFuncs() {
		err := f(checker, args...)
		deferFunc(i, checker, err)
		if err != nil {
			return err
		}
	}
	return nil
}

// CheckerFuncName is the short name of the check func, like `CheckHash`.
func CheckerFuncName(f CheckerFunc) string {
	fn := runtime.FuncForPC(reflect.ValueOf(f).Pointer())
	if fn == nil {
		return ""
	}

	name := fn.Name()
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
