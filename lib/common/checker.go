package common

import (
	"reflect"
	"runtime"

	logging "github.com/inconshreveable/log15"
)

type Checker interface {
	GetFuncs() []CheckerFunc
}

type CheckerFunc func(Checker, ...interface{}) error

// CheckerDeferFunc is called after each checker func with its index and
// result.
type CheckerDeferFunc func(int, Checker, error)

var DefaultDeferFunc CheckerDeferFunc = func(int, Checker, error) {}

// NewLogDeferFunc returns the CheckerDeferFunc which logs the name of the
// checker func that failed.
func NewLogDeferFunc(l logging.Logger) CheckerDeferFunc {
	return func(i int, c Checker, err error) {
		if err == nil {
			return
		}
		name := runtime.FuncForPC(reflect.ValueOf(c.GetFuncs()[i]).Pointer()).Name()
		l.Debug("checker stopped", "index", i, "func", name, "error", err)
	}
}

type DefaultChecker struct {
	Funcs []CheckerFunc
}

func (c *DefaultChecker) GetFuncs() []CheckerFunc {
	return c.Funcs
}

// RunChecker runs the funcs of checker in order and stops at the first
// error.
func RunChecker(checker Checker, deferFunc CheckerDeferFunc, args ...interface{}) (err error) {
	if deferFunc == nil {
		deferFunc = DefaultDeferFunc
	}

	for i, f := range checker.GetFuncs() {
		err = f(checker, args...)
		deferFunc(i, checker, err)
		if err != nil {
			return
		}
	}

	return nil
}
