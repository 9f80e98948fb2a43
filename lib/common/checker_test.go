package common

import (
	"errors"
	"testing"

	logging "github.com/inconshreveable/log15"
	"github.com/stretchr/testify/require"
)

func TestChecker(t *testing.T) {
	limit := 10
	funcs := []CheckerFunc{}
	var dones []interface{}
	for i := 0; i < limit; i++ {
		f := func(checker Checker, args ...interface{}) error {
			dones = append(dones, checker)
			return nil
		}
		funcs = append(funcs, f)
	}

	checker := &DefaultChecker{funcs}
	require.NoError(t, RunChecker(checker, DefaultDeferFunc))
	require.Equal(t, limit, len(dones))
}

type CheckerWithProperties struct {
	DefaultChecker

	P0 int
}

func TestCheckerWithProperties(t *testing.T) {
	funcs := []CheckerFunc{}
	f0 := func(c Checker, args ...interface{}) error {
		checker := c.(*CheckerWithProperties)
		checker.P0 = 99
		return nil
	}
	funcs = append(funcs, f0)

	f1 := func(c Checker, args ...interface{}) error {
		checker := c.(*CheckerWithProperties)
		if checker.P0 != 99 {
			return errors.New("failed to set property in Checker")
		}
		return nil
	}
	funcs = append(funcs, f1)

	checker := &CheckerWithProperties{DefaultChecker: DefaultChecker{funcs}}
	require.NoError(t, RunChecker(checker, DefaultDeferFunc))
}

func TestCheckerStopsAtFirstError(t *testing.T) {
	expected := errors.New("stop")

	var called []int
	funcs := []CheckerFunc{
		func(Checker, ...interface{}) error { called = append(called, 0); return nil },
		func(Checker, ...interface{}) error { called = append(called, 1); return expected },
		func(Checker, ...interface{}) error { called = append(called, 2); return nil },
	}

	var deferred []int
	deferFunc := func(i int, _ Checker, err error) {
		deferred = append(deferred, i)
	}

	err := RunChecker(&DefaultChecker{funcs}, deferFunc)
	require.Equal(t, expected, err)
	require.Equal(t, []int{0, 1}, called)
	require.Equal(t, []int{0, 1}, deferred)
}

func TestLogDeferFunc(t *testing.T) {
	var records []*logging.Record
	l := logging.New()
	l.SetHandler(logging.FuncHandler(func(r *logging.Record) error {
		records = append(records, r)
		return nil
	}))

	funcs := []CheckerFunc{
		func(Checker, ...interface{}) error { return nil },
		func(Checker, ...interface{}) error { return errors.New("stop") },
	}
	require.Error(t, RunChecker(&DefaultChecker{funcs}, NewLogDeferFunc(l)))
	require.Len(t, records, 1)
	require.Equal(t, "checker stopped", records[0].Msg)
}
