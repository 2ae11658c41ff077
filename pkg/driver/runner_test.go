package driver

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"mlua/interpreter-go/pkg/parser"
)

func mustUnit(t *testing.T, name, src string) *Unit {
	t.Helper()
	program, err := parser.ParseSource(src)
	require.NoError(t, err)
	return &Unit{Name: name, Path: name + ".lua", Text: src, Program: program}
}

func TestRunnerFreshStorePerUnit(t *testing.T) {
	units := []*Unit{
		mustUnit(t, "setter", "function f ( ) x = 41 print ( x ) end"),
		mustUnit(t, "reader", "function g ( ) x = + x 1 print ( x ) end"),
	}
	var out bytes.Buffer
	results := (&Runner{Stdout: &out}).Run(units)
	require.Equal(t, "41\n1\n", out.String())
	require.Len(t, results, 2)
	require.Equal(t, map[byte]int32{'x': 41}, results[0].Store)
	require.Equal(t, map[byte]int32{'x': 1}, results[1].Store)
	require.False(t, AnyFailed(results))
}

func TestRunnerSharedStore(t *testing.T) {
	units := []*Unit{
		mustUnit(t, "setter", "function f ( ) x = 41 end"),
		mustUnit(t, "reader", "function g ( ) x = + x 1 print ( x ) end"),
	}
	var out bytes.Buffer
	results := (&Runner{Stdout: &out, SharedStore: true}).Run(units)
	require.Equal(t, "42\n", out.String())
	require.Equal(t, map[byte]int32{'x': 42}, results[1].Store)
}

func TestRunnerSkipsFailedUnits(t *testing.T) {
	broken := &Unit{Name: "broken", Path: "broken.lua", Err: errors.New("boom")}
	units := []*Unit{
		broken,
		mustUnit(t, "ok", "function f ( ) print ( 7 ) end"),
		{Name: "empty", Path: "empty.lua"},
	}
	var out bytes.Buffer
	var seen []string
	var started []string
	runner := &Runner{
		Stdout:     &out,
		BeforeUnit: func(u *Unit) { started = append(started, u.Name) },
		OnResult:   func(r Result) { seen = append(seen, r.Name) },
	}
	results := runner.Run(units)
	require.Equal(t, "7\n", out.String())
	require.Equal(t, []string{"broken", "ok", "empty"}, seen)
	require.Equal(t, []string{"ok"}, started)
	require.True(t, results[0].Skipped)
	require.EqualError(t, results[0].Err, "boom")
	require.False(t, results[1].Failed())
	require.True(t, results[2].Skipped)
	require.EqualError(t, results[2].Err, "empty: no program")
	require.True(t, AnyFailed(results))
}

func TestRunnerDivisionByZeroPanics(t *testing.T) {
	units := []*Unit{mustUnit(t, "div", "function f ( ) x = / 1 0 end")}
	require.Panics(t, func() {
		(&Runner{}).Run(units)
	})
}
