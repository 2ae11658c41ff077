package driver

import (
	"fmt"
	"io"

	"mlua/interpreter-go/pkg/interpreter"
	"mlua/interpreter-go/pkg/runtime"
)

// Result records the outcome of one unit.
type Result struct {
	Name    string
	Path    string
	Skipped bool
	Err     error
	Store   map[byte]int32
}

// Failed reports whether the unit failed to load or run.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Runner executes loaded units in order. Each unit gets a fresh store unless
// SharedStore is set, in which case variables persist from one unit to the
// next.
type Runner struct {
	Stdout      io.Writer
	SharedStore bool

	// BeforeUnit, when set, is called ahead of each unit that will execute.
	BeforeUnit func(unit *Unit)
	// OnResult, when set, receives each result as soon as it is known.
	OnResult func(result Result)
}

// Run executes units in order. A unit that failed to load is skipped and
// reported; later units still run. A runtime panic such as division by zero
// is not recovered.
func (r *Runner) Run(units []*Unit) []Result {
	interp := interpreter.New(r.Stdout)
	store := runtime.NewStore()
	results := make([]Result, 0, len(units))
	for _, unit := range units {
		if unit == nil {
			continue
		}
		result := Result{Name: unit.Name, Path: unit.Path}
		if unit.Err != nil || unit.Program == nil {
			result.Skipped = true
			result.Err = unit.Err
			if result.Err == nil {
				result.Err = fmt.Errorf("%s: no program", unit.Name)
			}
			results = r.record(results, result)
			continue
		}
		if !r.SharedStore {
			store.Reset()
		}
		if r.BeforeUnit != nil {
			r.BeforeUnit(unit)
		}
		result.Err = interp.Execute(unit.Program, store)
		result.Store = store.Snapshot()
		results = r.record(results, result)
	}
	return results
}

func (r *Runner) record(results []Result, result Result) []Result {
	if r.OnResult != nil {
		r.OnResult(result)
	}
	return append(results, result)
}

// AnyFailed reports whether any result carries an error.
func AnyFailed(results []Result) bool {
	for _, res := range results {
		if res.Failed() {
			return true
		}
	}
	return false
}
