// Package driver loads mlua programs from files or git repositories, parses
// them, and runs them in order.
package driver

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"mlua/interpreter-go/pkg/ast"
	"mlua/interpreter-go/pkg/parser"
)

// DefaultConcurrency bounds how many sources LoadAll reads at once.
const DefaultConcurrency = 4

// LoadError reports a failure to obtain program text, as opposed to a
// failure to lex or parse it.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("loader: %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Unit is one loaded program. Err is set when reading, lexing, or parsing
// failed; Program is nil in that case.
type Unit struct {
	Name    string
	Path    string
	Text    string
	Program *ast.Program
	Cached  bool
	Err     error
}

// Loader reads sources and parses them, memoizing parsed programs.
type Loader struct {
	cache       *ProgramCache
	concurrency int
}

// NewLoader returns a loader backed by cache. A nil cache disables
// memoization.
func NewLoader(cache *ProgramCache) *Loader {
	return &Loader{cache: cache, concurrency: DefaultConcurrency}
}

// SetConcurrency changes the LoadAll limit; values below one mean
// sequential loading.
func (l *Loader) SetConcurrency(n int) {
	if n < 1 {
		n = 1
	}
	l.concurrency = n
}

// Load reads src and parses it. Read failures come back as *LoadError; lexer
// and parser failures keep their own types. The returned unit is populated
// even on error.
func (l *Loader) Load(ctx context.Context, src Source) (*Unit, error) {
	if src == nil {
		return nil, fmt.Errorf("loader: nil source")
	}
	unit := &Unit{Name: src.Name()}
	path, text, err := src.Read(ctx)
	unit.Path = path
	if err != nil {
		unit.Err = &LoadError{Source: path, Err: err}
		return unit, unit.Err
	}
	unit.Text = text

	if program, ok := l.cache.Get(text); ok {
		unit.Program = program
		unit.Cached = true
		return unit, nil
	}
	program, err := parser.ParseSource(text)
	if err != nil {
		unit.Err = err
		return unit, err
	}
	l.cache.Add(text, program)
	unit.Program = program
	return unit, nil
}

// LoadAll loads every source concurrently and returns units in source order.
// A failing source does not stop the others; inspect each Unit.Err.
func (l *Loader) LoadAll(ctx context.Context, sources []Source) []*Unit {
	units := make([]*Unit, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	limit := l.concurrency
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)
	for idx, src := range sources {
		g.Go(func() error {
			unit, err := l.Load(gctx, src)
			if unit == nil {
				unit = &Unit{Err: err}
			}
			units[idx] = unit
			return nil
		})
	}
	_ = g.Wait()
	return units
}
