// Package verify checks translators against the reference evaluators: a
// program is run directly and through every translation route available for
// its language, and the final values of its variables are compared.
package verify

import (
	"fmt"
	"sort"

	"github.com/jpeter96/langInterpreterTranslator/ast"
	"github.com/jpeter96/langInterpreterTranslator/eval"
	"github.com/jpeter96/langInterpreterTranslator/lang"
	"github.com/jpeter96/langInterpreterTranslator/translate"
	"tlog.app/go/errors"
)

// Route is one translation path from a source language.
type Route struct {
	Name  string
	Apply func(*lang.Source) *lang.Source

	// Budget maps the step budget of the source to the one the translation
	// needs. Nil keeps it unchanged.
	Budget func(s *lang.Source, limit uint64) uint64
}

// Routes lists every translation path starting from l, including round trips
// back into l's own class (WHILE→GOTO→WHILE, GOTO→WHILE→GOTO).
func Routes(l lang.Lang, reserved ...string) []Route {
	lw := translate.LoopToWhilePass(reserved...)
	wg := translate.WhileToGotoPass(reserved...)
	gw := translate.GotoToWhilePass(reserved...)

	// Routes through goto-to-while pay one step per executed instruction of
	// the GOTO program that enters it.
	dispatch := func(g func(*lang.Source) *ast.GotoProgram) func(*lang.Source, uint64) uint64 {
		return func(s *lang.Source, limit uint64) uint64 {
			return translate.DispatchLimit(g(s), limit)
		}
	}

	switch l {
	case lang.Loop:
		lwg := ast.Then(lw, wg)
		lwgw := ast.Then(lwg, gw)
		return []Route{
			{Name: lw.Name(), Apply: func(s *lang.Source) *lang.Source { return lang.FromWhile(lw.Apply(s.Loop)) }},
			{Name: lwg.Name(), Apply: func(s *lang.Source) *lang.Source { return lang.FromGoto(lwg.Apply(s.Loop)) }},
			{
				Name:   lwgw.Name(),
				Apply:  func(s *lang.Source) *lang.Source { return lang.FromWhile(lwgw.Apply(s.Loop)) },
				Budget: dispatch(func(s *lang.Source) *ast.GotoProgram { return lwg.Apply(s.Loop) }),
			},
		}
	case lang.While:
		wgw := ast.Then(wg, gw)
		return []Route{
			{Name: wg.Name(), Apply: func(s *lang.Source) *lang.Source { return lang.FromGoto(wg.Apply(s.While)) }},
			{
				Name:   wgw.Name(),
				Apply:  func(s *lang.Source) *lang.Source { return lang.FromWhile(wgw.Apply(s.While)) },
				Budget: dispatch(func(s *lang.Source) *ast.GotoProgram { return wg.Apply(s.While) }),
			},
		}
	case lang.Goto:
		gwg := ast.Then(gw, wg)
		original := func(s *lang.Source) *ast.GotoProgram { return s.Goto }
		return []Route{
			{
				Name:   gw.Name(),
				Apply:  func(s *lang.Source) *lang.Source { return lang.FromWhile(gw.Apply(s.Goto)) },
				Budget: dispatch(original),
			},
			{
				Name:   gwg.Name(),
				Apply:  func(s *lang.Source) *lang.Source { return lang.FromGoto(gwg.Apply(s.Goto)) },
				Budget: dispatch(original),
			},
		}
	}
	return nil
}

// Outcome is the result of one route.
type Outcome struct {
	Route string
	Vars  eval.Vars
	Err   error
	Diffs []string // one entry per variable whose value differs
}

// OK reports whether the route agreed with direct evaluation.
func (o Outcome) OK() bool { return len(o.Diffs) == 0 }

// Report collects the direct result and every route outcome of one program.
type Report struct {
	Name     string
	Direct   eval.Vars
	Err      error // error from static checks or direct evaluation
	Outcomes []Outcome
}

// OK reports whether every route agreed with direct evaluation.
func (r *Report) OK() bool {
	for _, o := range r.Outcomes {
		if !o.OK() {
			return false
		}
	}
	return true
}

// Failed returns the number of routes that disagreed.
func (r *Report) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if !o.OK() {
			n++
		}
	}
	return n
}

// Program evaluates src directly and through each route. Initial variables
// in opts are reserved so no translator allocates them as fresh names.
//
// When direct evaluation fails, a route agrees only if it fails for the same
// reason. A route with a Budget runs with the scaled budget; it may finish a
// program that ran out of steps directly, which counts as agreement. Static
// check failures stop verification before any route runs.
func Program(name string, src *lang.Source, opts eval.Options) *Report {
	r := &Report{Name: name}
	if err := src.Check(); err != nil {
		r.Err = err
		return r
	}

	reserved := make([]string, 0, len(opts.Vars))
	for v := range opts.Vars {
		reserved = append(reserved, v)
	}
	sort.Strings(reserved)

	observed := src.Idents()
	for v := range opts.Vars {
		observed[v] = true
	}

	r.Direct, r.Err = src.Eval(opts)
	for _, route := range Routes(src.Lang, reserved...) {
		o := Outcome{Route: route.Name}
		ropts := opts
		if route.Budget != nil {
			ropts.MaxSteps = route.Budget(src, opts.StepLimit())
		}
		o.Vars, o.Err = route.Apply(src).Eval(ropts)
		if route.Budget != nil && o.Err == nil && errors.Is(r.Err, eval.ErrStepLimit) {
			r.Outcomes = append(r.Outcomes, o)
			continue
		}
		o.Diffs = compare(r.Direct, r.Err, o.Vars, o.Err, observed)
		r.Outcomes = append(r.Outcomes, o)
	}
	return r
}

func compare(want eval.Vars, wantErr error, got eval.Vars, gotErr error, observed map[string]bool) []string {
	switch {
	case wantErr != nil && gotErr != nil:
		if w, g := sentinel(wantErr), sentinel(gotErr); w != g {
			return []string{fmt.Sprintf("direct evaluation failed (%v) but translation failed differently (%v)", wantErr, gotErr)}
		}
		return nil
	case wantErr != nil:
		return []string{fmt.Sprintf("direct evaluation failed (%v) but translation succeeded", wantErr)}
	case gotErr != nil:
		return []string{fmt.Sprintf("translation failed: %v", gotErr)}
	}

	names := make([]string, 0, len(observed))
	for name := range observed {
		names = append(names, name)
	}
	sort.Strings(names)

	var diffs []string
	for _, name := range names {
		if want[name] != got[name] {
			diffs = append(diffs, fmt.Sprintf("%s: want %d, got %d", name, want[name], got[name]))
		}
	}
	return diffs
}

var sentinels = []error{
	eval.ErrStepLimit,
	eval.ErrOverflow,
	eval.ErrDuplicateLabel,
	eval.ErrUndefinedLabel,
}

// sentinel returns the eval error err wraps, or nil.
func sentinel(err error) error {
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s
		}
	}
	return nil
}
