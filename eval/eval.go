// Package eval holds the reference evaluators of the LOOP, WHILE and GOTO
// languages. They define the meaning every translated program must
// reproduce: given a program and optional initial variables, each evaluator
// returns the final value of every variable.
//
// Each call owns a private variable store (and, for GOTO, a private label
// map), so one AST may be evaluated concurrently with different inputs.
package eval

import (
	"fmt"

	"github.com/jpeter96/langInterpreterTranslator/ast"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"
)

// DefaultMaxSteps is the safety ceiling used when Options.MaxSteps is zero.
//
// One evaluation has one step budget. A step is a LOOP iteration, a WHILE
// iteration or a backward GOTO jump (a jump to the current instruction or an
// earlier one). These are exactly what each other become under translation,
// so a program and its translations run out of budget together.
const DefaultMaxSteps = 10_000_000

var (
	// ErrStepLimit reports that an evaluation used up its step budget.
	ErrStepLimit = errors.New("possible infinite loop")

	// ErrDuplicateLabel reports a label defined more than once in a GOTO
	// program.
	ErrDuplicateLabel = errors.New("duplicate label")

	// ErrUndefinedLabel reports a jump to a label that does not exist.
	ErrUndefinedLabel = errors.New("undefined label")

	// ErrOverflow reports an addition whose result does not fit in 64 bits.
	ErrOverflow = errors.New("arithmetic overflow")
)

// Vars maps variable names to natural numbers.
type Vars map[string]uint64

// Options configures one evaluation.
type Options struct {
	// Vars are initial values. Each one is pinned: the program's first
	// assignment to that variable is skipped, later ones apply normally.
	Vars Vars

	// Verbose traces every executed statement. Tracing never changes the
	// result.
	Verbose bool

	// Logger receives the verbose trace. Nil uses the tlog default logger.
	Logger *tlog.Logger

	// MaxSteps overrides DefaultMaxSteps when non-zero.
	MaxSteps uint64
}

// StepLimit returns the step budget of an evaluation with these options.
func (o Options) StepLimit() uint64 {
	if o.MaxSteps == 0 {
		return DefaultMaxSteps
	}
	return o.MaxSteps
}

// machine is the per-call state shared by the three evaluators.
type machine struct {
	vals   Vars
	locked map[string]bool
	opts   Options
	limit  uint64
	steps  uint64
}

func newMachine(opts Options) *machine {
	m := &machine{
		vals:   make(Vars, len(opts.Vars)),
		locked: make(map[string]bool, len(opts.Vars)),
		opts:   opts,
		limit:  opts.StepLimit(),
	}
	for name, v := range opts.Vars {
		m.vals[name] = v
		m.locked[name] = true
	}
	return m
}

func (m *machine) trace(msg string, kvs ...any) {
	if !m.opts.Verbose {
		return
	}
	if m.opts.Logger != nil {
		m.opts.Logger.Printw(msg, kvs...)
		return
	}
	tlog.Printw(msg, kvs...)
}

func (m *machine) get(name string) uint64 { return m.vals[name] }

// remaining returns the steps left in the budget.
func (m *machine) remaining() uint64 { return m.limit - m.steps }

// step spends one step of the budget.
func (m *machine) step(format string, args ...any) error {
	if m.steps >= m.limit {
		return errors.Wrap(ErrStepLimit, "%s: budget of %d steps used up", fmt.Sprintf(format, args...), m.limit)
	}
	m.steps++
	return nil
}

// assign stores v in name unless name is still pinned by an initial value,
// in which case the assignment is dropped and the pin released.
func (m *machine) assign(name string, v uint64) {
	if m.locked[name] {
		delete(m.locked, name)
		m.trace("assign skipped", "var", name, "kept", m.vals[name], "value", v)
		return
	}
	m.vals[name] = v
	m.trace("assign", "var", name, "value", v)
}

func (m *machine) execAssign(a *ast.AssignStmt) error {
	v, err := m.expr(a.Value)
	if err != nil {
		return err
	}
	m.assign(a.Target, v)
	return nil
}

func (m *machine) expr(e ast.Expr) (uint64, error) {
	switch ex := e.(type) {
	case *ast.NumberLit:
		return ex.Value, nil
	case *ast.VarRef:
		return m.get(ex.Name), nil
	case *ast.BinaryExpr:
		l, err := m.expr(ex.Left)
		if err != nil {
			return 0, err
		}
		r, err := m.expr(ex.Right)
		if err != nil {
			return 0, err
		}
		switch ex.Op {
		case ast.Add:
			sum := l + r
			if sum < l {
				return 0, errors.Wrap(ErrOverflow, "%d + %d", l, r)
			}
			return sum, nil
		case ast.Monus:
			if r >= l {
				return 0, nil
			}
			return l - r, nil
		default:
			return 0, errors.New("unknown operator %q", ex.Op)
		}
	default:
		return 0, errors.New("unknown expression %T", e)
	}
}

func (m *machine) cond(c *ast.Cond) (bool, error) {
	l, err := m.expr(c.Left)
	if err != nil {
		return false, err
	}
	r, err := m.expr(c.Right)
	if err != nil {
		return false, err
	}
	switch c.Op {
	case ast.Eq:
		return l == r, nil
	case ast.Ne:
		return l != r, nil
	case ast.Lt:
		return l < r, nil
	case ast.Gt:
		return l > r, nil
	case ast.Le:
		return l <= r, nil
	case ast.Ge:
		return l >= r, nil
	default:
		return false, errors.New("unknown comparison %q", c.Op)
	}
}

// result hands the store to the caller. The machine must not be used
// afterwards.
func (m *machine) result() Vars {
	return m.vals
}
