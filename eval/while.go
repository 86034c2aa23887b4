package eval

import (
	"github.com/jpeter96/langInterpreterTranslator/ast"
	"tlog.app/go/errors"
)

// While evaluates a WHILE program. A WHILE re-evaluates its condition before
// every iteration; an IF evaluates its condition once.
func While(prog *ast.WhileProgram, opts Options) (Vars, error) {
	m := newMachine(opts)
	if err := m.whileStmts(prog.Statements); err != nil {
		return nil, err
	}
	return m.result(), nil
}

func (m *machine) whileStmts(stmts []ast.WhileStatement) error {
	for _, s := range stmts {
		switch st := s.(type) {
		case *ast.AssignStmt:
			if err := m.execAssign(st); err != nil {
				return err
			}
		case *ast.WhileStmt:
			if err := m.execWhile(st); err != nil {
				return err
			}
		case *ast.IfStmt:
			ok, err := m.cond(st.Condition)
			if err != nil {
				return err
			}
			if m.opts.Verbose {
				m.trace("if", "cond", ast.FormatCond(st.Condition), "taken", ok)
			}
			branch := st.Else
			if ok {
				branch = st.Then
			}
			if err := m.whileStmts(branch); err != nil {
				return err
			}
		default:
			return errors.New("unknown WHILE statement %T", s)
		}
	}
	return nil
}

func (m *machine) execWhile(w *ast.WhileStmt) error {
	var iterations uint64
	for {
		ok, err := m.cond(w.Condition)
		if err != nil {
			return err
		}
		if !ok {
			m.trace("while done", "cond", ast.FormatCond(w.Condition), "iterations", iterations)
			return nil
		}
		iterations++
		if err := m.step("WHILE %s", ast.FormatCond(w.Condition)); err != nil {
			return err
		}
		if err := m.whileStmts(w.Body); err != nil {
			return err
		}
	}
}
