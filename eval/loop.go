package eval

import (
	"github.com/jpeter96/langInterpreterTranslator/ast"
	"tlog.app/go/errors"
)

// Loop evaluates a LOOP program. Each LOOP reads its control variable once on
// entry and runs its body exactly that many times, whatever the body does to
// the variable afterwards. A LOOP whose count exceeds the remaining step
// budget fails before its first iteration.
func Loop(prog *ast.LoopProgram, opts Options) (Vars, error) {
	m := newMachine(opts)
	if err := m.loopStmts(prog.Statements); err != nil {
		return nil, err
	}
	return m.result(), nil
}

func (m *machine) loopStmts(stmts []ast.LoopStatement) error {
	for _, s := range stmts {
		switch st := s.(type) {
		case *ast.AssignStmt:
			if err := m.execAssign(st); err != nil {
				return err
			}
		case *ast.LoopStmt:
			n := m.get(st.Var)
			if n > m.remaining() {
				return errors.Wrap(ErrStepLimit, "LOOP %s would run %d times, %d of %d steps left", st.Var, n, m.remaining(), m.limit)
			}
			m.trace("loop", "var", st.Var, "count", n)
			for i := uint64(0); i < n; i++ {
				if err := m.step("LOOP %s", st.Var); err != nil {
					return err
				}
				if err := m.loopStmts(st.Body); err != nil {
					return err
				}
			}
		default:
			return errors.New("unknown LOOP statement %T", s)
		}
	}
	return nil
}
