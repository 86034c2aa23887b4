package eval

import (
	"github.com/jpeter96/langInterpreterTranslator/ast"
	"tlog.app/go/errors"
)

// Goto evaluates a GOTO program by walking a program counter from the first
// instruction. The program stops at HALT or when the counter runs past the
// last instruction. Duplicate labels fail before any instruction runs; a jump
// to an undefined label fails when the jump is taken. Only backward jumps
// spend the step budget: without one the counter only moves forward.
func Goto(prog *ast.GotoProgram, opts Options) (Vars, error) {
	labels := make(map[string]int, len(prog.Instructions))
	for i, ins := range prog.Instructions {
		if ins.Label == "" {
			continue
		}
		if _, dup := labels[ins.Label]; dup {
			return nil, errors.Wrap(ErrDuplicateLabel, "label %s at instruction %d", ins.Label, i)
		}
		labels[ins.Label] = i
	}

	m := newMachine(opts)
	jump := func(pc int, label string) (int, error) {
		target, ok := labels[label]
		if !ok {
			return 0, errors.Wrap(ErrUndefinedLabel, "GOTO %s at instruction %d", label, pc)
		}
		if target <= pc {
			if err := m.step("GOTO %s at instruction %d", label, pc); err != nil {
				return 0, err
			}
		}
		m.trace("jump", "from", pc, "label", label, "to", target)
		return target, nil
	}

	pc := 0
	for pc < len(prog.Instructions) {
		switch st := prog.Instructions[pc].Stmt.(type) {
		case *ast.AssignStmt:
			if err := m.execAssign(st); err != nil {
				return nil, err
			}
			pc++
		case *ast.GotoStmt:
			next, err := jump(pc, st.Label)
			if err != nil {
				return nil, err
			}
			pc = next
		case *ast.IfGotoStmt:
			ok, err := m.cond(st.Condition)
			if err != nil {
				return nil, err
			}
			if !ok {
				pc++
				continue
			}
			next, err := jump(pc, st.Label)
			if err != nil {
				return nil, err
			}
			pc = next
		case *ast.HaltStmt:
			m.trace("halt", "pc", pc)
			return m.result(), nil
		default:
			return nil, errors.New("unknown GOTO statement %T at instruction %d", st, pc)
		}
	}
	return m.result(), nil
}
