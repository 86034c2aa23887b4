package ast

import "fmt"

// Check validates an AST without modifying it.
type Check[T Node] interface {
	Name() string
	Check(prog T) error
}

// CheckFunc adapts a named function to the Check interface.
type CheckFunc[T Node] struct {
	N string
	F func(T) error
}

func (c CheckFunc[T]) Name() string        { return c.N }
func (c CheckFunc[T]) Check(prog T) error { return c.F(prog) }

// CheckChain runs checks in order, stopping at the first error.
type CheckChain[T Node] []Check[T]

// Run executes each check in sequence. Returns nil if all pass.
func (cc CheckChain[T]) Run(prog T) error {
	for _, c := range cc {
		if err := c.Check(prog); err != nil {
			return err
		}
	}
	return nil
}

// GotoChecks returns the structural checks for GOTO programs: unique labels
// and resolvable jump targets. The evaluator performs the same checks at run
// time; these let tools report problems before translating.
func GotoChecks() CheckChain[*GotoProgram] {
	return CheckChain[*GotoProgram]{
		CheckFunc[*GotoProgram]{N: "unique-labels", F: checkUniqueLabels},
		CheckFunc[*GotoProgram]{N: "jump-targets", F: checkJumpTargets},
	}
}

func checkUniqueLabels(prog *GotoProgram) error {
	seen := make(map[string]int, len(prog.Instructions))
	for i, ins := range prog.Instructions {
		if ins.Label == "" {
			continue
		}
		if first, ok := seen[ins.Label]; ok {
			return fmt.Errorf("duplicate label %q at instructions %d and %d", ins.Label, first, i)
		}
		seen[ins.Label] = i
	}
	return nil
}

func checkJumpTargets(prog *GotoProgram) error {
	labels := LabelIndex(prog)
	for i, ins := range prog.Instructions {
		target := JumpTarget(ins.Stmt)
		if target == "" {
			continue
		}
		if _, ok := labels[target]; !ok {
			return fmt.Errorf("instruction %d jumps to undefined label %q", i, target)
		}
	}
	return nil
}

// LabelIndex maps each label of prog to its instruction index. When a label
// is duplicated the first occurrence wins.
func LabelIndex(prog *GotoProgram) map[string]int {
	idx := make(map[string]int, len(prog.Instructions))
	for i, ins := range prog.Instructions {
		if ins.Label == "" {
			continue
		}
		if _, ok := idx[ins.Label]; !ok {
			idx[ins.Label] = i
		}
	}
	return idx
}

// JumpTarget returns the label a GOTO statement may jump to, or "" when the
// statement never jumps.
func JumpTarget(s GotoStatement) string {
	switch st := s.(type) {
	case *GotoStmt:
		return st.Label
	case *IfGotoStmt:
		return st.Label
	default:
		return ""
	}
}
