package translate

import (
	"math"
	"math/bits"

	"github.com/jpeter96/langInterpreterTranslator/ast"
)

// GotoToWhile simulates a GOTO program inside a single WHILE loop that
// dispatches on a fresh program counter variable:
//
//	pc := 0;
//	WHILE pc != n DO
//	  IF pc = 0 THEN ... ELSE IF pc = 1 THEN ... END END
//	END
//
// pc always holds the index of the next instruction and n, the instruction
// count, means halted. Jumps become plain assignments to pc, so forward and
// backward jumps are handled alike.
//
// The input is assumed valid (see ast.GotoChecks). A jump to an undefined
// label is compiled as pc := n, so the translated program halts cleanly at
// the point where eval.Goto would fail with eval.ErrUndefinedLabel. Callers
// that need the failure must run ast.GotoChecks first.
//
// The dispatch loop iterates once per executed instruction, so evaluate the
// result with the budget from DispatchLimit.
func GotoToWhile(prog *ast.GotoProgram, reserved ...string) *ast.WhileProgram {
	f := ast.NewFactory()
	names := NewNames(ast.GotoIdents(prog), reserved...)
	pc := names.Fresh(pcPrefix)
	n := uint64(len(prog.Instructions))
	labels := ast.LabelIndex(prog)

	jumpTo := func(label string) *ast.AssignStmt {
		if i, ok := labels[label]; ok {
			return f.SetConst(pc, uint64(i))
		}
		return f.SetConst(pc, n)
	}

	var dispatch []ast.WhileStatement
	for i := len(prog.Instructions) - 1; i >= 0; i-- {
		var body []ast.WhileStatement
		switch st := prog.Instructions[i].Stmt.(type) {
		case *ast.AssignStmt:
			body = []ast.WhileStatement{f.CopyAssign(st), f.Increment(pc)}
		case *ast.GotoStmt:
			body = []ast.WhileStatement{jumpTo(st.Label)}
		case *ast.IfGotoStmt:
			body = []ast.WhileStatement{f.If(
				f.CopyCond(st.Condition),
				[]ast.WhileStatement{jumpTo(st.Label)},
				[]ast.WhileStatement{f.Increment(pc)},
			)}
		case *ast.HaltStmt:
			body = []ast.WhileStatement{f.SetConst(pc, n)}
		default:
			panic("translate: unknown GOTO statement")
		}
		hit := f.Compare(f.Var(pc), ast.Eq, f.Num(uint64(i)))
		dispatch = []ast.WhileStatement{f.If(hit, body, dispatch)}
	}

	loop := f.While(f.Compare(f.Var(pc), ast.Ne, f.Num(n)), dispatch)
	return f.WhileProgramFrom(prog.SourceFile, []ast.WhileStatement{f.SetConst(pc, 0), loop})
}

// DispatchLimit returns the step budget that GotoToWhile(prog) needs to do the
// work prog does with limit steps. Between two backward jumps the program
// counter only grows, so each of the limit+1 stretches runs at most
// len(prog.Instructions) dispatch iterations. The result saturates at
// math.MaxUint64.
func DispatchLimit(prog *ast.GotoProgram, limit uint64) uint64 {
	n := uint64(len(prog.Instructions))
	if n == 0 {
		return limit
	}
	hi, lo := bits.Mul64(limit, n)
	lo, carry := bits.Add64(lo, n, 0)
	if hi != 0 || carry != 0 {
		return math.MaxUint64
	}
	return lo
}
