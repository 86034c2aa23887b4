package translate

import "github.com/jpeter96/langInterpreterTranslator/ast"

// LoopToWhile rewrites every LOOP into a WHILE driven by a fresh counter:
//
//	LOOP x DO body END
//
// becomes
//
//	c := x;
//	WHILE c != 0 DO body'; c := c - 1 END
//
// The counter snapshots x once, and the body cannot name it, so the WHILE runs
// exactly as many times as the LOOP would. reserved names are avoided in
// addition to the program's own identifiers.
func LoopToWhile(prog *ast.LoopProgram, reserved ...string) *ast.WhileProgram {
	t := &loopTranslator{
		f:     ast.NewFactory(),
		names: NewNames(ast.LoopIdents(prog), reserved...),
	}
	return t.f.WhileProgramFrom(prog.SourceFile, t.stmts(prog.Statements))
}

type loopTranslator struct {
	f     *ast.Factory
	names *Names
}

func (t *loopTranslator) stmts(stmts []ast.LoopStatement) []ast.WhileStatement {
	out := make([]ast.WhileStatement, 0, len(stmts))
	for _, s := range stmts {
		switch st := s.(type) {
		case *ast.AssignStmt:
			out = append(out, t.f.CopyAssign(st))
		case *ast.LoopStmt:
			out = append(out, t.loop(st)...)
		default:
			panic("translate: unknown LOOP statement")
		}
	}
	return out
}

func (t *loopTranslator) loop(l *ast.LoopStmt) []ast.WhileStatement {
	// Nested loops allocate first; the shared allocator keeps every
	// counter distinct.
	body := t.stmts(l.Body)
	c := t.names.Var()
	body = append(body, t.f.Decrement(c))
	return []ast.WhileStatement{
		t.f.Assign(c, t.f.Var(l.Var)),
		t.f.While(t.f.Compare(t.f.Var(c), ast.Ne, t.f.Num(0)), body),
	}
}
