package translate

import "github.com/jpeter96/langInterpreterTranslator/ast"

// WhileToGoto flattens structured control flow into a labeled instruction
// list:
//
//	WHILE c DO b END            Ls: IF NOT c THEN GOTO Le; b; GOTO Ls; Le: ...
//	IF c THEN t END             IF NOT c THEN GOTO Le; t; Le: ...
//	IF c THEN t ELSE e END      IF NOT c THEN GOTO Lx; t; GOTO Le; Lx: e; Le: ...
//
// NOT c negates the comparison operator. A trailing HALT is always emitted,
// so a label closing the last block always has an instruction to sit on.
func WhileToGoto(prog *ast.WhileProgram, reserved ...string) *ast.GotoProgram {
	l := &linearizer{
		f:     ast.NewFactory(),
		names: NewNames(ast.WhileIdents(prog), reserved...),
		alias: make(map[string]string),
	}
	l.stmts(prog.Statements)
	l.emit(l.f.Halt())
	return l.f.GotoProgramFrom(prog.SourceFile, l.resolve())
}

type linearizer struct {
	f     *ast.Factory
	names *Names
	out   []ast.Instruction

	// pending is the label waiting for the next emitted instruction.
	pending string
	// alias maps labels that landed on an already labeled position to the
	// label that position carries.
	alias map[string]string
}

// place marks the next emitted instruction with label. An instruction holds
// one label, so a second label for the same position becomes an alias.
func (l *linearizer) place(label string) {
	if l.pending == "" {
		l.pending = label
		return
	}
	l.alias[label] = l.pending
}

func (l *linearizer) emit(s ast.GotoStatement) {
	l.out = append(l.out, ast.Instruction{Label: l.pending, Stmt: s})
	l.pending = ""
}

func (l *linearizer) stmts(stmts []ast.WhileStatement) {
	for _, s := range stmts {
		switch st := s.(type) {
		case *ast.AssignStmt:
			l.emit(l.f.CopyAssign(st))

		case *ast.WhileStmt:
			start, end := l.names.Label(), l.names.Label()
			l.place(start)
			l.emit(l.f.IfGoto(l.f.NegateCond(st.Condition), end))
			l.stmts(st.Body)
			l.emit(l.f.Goto(start))
			l.place(end)

		case *ast.IfStmt:
			if st.Else == nil {
				end := l.names.Label()
				l.emit(l.f.IfGoto(l.f.NegateCond(st.Condition), end))
				l.stmts(st.Then)
				l.place(end)
				continue
			}
			els, end := l.names.Label(), l.names.Label()
			l.emit(l.f.IfGoto(l.f.NegateCond(st.Condition), els))
			l.stmts(st.Then)
			l.emit(l.f.Goto(end))
			l.place(els)
			l.stmts(st.Else)
			l.place(end)

		default:
			panic("translate: unknown WHILE statement")
		}
	}
}

// resolve rewrites jumps to aliased labels so every target names a label
// that is actually attached to an instruction.
func (l *linearizer) resolve() []ast.Instruction {
	if len(l.alias) == 0 {
		return l.out
	}
	target := func(label string) string {
		if to, ok := l.alias[label]; ok {
			return to
		}
		return label
	}
	out := make([]ast.Instruction, len(l.out))
	for i, ins := range l.out {
		out[i] = ins
		switch st := ins.Stmt.(type) {
		case *ast.GotoStmt:
			out[i].Stmt = l.f.Goto(target(st.Label))
		case *ast.IfGotoStmt:
			out[i].Stmt = l.f.IfGoto(st.Condition, target(st.Label))
		}
	}
	return out
}
