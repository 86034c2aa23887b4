package ast

// Factory centralizes AST node creation for translation passes.
// Every call returns a new node, so passes never share nodes with their
// input program.
type Factory struct{}

// NewFactory returns a new Factory.
func NewFactory() *Factory { return &Factory{} }

// --- Expressions ---

// Num creates a number literal.
func (f *Factory) Num(v uint64) *NumberLit { return &NumberLit{Value: v} }

// Var creates a variable reference.
func (f *Factory) Var(name string) *VarRef { return &VarRef{Name: name} }

// Binary creates left op right.
func (f *Factory) Binary(left Expr, op ArithOp, right Expr) *BinaryExpr {
	return &BinaryExpr{Left: left, Op: op, Right: right}
}

// Compare creates a condition.
func (f *Factory) Compare(left Expr, op CompareOp, right Expr) *Cond {
	return &Cond{Left: left, Op: op, Right: right}
}

// --- Statements ---

// Assign creates target := value.
func (f *Factory) Assign(target string, value Expr) *AssignStmt {
	return &AssignStmt{Target: target, Value: value}
}

// SetConst creates target := v.
func (f *Factory) SetConst(target string, v uint64) *AssignStmt {
	return f.Assign(target, f.Num(v))
}

// Increment creates name := name + 1.
func (f *Factory) Increment(name string) *AssignStmt {
	return f.Assign(name, f.Binary(f.Var(name), Add, f.Num(1)))
}

// Decrement creates name := name - 1.
func (f *Factory) Decrement(name string) *AssignStmt {
	return f.Assign(name, f.Binary(f.Var(name), Monus, f.Num(1)))
}

// While creates WHILE cond DO body END.
func (f *Factory) While(cond *Cond, body []WhileStatement) *WhileStmt {
	return &WhileStmt{Condition: cond, Body: body}
}

// If creates IF cond THEN then [ELSE els] END. A nil els means no ELSE.
func (f *Factory) If(cond *Cond, then, els []WhileStatement) *IfStmt {
	return &IfStmt{Condition: cond, Then: then, Else: els}
}

// Goto creates GOTO label.
func (f *Factory) Goto(label string) *GotoStmt { return &GotoStmt{Label: label} }

// IfGoto creates IF cond THEN GOTO label.
func (f *Factory) IfGoto(cond *Cond, label string) *IfGotoStmt {
	return &IfGotoStmt{Condition: cond, Label: label}
}

// Halt creates HALT.
func (f *Factory) Halt() *HaltStmt { return &HaltStmt{} }

// --- Copy helpers ---

// CopyExpr returns a deep copy of e.
func (f *Factory) CopyExpr(e Expr) Expr {
	switch ex := e.(type) {
	case *NumberLit:
		return f.Num(ex.Value)
	case *VarRef:
		return f.Var(ex.Name)
	case *BinaryExpr:
		return f.Binary(f.CopyExpr(ex.Left), ex.Op, f.CopyExpr(ex.Right))
	default:
		panic("ast: unknown expression")
	}
}

// CopyCond returns a deep copy of c.
func (f *Factory) CopyCond(c *Cond) *Cond {
	return f.Compare(f.CopyExpr(c.Left), c.Op, f.CopyExpr(c.Right))
}

// NegateCond returns a deep copy of c with the comparison negated.
func (f *Factory) NegateCond(c *Cond) *Cond {
	return f.CopyCond(c).Not()
}

// CopyAssign returns a deep copy of a.
func (f *Factory) CopyAssign(a *AssignStmt) *AssignStmt {
	return f.Assign(a.Target, f.CopyExpr(a.Value))
}

// WhileProgramFrom creates a WHILE program carrying over the source file name.
func (f *Factory) WhileProgramFrom(sourceFile string, stmts []WhileStatement) *WhileProgram {
	return &WhileProgram{Statements: stmts, SourceFile: sourceFile}
}

// GotoProgramFrom creates a GOTO program carrying over the source file name.
func (f *Factory) GotoProgramFrom(sourceFile string, instrs []Instruction) *GotoProgram {
	return &GotoProgram{Instructions: instrs, SourceFile: sourceFile}
}
