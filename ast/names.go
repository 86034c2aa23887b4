package ast

// Identifier scans. Each function walks the whole program, nested bodies
// included, and returns every variable and label name it mentions.

// LoopIdents returns all identifiers used in a LOOP program.
func LoopIdents(prog *LoopProgram) map[string]bool {
	used := make(map[string]bool)
	collectLoop(prog.Statements, used)
	return used
}

// WhileIdents returns all identifiers used in a WHILE program.
func WhileIdents(prog *WhileProgram) map[string]bool {
	used := make(map[string]bool)
	collectWhile(prog.Statements, used)
	return used
}

// GotoIdents returns all identifiers used in a GOTO program, labels included.
func GotoIdents(prog *GotoProgram) map[string]bool {
	used := make(map[string]bool)
	for _, ins := range prog.Instructions {
		if ins.Label != "" {
			used[ins.Label] = true
		}
		switch st := ins.Stmt.(type) {
		case *AssignStmt:
			collectAssign(st, used)
		case *GotoStmt:
			used[st.Label] = true
		case *IfGotoStmt:
			collectCond(st.Condition, used)
			used[st.Label] = true
		}
	}
	return used
}

// ExprVars adds every variable read by e to used.
func ExprVars(e Expr, used map[string]bool) {
	switch ex := e.(type) {
	case *VarRef:
		used[ex.Name] = true
	case *BinaryExpr:
		ExprVars(ex.Left, used)
		ExprVars(ex.Right, used)
	}
}

func collectCond(c *Cond, used map[string]bool) {
	ExprVars(c.Left, used)
	ExprVars(c.Right, used)
}

func collectAssign(a *AssignStmt, used map[string]bool) {
	used[a.Target] = true
	ExprVars(a.Value, used)
}

func collectLoop(stmts []LoopStatement, used map[string]bool) {
	for _, s := range stmts {
		switch st := s.(type) {
		case *AssignStmt:
			collectAssign(st, used)
		case *LoopStmt:
			used[st.Var] = true
			collectLoop(st.Body, used)
		}
	}
}

func collectWhile(stmts []WhileStatement, used map[string]bool) {
	for _, s := range stmts {
		switch st := s.(type) {
		case *AssignStmt:
			collectAssign(st, used)
		case *WhileStmt:
			collectCond(st.Condition, used)
			collectWhile(st.Body, used)
		case *IfStmt:
			collectCond(st.Condition, used)
			collectWhile(st.Then, used)
			collectWhile(st.Else, used)
		}
	}
}
