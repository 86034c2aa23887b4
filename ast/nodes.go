package ast

// Node is the interface for all AST nodes.
type Node interface {
	node()
}

// Expr is the interface for expression nodes.
type Expr interface {
	Node
	expr()
}

// LoopStatement is a statement of the LOOP language.
type LoopStatement interface {
	Node
	loopStmt()
}

// WhileStatement is a statement of the WHILE language.
type WhileStatement interface {
	Node
	whileStmt()
}

// GotoStatement is the statement part of a GOTO instruction.
type GotoStatement interface {
	Node
	gotoStmt()
}

// --- Expressions ---

// NumberLit is a natural-number literal.
type NumberLit struct {
	Value uint64
}

func (n *NumberLit) node() {}
func (n *NumberLit) expr() {}

// VarRef reads a variable. Unset variables read as 0.
type VarRef struct {
	Name string
}

func (v *VarRef) node() {}
func (v *VarRef) expr() {}

// ArithOp is a binary arithmetic operator.
type ArithOp string

const (
	Add   ArithOp = "+"
	Monus ArithOp = "-" // max(0, a-b)
)

// BinaryExpr represents left op right.
type BinaryExpr struct {
	Left  Expr
	Op    ArithOp
	Right Expr
}

func (b *BinaryExpr) node() {}
func (b *BinaryExpr) expr() {}

// --- Conditions ---

// CompareOp is a comparison operator.
type CompareOp string

const (
	Eq CompareOp = "="
	Ne CompareOp = "!="
	Lt CompareOp = "<"
	Gt CompareOp = ">"
	Le CompareOp = "<="
	Ge CompareOp = ">="
)

// Negate returns the operator whose result is always the opposite of op.
func (op CompareOp) Negate() CompareOp {
	switch op {
	case Eq:
		return Ne
	case Ne:
		return Eq
	case Lt:
		return Ge
	case Ge:
		return Lt
	case Gt:
		return Le
	case Le:
		return Gt
	}
	panic("ast: unknown comparison operator " + string(op))
}

// Cond compares two expressions. Used by WHILE and GOTO.
type Cond struct {
	Left  Expr
	Op    CompareOp
	Right Expr
}

func (c *Cond) node() {}

// Not returns a new condition with the negated operator. c is not modified.
func (c *Cond) Not() *Cond {
	return &Cond{Left: c.Left, Op: c.Op.Negate(), Right: c.Right}
}

// --- Statements ---

// AssignStmt represents target := value. It is valid in all three languages.
type AssignStmt struct {
	Target string
	Value  Expr
}

func (a *AssignStmt) node()      {}
func (a *AssignStmt) loopStmt()  {}
func (a *AssignStmt) whileStmt() {}
func (a *AssignStmt) gotoStmt()  {}

// LoopStmt represents LOOP var DO body END. The iteration count is the value
// of Var on entry.
type LoopStmt struct {
	Var  string
	Body []LoopStatement
}

func (l *LoopStmt) node()     {}
func (l *LoopStmt) loopStmt() {}

// WhileStmt represents WHILE cond DO body END.
type WhileStmt struct {
	Condition *Cond
	Body      []WhileStatement
}

func (w *WhileStmt) node()      {}
func (w *WhileStmt) whileStmt() {}

// IfStmt represents IF cond THEN body [ELSE body] END.
type IfStmt struct {
	Condition *Cond
	Then      []WhileStatement
	Else      []WhileStatement // nil when there is no ELSE branch
}

func (i *IfStmt) node()      {}
func (i *IfStmt) whileStmt() {}

// GotoStmt represents GOTO label.
type GotoStmt struct {
	Label string
}

func (g *GotoStmt) node()     {}
func (g *GotoStmt) gotoStmt() {}

// IfGotoStmt represents IF cond THEN GOTO label.
type IfGotoStmt struct {
	Condition *Cond
	Label     string
}

func (i *IfGotoStmt) node()     {}
func (i *IfGotoStmt) gotoStmt() {}

// HaltStmt represents HALT.
type HaltStmt struct{}

func (h *HaltStmt) node()     {}
func (h *HaltStmt) gotoStmt() {}

// --- Programs ---

// LoopProgram is the root node of a LOOP program.
type LoopProgram struct {
	Statements []LoopStatement
	SourceFile string // display path of the source file, if any
}

func (p *LoopProgram) node() {}

// WhileProgram is the root node of a WHILE program.
type WhileProgram struct {
	Statements []WhileStatement
	SourceFile string
}

func (p *WhileProgram) node() {}

// Instruction is one line of a GOTO program: an optional label plus a
// statement.
type Instruction struct {
	Label string // empty when unlabeled
	Stmt  GotoStatement
}

// GotoProgram is the root node of a GOTO program.
type GotoProgram struct {
	Instructions []Instruction
	SourceFile   string
}

func (p *GotoProgram) node() {}
