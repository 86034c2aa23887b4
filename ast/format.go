package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatLoop serializes a LOOP program to source text accepted by the parser.
func FormatLoop(prog *LoopProgram) string {
	p := &printer{}
	p.loopStmts(prog.Statements)
	return p.sb.String()
}

// FormatWhile serializes a WHILE program to source text.
func FormatWhile(prog *WhileProgram) string {
	p := &printer{}
	p.whileStmts(prog.Statements)
	return p.sb.String()
}

// FormatGoto serializes a GOTO program to source text, one instruction per
// line.
func FormatGoto(prog *GotoProgram) string {
	p := &printer{}
	for _, ins := range prog.Instructions {
		if ins.Label != "" {
			p.line("%s: %s;", ins.Label, gotoStmtString(ins.Stmt))
		} else {
			p.line("%s;", gotoStmtString(ins.Stmt))
		}
	}
	return p.sb.String()
}

// FormatExpr renders an expression. Right operands that are themselves
// binary are parenthesized, since all operators are left-associative.
func FormatExpr(e Expr) string {
	switch ex := e.(type) {
	case *NumberLit:
		return strconv.FormatUint(ex.Value, 10)
	case *VarRef:
		return ex.Name
	case *BinaryExpr:
		right := FormatExpr(ex.Right)
		if _, ok := ex.Right.(*BinaryExpr); ok {
			right = "(" + right + ")"
		}
		return FormatExpr(ex.Left) + " " + string(ex.Op) + " " + right
	default:
		panic(fmt.Sprintf("ast: unknown expression %T", e))
	}
}

// FormatCond renders a condition.
func FormatCond(c *Cond) string {
	return FormatExpr(c.Left) + " " + string(c.Op) + " " + FormatExpr(c.Right)
}

type printer struct {
	sb     strings.Builder
	indent int
}

func (p *printer) line(format string, args ...any) {
	for range p.indent {
		p.sb.WriteString("  ")
	}
	fmt.Fprintf(&p.sb, format, args...)
	p.sb.WriteByte('\n')
}

func (p *printer) loopStmts(stmts []LoopStatement) {
	for _, s := range stmts {
		switch st := s.(type) {
		case *AssignStmt:
			p.line("%s;", assignString(st))
		case *LoopStmt:
			p.line("LOOP %s DO", st.Var)
			p.indent++
			p.loopStmts(st.Body)
			p.indent--
			p.line("END")
		default:
			panic(fmt.Sprintf("ast: unknown LOOP statement %T", s))
		}
	}
}

func (p *printer) whileStmts(stmts []WhileStatement) {
	for _, s := range stmts {
		switch st := s.(type) {
		case *AssignStmt:
			p.line("%s;", assignString(st))
		case *WhileStmt:
			p.line("WHILE %s DO", FormatCond(st.Condition))
			p.indent++
			p.whileStmts(st.Body)
			p.indent--
			p.line("END")
		case *IfStmt:
			p.line("IF %s THEN", FormatCond(st.Condition))
			p.indent++
			p.whileStmts(st.Then)
			p.indent--
			if st.Else != nil {
				p.line("ELSE")
				p.indent++
				p.whileStmts(st.Else)
				p.indent--
			}
			p.line("END")
		default:
			panic(fmt.Sprintf("ast: unknown WHILE statement %T", s))
		}
	}
}

func assignString(a *AssignStmt) string {
	return a.Target + " := " + FormatExpr(a.Value)
}

func gotoStmtString(s GotoStatement) string {
	switch st := s.(type) {
	case *AssignStmt:
		return assignString(st)
	case *GotoStmt:
		return "GOTO " + st.Label
	case *IfGotoStmt:
		return "IF " + FormatCond(st.Condition) + " THEN GOTO " + st.Label
	case *HaltStmt:
		return "HALT"
	default:
		panic(fmt.Sprintf("ast: unknown GOTO statement %T", s))
	}
}
