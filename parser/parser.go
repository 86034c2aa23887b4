// Package parser turns LOOP, WHILE and GOTO source text into ASTs.
//
// Syntax errors are reported as a modernc.org/scanner ErrList whose entries
// carry the file name, line and column of the offending token.
package parser

import (
	"fmt"
	"go/token"
	"strconv"

	"github.com/jpeter96/langInterpreterTranslator/ast"
	"github.com/jpeter96/langInterpreterTranslator/scanner"
	msc "modernc.org/scanner"
)

// Parser parses one source text at a time. The zero value is ready to use.
type Parser struct {
	name string
	toks []scanner.Token
	pos  int
}

// bail aborts parsing with a positioned error. It is recovered by the
// exported Parse* methods.
type bail struct{ err msc.ErrList }

func (p *Parser) init(name string, src []byte) error {
	p.name = name
	p.pos = 0
	toks, err := scanner.All(string(src))
	if err != nil {
		if se, ok := err.(*scanner.Error); ok {
			return p.errorAt(se.Offset, se.Line, se.Column, se.Msg)
		}
		return err
	}
	p.toks = toks
	return nil
}

func (p *Parser) errorAt(offset, line, col int, msg string) msc.ErrList {
	pos := token.Position{Filename: p.name, Offset: offset, Line: line, Column: col}
	return msc.ErrList{{Pos: pos, Err: fmt.Errorf("%s", msg)}}
}

func (p *Parser) failf(tok scanner.Token, format string, args ...any) {
	panic(bail{p.errorAt(tok.Offset, tok.Line, tok.Column, fmt.Sprintf(format, args...))})
}

func (p *Parser) run(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bail)
			if !ok {
				panic(r)
			}
			err = b.err
		}
	}()
	fn()
	return nil
}

// --- Entry points ---

// ParseLoop parses a LOOP program. name is used in error positions.
func (p *Parser) ParseLoop(name string, src []byte) (*ast.LoopProgram, error) {
	if err := p.init(name, src); err != nil {
		return nil, err
	}
	prog := &ast.LoopProgram{SourceFile: name}
	err := p.run(func() {
		prog.Statements = p.loopStmts()
		p.expectEOF()
	})
	if err != nil {
		return nil, err
	}
	return prog, nil
}

// ParseWhile parses a WHILE program.
func (p *Parser) ParseWhile(name string, src []byte) (*ast.WhileProgram, error) {
	if err := p.init(name, src); err != nil {
		return nil, err
	}
	prog := &ast.WhileProgram{SourceFile: name}
	err := p.run(func() {
		prog.Statements = p.whileStmts()
		p.expectEOF()
	})
	if err != nil {
		return nil, err
	}
	return prog, nil
}

// ParseGoto parses a GOTO program. Label uniqueness and jump targets are not
// checked here; see ast.GotoChecks.
func (p *Parser) ParseGoto(name string, src []byte) (*ast.GotoProgram, error) {
	if err := p.init(name, src); err != nil {
		return nil, err
	}
	prog := &ast.GotoProgram{SourceFile: name}
	err := p.run(func() {
		for p.peek().Kind != scanner.EOF {
			prog.Instructions = append(prog.Instructions, p.instruction())
			p.separator()
		}
	})
	if err != nil {
		return nil, err
	}
	return prog, nil
}

// FirstError extracts the first error from a parser error list.
func FirstError(err error) error {
	if el, ok := err.(msc.ErrList); ok && len(el) > 0 {
		return fmt.Errorf("%s", el[0])
	}
	return err
}

// --- Token helpers ---

func (p *Parser) peek() scanner.Token { return p.toks[p.pos] }

func (p *Parser) peekAt(n int) scanner.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) next() scanner.Token {
	tok := p.toks[p.pos]
	if tok.Kind != scanner.EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) expectKeyword(kw string) {
	tok := p.next()
	if tok.Kind != scanner.Keyword || tok.Text != kw {
		p.failf(tok, "expected %s, found %s", kw, tok)
	}
}

func (p *Parser) expectKind(k scanner.Kind) scanner.Token {
	tok := p.next()
	if tok.Kind != k {
		p.failf(tok, "expected %s, found %s", k, tok)
	}
	return tok
}

func (p *Parser) expectEOF() {
	if tok := p.peek(); tok.Kind != scanner.EOF {
		p.failf(tok, "unexpected %s", tok)
	}
}

// atBlockEnd reports whether the next token closes a statement list.
func (p *Parser) atBlockEnd() bool {
	tok := p.peek()
	return tok.Kind == scanner.EOF || tok.Is("END") || tok.Is("ELSE")
}

// separator consumes the ';' after a simple statement. It may be omitted
// before END, ELSE and end of file.
func (p *Parser) separator() {
	if p.peek().Kind == scanner.Semicolon {
		p.next()
		return
	}
	if !p.atBlockEnd() {
		tok := p.peek()
		p.failf(tok, "expected ';', found %s", tok)
	}
}

// optionalSeparator consumes a ';' following END, if present.
func (p *Parser) optionalSeparator() {
	if p.peek().Kind == scanner.Semicolon {
		p.next()
	}
}

// --- Statements ---

func (p *Parser) loopStmts() []ast.LoopStatement {
	var stmts []ast.LoopStatement
	for !p.atBlockEnd() {
		tok := p.peek()
		switch {
		case tok.Is("LOOP"):
			p.next()
			v := p.ident()
			p.expectKeyword("DO")
			body := p.loopStmts()
			p.expectKeyword("END")
			p.optionalSeparator()
			stmts = append(stmts, &ast.LoopStmt{Var: v, Body: body})
		case tok.Kind == scanner.Ident:
			stmts = append(stmts, p.assign())
			p.separator()
		default:
			p.failf(tok, "unexpected %s in LOOP program", tok)
		}
	}
	return stmts
}

func (p *Parser) whileStmts() []ast.WhileStatement {
	var stmts []ast.WhileStatement
	for !p.atBlockEnd() {
		tok := p.peek()
		switch {
		case tok.Is("WHILE"):
			p.next()
			cond := p.cond()
			p.expectKeyword("DO")
			body := p.whileStmts()
			p.expectKeyword("END")
			p.optionalSeparator()
			stmts = append(stmts, &ast.WhileStmt{Condition: cond, Body: body})
		case tok.Is("IF"):
			p.next()
			cond := p.cond()
			p.expectKeyword("THEN")
			then := p.whileStmts()
			var els []ast.WhileStatement
			if p.peek().Is("ELSE") {
				p.next()
				els = p.whileStmts()
				if els == nil {
					els = []ast.WhileStatement{}
				}
			}
			p.expectKeyword("END")
			p.optionalSeparator()
			stmts = append(stmts, &ast.IfStmt{Condition: cond, Then: then, Else: els})
		case tok.Kind == scanner.Ident:
			stmts = append(stmts, p.assign())
			p.separator()
		default:
			p.failf(tok, "unexpected %s in WHILE program", tok)
		}
	}
	return stmts
}

func (p *Parser) instruction() ast.Instruction {
	var ins ast.Instruction
	if p.peek().Kind == scanner.Ident && p.peekAt(1).Kind == scanner.Colon {
		ins.Label = p.next().Text
		p.next()
	}
	tok := p.peek()
	switch {
	case tok.Is("GOTO"):
		p.next()
		ins.Stmt = &ast.GotoStmt{Label: p.ident()}
	case tok.Is("IF"):
		p.next()
		cond := p.cond()
		p.expectKeyword("THEN")
		p.expectKeyword("GOTO")
		ins.Stmt = &ast.IfGotoStmt{Condition: cond, Label: p.ident()}
	case tok.Is("HALT"):
		p.next()
		ins.Stmt = &ast.HaltStmt{}
	case tok.Kind == scanner.Ident:
		ins.Stmt = p.assign()
	default:
		p.failf(tok, "unexpected %s in GOTO program", tok)
	}
	return ins
}

func (p *Parser) ident() string {
	return p.expectKind(scanner.Ident).Text
}

func (p *Parser) assign() *ast.AssignStmt {
	target := p.ident()
	p.expectKind(scanner.Assign)
	return &ast.AssignStmt{Target: target, Value: p.expr()}
}

// --- Expressions ---

func (p *Parser) cond() *ast.Cond {
	left := p.expr()
	tok := p.expectKind(scanner.Compare)
	right := p.expr()
	return &ast.Cond{Left: left, Op: ast.CompareOp(tok.Text), Right: right}
}

func (p *Parser) expr() ast.Expr {
	left := p.operand()
	for {
		var op ast.ArithOp
		switch p.peek().Kind {
		case scanner.Plus:
			op = ast.Add
		case scanner.Minus:
			op = ast.Monus
		default:
			return left
		}
		p.next()
		left = &ast.BinaryExpr{Left: left, Op: op, Right: p.operand()}
	}
}

func (p *Parser) operand() ast.Expr {
	tok := p.next()
	switch tok.Kind {
	case scanner.Number:
		v, err := strconv.ParseUint(tok.Text, 10, 64)
		if err != nil {
			p.failf(tok, "number %s out of range", tok.Text)
		}
		return &ast.NumberLit{Value: v}
	case scanner.Ident:
		return &ast.VarRef{Name: tok.Text}
	case scanner.LParen:
		e := p.expr()
		p.expectKind(scanner.RParen)
		return e
	default:
		p.failf(tok, "expected expression, found %s", tok)
		return nil
	}
}
