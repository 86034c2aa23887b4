package parser

import (
	"go/token"
	"strings"
	"testing"

	"github.com/jpeter96/langInterpreterTranslator/ast"
	msc "modernc.org/scanner"
)

func TestParseLoopSimple(t *testing.T) {
	p := &Parser{}
	prog, err := p.ParseLoop("test.loop", []byte("x0 := 5;\nLOOP x0 DO x1 := x1 + 1; END\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(prog.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(prog.Statements))
	}
	loop, ok := prog.Statements[1].(*ast.LoopStmt)
	if !ok {
		t.Fatalf("expected *ast.LoopStmt, got %T", prog.Statements[1])
	}
	if loop.Var != "x0" || len(loop.Body) != 1 {
		t.Errorf("unexpected loop: %+v", loop)
	}
	if prog.SourceFile != "test.loop" {
		t.Errorf("SourceFile = %q", prog.SourceFile)
	}
}

func TestParseLoopNestedWithoutSeparators(t *testing.T) {
	src := "x0:=3; x1:=4; x2:=0; LOOP x0 DO LOOP x1 DO x2:=x2+1; END END"
	p := &Parser{}
	prog, err := p.ParseLoop("test.loop", []byte(src))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	outer := prog.Statements[3].(*ast.LoopStmt)
	inner := outer.Body[0].(*ast.LoopStmt)
	if inner.Var != "x1" {
		t.Errorf("inner loop var = %q", inner.Var)
	}
}

func TestParseLastStatementNeedsNoSemicolon(t *testing.T) {
	p := &Parser{}
	if _, err := p.ParseLoop("test.loop", []byte("x0 := 1; x1 := 2")); err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if _, err := p.ParseWhile("test.while", []byte("WHILE x0 > 0 DO x0 := x0 - 1 END")); err != nil {
		t.Fatalf("Parse error: %v", err)
	}
}

func TestParseExpressionAssociativity(t *testing.T) {
	p := &Parser{}
	prog, err := p.ParseLoop("test.loop", []byte("x0 := 10 - 3 - 2;"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	e := prog.Statements[0].(*ast.AssignStmt).Value.(*ast.BinaryExpr)
	if _, ok := e.Left.(*ast.BinaryExpr); !ok {
		t.Errorf("expected left-nested expression, got %s", ast.FormatExpr(e))
	}
	if got := ast.FormatExpr(e); got != "10 - 3 - 2" {
		t.Errorf("FormatExpr = %q", got)
	}
}

func TestParseParentheses(t *testing.T) {
	p := &Parser{}
	prog, err := p.ParseLoop("test.loop", []byte("x0 := 10 - (3 - 2);"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	e := prog.Statements[0].(*ast.AssignStmt).Value.(*ast.BinaryExpr)
	if _, ok := e.Right.(*ast.BinaryExpr); !ok {
		t.Errorf("expected right operand to be binary")
	}
}

func TestParseWhileIfElse(t *testing.T) {
	src := `
		WHILE x0 != 0 DO
			IF x0 <= 3 THEN x1 := x1 + 1; ELSE x2 := x2 + 1; END
			x0 := x0 - 1;
		END
		IF x1 = 3 THEN x3 := 1; END
	`
	p := &Parser{}
	prog, err := p.ParseWhile("test.while", []byte(src))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	w := prog.Statements[0].(*ast.WhileStmt)
	if w.Condition.Op != ast.Ne {
		t.Errorf("while op = %q", w.Condition.Op)
	}
	ifElse := w.Body[0].(*ast.IfStmt)
	if ifElse.Condition.Op != ast.Le || ifElse.Else == nil {
		t.Errorf("unexpected if: %+v", ifElse)
	}
	ifOnly := prog.Statements[1].(*ast.IfStmt)
	if ifOnly.Else != nil {
		t.Errorf("IF without ELSE must have nil Else")
	}
}

func TestParseEmptyElse(t *testing.T) {
	p := &Parser{}
	prog, err := p.ParseWhile("test.while", []byte("IF x0 = 0 THEN x1 := 1; ELSE END"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	st := prog.Statements[0].(*ast.IfStmt)
	if st.Else == nil || len(st.Else) != 0 {
		t.Errorf("expected empty non-nil Else, got %#v", st.Else)
	}
}

func TestParseGotoInstructions(t *testing.T) {
	src := "x0 := 1; GOTO M1; x0 := 99; M1: x0 := x0 + 10; IF x0 > 5 THEN GOTO M2; M2: HALT;"
	p := &Parser{}
	prog, err := p.ParseGoto("test.goto", []byte(src))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(prog.Instructions) != 6 {
		t.Fatalf("expected 6 instructions, got %d", len(prog.Instructions))
	}
	if prog.Instructions[3].Label != "M1" {
		t.Errorf("label = %q", prog.Instructions[3].Label)
	}
	if g := prog.Instructions[1].Stmt.(*ast.GotoStmt); g.Label != "M1" {
		t.Errorf("goto target = %q", g.Label)
	}
	ig := prog.Instructions[4].Stmt.(*ast.IfGotoStmt)
	if ig.Label != "M2" || ig.Condition.Op != ast.Gt {
		t.Errorf("unexpected if-goto: %+v", ig)
	}
	if _, ok := prog.Instructions[5].Stmt.(*ast.HaltStmt); !ok {
		t.Errorf("expected HALT, got %T", prog.Instructions[5].Stmt)
	}
}

func TestParseComments(t *testing.T) {
	src := "# header\nx0 := 1; // trailing\n// whole line\nx1 := 2;"
	p := &Parser{}
	prog, err := p.ParseLoop("test.loop", []byte(src))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(prog.Statements) != 2 {
		t.Errorf("expected 2 statements, got %d", len(prog.Statements))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		lang string
		src  string
		msg  string
	}{
		{"missing semicolon", "loop", "x0 := 1 x1 := 2", "expected ';'"},
		{"missing END", "loop", "LOOP x0 DO x1 := 1;", "expected END"},
		{"while in loop", "loop", "WHILE x0 != 0 DO END", "unexpected \"WHILE\""},
		{"loop in while", "while", "LOOP x0 DO END", "unexpected \"LOOP\""},
		{"missing comparison", "while", "WHILE x0 DO END", "expected comparison"},
		{"bad character", "goto", "x0 := 1 * 2;", "unexpected character"},
		{"keyword as name", "goto", "GOTO HALT;", "expected identifier"},
		{"number too large", "loop", "x0 := 99999999999999999999;", "out of range"},
		{"label without statement", "goto", "M1:", "unexpected end of file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Parser{}
			var err error
			switch tt.lang {
			case "loop":
				_, err = p.ParseLoop("bad.src", []byte(tt.src))
			case "while":
				_, err = p.ParseWhile("bad.src", []byte(tt.src))
			case "goto":
				_, err = p.ParseGoto("bad.src", []byte(tt.src))
			}
			if err == nil {
				t.Fatalf("expected error")
			}
			if _, ok := err.(msc.ErrList); !ok {
				t.Errorf("expected scanner.ErrList, got %T", err)
			}
			msg := FirstError(err).Error()
			if !strings.Contains(msg, tt.msg) {
				t.Errorf("error %q does not contain %q", msg, tt.msg)
			}
			if !strings.HasPrefix(msg, "bad.src:") {
				t.Errorf("error %q lacks file position", msg)
			}
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	p := &Parser{}
	_, err := p.ParseLoop("pos.loop", []byte("x0 := 1;\nx1 := ;\n"))
	if err == nil {
		t.Fatal("expected error")
	}
	el := err.(msc.ErrList)
	want := token.Position{Filename: "pos.loop", Offset: 15, Line: 2, Column: 7}
	if el[0].Pos != want {
		t.Errorf("position = %#v, want %#v", el[0].Pos, want)
	}
	if got := el[0].Pos.String(); got != "pos.loop:2:7" {
		t.Errorf("position string = %q", got)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	p := &Parser{}

	loopSrc := "x0 := 3; LOOP x0 DO LOOP x1 DO x2 := x2 + (x0 - 1); END END"
	lp, err := p.ParseLoop("a.loop", []byte(loopSrc))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	text := ast.FormatLoop(lp)
	lp2, err := p.ParseLoop("b.loop", []byte(text))
	if err != nil {
		t.Fatalf("re-parse error: %v\n%s", err, text)
	}
	if got := ast.FormatLoop(lp2); got != text {
		t.Errorf("format not stable:\n%s\nvs\n%s", text, got)
	}

	whileSrc := "WHILE x0 > 0 DO IF x0 = 2 THEN x1 := 1; ELSE END x0 := x0 - 1; END"
	wp, err := p.ParseWhile("a.while", []byte(whileSrc))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	text = ast.FormatWhile(wp)
	wp2, err := p.ParseWhile("b.while", []byte(text))
	if err != nil {
		t.Fatalf("re-parse error: %v\n%s", err, text)
	}
	if got := ast.FormatWhile(wp2); got != text {
		t.Errorf("format not stable:\n%s\nvs\n%s", text, got)
	}

	gotoSrc := "M1: IF x0 = 0 THEN GOTO M2; x0 := x0 - 1; GOTO M1; M2: HALT;"
	gp, err := p.ParseGoto("a.goto", []byte(gotoSrc))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	text = ast.FormatGoto(gp)
	gp2, err := p.ParseGoto("b.goto", []byte(text))
	if err != nil {
		t.Fatalf("re-parse error: %v\n%s", err, text)
	}
	if got := ast.FormatGoto(gp2); got != text {
		t.Errorf("format not stable:\n%s\nvs\n%s", text, got)
	}
}
