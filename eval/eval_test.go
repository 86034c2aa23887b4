package eval

import (
	"bytes"
	"testing"

	"github.com/jpeter96/langInterpreterTranslator/ast"
	"github.com/jpeter96/langInterpreterTranslator/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tlog.app/go/tlog"
)

func loopProg(t *testing.T, src string) *ast.LoopProgram {
	t.Helper()
	p := &parser.Parser{}
	prog, err := p.ParseLoop("test.loop", []byte(src))
	require.NoError(t, err)
	return prog
}

func whileProg(t *testing.T, src string) *ast.WhileProgram {
	t.Helper()
	p := &parser.Parser{}
	prog, err := p.ParseWhile("test.while", []byte(src))
	require.NoError(t, err)
	return prog
}

func gotoProg(t *testing.T, src string) *ast.GotoProgram {
	t.Helper()
	p := &parser.Parser{}
	prog, err := p.ParseGoto("test.goto", []byte(src))
	require.NoError(t, err)
	return prog
}

func TestLoopEntrySnapshot(t *testing.T) {
	prog := loopProg(t, "x0 := 5; x1 := 0; LOOP x0 DO x1 := x1 + 1; x0 := 0; END")
	vars, err := Loop(prog, Options{})
	require.NoError(t, err)
	assert.Equal(t, uint64(5), vars["x1"])
	assert.Equal(t, uint64(0), vars["x0"])
}

func TestLoopZeroIterations(t *testing.T) {
	prog := loopProg(t, "x0 := 0; x1 := 7; LOOP x0 DO x1 := 0; x2 := 3; END")
	vars, err := Loop(prog, Options{})
	require.NoError(t, err)
	assert.Equal(t, uint64(7), vars["x1"])
	_, assigned := vars["x2"]
	assert.False(t, assigned, "body must not run")
}

func TestLoopNested(t *testing.T) {
	prog := loopProg(t, "x0 := 3; x1 := 4; x2 := 0; LOOP x0 DO LOOP x1 DO x2 := x2 + 1; END END")
	vars, err := Loop(prog, Options{})
	require.NoError(t, err)
	assert.Equal(t, uint64(12), vars["x2"])
}

func TestLoopBodyGrowsControlVariable(t *testing.T) {
	prog := loopProg(t, "x0 := 2; LOOP x0 DO x0 := x0 + 10; END")
	vars, err := Loop(prog, Options{})
	require.NoError(t, err)
	assert.Equal(t, uint64(22), vars["x0"])
}

func TestLoopCountOverLimit(t *testing.T) {
	prog := loopProg(t, "x0 := 100; LOOP x0 DO x1 := x1 + 1; END")
	_, err := Loop(prog, Options{MaxSteps: 10})
	assert.ErrorIs(t, err, ErrStepLimit)
	assert.Contains(t, err.Error(), "possible infinite loop")
}

func TestMonusAndAddition(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want uint64
	}{
		{"add", "x0 := 2 + 3;", 5},
		{"monus positive", "x0 := 7 - 3;", 4},
		{"monus clamps", "x0 := 3 - 7;", 0},
		{"left assoc", "x0 := 10 - 3 - 2;", 5},
		{"parens", "x0 := 10 - (3 - 2);", 9},
		{"unset reads zero", "x0 := x9 + 1;", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vars, err := Loop(loopProg(t, tt.src), Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, vars["x0"])
		})
	}
}

func TestAdditionOverflow(t *testing.T) {
	prog := loopProg(t, "x0 := 18446744073709551615 + 1;")
	_, err := Loop(prog, Options{})
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestWriteOnceLock(t *testing.T) {
	prog := loopProg(t, "x0 := 1; x1 := x0; x0 := 9;")
	vars, err := Loop(prog, Options{Vars: Vars{"x0": 42}})
	require.NoError(t, err)
	assert.Equal(t, uint64(42), vars["x1"], "first assignment is suppressed")
	assert.Equal(t, uint64(9), vars["x0"], "second assignment applies")
}

func TestWriteOnceLockUnassignedVariableKept(t *testing.T) {
	prog := loopProg(t, "x1 := x0 + 1;")
	vars, err := Loop(prog, Options{Vars: Vars{"x0": 4}})
	require.NoError(t, err)
	assert.Equal(t, uint64(4), vars["x0"])
	assert.Equal(t, uint64(5), vars["x1"])
}

func TestInitialVarsNotMutated(t *testing.T) {
	init := Vars{"x0": 3}
	prog := loopProg(t, "x0 := 1; x0 := 2;")
	vars, err := Loop(prog, Options{Vars: init})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), vars["x0"])
	assert.Equal(t, Vars{"x0": 3}, init)
}

func TestWhileCountdown(t *testing.T) {
	prog := whileProg(t, "x0 := 5; x1 := 0; WHILE x0 != 0 DO x1 := x1 + 1; x0 := x0 - 1; END")
	vars, err := While(prog, Options{})
	require.NoError(t, err)
	assert.Equal(t, uint64(5), vars["x1"])
	assert.Equal(t, uint64(0), vars["x0"])
}

func TestWhileConditionCheckedBeforeFirstIteration(t *testing.T) {
	prog := whileProg(t, "x0 := 0; WHILE x0 > 0 DO x1 := 1; END")
	vars, err := While(prog, Options{})
	require.NoError(t, err)
	assert.Equal(t, uint64(0), vars["x1"])
}

func TestWhileIfElse(t *testing.T) {
	tests := []struct {
		x0, x1 uint64
		want   uint64
	}{
		{7, 12, 12},
		{12, 7, 12},
		{5, 5, 5},
	}
	prog := whileProg(t, "IF x0 >= x1 THEN x2 := x0; ELSE x2 := x1; END")
	for _, tt := range tests {
		vars, err := While(prog, Options{Vars: Vars{"x0": tt.x0, "x1": tt.x1}})
		require.NoError(t, err)
		assert.Equal(t, tt.want, vars["x2"])
	}
}

func TestWhileIfWithoutElse(t *testing.T) {
	prog := whileProg(t, "x0 := 1; IF x0 = 2 THEN x0 := 5; END")
	vars, err := While(prog, Options{})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), vars["x0"])
}

func TestWhileInfiniteLoop(t *testing.T) {
	prog := whileProg(t, "x0 := 1; WHILE x0 != 0 DO x1 := x1 + 1; END")
	_, err := While(prog, Options{MaxSteps: 1000})
	assert.ErrorIs(t, err, ErrStepLimit)
}

func TestGotoForwardJump(t *testing.T) {
	prog := gotoProg(t, "x0 := 1; GOTO M1; x0 := 99; M1: x0 := x0 + 10; HALT;")
	vars, err := Goto(prog, Options{})
	require.NoError(t, err)
	assert.Equal(t, uint64(11), vars["x0"])
}

func TestGotoBackwardJump(t *testing.T) {
	prog := gotoProg(t, `
		x0 := 3;
		M1: IF x0 = 0 THEN GOTO M2;
		x1 := x1 + 2;
		x0 := x0 - 1;
		GOTO M1;
		M2: HALT;
	`)
	vars, err := Goto(prog, Options{})
	require.NoError(t, err)
	assert.Equal(t, uint64(6), vars["x1"])
}

func TestGotoHaltStopsImmediately(t *testing.T) {
	prog := gotoProg(t, "x0 := 1; HALT; x0 := 2; x1 := 3;")
	vars, err := Goto(prog, Options{})
	require.NoError(t, err)
	assert.Equal(t, Vars{"x0": 1}, vars)
}

func TestGotoRunsOffEnd(t *testing.T) {
	prog := gotoProg(t, "x0 := 1; x0 := x0 + 1;")
	vars, err := Goto(prog, Options{})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), vars["x0"])
}

func TestGotoDuplicateLabel(t *testing.T) {
	prog := gotoProg(t, "M1: x0 := 1; M1: HALT;")
	vars, err := Goto(prog, Options{})
	assert.ErrorIs(t, err, ErrDuplicateLabel)
	assert.Nil(t, vars)
}

func TestGotoUndefinedLabel(t *testing.T) {
	prog := gotoProg(t, "x0 := 1; GOTO nowhere;")
	vars, err := Goto(prog, Options{})
	assert.ErrorIs(t, err, ErrUndefinedLabel)
	assert.Nil(t, vars)
}

func TestGotoUndefinedLabelOnlyWhenTaken(t *testing.T) {
	prog := gotoProg(t, "x0 := 1; IF x0 = 0 THEN GOTO nowhere; x0 := 2;")
	vars, err := Goto(prog, Options{})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), vars["x0"])
}

func TestGotoStepLimit(t *testing.T) {
	prog := gotoProg(t, "M1: GOTO M1;")
	_, err := Goto(prog, Options{MaxSteps: 50})
	assert.ErrorIs(t, err, ErrStepLimit)
}

func TestGotoForwardInstructionsAreFree(t *testing.T) {
	prog := gotoProg(t, "x0 := 1; x0 := x0 + 1; x0 := x0 + 1; GOTO M1; x0 := 0; M1: x0 := x0 + 1; HALT;")
	vars, err := Goto(prog, Options{MaxSteps: 1})
	require.NoError(t, err)
	assert.Equal(t, uint64(4), vars["x0"])
}

func TestGotoBackwardJumpsSpendBudget(t *testing.T) {
	src := "x0 := 5; M1: IF x0 = 0 THEN GOTO M2; x0 := x0 - 1; GOTO M1; M2: HALT;"
	_, err := Goto(gotoProg(t, src), Options{MaxSteps: 5})
	require.NoError(t, err, "five backward jumps fit")

	_, err = Goto(gotoProg(t, src), Options{MaxSteps: 4})
	assert.ErrorIs(t, err, ErrStepLimit)
}

func TestStepBudgetIsShared(t *testing.T) {
	src := "x0 := 6; LOOP x0 DO x1 := x1 + 1; END LOOP x0 DO x1 := x1 + 1; END"
	_, err := Loop(loopProg(t, src), Options{MaxSteps: 12})
	require.NoError(t, err)

	_, err = Loop(loopProg(t, src), Options{MaxSteps: 10})
	assert.ErrorIs(t, err, ErrStepLimit)
	assert.Contains(t, err.Error(), "4 of 10 steps left")

	w := "x0 := 3; WHILE x0 > 0 DO x0 := x0 - 1; END x0 := 3; WHILE x0 > 0 DO x0 := x0 - 1; END"
	_, err = While(whileProg(t, w), Options{MaxSteps: 6})
	require.NoError(t, err)
	_, err = While(whileProg(t, w), Options{MaxSteps: 5})
	assert.ErrorIs(t, err, ErrStepLimit)
}

func TestStepLimitAccessor(t *testing.T) {
	assert.Equal(t, uint64(DefaultMaxSteps), Options{}.StepLimit())
	assert.Equal(t, uint64(7), Options{MaxSteps: 7}.StepLimit())
}

func TestVerboseDoesNotChangeResult(t *testing.T) {
	prog := whileProg(t, "x0 := 3; WHILE x0 > 0 DO x0 := x0 - 1; x1 := x1 + 2; END")
	quiet, err := While(prog, Options{Vars: Vars{"x1": 1}})
	require.NoError(t, err)

	var buf bytes.Buffer
	loud, err := While(prog, Options{Vars: Vars{"x1": 1}, Verbose: true, Logger: tlog.New(&buf)})
	require.NoError(t, err)
	assert.Equal(t, quiet, loud)
	assert.NotZero(t, buf.Len(), "trace written")
}

func TestEvaluationsAreIndependent(t *testing.T) {
	prog := loopProg(t, "x1 := x0 + 1;")
	a, err := Loop(prog, Options{Vars: Vars{"x0": 1}})
	require.NoError(t, err)
	b, err := Loop(prog, Options{Vars: Vars{"x0": 10}})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), a["x1"])
	assert.Equal(t, uint64(11), b["x1"])
}
