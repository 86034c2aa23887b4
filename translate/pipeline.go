package translate

import "github.com/jpeter96/langInterpreterTranslator/ast"

// LoopToWhilePass wraps LoopToWhile as an ast.Pass.
func LoopToWhilePass(reserved ...string) ast.Pass[*ast.LoopProgram, *ast.WhileProgram] {
	return ast.PassFunc[*ast.LoopProgram, *ast.WhileProgram]{
		N: "loop-to-while",
		F: func(p *ast.LoopProgram) *ast.WhileProgram { return LoopToWhile(p, reserved...) },
	}
}

// WhileToGotoPass wraps WhileToGoto as an ast.Pass.
func WhileToGotoPass(reserved ...string) ast.Pass[*ast.WhileProgram, *ast.GotoProgram] {
	return ast.PassFunc[*ast.WhileProgram, *ast.GotoProgram]{
		N: "while-to-goto",
		F: func(p *ast.WhileProgram) *ast.GotoProgram { return WhileToGoto(p, reserved...) },
	}
}

// GotoToWhilePass wraps GotoToWhile as an ast.Pass.
func GotoToWhilePass(reserved ...string) ast.Pass[*ast.GotoProgram, *ast.WhileProgram] {
	return ast.PassFunc[*ast.GotoProgram, *ast.WhileProgram]{
		N: "goto-to-while",
		F: func(p *ast.GotoProgram) *ast.WhileProgram { return GotoToWhile(p, reserved...) },
	}
}

// LoopToGoto translates LOOP to GOTO through WHILE.
func LoopToGoto(prog *ast.LoopProgram, reserved ...string) *ast.GotoProgram {
	return ast.Then(LoopToWhilePass(reserved...), WhileToGotoPass(reserved...)).Apply(prog)
}
