package ast

// Pass rewrites a program of one language into a program of another (or the
// same) language. Implementations must not mutate the input program.
type Pass[In, Out Node] interface {
	Name() string
	Apply(prog In) Out
}

// PassFunc adapts a named function to the Pass interface.
type PassFunc[In, Out Node] struct {
	N string
	F func(In) Out
}

func (p PassFunc[In, Out]) Name() string      { return p.N }
func (p PassFunc[In, Out]) Apply(prog In) Out { return p.F(prog) }

// Then composes two passes left-to-right. The second pass receives the
// output of the first. The composed name joins both names with "+".
func Then[A, B, C Node](first Pass[A, B], second Pass[B, C]) Pass[A, C] {
	return PassFunc[A, C]{
		N: first.Name() + "+" + second.Name(),
		F: func(prog A) C {
			return second.Apply(first.Apply(prog))
		},
	}
}
