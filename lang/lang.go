// Package lang ties the three languages together for tools: it picks a
// language from a file name, parses, prints, checks, evaluates and
// translates a program without the caller switching on its language.
package lang

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jpeter96/langInterpreterTranslator/ast"
	"github.com/jpeter96/langInterpreterTranslator/eval"
	"github.com/jpeter96/langInterpreterTranslator/parser"
	"github.com/jpeter96/langInterpreterTranslator/translate"
)

// Lang names one of the three languages.
type Lang string

const (
	Loop  Lang = "loop"
	While Lang = "while"
	Goto  Lang = "goto"
)

// Extensions maps file extensions to languages.
var Extensions = map[string]Lang{
	".loop":  Loop,
	".while": While,
	".goto":  Goto,
}

// ParseLang converts a language name such as "while" or "GOTO".
func ParseLang(s string) (Lang, error) {
	switch l := Lang(strings.ToLower(s)); l {
	case Loop, While, Goto:
		return l, nil
	}
	return "", fmt.Errorf("unknown language %q (want loop, while or goto)", s)
}

// FromPath picks the language from the file extension.
func FromPath(path string) (Lang, error) {
	if l, ok := Extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return l, nil
	}
	return "", fmt.Errorf("%s: cannot tell language from extension (use .loop, .while or .goto)", path)
}

// Source is a parsed program of any of the three languages. Exactly one of
// the AST fields is set, matching Lang.
type Source struct {
	Lang  Lang
	Loop  *ast.LoopProgram
	While *ast.WhileProgram
	Goto  *ast.GotoProgram
}

// FromLoop wraps a LOOP program.
func FromLoop(p *ast.LoopProgram) *Source { return &Source{Lang: Loop, Loop: p} }

// FromWhile wraps a WHILE program.
func FromWhile(p *ast.WhileProgram) *Source { return &Source{Lang: While, While: p} }

// FromGoto wraps a GOTO program.
func FromGoto(p *ast.GotoProgram) *Source { return &Source{Lang: Goto, Goto: p} }

// Parse parses src as a program of language l. name is used in error
// positions.
func Parse(l Lang, name string, src []byte) (*Source, error) {
	p := &parser.Parser{}
	switch l {
	case Loop:
		prog, err := p.ParseLoop(name, src)
		if err != nil {
			return nil, parser.FirstError(err)
		}
		return FromLoop(prog), nil
	case While:
		prog, err := p.ParseWhile(name, src)
		if err != nil {
			return nil, parser.FirstError(err)
		}
		return FromWhile(prog), nil
	case Goto:
		prog, err := p.ParseGoto(name, src)
		if err != nil {
			return nil, parser.FirstError(err)
		}
		return FromGoto(prog), nil
	}
	return nil, fmt.Errorf("unknown language %q", l)
}

// ParseFile reads and parses a file. An empty l picks the language from the
// file extension.
func ParseFile(path string, l Lang) (*Source, error) {
	if l == "" {
		var err error
		if l, err = FromPath(path); err != nil {
			return nil, err
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(l, path, data)
}

// Format renders the program as source text.
func (s *Source) Format() string {
	switch s.Lang {
	case Loop:
		return ast.FormatLoop(s.Loop)
	case While:
		return ast.FormatWhile(s.While)
	default:
		return ast.FormatGoto(s.Goto)
	}
}

// Check runs the static checks of the program's language. Only GOTO has
// any.
func (s *Source) Check() error {
	if s.Lang == Goto {
		return ast.GotoChecks().Run(s.Goto)
	}
	return nil
}

// Eval runs the program with the reference evaluator of its language.
func (s *Source) Eval(opts eval.Options) (eval.Vars, error) {
	switch s.Lang {
	case Loop:
		return eval.Loop(s.Loop, opts)
	case While:
		return eval.While(s.While, opts)
	default:
		return eval.Goto(s.Goto, opts)
	}
}

// Idents returns every identifier the program uses.
func (s *Source) Idents() map[string]bool {
	switch s.Lang {
	case Loop:
		return ast.LoopIdents(s.Loop)
	case While:
		return ast.WhileIdents(s.While)
	default:
		return ast.GotoIdents(s.Goto)
	}
}

// Translate converts the program to language to. Translating to the same
// language returns s. LOOP is a target of no translator.
func (s *Source) Translate(to Lang, reserved ...string) (*Source, error) {
	if to == s.Lang {
		return s, nil
	}
	switch {
	case s.Lang == Loop && to == While:
		return FromWhile(translate.LoopToWhile(s.Loop, reserved...)), nil
	case s.Lang == Loop && to == Goto:
		return FromGoto(translate.LoopToGoto(s.Loop, reserved...)), nil
	case s.Lang == While && to == Goto:
		return FromGoto(translate.WhileToGoto(s.While, reserved...)), nil
	case s.Lang == Goto && to == While:
		return FromWhile(translate.GotoToWhile(s.Goto, reserved...)), nil
	}
	return nil, fmt.Errorf("no translation from %s to %s", s.Lang, to)
}

// SortedNames returns the keys of vars in lexical order.
func SortedNames(vars eval.Vars) []string {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
