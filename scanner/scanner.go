// Package scanner tokenizes LOOP, WHILE and GOTO source text. The three
// languages share one lexical grammar: identifiers, natural-number literals,
// keywords, assignment, arithmetic and comparison operators, parentheses,
// semicolons and label colons. Comments run from "//" or "#" to end of line.
package scanner

import (
	"fmt"
	"strings"
)

// Kind identifies the lexical class of a token.
type Kind byte

const (
	EOF Kind = iota
	Ident
	Number
	Keyword
	Assign    // :=
	Colon     // :
	Semicolon // ;
	Plus
	Minus
	LParen
	RParen
	Compare // = != < > <= >=
)

var kindNames = [...]string{
	EOF:       "end of file",
	Ident:     "identifier",
	Number:    "number",
	Keyword:   "keyword",
	Assign:    "':='",
	Colon:     "':'",
	Semicolon: "';'",
	Plus:      "'+'",
	Minus:     "'-'",
	LParen:    "'('",
	RParen:    "')'",
	Compare:   "comparison",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Keywords of all three languages. Keywords are case sensitive and can't be
// used as variable or label names.
var Keywords = map[string]bool{
	"LOOP":  true,
	"WHILE": true,
	"DO":    true,
	"END":   true,
	"IF":    true,
	"THEN":  true,
	"ELSE":  true,
	"GOTO":  true,
	"HALT":  true,
}

// Token is one lexical unit with its 1-based source position.
type Token struct {
	Kind   Kind
	Text   string
	Offset int
	Line   int
	Column int
}

func (t Token) String() string {
	if t.Kind == EOF {
		return t.Kind.String()
	}
	return fmt.Sprintf("%q", t.Text)
}

// Is reports whether t is the keyword or operator text s.
func (t Token) Is(s string) bool {
	return t.Kind != EOF && t.Kind != Ident && t.Kind != Number && t.Text == s
}

// Error is a lexical error at a source position.
type Error struct {
	Offset int
	Line   int
	Column int
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
}

// Scanner iterates byte-by-byte over source text producing tokens.
type Scanner struct {
	src  string
	pos  int
	line int
	col  int
}

// New creates a Scanner for the given source text.
func New(src string) *Scanner {
	return &Scanner{src: src, line: 1, col: 1}
}

// peek returns the byte at pos+n without advancing, or (0, false) at end.
func (s *Scanner) peek(n int) (byte, bool) {
	if s.pos+n >= len(s.src) {
		return 0, false
	}
	return s.src[s.pos+n], true
}

// advance consumes one byte, tracking line and column.
func (s *Scanner) advance() {
	if s.src[s.pos] == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	s.pos++
}

// lookingAt checks if src[pos:] starts with the given prefix.
func (s *Scanner) lookingAt(prefix string) bool {
	return strings.HasPrefix(s.src[s.pos:], prefix)
}

func (s *Scanner) skipSpaceAndComments() {
	for s.pos < len(s.src) {
		ch := s.src[s.pos]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			s.advance()
		case ch == '#' || s.lookingAt("//"):
			for s.pos < len(s.src) && s.src[s.pos] != '\n' {
				s.advance()
			}
		default:
			return
		}
	}
}

// Next returns the next token. At end of input it returns an EOF token;
// calling Next again keeps returning EOF.
func (s *Scanner) Next() (Token, error) {
	s.skipSpaceAndComments()
	tok := Token{Offset: s.pos, Line: s.line, Column: s.col}
	ch, ok := s.peek(0)
	if !ok {
		tok.Kind = EOF
		return tok, nil
	}

	start := s.pos
	switch {
	case isLetter(ch):
		for c, ok := s.peek(0); ok && (isLetter(c) || isDigit(c)); c, ok = s.peek(0) {
			s.advance()
		}
		tok.Text = s.src[start:s.pos]
		tok.Kind = Ident
		if Keywords[tok.Text] {
			tok.Kind = Keyword
		}
		return tok, nil
	case isDigit(ch):
		for c, ok := s.peek(0); ok && isDigit(c); c, ok = s.peek(0) {
			s.advance()
		}
		tok.Text = s.src[start:s.pos]
		tok.Kind = Number
		return tok, nil
	}

	two := ""
	if s.pos+2 <= len(s.src) {
		two = s.src[s.pos : s.pos+2]
	}
	switch two {
	case ":=":
		tok.Kind = Assign
	case "!=", "<=", ">=":
		tok.Kind = Compare
	}
	if tok.Kind != EOF {
		s.advance()
		s.advance()
		tok.Text = two
		return tok, nil
	}

	switch ch {
	case ':':
		tok.Kind = Colon
	case ';':
		tok.Kind = Semicolon
	case '+':
		tok.Kind = Plus
	case '-':
		tok.Kind = Minus
	case '(':
		tok.Kind = LParen
	case ')':
		tok.Kind = RParen
	case '=', '<', '>':
		tok.Kind = Compare
	default:
		return tok, &Error{Offset: tok.Offset, Line: tok.Line, Column: tok.Column, Msg: fmt.Sprintf("unexpected character %q", ch)}
	}
	s.advance()
	tok.Text = string(ch)
	return tok, nil
}

// All tokenizes the whole source. The returned slice always ends with an EOF
// token when err is nil.
func All(src string) ([]Token, error) {
	s := New(src)
	var toks []Token
	for {
		tok, err := s.Next()
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks, nil
		}
	}
}

// IsIdent reports whether name is a valid, non-keyword identifier.
func IsIdent(name string) bool {
	if name == "" || Keywords[name] || !isLetter(name[0]) {
		return false
	}
	for i := 1; i < len(name); i++ {
		if !isLetter(name[i]) && !isDigit(name[i]) {
			return false
		}
	}
	return true
}

func isLetter(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }
