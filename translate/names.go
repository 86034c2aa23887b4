// Package translate converts programs between the LOOP, WHILE and GOTO
// languages while preserving the final value of every source variable.
//
// Translators are pure: they never mutate their input and build the output
// from fresh nodes. Names a translator introduces come from a Names
// allocator created for that call.
package translate

import (
	"strconv"

	"github.com/jpeter96/langInterpreterTranslator/scanner"
)

// Name prefixes for generated identifiers.
const (
	counterPrefix = "c"
	labelPrefix   = "L"
	pcPrefix      = "pc"
)

// Names hands out identifiers that are absent from a program and distinct
// from each other. Create one per translation call.
type Names struct {
	used map[string]bool
	next map[string]int
}

// NewNames returns an allocator that avoids every name in used and every
// reserved name. used is copied, never modified.
func NewNames(used map[string]bool, reserved ...string) *Names {
	n := &Names{
		used: make(map[string]bool, len(used)+len(reserved)),
		next: make(map[string]int),
	}
	for name := range used {
		n.used[name] = true
	}
	for _, name := range reserved {
		n.used[name] = true
	}
	return n
}

// Fresh returns prefix followed by the smallest counter value not tried yet
// for that prefix whose result is unused. The name is recorded as used.
func (n *Names) Fresh(prefix string) string {
	for {
		i := n.next[prefix]
		n.next[prefix] = i + 1
		name := prefix + strconv.Itoa(i)
		if n.used[name] || !scanner.IsIdent(name) {
			continue
		}
		n.used[name] = true
		return name
	}
}

// Var returns a fresh variable name.
func (n *Names) Var() string { return n.Fresh(counterPrefix) }

// Label returns a fresh label name.
func (n *Names) Label() string { return n.Fresh(labelPrefix) }
