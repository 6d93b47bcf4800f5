// Package highlight maps file-extension hints to syntax-highlighting
// definitions from the chroma lexer registry.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// Definition identifies a highlighting scheme. Empty Language means no
// definition is registered for the hint.
type Definition struct {
	Language string
}

// None reports whether no highlighting definition was found.
func (d Definition) None() bool { return d.Language == "" }

// ForExtension resolves a file-extension hint ("xml", ".cs", "Foo.json")
// to a highlighting definition.
func ForExtension(hint string) Definition {
	hint = strings.ToLower(strings.TrimSpace(hint))
	if hint == "" {
		return Definition{}
	}
	if i := strings.LastIndexByte(hint, '.'); i >= 0 {
		hint = hint[i+1:]
	}
	if hint == "" {
		return Definition{}
	}

	lexer := lexers.Match("file." + hint)
	if lexer == nil {
		lexer = lexers.Get(hint)
	}
	if lexer == nil {
		return Definition{}
	}
	return Definition{Language: definitionName(lexer)}
}

func definitionName(lexer chroma.Lexer) string {
	return strings.ToLower(lexer.Config().Name)
}
