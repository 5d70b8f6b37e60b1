package tree

import (
	"fmt"
	"strings"
)

// Style holds the four connector glyphs used to render a directory tree.
// Purely presentational: any combination of strings is structurally valid.
type Style struct {
	Tee   string // sibling with more siblings below
	Elbow string // last sibling
	Pipe  string // vertical continuation under a tee
	Space string // blank spacer under an elbow
}

var (
	Unicode = Style{Tee: "├── ", Elbow: "└── ", Pipe: "│   ", Space: "    "}
	ASCII   = Style{Tee: "|-- ", Elbow: "+-- ", Pipe: "|   ", Space: "    "}
	Compact = Style{Tee: "|---", Elbow: "`---", Pipe: "|   ", Space: "    "}
)

// StyleByName resolves a named glyph set.
func StyleByName(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "unicode":
		return Unicode, nil
	case "ascii":
		return ASCII, nil
	case "compact":
		return Compact, nil
	default:
		return Style{}, fmt.Errorf("unknown tree style %q (known: unicode, ascii, compact)", name)
	}
}

// Override replaces individual glyphs when the corresponding argument is
// non-empty.
func (s Style) Override(tee, elbow, pipe, space string) Style {
	if tee != "" {
		s.Tee = tee
	}
	if elbow != "" {
		s.Elbow = elbow
	}
	if pipe != "" {
		s.Pipe = pipe
	}
	if space != "" {
		s.Space = space
	}
	return s
}
