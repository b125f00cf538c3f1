package peg

import (
	"fmt"
	"strings"
)

// Sprint renders a parser graph as an indented tree, one node per line.
// Shared sub-parsers appear once in full and as "(see ...)" references
// afterwards; back-edges print as "(recurse ...)". Rule names attached with
// Named label the nodes they name.
func Sprint(root Parser) string {
	var b strings.Builder
	depth := 0
	indent := func() {
		b.WriteString(strings.Repeat("  ", depth))
	}
	w := NewWalker(func(p Parser, event WalkEvent) {
		switch event {
		case WalkBefore:
			indent()
			b.WriteString(nodeLabel(p))
			b.WriteString("\n")
			depth++
		case WalkAfter:
			depth--
		case WalkRecurse:
			indent()
			fmt.Fprintf(&b, "(recurse %s)\n", nodeLabel(p))
		case WalkVisited:
			indent()
			fmt.Fprintf(&b, "(see %s)\n", nodeLabel(p))
		}
	})
	w.Walk(root)
	return b.String()
}

// nodeLabel describes a single node without descending into children, so it
// stays finite on cyclic graphs.
func nodeLabel(p Parser) string {
	kind := kindLabel(p)
	if name := p.Name(); name != "" {
		return fmt.Sprintf("%s = %s", name, kind)
	}
	return kind
}

func kindLabel(p Parser) string {
	switch c := p.(type) {
	case *Literal:
		return fmt.Sprintf("str(%q)", c.str)
	case *CharPredicate:
		return c.label
	case *TokenPredicate:
		return c.label
	case *EndOfInput:
		return "end of input"
	case *Sequence:
		return "seq"
	case *OrderedChoice:
		return "choice"
	case *Optional:
		return "opt"
	case *Repetition:
		if c.max < 0 {
			return fmt.Sprintf("repeat(%d+)", c.min)
		}
		return fmt.Sprintf("repeat(%d..%d)", c.min, c.max)
	case *Lookahead:
		return "ahead"
	case *Negation:
		return "not"
	case *Around:
		var flags string
		if c.exact {
			flags += ", exact"
		}
		if c.trailing {
			flags += ", trailing"
		}
		return fmt.Sprintf("around(%d%s)", c.min, flags)
	case *LeftRecursive:
		return "leftrec"
	case *SemanticAction:
		return "action"
	case *Lazy:
		return "lazy"
	case *Memo:
		return "memo"
	case *Custom:
		if c.Label != "" {
			return c.Label
		}
		return "custom"
	}
	return p.String()
}
