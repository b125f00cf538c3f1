package peg

import (
	"fmt"
	"strings"
)

// Literal matches a fixed string at the current position.
type Literal struct {
	base
	str   string
	runes []rune
}

// Str returns a parser matching text exactly.
func Str(text string) *Literal {
	return &Literal{str: text, runes: []rune(text)}
}

// Text returns the string the literal matches.
func (l *Literal) Text() string { return l.str }

func (l *Literal) doParse(p *Parse) bool {
	if !p.StringInput().hasPrefix(p.Pos, l.runes) {
		return false
	}
	p.Pos += len(l.runes)
	return true
}

func (l *Literal) Children() []Parser { return nil }

func (l *Literal) Accept(v ParserVisitor) { v.VisitLiteral(l) }

func (l *Literal) String() string {
	if l.name != "" {
		return l.name
	}
	return fmt.Sprintf("str(%q)", l.str)
}

// CharPredicate matches a single code point satisfying a predicate.
type CharPredicate struct {
	base
	label string
	pred  func(r rune) bool
}

// CharPred returns a parser matching one code point for which pred returns
// true. The label describes the class in diagnostics, e.g. "digit".
func CharPred(label string, pred func(r rune) bool) *CharPredicate {
	return &CharPredicate{label: label, pred: pred}
}

// AnyChar matches any single code point.
func AnyChar() *CharPredicate {
	return CharPred("any character", func(rune) bool { return true })
}

// CharRange matches one code point in the inclusive range [lo, hi].
func CharRange(lo, hi rune) *CharPredicate {
	return CharPred(fmt.Sprintf("[%c-%c]", lo, hi), func(r rune) bool {
		return lo <= r && r <= hi
	})
}

// CharSet matches one code point contained in set.
func CharSet(set string) *CharPredicate {
	return CharPred(fmt.Sprintf("[%s]", set), func(r rune) bool {
		return strings.ContainsRune(set, r)
	})
}

// Label returns the diagnostic label of the character class.
func (c *CharPredicate) Label() string { return c.label }

func (c *CharPredicate) doParse(p *Parse) bool {
	r := p.StringInput().CharAt(p.Pos)
	if r < 0 || !c.pred(r) {
		return false
	}
	p.Pos++
	return true
}

func (c *CharPredicate) Children() []Parser { return nil }

func (c *CharPredicate) Accept(v ParserVisitor) { v.VisitCharPredicate(c) }

func (c *CharPredicate) String() string {
	if c.name != "" {
		return c.name
	}
	return c.label
}

// TokenPredicate matches a single token satisfying a predicate. It requires
// a TokenInput.
type TokenPredicate struct {
	base
	label string
	pred  func(tok any) bool
}

// TokenPred returns a parser matching one token for which pred returns true.
// The label describes the token in diagnostics, e.g. "'+'" or "integer".
func TokenPred(label string, pred func(tok any) bool) *TokenPredicate {
	return &TokenPredicate{label: label, pred: pred}
}

// AnyToken matches any single token.
func AnyToken() *TokenPredicate {
	return TokenPred("any token", func(any) bool { return true })
}

// Label returns the diagnostic label of the token class.
func (t *TokenPredicate) Label() string { return t.label }

func (t *TokenPredicate) doParse(p *Parse) bool {
	tok := p.TokenInput().TokenAt(p.Pos)
	if tok == nil || !t.pred(tok) {
		return false
	}
	p.Pos++
	return true
}

func (t *TokenPredicate) Children() []Parser { return nil }

func (t *TokenPredicate) Accept(v ParserVisitor) { v.VisitTokenPredicate(t) }

func (t *TokenPredicate) String() string {
	if t.name != "" {
		return t.name
	}
	return t.label
}

// EndOfInput matches only at the end of the input, consuming nothing.
type EndOfInput struct {
	base
}

// End returns a parser matching the end of the input.
func End() *EndOfInput { return &EndOfInput{} }

func (e *EndOfInput) doParse(p *Parse) bool {
	return p.Pos == p.input.Len()
}

func (e *EndOfInput) Children() []Parser { return nil }

func (e *EndOfInput) Accept(v ParserVisitor) { v.VisitEndOfInput(e) }

func (e *EndOfInput) String() string {
	if e.name != "" {
		return e.name
	}
	return "end of input"
}
