package peg

import (
	"fmt"
	"strings"
)

// Around matches repetitions of one parser (the repeated item) separated by
// another (the separator): item, sep item, sep item, ...
type Around struct {
	base
	min      int
	exact    bool
	trailing bool
	item     Parser
	sep      Parser

	// Matching one more repetition always means separator-then-item.
	sepThenItem *Sequence
}

// Sep returns a parser matching at least min repetitions of item separated
// by sep, consuming as many repetitions as it can.
func Sep(min int, item, sep Parser) *Around {
	return newAround(min, false, false, item, sep)
}

// SepExact returns a parser matching exactly n repetitions of item separated
// by sep. With n == 0 it still consumes one item when one is present.
func SepExact(n int, item, sep Parser) *Around {
	return newAround(n, true, false, item, sep)
}

// SepTrailing is Sep with an optional trailing separator after the last
// item. The trailing separator may fail silently: its failure does not
// affect the overall match and stays out of diagnostics.
func SepTrailing(min int, item, sep Parser) *Around {
	return newAround(min, false, true, item, sep)
}

func newAround(min int, exact, trailing bool, item, sep Parser) *Around {
	return &Around{
		min:         min,
		exact:       exact,
		trailing:    trailing,
		item:        item,
		sep:         sep,
		sepThenItem: Seq(sep, item),
	}
}

// Min returns the minimum number of repetitions.
func (a *Around) Min() int { return a.min }

// Exact reports whether the parser matches exactly Min repetitions.
func (a *Around) Exact() bool { return a.exact }

// Trailing reports whether a trailing separator is allowed.
func (a *Around) Trailing() bool { return a.trailing }

// Item returns the repeated parser.
func (a *Around) Item() Parser { return a.item }

// Separator returns the separator parser.
func (a *Around) Separator() Parser { return a.sep }

func (a *Around) doParse(p *Parse) bool {
	if !p.Apply(a.item) {
		if a.min == 0 && a.trailing {
			a.trailingSep(p)
		}
		return a.min == 0
	}
	for i := 0; i < a.min-1; i++ {
		if !p.Apply(a.sepThenItem) {
			return false
		}
	}
	if !a.exact {
		for p.Apply(a.sepThenItem) {
		}
	}
	if a.trailing {
		a.trailingSep(p)
	}
	return true
}

// trailingSep attempts one separator match whose failure is benign: the
// error tracker is restored so the attempt leaves no diagnostic trace.
func (a *Around) trailingSep(p *Parse) {
	saved := p.saveErrorState()
	if !p.Apply(a.sep) {
		p.restoreErrorState(saved)
	}
}

func (a *Around) Children() []Parser { return []Parser{a.item, a.sep} }

func (a *Around) Accept(v ParserVisitor) { v.VisitAround(a) }

func (a *Around) String() string {
	if a.name != "" {
		return a.name
	}
	var b strings.Builder
	fmt.Fprintf(&b, "around(%s, %s, %d", a.item, a.sep, a.min)
	if a.exact {
		b.WriteString(", exact")
	}
	if a.trailing {
		b.WriteString(", trailing")
	}
	b.WriteString(")")
	return b.String()
}
