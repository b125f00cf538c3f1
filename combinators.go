package peg

import (
	"fmt"
	"strings"
)

// Sequence matches its children one after another. It fails as soon as one
// child fails, and Apply then unwinds whatever the earlier children did.
type Sequence struct {
	base
	children []Parser
}

// Seq returns a parser matching every child in order. Seq() with no children
// always succeeds without consuming input.
func Seq(children ...Parser) *Sequence {
	return &Sequence{children: children}
}

// Empty returns a parser that always succeeds without consuming input.
func Empty() Parser { return Seq() }

func (s *Sequence) doParse(p *Parse) bool {
	for _, c := range s.children {
		if !p.Apply(c) {
			return false
		}
	}
	return true
}

func (s *Sequence) Children() []Parser { return s.children }

func (s *Sequence) Accept(v ParserVisitor) { v.VisitSequence(s) }

func (s *Sequence) String() string {
	if s.name != "" {
		return s.name
	}
	return compositeString("seq", s.children)
}

// OrderedChoice tries its children in order and commits to the first that
// matches. Rejected alternatives leave no trace: Apply rolls each one back
// before the next is tried.
type OrderedChoice struct {
	base
	children []Parser
}

// Choice returns a parser matching the first child that succeeds. Choice()
// with no children always fails.
func Choice(children ...Parser) *OrderedChoice {
	return &OrderedChoice{children: children}
}

// Fail returns a parser that always fails without contributing to
// diagnostics.
func Fail() Parser { return Choice() }

func (c *OrderedChoice) doParse(p *Parse) bool {
	for _, child := range c.children {
		if p.Apply(child) {
			return true
		}
	}
	return false
}

func (c *OrderedChoice) Children() []Parser { return c.children }

func (c *OrderedChoice) Accept(v ParserVisitor) { v.VisitOrderedChoice(c) }

func (c *OrderedChoice) String() string {
	if c.name != "" {
		return c.name
	}
	return compositeString("choice", c.children)
}

// Optional matches its child if possible and succeeds either way.
type Optional struct {
	base
	child Parser
}

// Opt returns a parser that tries child and succeeds regardless.
func Opt(child Parser) *Optional {
	return &Optional{child: child}
}

// Child returns the wrapped parser.
func (o *Optional) Child() Parser { return o.child }

func (o *Optional) doParse(p *Parse) bool {
	p.Apply(o.child)
	return true
}

func (o *Optional) Children() []Parser { return []Parser{o.child} }

func (o *Optional) Accept(v ParserVisitor) { v.VisitOptional(o) }

func (o *Optional) String() string {
	if o.name != "" {
		return o.name
	}
	return fmt.Sprintf("opt(%s)", o.child)
}

// Repetition greedily matches its child between Min and Max times.
type Repetition struct {
	base
	min, max int
	child    Parser
}

// Repeat returns a parser matching child at least min and at most max times,
// consuming as many matches as it can. A negative max means unbounded. If
// child succeeds without consuming input, the repetition stops after that
// iteration rather than looping forever.
func Repeat(min, max int, child Parser) *Repetition {
	return &Repetition{min: min, max: max, child: child}
}

// ZeroOrMore returns Repeat(0, -1, child).
func ZeroOrMore(child Parser) *Repetition { return Repeat(0, -1, child) }

// OneOrMore returns Repeat(1, -1, child).
func OneOrMore(child Parser) *Repetition { return Repeat(1, -1, child) }

// Times returns Repeat(n, n, child).
func Times(n int, child Parser) *Repetition { return Repeat(n, n, child) }

// Min returns the minimum number of matches.
func (r *Repetition) Min() int { return r.min }

// Max returns the maximum number of matches, negative for unbounded.
func (r *Repetition) Max() int { return r.max }

// Child returns the repeated parser.
func (r *Repetition) Child() Parser { return r.child }

func (r *Repetition) doParse(p *Parse) bool {
	count := 0
	for r.max < 0 || count < r.max {
		pos0 := p.Pos
		if !p.Apply(r.child) {
			break
		}
		count++
		if p.Pos == pos0 {
			// Empty match: repeating it again would not terminate.
			break
		}
	}
	return count >= r.min
}

func (r *Repetition) Children() []Parser { return []Parser{r.child} }

func (r *Repetition) Accept(v ParserVisitor) { v.VisitRepetition(r) }

func (r *Repetition) String() string {
	if r.name != "" {
		return r.name
	}
	if r.max < 0 {
		return fmt.Sprintf("repeat(%d+, %s)", r.min, r.child)
	}
	return fmt.Sprintf("repeat(%d..%d, %s)", r.min, r.max, r.child)
}

// Lookahead succeeds when its child matches, without consuming input or
// keeping any of the child's effects.
type Lookahead struct {
	base
	child Parser
}

// Ahead returns a positive-lookahead parser over child.
func Ahead(child Parser) *Lookahead {
	return &Lookahead{child: child}
}

// Child returns the wrapped parser.
func (l *Lookahead) Child() Parser { return l.child }

func (l *Lookahead) doParse(p *Parse) bool {
	pos0 := p.Pos
	log0 := p.log.Size()
	if !p.Apply(l.child) {
		return false
	}
	p.log.Rollback(log0)
	p.Pos = pos0
	return true
}

func (l *Lookahead) Children() []Parser { return []Parser{l.child} }

func (l *Lookahead) Accept(v ParserVisitor) { v.VisitLookahead(l) }

func (l *Lookahead) String() string {
	if l.name != "" {
		return l.name
	}
	return fmt.Sprintf("ahead(%s)", l.child)
}

// Negation succeeds when its child fails, consuming nothing. The child's
// failures are expected and are kept out of the furthest-error tracker.
type Negation struct {
	base
	child Parser
}

// Not returns a negative-lookahead parser over child.
func Not(child Parser) *Negation {
	return &Negation{child: child}
}

// Child returns the wrapped parser.
func (n *Negation) Child() Parser { return n.child }

func (n *Negation) doParse(p *Parse) bool {
	saved := p.saveErrorState()
	pos0 := p.Pos
	log0 := p.log.Size()
	ok := p.Apply(n.child)
	p.restoreErrorState(saved)
	if !ok {
		return true
	}
	p.log.Rollback(log0)
	p.Pos = pos0
	return false
}

func (n *Negation) Children() []Parser { return []Parser{n.child} }

func (n *Negation) Accept(v ParserVisitor) { v.VisitNegation(n) }

func (n *Negation) String() string {
	if n.name != "" {
		return n.name
	}
	return fmt.Sprintf("not(%s)", n.child)
}

func compositeString(kind string, children []Parser) string {
	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = c.String()
	}
	return fmt.Sprintf("%s(%s)", kind, strings.Join(parts, ", "))
}
