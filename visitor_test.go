package peg

import "testing"

// literalCollector gathers every literal in a grammar, routing all other
// kinds through the default hook.
type literalCollector struct {
	VisitorBase
	literals []string
	others   int
}

func newLiteralCollector() *literalCollector {
	c := &literalCollector{}
	c.Default = func(Parser) { c.others++ }
	return c
}

func (c *literalCollector) VisitLiteral(p *Literal) {
	c.literals = append(c.literals, p.Text())
}

func TestVisitorDoubleDispatch(t *testing.T) {
	g := Seq(Str("a"), Choice(Str("b"), CharRange('0', '9')), Opt(Str("c")))

	c := newLiteralCollector()
	w := NewWalker(func(p Parser, ev WalkEvent) {
		if ev == WalkBefore {
			p.Accept(c)
		}
	})
	w.Walk(g)

	want := []string{"a", "b", "c"}
	if len(c.literals) != len(want) {
		t.Fatalf("literals: got %v, want %v", c.literals, want)
	}
	for i := range want {
		if c.literals[i] != want[i] {
			t.Errorf("literal %d: got %s, want %s", i, c.literals[i], want[i])
		}
	}
	// seq, choice, char predicate, opt.
	if c.others != 4 {
		t.Errorf("default hook hit %d times, want 4", c.others)
	}
}

func TestVisitorBaseIgnoresWithoutDefault(t *testing.T) {
	var v VisitorBase
	// Must not panic with a nil Default.
	Str("a").Accept(&v)
	Seq().Accept(&v)
}

func TestEveryKindDispatches(t *testing.T) {
	kinds := []Parser{
		Str("a"),
		CharRange('a', 'z'),
		TokenPred("tok", func(any) bool { return true }),
		End(),
		Seq(),
		Choice(),
		Opt(Str("a")),
		ZeroOrMore(Str("a")),
		Ahead(Str("a")),
		Not(Str("a")),
		Sep(0, Str("a"), Str(",")),
		LeftRec(func(self Parser) Parser { return Choice(Seq(self, Str("+")), Str("1")) }),
		Action(Str("a"), func(*ActionContext) {}),
		Defer(func() Parser { return Str("a") }),
		Memoize(Str("a")),
		&Custom{Fn: func(*Parse) bool { return true }},
	}

	hits := 0
	v := &VisitorBase{Default: func(Parser) { hits++ }}
	for _, k := range kinds {
		k.Accept(v)
	}
	if hits != len(kinds) {
		t.Errorf("dispatched %d of %d kinds", hits, len(kinds))
	}
}
