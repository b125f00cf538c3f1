package peg

// Parser is a node in a parser graph. Implementations are immutable once the
// grammar is built (rule names are attached during construction, see Named)
// and may be shared freely between parses.
//
// The set of parser kinds is closed; Custom is the extension point for
// behavior the built-in combinators do not cover.
type Parser interface {
	// Children returns the sub-parsers of this node, in the order they are
	// tried. The returned slice is owned by the parser; callers must not
	// modify it. Back-edges in the returned graph are expected; traverse
	// with a Walker.
	Children() []Parser

	// Accept invokes the visitor method corresponding to this parser's kind.
	Accept(v ParserVisitor)

	// Name returns the rule name attached with Named, or "".
	Name() string

	// String returns the rule name if one is attached, and a structural
	// description otherwise.
	String() string

	doParse(p *Parse) bool
	setName(name string)
}

// base carries the optional rule name shared by all parser kinds.
type base struct {
	name string
}

func (b *base) Name() string { return b.name }

func (b *base) setName(n string) { b.name = n }

// Named attaches a rule name to parser and returns it. Named parsers print
// as their name in diagnostics and in the grammar tree, which keeps expected
// sets readable. Attach names while building the grammar, before the parser
// is used in a run.
func Named(name string, parser Parser) Parser {
	parser.setName(name)
	return parser
}

// Custom runs a user-provided parsing function. Fn must interact with the
// parse only through Pos, Stack, Log and Apply, so that journaling and
// rollback stay intact; on failure it may leave position and effects as they
// are, since Apply rolls both back.
//
// Kids declares any sub-parsers Fn invokes, making them visible to walkers
// and the well-formedness check. Leaf marks the parser as a matching
// primitive that belongs in the expected set of diagnostics.
type Custom struct {
	base
	Fn    func(p *Parse) bool
	Kids  []Parser
	Label string
	Leaf  bool
}

func (c *Custom) doParse(p *Parse) bool { return c.Fn(p) }

func (c *Custom) Children() []Parser { return c.Kids }

func (c *Custom) Accept(v ParserVisitor) { v.VisitCustom(c) }

func (c *Custom) String() string {
	if c.name != "" {
		return c.name
	}
	if c.Label != "" {
		return c.Label
	}
	return "custom"
}
