package peg

import "sync"

// Lazy defers the construction of a parser until it is first needed, which
// is how a grammar refers to rules defined later and how non-left-recursive
// cycles are closed:
//
//	var value peg.Parser
//	array := peg.Seq(peg.Str("["), peg.Defer(func() peg.Parser { return value }), peg.Str("]"))
//	value = peg.Choice(number, array)
//
// Resolution happens once; the resolver must not depend on parse state.
type Lazy struct {
	base
	once    sync.Once
	resolve func() Parser
	target  Parser
}

// Defer returns a parser that resolves to resolve() on first use.
func Defer(resolve func() Parser) *Lazy {
	return &Lazy{resolve: resolve}
}

// Target returns the resolved parser.
func (l *Lazy) Target() Parser {
	l.once.Do(func() {
		l.target = l.resolve()
		l.resolve = nil
	})
	return l.target
}

func (l *Lazy) doParse(p *Parse) bool { return p.Apply(l.Target()) }

func (l *Lazy) Children() []Parser { return []Parser{l.Target()} }

func (l *Lazy) Accept(v ParserVisitor) { v.VisitLazy(l) }

func (l *Lazy) String() string {
	if l.name != "" {
		return l.name
	}
	// The target may refer back through this node; printing it could not
	// terminate.
	return "lazy"
}
