package peg

// LeftRecursive enables direct and indirect left recursion by seed growing:
// the body is invoked repeatedly, each time with the previous best match
// standing in for recursive re-entries at the same position, until an
// iteration fails to consume more input. The longest match wins, which makes
// left-recursive binary operators associate to the left.
type LeftRecursive struct {
	base
	child Parser
}

// LeftRec builds a left-recursive rule. The build function receives the rule
// itself, so the body can refer back to it:
//
//	sum := peg.LeftRec(func(self peg.Parser) peg.Parser {
//		return peg.Choice(
//			peg.Seq(self, peg.Str("+"), number),
//			number,
//		)
//	})
func LeftRec(build func(self Parser) Parser) *LeftRecursive {
	lr := &LeftRecursive{}
	lr.child = build(lr)
	return lr
}

// Child returns the rule body.
func (lr *LeftRecursive) Child() Parser { return lr.child }

type seedKey struct {
	parser *LeftRecursive
	pos    int
}

// seed is the best match grown so far for one (parser, position) pair. A
// negative end means no match yet: re-entries fail until the first
// iteration completes.
type seed struct {
	end     int
	effects []SideEffect
}

func (s *seed) replay(p *Parse) {
	for _, e := range s.effects {
		p.log.Apply(e)
	}
	p.Pos = s.end
}

func (lr *LeftRecursive) doParse(p *Parse) bool {
	key := seedKey{parser: lr, pos: p.Pos}
	if s, ok := p.seeds[key]; ok {
		// Re-entry at the same position: stand in with the current seed
		// instead of recursing.
		if s.end < 0 {
			return false
		}
		s.replay(p)
		return true
	}

	if p.seeds == nil {
		p.seeds = make(map[seedKey]*seed)
	}
	pos0 := p.Pos
	log0 := p.log.Size()
	current := &seed{end: -1}
	p.seeds[key] = current
	defer delete(p.seeds, key)

	for {
		if !p.Apply(lr.child) {
			break
		}
		if p.Pos <= current.end {
			// The new match does not extend the seed; discard it and stop
			// growing.
			p.log.Rollback(log0)
			p.Pos = pos0
			break
		}
		current.end = p.Pos
		current.effects = p.log.since(log0)
		p.log.Rollback(log0)
		p.Pos = pos0
	}

	if current.end < 0 {
		return false
	}
	current.replay(p)
	return true
}

func (lr *LeftRecursive) Children() []Parser { return []Parser{lr.child} }

func (lr *LeftRecursive) Accept(v ParserVisitor) { v.VisitLeftRecursive(lr) }

func (lr *LeftRecursive) String() string {
	if lr.name != "" {
		return lr.name
	}
	// The body refers back to this node; printing it would not terminate.
	return "leftrec"
}
