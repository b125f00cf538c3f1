package peg

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Memo caches the outcome of its child per input position for the duration
// of one parse. Wrapping the hot rules of a heavily backtracking grammar
// trades memory for time; the engine itself never requires memoization.
//
// The cache is bounded (see WithMemoLimit) and records effects alongside
// outcomes, so a cache hit replays the child's journal entries exactly as a
// fresh match would. Cached failures skip the child entirely, including its
// contribution to the expected set; both runs of a double-run check memoize
// identically, so determinism is preserved.
type Memo struct {
	base
	child Parser
}

// Memoize wraps child with a per-position result cache.
func Memoize(child Parser) *Memo {
	return &Memo{child: child}
}

// Child returns the memoized parser.
func (m *Memo) Child() Parser { return m.child }

type memoKey struct {
	parser *Memo
	pos    int
}

type memoEntry struct {
	ok      bool
	end     int
	effects []SideEffect
}

func (m *Memo) doParse(p *Parse) bool {
	if p.memo == nil {
		cache, err := lru.New[memoKey, memoEntry](p.opts.memoLimit)
		if err != nil {
			panic(fmt.Sprintf("peg: memo cache: %v", err))
		}
		p.memo = cache
	}

	key := memoKey{parser: m, pos: p.Pos}
	if e, ok := p.memo.Get(key); ok {
		if !e.ok {
			return false
		}
		for _, eff := range e.effects {
			p.log.Apply(eff)
		}
		p.Pos = e.end
		return true
	}

	log0 := p.log.Size()
	ok := p.Apply(m.child)
	entry := memoEntry{ok: ok}
	if ok {
		entry.end = p.Pos
		entry.effects = p.log.since(log0)
	}
	p.memo.Add(key, entry)
	return ok
}

func (m *Memo) Children() []Parser { return []Parser{m.child} }

func (m *Memo) Accept(v ParserVisitor) { v.VisitMemo(m) }

func (m *Memo) String() string {
	if m.name != "" {
		return m.name
	}
	return fmt.Sprintf("memo(%s)", m.child)
}
