package peg

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("peg")

// ErrCanceled is the panic value raised when the cancellation callback
// installed with WithCancellation reports true. Run recovers it into
// Result.Thrown.
var ErrCanceled = fmt.Errorf("peg: parse canceled")

// CallFrame records one active parser invocation: which parser was entered
// and at which input position.
type CallFrame struct {
	Parser Parser
	Pos    int
}

func (f CallFrame) String() string {
	return fmt.Sprintf("%s at %d", f.Parser, f.Pos)
}

// Parse is the mutable context for a single run of a parser graph. One Parse
// is owned by one goroutine for the duration of the run; the parser graph it
// walks is shared and read-only.
//
// Parsers interact with a Parse through Pos, Stack, Log and Apply. Everything
// else (error tracking, call-stack recording, rollback) is handled by Apply.
type Parse struct {
	// Pos is the current input position. Parser code may read and advance
	// it; Apply restores it when a parser fails.
	Pos int

	input Input
	stack *ValueStack
	log   *SideEffectLog
	opts  *options

	// Furthest-error tracker.
	errorPos    int
	expected    []Parser
	errorFrames []CallFrame

	callStack  []CallFrame
	trace      []string
	traceDepth int

	seeds map[seedKey]*seed
	memo  *lru.Cache[memoKey, memoEntry]
}

func newParse(input Input, opts *options) *Parse {
	p := &Parse{
		input:    input,
		opts:     opts,
		errorPos: -1,
	}
	p.log = &SideEffectLog{parse: p}
	p.stack = &ValueStack{parse: p}
	return p
}

// Input returns the input being parsed.
func (p *Parse) Input() Input { return p.input }

// Stack returns the value stack.
func (p *Parse) Stack() *ValueStack { return p.stack }

// Log returns the side-effect journal.
func (p *Parse) Log() *SideEffectLog { return p.log }

// ErrorPos returns the furthest position at which a matching primitive has
// failed so far, or -1 if none has.
func (p *Parse) ErrorPos() int { return p.errorPos }

// Apply invokes parser transactionally. On failure, every side effect the
// attempt journaled is undone, the position is restored, and, if parser is a
// matching primitive, the furthest-error tracker is updated. On success the
// attempt is committed as-is. This is the only way a parser may invoke
// another during a parse.
func (p *Parse) Apply(parser Parser) bool {
	if p.opts.cancel != nil && p.opts.cancel() {
		panic(ErrCanceled)
	}

	pos0 := p.Pos
	log0 := p.log.Size()

	if p.opts.recordCallStack {
		p.callStack = append(p.callStack, CallFrame{Parser: parser, Pos: pos0})
	}
	if p.opts.trace {
		p.traceEnter(parser, pos0)
	}

	ok := parser.doParse(p)

	if p.opts.trace {
		p.traceExit(parser, pos0, ok)
	}
	if !ok {
		p.log.Rollback(log0)
		p.Pos = pos0
		if errorContributor(parser) {
			p.registerFailure(parser, pos0)
		}
	} else if p.Pos < pos0 {
		panic(fmt.Sprintf("peg: %s succeeded but moved the position backwards (%d -> %d)",
			parser, pos0, p.Pos))
	}
	if p.opts.recordCallStack {
		p.callStack = p.callStack[:len(p.callStack)-1]
	}
	return ok
}

// errorContributor reports whether parser belongs in the expected set of a
// diagnostic. Only primitives that directly examine the input qualify;
// composites relay their children's failures.
func errorContributor(parser Parser) bool {
	switch c := parser.(type) {
	case *Literal, *CharPredicate, *TokenPredicate, *EndOfInput:
		return true
	case *Custom:
		return c.Leaf
	}
	return false
}

func (p *Parse) registerFailure(parser Parser, pos int) {
	switch {
	case pos > p.errorPos:
		p.errorPos = pos
		p.expected = append(p.expected[:0], parser)
		if p.opts.recordCallStack {
			p.errorFrames = append([]CallFrame(nil), p.callStack...)
		}
	case pos == p.errorPos:
		for _, q := range p.expected {
			if q == parser {
				return
			}
		}
		p.expected = append(p.expected, parser)
	}
}

// errorState is a snapshot of the furthest-error tracker, used by parsers
// whose inner failures are expected and must not show up in diagnostics
// (Not, the trailing separator attempt of Around).
type errorState struct {
	pos      int
	expected []Parser
	frames   []CallFrame
}

func (p *Parse) saveErrorState() errorState {
	return errorState{
		pos:      p.errorPos,
		expected: append([]Parser(nil), p.expected...),
		frames:   p.errorFrames,
	}
}

func (p *Parse) restoreErrorState(s errorState) {
	p.errorPos = s.pos
	p.expected = s.expected
	p.errorFrames = s.frames
}

func (p *Parse) traceEnter(parser Parser, pos int) {
	entry := fmt.Sprintf("%s? %s at %d", strings.Repeat("  ", p.traceDepth), parser, pos)
	p.trace = append(p.trace, entry)
	log.Debug(entry)
	p.traceDepth++
}

func (p *Parse) traceExit(parser Parser, pos0 int, ok bool) {
	p.traceDepth--
	var entry string
	if ok {
		entry = fmt.Sprintf("%s= %s matched [%d,%d)", strings.Repeat("  ", p.traceDepth), parser, pos0, p.Pos)
	} else {
		entry = fmt.Sprintf("%s= %s failed at %d", strings.Repeat("  ", p.traceDepth), parser, pos0)
	}
	p.trace = append(p.trace, entry)
	log.Debug(entry)
}
