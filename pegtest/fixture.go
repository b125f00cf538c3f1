// Package pegtest provides a test harness for grammars built with the peg
// package.
//
// The harness runs every assertion's parser twice against the same input and
// compares the two outcomes. A parser that keeps state outside the journaled
// parse context (a stateful closure, a shared AST node, a forgotten side
// effect) will typically succeed once and then diverge, and the divergence
// is reported with both outcomes side by side. This catches the class of bug
// that is hardest to spot in a backtracking parser: state that a failed
// alternative left behind.
package pegtest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dhamidi/peg"
)

// Fixture wraps a parser under test. NewFixture sets the default knobs:
// columns start at 1, tabs are 4 wide, call stacks are recorded on every
// run, and trace dumps are separated by "\n------". A zero Fixture has none
// of these defaults.
type Fixture struct {
	// Parser is the parser driven by the assertion methods.
	Parser peg.Parser

	// ColumnStart is the first column index used when formatting error
	// locations. 1 by default; 0 is permitted.
	ColumnStart int

	// TabWidth is the visual tab width used when formatting error
	// locations.
	TabWidth int

	// RecordCallStack records parser call stacks on every run. When false,
	// the call stack is recorded only on the second run and only if the
	// first failed, which is faster. Defaults to true.
	RecordCallStack bool

	// Trace enables per-step tracing on both runs; traces appear in
	// divergence reports, separated by TraceSeparator.
	Trace bool

	// TraceSeparator separates the trace dumps of the two runs in
	// divergence reports.
	TraceSeparator string
}

// NewFixture returns a fixture for parser with the default knobs.
func NewFixture(parser peg.Parser) *Fixture {
	return &Fixture{
		Parser:          parser,
		ColumnStart:     1,
		TabWidth:        4,
		RecordCallStack: true,
		TraceSeparator:  "\n------",
	}
}

// lineMap builds the map used to format error locations, or nil for token
// input.
func (f *Fixture) lineMap(input any) *peg.LineMap {
	src, ok := input.(string)
	if !ok {
		return nil
	}
	m := peg.NewLineMap(src)
	m.TabWidth = f.TabWidth
	m.ColumnStart = f.ColumnStart
	return m
}

func (f *Fixture) run(input any, recordCallStack bool) (*peg.Result, error) {
	var opts []peg.Option
	if recordCallStack {
		opts = append(opts, peg.WithCallStackRecording())
	}
	if f.Trace {
		opts = append(opts, peg.WithTracing())
	}
	switch in := input.(type) {
	case string:
		return peg.RunString(f.Parser, in, opts...)
	case []any:
		return peg.RunTokens(f.Parser, in, opts...)
	}
	return nil, fmt.Errorf("unsupported input type %T", input)
}

// comparedStatus renders both outcomes of a diverging double run.
func (f *Fixture) comparedStatus(msgHead string, lm *peg.LineMap, r1, r2 *peg.Result) string {
	var b strings.Builder
	b.WriteString(msgHead)
	b.WriteString(" Maybe a parser kept state outside the parse?\n\n")
	b.WriteString("### Initial Parse ###\n\n")
	r1.AppendTo(&b, lm)
	if f.Trace && len(r1.Trace) > 0 {
		b.WriteString(f.TraceSeparator)
		b.WriteString("\n")
		b.WriteString(strings.Join(r1.Trace, "\n"))
		b.WriteString("\n")
	}
	b.WriteString("\n### Second Parse ###\n\n")
	r2.AppendTo(&b, lm)
	if f.Trace && len(r2.Trace) > 0 {
		b.WriteString(f.TraceSeparator)
		b.WriteString("\n")
		b.WriteString(strings.Join(r2.Trace, "\n"))
		b.WriteString("\n")
	}
	return b.String()
}

// doubleRun performs the two runs and checks them against each other,
// returning the first result when they agree.
func (f *Fixture) doubleRun(input any) (*peg.Result, error) {
	lm := f.lineMap(input)

	r1, err := f.run(input, f.RecordCallStack)
	if err != nil {
		return nil, err
	}
	r2, err := f.run(input, f.RecordCallStack || !r1.Success)
	if err != nil {
		return nil, err
	}

	switch {
	case r1.Thrown == nil && r2.Thrown != nil:
		return nil, fmt.Errorf("%s", f.comparedStatus(
			"Second parse throws an error while the initial parse does not.", lm, r1, r2))
	case r1.Thrown != nil && r2.Thrown == nil:
		return nil, fmt.Errorf("%s", f.comparedStatus(
			"Second parse does not throw an error while the initial parse does.", lm, r1, r2))
	case r1.Thrown != nil && r2.Thrown != nil:
		t1, t2 := fmt.Sprintf("%T", r1.Thrown), fmt.Sprintf("%T", r2.Thrown)
		if t1 != t2 {
			return nil, fmt.Errorf("%s", f.comparedStatus(
				"Second parse does not throw the same type of error as the initial parse.", lm, r1, r2))
		}
	}

	if r1.Success != r2.Success {
		return nil, fmt.Errorf("%s", f.comparedStatus(
			"Second parse does not have the same success as the initial parse.", lm, r1, r2))
	}
	if r1.Success {
		if r1.MatchSize != r2.MatchSize {
			return nil, fmt.Errorf("%s", f.comparedStatus(
				"Second parse and initial parse do not consume the same amount of input.", lm, r1, r2))
		}
	} else if r1.ErrorPos != r2.ErrorPos {
		return nil, fmt.Errorf("%s", f.comparedStatus(
			"Second parse and initial parse do not fail at the same position.", lm, r1, r2))
	}

	// The two runs agree; everything else is based on the first, so at
	// least the reporting stays consistent.
	return r1, nil
}

func (f *Fixture) success(input any) (*peg.Result, error) {
	r, err := f.doubleRun(input)
	if err != nil {
		return nil, err
	}
	if !r.FullMatch {
		return nil, fmt.Errorf("parse did not match the whole input:\n%s", r.Report(f.lineMap(input)))
	}
	return r, nil
}

func (f *Fixture) failure(input any) (*peg.Result, error) {
	r, err := f.doubleRun(input)
	if err != nil {
		return nil, err
	}
	if r.FullMatch {
		return nil, fmt.Errorf("parse succeeded when it was expected to fail:\n%s", r.Report(f.lineMap(input)))
	}
	if !r.Success && r.Thrown == nil && r.ErrorPos < 0 {
		return nil, fmt.Errorf("no error nor parse failure was reported:\n%s", r.Report(f.lineMap(input)))
	}
	return r, nil
}

// Success asserts that the parser matches all of input. The parser runs
// twice; any divergence between the runs fails the assertion with a report
// of both outcomes. input is a string or a []any token slice.
func (f *Fixture) Success(t testing.TB, input any) *peg.Result {
	t.Helper()
	r, err := f.success(input)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

// SuccessExpect asserts Success and that the top of the value stack equals
// want.
func (f *Fixture) SuccessExpect(t testing.TB, input any, want any) *peg.Result {
	t.Helper()
	r := f.Success(t, input)
	if len(r.Stack) == 0 {
		t.Fatal("empty value stack")
	}
	if top := r.Stack[len(r.Stack)-1]; top != want {
		t.Fatalf("top of the value stack: got %v, want %v", top, want)
	}
	return r
}

// Failure asserts that the parser does not match all of input.
func (f *Fixture) Failure(t testing.TB, input any) *peg.Result {
	t.Helper()
	r, err := f.failure(input)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

// FailureAt asserts Failure and that the furthest error is at errorPos.
func (f *Fixture) FailureAt(t testing.TB, input any, errorPos int) *peg.Result {
	t.Helper()
	r := f.Failure(t, input)
	if r.ErrorPos != errorPos {
		t.Fatalf("furthest error at %d, want %d:\n%s", r.ErrorPos, errorPos, r.Report(f.lineMap(input)))
	}
	return r
}
