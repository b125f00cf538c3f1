package peg

import (
	"fmt"
	"strings"
)

// Result is the immutable outcome of one parser run.
type Result struct {
	// Success reports whether the root parser matched.
	Success bool
	// FullMatch reports whether the root parser matched the entire input.
	FullMatch bool
	// MatchSize is the number of input positions consumed, 0 unless
	// Success.
	MatchSize int
	// Stack is the final value stack, bottom first. When Thrown is set it
	// holds whatever the interrupted parse left behind, deliberately not
	// rolled back, for post-mortem inspection.
	Stack []any
	// ErrorPos is the furthest position at which a matching primitive
	// failed, or -1 if none did.
	ErrorPos int
	// Expected holds the parsers that failed at ErrorPos, in failure order.
	Expected []Parser
	// CallStack is the chain of parser invocations active when the
	// furthest error was recorded, outermost first. Empty unless the run
	// used WithCallStackRecording.
	CallStack []CallFrame
	// Thrown is the value recovered from a panic during the parse, nil for
	// an orderly outcome.
	Thrown any
	// Trace holds the per-step entries recorded under WithTracing.
	Trace []string
}

// ExpectedNames returns the deduplicated display names of the parsers in
// the expected set, in first-failure order.
func (r *Result) ExpectedNames() []string {
	var names []string
	seen := make(map[string]bool)
	for _, p := range r.Expected {
		s := p.String()
		if seen[s] {
			continue
		}
		seen[s] = true
		names = append(names, s)
	}
	return names
}

// AppendTo writes a human-readable report of the outcome to b. Sections
// appear in fixed order: outcome, thrown error, furthest-error location and
// expected set, call-stack snapshot, value stack. lm, when non-nil,
// formats input positions as line and column.
func (r *Result) AppendTo(b *strings.Builder, lm *LineMap) {
	loc := func(pos int) string {
		if lm != nil {
			return lm.Describe(pos)
		}
		return fmt.Sprintf("position %d", pos)
	}

	switch {
	case r.FullMatch:
		fmt.Fprintf(b, "Parse matched the whole input (%d positions).\n", r.MatchSize)
	case r.Success:
		fmt.Fprintf(b, "Parse succeeded, matching %d positions.\n", r.MatchSize)
	default:
		b.WriteString("Parse failed.\n")
	}

	if r.Thrown != nil {
		fmt.Fprintf(b, "Error thrown during the parse: %v\n", r.Thrown)
	}

	if !r.Success && r.ErrorPos >= 0 {
		fmt.Fprintf(b, "Furthest error at %s.\n", loc(r.ErrorPos))
		if names := r.ExpectedNames(); len(names) > 0 {
			b.WriteString("Expected one of:\n")
			for _, name := range names {
				fmt.Fprintf(b, "  %s\n", name)
			}
		}
	}

	if len(r.CallStack) > 0 {
		b.WriteString("Call stack at furthest error (innermost first):\n")
		for i := len(r.CallStack) - 1; i >= 0; i-- {
			f := r.CallStack[i]
			fmt.Fprintf(b, "  %s at %s\n", f.Parser, loc(f.Pos))
		}
	}

	if len(r.Stack) == 0 {
		b.WriteString("Value stack: empty.\n")
	} else {
		fmt.Fprintf(b, "Value stack (%d items, top first):\n", len(r.Stack))
		for i := len(r.Stack) - 1; i >= 0; i-- {
			fmt.Fprintf(b, "  %v\n", r.Stack[i])
		}
	}
}

// Report returns what AppendTo writes, as a string.
func (r *Result) Report(lm *LineMap) string {
	var b strings.Builder
	r.AppendTo(&b, lm)
	return b.String()
}
