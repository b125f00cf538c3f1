// Package peg implements a backtracking parser-combinator engine in the style
// of Parsing Expression Grammars.
//
// # Overview
//
// A grammar is a graph of Parser nodes assembled with the combinator
// constructors (Str, Seq, Choice, Repeat, ...). Running a parser against an
// input produces a Result describing the outcome:
//
//	expr := peg.Seq(peg.Str("a"), peg.Str("b"))
//	result, err := peg.RunString(expr, "ab")
//
// Parsers are immutable once the grammar is built and may be shared by any
// number of parse runs, including concurrent ones. All mutable state lives in
// a Parse, which is single-threaded for the duration of one run.
//
// # Architecture
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Input     │────▶│   Parse     │────▶│   Result    │
//	│ (chars or   │     │ (cursor,    │     │ (outcome,   │
//	│  tokens)    │     │  journal)   │     │  AST stack) │
//	└─────────────┘     └─────────────┘     └─────────────┘
//	                           ▲
//	                           │ Apply
//	                    ┌─────────────┐
//	                    │  Parser     │
//	                    │  graph      │
//	                    └─────────────┘
//
// # Backtracking and side effects
//
// PEG parsing backtracks: a failing alternative must leave no trace. Instead
// of copying state, the engine journals every observable mutation as a
// reversible SideEffect. Parse.Apply checkpoints the journal before invoking
// a parser and rolls back to the checkpoint when the parser fails. Semantic
// actions build the AST on a ValueStack whose pushes and pops go through the
// same journal, so a parent's failure cleanly unwinds whatever a rejected
// sub-parse produced.
//
// # Error reporting
//
// The engine tracks the furthest input position at which a matching primitive
// (literal, character class, token predicate, end of input) failed, together
// with the set of parsers that failed there. Composite parsers never
// contribute to this set: "expected 'b'" is useful, "expected seq" is not.
// With call-stack recording enabled, the chain of active parser invocations
// is snapshotted whenever the furthest error advances.
//
// # Left recursion
//
// Plain PEG cannot express left recursion. Wrap left-recursive rules in
// LeftRec, which grows a seed match: the body is re-invoked with the previous
// best match standing in for the recursive call until no more input is
// consumed. The optional well-formedness check detects left recursion that is
// not wrapped.
package peg
