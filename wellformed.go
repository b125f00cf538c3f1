package peg

import (
	"fmt"
	"strings"
)

// CheckWellFormed walks the grammar reachable from root and reports
// structural problems a parse would only surface as a crash or a hang:
//
//   - left recursion (direct or indirect) not wrapped in LeftRec, found by
//     following the parsers each node can invoke without first consuming
//     input;
//   - unbounded repetition over a parser that can succeed on empty input.
//
// Run performs this check when WithWellFormednessCheck is given; it is
// exported for grammar test suites that want it standalone.
func CheckWellFormed(root Parser) error {
	var nodes []Parser
	w := NewWalker(func(p Parser, event WalkEvent) {
		if event == WalkBefore {
			nodes = append(nodes, p)
		}
	})
	w.Walk(root)

	nullable := computeNullability(nodes)

	for _, n := range nodes {
		switch c := n.(type) {
		case *Repetition:
			if c.max < 0 && nullable[c.child] {
				return fmt.Errorf("unbounded repetition over parser %s, which can match empty input", c.child)
			}
		case *Around:
			if !c.exact && nullable[c.item] && nullable[c.sep] {
				return fmt.Errorf("separated repetition %s where item and separator can both match empty input", nodeLabel(c))
			}
		}
	}

	if cycle := findLeftRecursion(nodes, nullable); cycle != nil {
		parts := make([]string, len(cycle))
		for i, p := range cycle {
			parts[i] = nodeLabel(p)
		}
		return fmt.Errorf("left recursion not wrapped in LeftRec: %s", strings.Join(parts, " -> "))
	}
	return nil
}

// computeNullability iterates to a fixpoint over all nodes. A parser is
// nullable when it can succeed without consuming input.
func computeNullability(nodes []Parser) map[Parser]bool {
	nullable := make(map[Parser]bool)
	for changed := true; changed; {
		changed = false
		for _, n := range nodes {
			if nullable[n] {
				continue
			}
			if nullableNow(n, nullable) {
				nullable[n] = true
				changed = true
			}
		}
	}
	return nullable
}

func nullableNow(p Parser, nullable map[Parser]bool) bool {
	switch c := p.(type) {
	case *Literal:
		return len(c.runes) == 0
	case *CharPredicate, *TokenPredicate:
		return false
	case *EndOfInput, *Optional, *Lookahead, *Negation:
		return true
	case *Sequence:
		for _, child := range c.children {
			if !nullable[child] {
				return false
			}
		}
		return true
	case *OrderedChoice:
		for _, child := range c.children {
			if nullable[child] {
				return true
			}
		}
		return false
	case *Repetition:
		return c.min == 0 || nullable[c.child]
	case *Around:
		if c.min == 0 {
			return true
		}
		return nullable[c.item] && (c.min == 1 || nullable[c.sep])
	case *LeftRecursive:
		return nullable[c.child]
	case *SemanticAction:
		return nullable[c.child]
	case *Lazy:
		return nullable[c.Target()]
	case *Memo:
		return nullable[c.child]
	case *Custom:
		// Unknown behavior; assuming it consumes input avoids false alarms.
		return false
	}
	return false
}

// firstEdges returns the parsers p can invoke at its own input position.
// LeftRecursive has no first edges: re-entry through it is what seed
// growing is for, so cycles through it are sanctioned.
func firstEdges(p Parser, nullable map[Parser]bool) []Parser {
	switch c := p.(type) {
	case *Sequence:
		var edges []Parser
		for _, child := range c.children {
			edges = append(edges, child)
			if !nullable[child] {
				break
			}
		}
		return edges
	case *OrderedChoice:
		return c.children
	case *Optional:
		return []Parser{c.child}
	case *Repetition:
		return []Parser{c.child}
	case *Lookahead:
		return []Parser{c.child}
	case *Negation:
		return []Parser{c.child}
	case *Around:
		edges := []Parser{c.item}
		if nullable[c.item] {
			edges = append(edges, c.sep)
		}
		return edges
	case *SemanticAction:
		return []Parser{c.child}
	case *Lazy:
		return []Parser{c.Target()}
	case *Memo:
		return []Parser{c.child}
	case *Custom:
		return c.Kids
	}
	return nil
}

// findLeftRecursion looks for a cycle in the first-edge graph. Every node
// is used as a starting point: a left-recursive sub-rule is a bug even when
// the root does not reach it without consuming input first.
func findLeftRecursion(nodes []Parser, nullable map[Parser]bool) []Parser {
	const (
		white = iota
		grey
		black
	)
	color := make(map[Parser]int)
	var path []Parser
	var cycle []Parser

	var dfs func(p Parser) bool
	dfs = func(p Parser) bool {
		switch color[p] {
		case grey:
			for i, q := range path {
				if q == p {
					cycle = append(append([]Parser(nil), path[i:]...), p)
					return true
				}
			}
			cycle = []Parser{p, p}
			return true
		case black:
			return false
		}
		color[p] = grey
		path = append(path, p)
		for _, e := range firstEdges(p, nullable) {
			if dfs(e) {
				return true
			}
		}
		path = path[:len(path)-1]
		color[p] = black
		return false
	}

	for _, n := range nodes {
		if color[n] == white && dfs(n) {
			return cycle
		}
	}
	return nil
}
