package peg

import "fmt"

// ActionFn is the callback of a SemanticAction. It runs after the wrapped
// parser matched and receives the matched extent plus journaled access to
// the value stack.
type ActionFn func(ctx *ActionContext)

// SemanticAction runs a callback after its child matches, typically to build
// an AST node from the values the child pushed. All stack mutations made
// through the context are journaled: if a containing parser later fails,
// they are rolled back with everything else.
type SemanticAction struct {
	base
	child Parser
	fn    ActionFn
}

// Action wraps child with callback fn.
func Action(child Parser, fn ActionFn) *SemanticAction {
	return &SemanticAction{child: child, fn: fn}
}

// Push wraps child with a callback that pushes fn's return value onto the
// value stack.
func Push(child Parser, fn func(ctx *ActionContext) any) *SemanticAction {
	return Action(child, func(ctx *ActionContext) {
		ctx.Push(fn(ctx))
	})
}

// Child returns the wrapped parser.
func (a *SemanticAction) Child() Parser { return a.child }

func (a *SemanticAction) doParse(p *Parse) bool {
	pos0 := p.Pos
	base0 := p.stack.Len()
	if !p.Apply(a.child) {
		return false
	}
	a.fn(&ActionContext{
		parse:     p,
		start:     pos0,
		end:       p.Pos,
		stackBase: base0,
	})
	return true
}

func (a *SemanticAction) Children() []Parser { return []Parser{a.child} }

func (a *SemanticAction) Accept(v ParserVisitor) { v.VisitSemanticAction(a) }

func (a *SemanticAction) String() string {
	if a.name != "" {
		return a.name
	}
	return fmt.Sprintf("action(%s)", a.child)
}

// ActionContext is what an ActionFn gets to work with: the extent the child
// matched and the value stack.
type ActionContext struct {
	parse     *Parse
	start     int
	end       int
	stackBase int
}

// Start returns the input position where the match began.
func (c *ActionContext) Start() int { return c.start }

// End returns the input position after the match.
func (c *ActionContext) End() int { return c.end }

// Text returns the matched text. It panics on token input.
func (c *ActionContext) Text() string {
	return c.parse.StringInput().Slice(c.start, c.end)
}

// Tokens returns the matched tokens. It panics on character input.
func (c *ActionContext) Tokens() []any {
	return c.parse.TokenInput().Slice(c.start, c.end)
}

// Push places v on the value stack.
func (c *ActionContext) Push(v any) { c.parse.stack.Push(v) }

// Pop removes and returns the top of the value stack.
func (c *ActionContext) Pop() any { return c.parse.stack.Pop() }

// PopAll removes the values pushed while the wrapped parser matched and
// returns them in push order.
func (c *ActionContext) PopAll() []any {
	n := c.parse.stack.Len() - c.stackBase
	if n <= 0 {
		return nil
	}
	vals := make([]any, n)
	for i := n - 1; i >= 0; i-- {
		vals[i] = c.parse.stack.Pop()
	}
	return vals
}

// Parse returns the underlying parse context.
func (c *ActionContext) Parse() *Parse { return c.parse }
