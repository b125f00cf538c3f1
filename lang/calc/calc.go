// Package calc implements a calculator over the peg engine's token input:
// a worked example of pre-tokenized parsing, left-recursive rules with the
// usual precedence levels, and AST evaluation. The peg command's repl is
// built on it.
package calc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dhamidi/peg"
)

// Expr is a parsed expression.
type Expr interface {
	eval() float64
}

// Num is a number literal.
type Num struct {
	Value float64
}

func (n *Num) eval() float64 { return n.Value }

// Binary is an infix operation. Operators at the same precedence level
// associate to the left.
type Binary struct {
	Op    string
	Left  Expr
	Right Expr
}

func (b *Binary) eval() float64 {
	l, r := b.Left.eval(), b.Right.eval()
	switch b.Op {
	case "+":
		return l + r
	case "-":
		return l - r
	case "*":
		return l * r
	case "/":
		return l / r
	}
	panic(fmt.Sprintf("calc: unknown operator %q", b.Op))
}

// Grammar returns the root parser, shared between parses.
func Grammar() peg.Parser { return grammar }

var grammar = build()

func kind(k TokenKind) peg.Parser {
	return peg.TokenPred(k.String(), func(tok any) bool {
		t, ok := tok.(Token)
		return ok && t.Kind == k
	})
}

// binaryLevel builds one precedence level: a left-recursive chain of
// operand separated by any of the level's operators.
func binaryLevel(name string, operand peg.Parser, ops ...TokenKind) peg.Parser {
	opKinds := make([]peg.Parser, len(ops))
	for i, op := range ops {
		opKinds[i] = kind(op)
	}
	op := peg.Push(peg.Choice(opKinds...), func(ctx *peg.ActionContext) any {
		return ctx.Tokens()[0].(Token).Text
	})

	return peg.Named(name, peg.LeftRec(func(self peg.Parser) peg.Parser {
		chain := peg.Action(peg.Seq(self, op, operand), func(ctx *peg.ActionContext) {
			vals := ctx.PopAll()
			ctx.Push(&Binary{
				Op:    vals[1].(string),
				Left:  vals[0].(Expr),
				Right: vals[2].(Expr),
			})
		})
		return peg.Choice(chain, operand)
	}))
}

func build() peg.Parser {
	number := peg.Push(kind(TokenNumber), func(ctx *peg.ActionContext) any {
		text := ctx.Tokens()[0].(Token).Text
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			panic(fmt.Sprintf("calc: unparseable number %q: %v", text, err))
		}
		return &Num{Value: f}
	})

	var expr peg.Parser
	factor := peg.Named("factor", peg.Choice(
		number,
		peg.Seq(kind(TokenLParen), peg.Defer(func() peg.Parser { return expr }), kind(TokenRParen)),
	))

	term := binaryLevel("term", factor, TokenStar, TokenSlash)
	expr = binaryLevel("expr", term, TokenPlus, TokenMinus)

	return peg.Named("calc", peg.Seq(expr, peg.End()))
}

// Parse lexes and parses src into an expression tree.
func Parse(src string) (Expr, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, fmt.Errorf("calc: %w", err)
	}

	input := make([]any, len(tokens))
	for i, tok := range tokens {
		input[i] = tok
	}

	result, err := peg.RunTokens(grammar, input)
	if err != nil {
		return nil, fmt.Errorf("calc: %w", err)
	}
	if !result.FullMatch {
		return nil, parseError(tokens, result)
	}
	return result.Stack[len(result.Stack)-1].(Expr), nil
}

// Eval parses and evaluates src.
func Eval(src string) (float64, error) {
	expr, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return expr.eval(), nil
}

func parseError(tokens []Token, result *peg.Result) error {
	if result.Thrown != nil {
		return fmt.Errorf("calc: %v", result.Thrown)
	}
	where := "end of input"
	if result.ErrorPos >= 0 && result.ErrorPos < len(tokens) {
		tok := tokens[result.ErrorPos]
		where = fmt.Sprintf("%s at %s", tok, tok.Position)
	}
	return fmt.Errorf("calc: parse error at %s: expected %s",
		where, strings.Join(result.ExpectedNames(), ", "))
}
