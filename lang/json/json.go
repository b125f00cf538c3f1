// Package json implements a JSON grammar on top of the peg engine, producing
// plain Go values: map[string]any, []any, float64, string, bool and nil.
//
// The grammar exists to exercise the engine the way a real language does
// (recursion through Defer, comma-separated lists through Sep, AST
// construction through semantic actions) and doubles as the example grammar
// of the peg command.
package json

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dhamidi/peg"
)

// member is a single object entry awaiting collection into a map.
type member struct {
	key   string
	value any
}

// Grammar returns the root parser. It is safe to share between parses.
func Grammar() peg.Parser { return grammar }

var grammar = build()

func build() peg.Parser {
	ws := peg.ZeroOrMore(peg.CharSet(" \t\r\n"))
	token := func(text string) peg.Parser {
		return peg.Seq(peg.Str(text), ws)
	}

	var value peg.Parser
	valueRef := peg.Defer(func() peg.Parser { return value })

	digit := peg.CharRange('0', '9')
	digits := peg.OneOrMore(digit)
	number := peg.Named("number", peg.Push(
		peg.Seq(
			peg.Opt(peg.Str("-")),
			digits,
			peg.Opt(peg.Seq(peg.Str("."), digits)),
			peg.Opt(peg.Seq(peg.CharSet("eE"), peg.Opt(peg.CharSet("+-")), digits)),
		),
		func(ctx *peg.ActionContext) any {
			f, err := strconv.ParseFloat(ctx.Text(), 64)
			if err != nil {
				panic(fmt.Sprintf("json: unparseable number %q: %v", ctx.Text(), err))
			}
			return f
		},
	))

	hex := peg.CharPred("hex digit", func(r rune) bool {
		return '0' <= r && r <= '9' || 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F'
	})
	escape := peg.Seq(peg.Str(`\`), peg.Choice(
		peg.CharSet(`"\/bfnrt`),
		peg.Seq(peg.Str("u"), peg.Times(4, hex)),
	))
	stringChar := peg.Choice(
		escape,
		peg.CharPred("string character", func(r rune) bool {
			return r != '"' && r != '\\' && r >= 0x20
		}),
	)
	jsonString := peg.Named("string", peg.Push(
		peg.Seq(peg.Str(`"`), peg.ZeroOrMore(stringChar), peg.Str(`"`)),
		func(ctx *peg.ActionContext) any {
			return decodeString(ctx.Text())
		},
	))

	pair := peg.Push(
		peg.Seq(jsonString, ws, token(":"), valueRef),
		func(ctx *peg.ActionContext) any {
			vals := ctx.PopAll()
			return member{key: vals[0].(string), value: vals[1]}
		},
	)
	object := peg.Named("object", peg.Push(
		peg.Seq(token("{"), peg.Sep(0, pair, token(",")), token("}")),
		func(ctx *peg.ActionContext) any {
			m := make(map[string]any)
			for _, v := range ctx.PopAll() {
				entry := v.(member)
				m[entry.key] = entry.value
			}
			return m
		},
	))

	array := peg.Named("array", peg.Push(
		peg.Seq(token("["), peg.Sep(0, valueRef, token(",")), token("]")),
		func(ctx *peg.ActionContext) any {
			vals := ctx.PopAll()
			out := make([]any, len(vals))
			copy(out, vals)
			return out
		},
	))

	boolTrue := peg.Push(peg.Str("true"), func(*peg.ActionContext) any { return true })
	boolFalse := peg.Push(peg.Str("false"), func(*peg.ActionContext) any { return false })
	null := peg.Push(peg.Str("null"), func(*peg.ActionContext) any { return nil })

	value = peg.Named("value", peg.Seq(
		peg.Choice(object, array, jsonString, number, boolTrue, boolFalse, null),
		ws,
	))

	return peg.Named("json", peg.Seq(ws, value, peg.End()))
}

// Parse decodes a complete JSON document.
func Parse(src string) (any, error) {
	result, err := peg.RunString(grammar, src)
	if err != nil {
		return nil, fmt.Errorf("json: %w", err)
	}
	if !result.FullMatch {
		return nil, parseError(src, result)
	}
	return result.Stack[len(result.Stack)-1], nil
}

func parseError(src string, result *peg.Result) error {
	if result.Thrown != nil {
		return fmt.Errorf("json: %v", result.Thrown)
	}
	if result.ErrorPos < 0 {
		return fmt.Errorf("json: input does not match")
	}
	lm := peg.NewLineMap(src)
	return fmt.Errorf("json: parse error at %s: expected %s",
		lm.Describe(result.ErrorPos), strings.Join(result.ExpectedNames(), ", "))
}

// decodeString converts a quoted JSON string literal, escapes included, to
// its value.
func decodeString(quoted string) string {
	runes := []rune(quoted[1 : len(quoted)-1])
	var b strings.Builder
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '\\' {
			b.WriteRune(r)
			continue
		}
		i++
		switch runes[i] {
		case '"':
			b.WriteRune('"')
		case '\\':
			b.WriteRune('\\')
		case '/':
			b.WriteRune('/')
		case 'b':
			b.WriteRune('\b')
		case 'f':
			b.WriteRune('\f')
		case 'n':
			b.WriteRune('\n')
		case 'r':
			b.WriteRune('\r')
		case 't':
			b.WriteRune('\t')
		case 'u':
			code, err := strconv.ParseUint(string(runes[i+1:i+5]), 16, 32)
			if err != nil {
				panic(fmt.Sprintf("json: bad unicode escape: %v", err))
			}
			b.WriteRune(rune(code))
			i += 4
		}
	}
	return b.String()
}
