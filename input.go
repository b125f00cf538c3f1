package peg

import "fmt"

// Input is an immutable random-access view over the sequence being parsed.
// Positions range over [0, Len()]. The engine supports two concrete inputs:
// StringInput for character sequences and TokenInput for pre-tokenized
// sequences. Character parsers (Str, CharPred) require a StringInput, token
// parsers (TokenPred) a TokenInput; mixing them is a grammar bug and panics.
type Input interface {
	// Len returns the number of input positions.
	Len() int
}

// StringInput is a character input. Positions are code-point offsets, not
// byte offsets, so diagnostics line up with what a reader counts.
type StringInput struct {
	src   string
	runes []rune
}

// NewStringInput wraps src for parsing.
func NewStringInput(src string) *StringInput {
	return &StringInput{src: src, runes: []rune(src)}
}

// Len returns the number of code points in the input.
func (in *StringInput) Len() int { return len(in.runes) }

// Source returns the original string.
func (in *StringInput) Source() string { return in.src }

// CharAt returns the code point at pos, or -1 if pos is past the end.
func (in *StringInput) CharAt(pos int) rune {
	if pos < 0 || pos >= len(in.runes) {
		return -1
	}
	return in.runes[pos]
}

// Slice returns the text between the code-point offsets start and end.
func (in *StringInput) Slice(start, end int) string {
	return string(in.runes[start:end])
}

func (in *StringInput) hasPrefix(pos int, prefix []rune) bool {
	if pos+len(prefix) > len(in.runes) {
		return false
	}
	for i, r := range prefix {
		if in.runes[pos+i] != r {
			return false
		}
	}
	return true
}

// TokenInput is a pre-tokenized input. Tokens are opaque to the engine;
// TokenPred leaves inspect them. Positions are token indices.
type TokenInput struct {
	tokens []any
}

// NewTokenInput wraps tokens for parsing.
func NewTokenInput(tokens []any) *TokenInput {
	return &TokenInput{tokens: tokens}
}

// Len returns the number of tokens.
func (in *TokenInput) Len() int { return len(in.tokens) }

// TokenAt returns the token at pos, or nil if pos is past the end.
func (in *TokenInput) TokenAt(pos int) any {
	if pos < 0 || pos >= len(in.tokens) {
		return nil
	}
	return in.tokens[pos]
}

// Slice returns the tokens between start and end.
func (in *TokenInput) Slice(start, end int) []any {
	return in.tokens[start:end]
}

// StringInput returns the parse's input as a character input. It panics if
// the parse runs over tokens: a character parser in a token grammar is a
// construction error, not a parse failure.
func (p *Parse) StringInput() *StringInput {
	in, ok := p.input.(*StringInput)
	if !ok {
		panic(fmt.Sprintf("peg: character parser applied to %T", p.input))
	}
	return in
}

// TokenInput returns the parse's input as a token input. It panics if the
// parse runs over characters.
func (p *Parse) TokenInput() *TokenInput {
	in, ok := p.input.(*TokenInput)
	if !ok {
		panic(fmt.Sprintf("peg: token parser applied to %T", p.input))
	}
	return in
}
