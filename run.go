package peg

import "fmt"

// Run drives parser over input and captures the outcome in a Result.
//
// Configuration problems (a nil parser or input, invalid option values, a
// malformed grammar found by the well-formedness check) are returned as an
// error before any parsing happens. Parse failures are not errors: they come
// back as a Result with Success false and furthest-error diagnostics. A
// panic out of a semantic action or a custom parser is recovered into
// Result.Thrown, with the value stack left as the interrupted parse had it.
func Run(parser Parser, input Input, opts ...Option) (*Result, error) {
	if parser == nil {
		return nil, fmt.Errorf("run: nil parser")
	}
	if input == nil {
		return nil, fmt.Errorf("run: nil input")
	}
	cfg, err := newOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("run: %w", err)
	}
	if cfg.wellFormednessCheck {
		if err := CheckWellFormed(parser); err != nil {
			return nil, fmt.Errorf("run: grammar is malformed: %w", err)
		}
	}

	p := newParse(input, cfg)
	result := &Result{ErrorPos: -1}

	func() {
		defer func() {
			if v := recover(); v != nil {
				result.Thrown = v
				result.Success = false
			}
		}()
		result.Success = p.Apply(parser)
	}()

	if result.Success {
		result.MatchSize = p.Pos
		result.FullMatch = p.Pos == input.Len()
	}
	result.Stack = p.stack.snapshot()
	result.ErrorPos = p.errorPos
	result.Expected = append([]Parser(nil), p.expected...)
	result.CallStack = p.errorFrames
	result.Trace = p.trace
	return result, nil
}

// RunString runs parser over a character input.
func RunString(parser Parser, src string, opts ...Option) (*Result, error) {
	return Run(parser, NewStringInput(src), opts...)
}

// RunTokens runs parser over a token input.
func RunTokens(parser Parser, tokens []any, opts ...Option) (*Result, error) {
	return Run(parser, NewTokenInput(tokens), opts...)
}
