package peg

// ValueStack holds the AST fragments produced by semantic actions. Every
// push and pop is journaled as a side effect, so when a containing parser
// fails, the stack returns to its depth and contents at the failed parser's
// entry. Reading never journals.
type ValueStack struct {
	parse *Parse
	items []any
}

// Len returns the current stack depth.
func (s *ValueStack) Len() int { return len(s.items) }

// Push places v on top of the stack.
func (s *ValueStack) Push(v any) {
	s.parse.log.Apply(SideEffect{
		Apply: func(p *Parse) {
			p.stack.items = append(p.stack.items, v)
		},
		Undo: func(p *Parse) {
			p.stack.items = p.stack.items[:len(p.stack.items)-1]
		},
	})
}

// Pop removes and returns the top of the stack. It panics on an empty
// stack: popping more than was pushed is a bug in a semantic action.
func (s *ValueStack) Pop() any {
	if len(s.items) == 0 {
		panic("peg: pop of empty value stack")
	}
	v := s.items[len(s.items)-1]
	s.parse.log.Apply(SideEffect{
		Apply: func(p *Parse) {
			p.stack.items = p.stack.items[:len(p.stack.items)-1]
		},
		Undo: func(p *Parse) {
			p.stack.items = append(p.stack.items, v)
		},
	})
	return v
}

// Peek returns the top of the stack without removing it, or nil if the
// stack is empty.
func (s *ValueStack) Peek() any {
	if len(s.items) == 0 {
		return nil
	}
	return s.items[len(s.items)-1]
}

// At returns the item at depth i, where 0 is the bottom of the stack.
func (s *ValueStack) At(i int) any { return s.items[i] }

// snapshot copies the stack contents, bottom first.
func (s *ValueStack) snapshot() []any {
	return append([]any(nil), s.items...)
}
