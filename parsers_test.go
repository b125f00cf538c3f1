package peg

import (
	"testing"
	"unicode"
)

func TestLiteral(t *testing.T) {
	tests := []struct {
		text    string
		input   string
		success bool
		size    int
	}{
		{"abc", "abc", true, 3},
		{"abc", "abcdef", true, 3},
		{"abc", "abd", false, 0},
		{"abc", "ab", false, 0},
		{"", "anything", true, 0},
		{"héllo", "héllo", true, 5},
	}

	for _, tt := range tests {
		t.Run(tt.text+"/"+tt.input, func(t *testing.T) {
			r := mustRun(t, Str(tt.text), tt.input)
			if r.Success != tt.success {
				t.Errorf("success: got %v, want %v", r.Success, tt.success)
			}
			if r.MatchSize != tt.size {
				t.Errorf("match size: got %d, want %d", r.MatchSize, tt.size)
			}
		})
	}
}

func TestCharPredicates(t *testing.T) {
	tests := []struct {
		name    string
		parser  Parser
		input   string
		success bool
	}{
		{"range hit", CharRange('0', '9'), "7", true},
		{"range miss", CharRange('0', '9'), "x", false},
		{"set hit", CharSet("+-*/"), "*", true},
		{"set miss", CharSet("+-*/"), "%", false},
		{"any hit", AnyChar(), "é", true},
		{"any empty", AnyChar(), "", false},
		{"pred hit", CharPred("letter", unicode.IsLetter), "k", true},
		{"pred miss", CharPred("letter", unicode.IsLetter), "5", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustRun(t, tt.parser, tt.input)
			if r.Success != tt.success {
				t.Errorf("success: got %v, want %v", r.Success, tt.success)
			}
			if tt.success && r.MatchSize != 1 {
				t.Errorf("match size: got %d, want 1", r.MatchSize)
			}
		})
	}
}

func TestEndOfInput(t *testing.T) {
	g := Seq(Str("a"), End())

	r := mustRun(t, g, "a")
	if !r.FullMatch {
		t.Errorf("full match expected: %s", r.Report(nil))
	}

	r = mustRun(t, g, "ab")
	if r.Success {
		t.Fatal("matched despite trailing input")
	}
	if r.ErrorPos != 1 {
		t.Errorf("error pos: got %d, want 1", r.ErrorPos)
	}
	names := r.ExpectedNames()
	if len(names) != 1 || names[0] != "end of input" {
		t.Errorf("expected set: got %v", names)
	}
}

func TestOrderedChoice(t *testing.T) {
	// The first matching alternative wins even when a later one would match
	// more input.
	r := mustRun(t, Choice(Str("a"), Str("ab")), "ab")
	if !r.Success || r.MatchSize != 1 {
		t.Errorf("got size %d, want 1", r.MatchSize)
	}

	r = mustRun(t, Choice(Str("ab"), Str("a")), "ab")
	if !r.Success || r.MatchSize != 2 {
		t.Errorf("got size %d, want 2", r.MatchSize)
	}

	if r := mustRun(t, Fail(), "x"); r.Success {
		t.Error("empty choice matched")
	}
}

func TestOptional(t *testing.T) {
	g := Seq(Opt(Str("-")), Str("1"))
	for input, size := range map[string]int{"-1": 2, "1": 1} {
		r := mustRun(t, g, input)
		if !r.Success || r.MatchSize != size {
			t.Errorf("%q: got size %d, want %d", input, r.MatchSize, size)
		}
	}
}

func TestRepetitionBounds(t *testing.T) {
	tests := []struct {
		min, max int
		input    string
		success  bool
		size     int
	}{
		{0, -1, "", true, 0},
		{0, -1, "xxx", true, 3},
		{1, -1, "", false, 0},
		{1, -1, "x", true, 1},
		{2, 3, "x", false, 0},
		{2, 3, "xx", true, 2},
		{2, 3, "xxxx", true, 3},
		{2, 2, "xxx", true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r := mustRun(t, Repeat(tt.min, tt.max, Str("x")), tt.input)
			if r.Success != tt.success {
				t.Errorf("success: got %v, want %v", r.Success, tt.success)
			}
			if r.Success && r.MatchSize != tt.size {
				t.Errorf("match size: got %d, want %d", r.MatchSize, tt.size)
			}
		})
	}
}

func TestRepetitionEmptyMatchTerminates(t *testing.T) {
	// An iteration that consumes nothing must end the loop.
	r := mustRun(t, ZeroOrMore(Opt(Str("a"))), "aa")
	if !r.Success || r.MatchSize != 2 {
		t.Errorf("got size %d, want 2", r.MatchSize)
	}

	r = mustRun(t, ZeroOrMore(Empty()), "abc")
	if !r.Success || r.MatchSize != 0 {
		t.Errorf("got size %d, want 0", r.MatchSize)
	}
}

func TestLookaheadHasNoNetEffect(t *testing.T) {
	la := Ahead(Push(Str("a"), func(*ActionContext) any { return "peeked" }))

	r := mustRun(t, la, "abc")
	if !r.Success {
		t.Fatalf("lookahead failed: %s", r.Report(nil))
	}
	if r.MatchSize != 0 {
		t.Errorf("match size: got %d, want 0", r.MatchSize)
	}
	if len(r.Stack) != 0 {
		t.Errorf("lookahead leaked stack values: %v", r.Stack)
	}

	if r := mustRun(t, la, "x"); r.Success {
		t.Error("lookahead matched where its child cannot")
	}
}

func TestNegation(t *testing.T) {
	r := mustRun(t, Seq(Not(Str("a")), AnyChar()), "b")
	if !r.Success || r.MatchSize != 1 {
		t.Errorf("got size %d, want 1", r.MatchSize)
	}

	if r := mustRun(t, Not(Str("a")), "a"); r.Success {
		t.Error("negation matched where its child matches")
	}
}

func TestNegationKeepsDiagnosticsClean(t *testing.T) {
	// The inner failure of a successful Not is expected and must not leak
	// into the furthest-error tracker.
	r := mustRun(t, Seq(Not(Str("ab")), Str("ax")), "ay")
	if r.Success {
		t.Fatal("parse succeeded on bad input")
	}
	if r.ErrorPos != 0 {
		t.Errorf("error pos: got %d, want 0", r.ErrorPos)
	}
	names := r.ExpectedNames()
	if len(names) != 1 || names[0] != `str("ax")` {
		t.Errorf("expected set polluted by negation: %v", names)
	}
}

func TestAround(t *testing.T) {
	x, comma := Str("x"), Str(",")

	tests := []struct {
		name    string
		parser  Parser
		input   string
		success bool
		size    int
	}{
		{"two or more", Sep(2, x, comma), "x,x,x", true, 5},
		{"below minimum", Sep(2, x, comma), "x", false, 0},
		{"at minimum", Sep(2, x, comma), "x,x", true, 3},
		{"zero allowed", Sep(0, x, comma), "", true, 0},
		{"exact stops early", SepExact(2, x, comma), "x,x,x", true, 3},
		{"exact below minimum", SepExact(2, x, comma), "x", false, 0},
		{"trailing consumed", SepTrailing(0, x, comma), "x,", true, 2},
		{"trailing absent", SepTrailing(0, x, comma), "x", true, 1},
		{"trailing empty input", SepTrailing(0, x, comma), "", true, 0},
		{"trailing after many", SepTrailing(1, x, comma), "x,x,", true, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustRun(t, tt.parser, tt.input)
			if r.Success != tt.success {
				t.Errorf("success: got %v, want %v", r.Success, tt.success)
			}
			if r.Success && r.MatchSize != tt.size {
				t.Errorf("match size: got %d, want %d", r.MatchSize, tt.size)
			}
		})
	}
}

func TestAroundErrorPosition(t *testing.T) {
	r := mustRun(t, Sep(2, Str("x"), Str(",")), "x")
	if r.Success {
		t.Fatal("matched below the minimum")
	}
	if r.ErrorPos != 1 {
		t.Errorf("error pos: got %d, want 1", r.ErrorPos)
	}
}

func TestAroundTrailingFailureIsSilent(t *testing.T) {
	r := mustRun(t, SepTrailing(0, Str("x"), Str(",")), "")
	if !r.Success || r.MatchSize != 0 {
		t.Fatalf("got success %v size %d, want empty match", r.Success, r.MatchSize)
	}
	// The item failure at 0 is legitimate; the separator attempt is not.
	for _, name := range r.ExpectedNames() {
		if name == `str(",")` {
			t.Errorf("silent trailing separator leaked into diagnostics: %v", r.ExpectedNames())
		}
	}
}

func TestCustomParser(t *testing.T) {
	lower := &Custom{
		Label: "lowercase word",
		Leaf:  true,
		Fn: func(p *Parse) bool {
			in := p.StringInput()
			start := p.Pos
			for {
				r := in.CharAt(p.Pos)
				if r < 'a' || r > 'z' {
					break
				}
				p.Pos++
			}
			return p.Pos > start
		},
	}

	r := mustRun(t, lower, "hello42")
	if !r.Success || r.MatchSize != 5 {
		t.Errorf("got size %d, want 5", r.MatchSize)
	}

	r = mustRun(t, lower, "42")
	if r.Success {
		t.Fatal("matched a digit")
	}
	names := r.ExpectedNames()
	if len(names) != 1 || names[0] != "lowercase word" {
		t.Errorf("custom leaf missing from expected set: %v", names)
	}
}

func TestTokenParsing(t *testing.T) {
	num := TokenPred("number", func(tok any) bool {
		_, ok := tok.(int)
		return ok
	})
	plus := TokenPred("'+'", func(tok any) bool { return tok == "+" })

	g := Seq(num, plus, num, End())

	r, err := RunTokens(g, []any{1, "+", 2})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !r.FullMatch {
		t.Fatalf("token parse failed: %s", r.Report(nil))
	}

	r, err = RunTokens(g, []any{1, "*", 2})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if r.Success {
		t.Fatal("matched wrong operator")
	}
	if r.ErrorPos != 1 {
		t.Errorf("error pos: got %d, want 1", r.ErrorPos)
	}
}

func TestInputKindMismatchPanics(t *testing.T) {
	r, err := RunTokens(Str("a"), []any{"a"})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if r.Thrown == nil {
		t.Fatal("character parser on token input did not report a grammar bug")
	}
}
