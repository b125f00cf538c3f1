package peg

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReportSuccess(t *testing.T) {
	r := mustRun(t, Seq(Str("a"), Str("b")), "ab")
	got := r.Report(nil)
	want := "Parse matched the whole input (2 positions).\n" +
		"Value stack: empty.\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestReportFailureWithLineMap(t *testing.T) {
	src := "a\nc"
	g := Seq(Str("a"), Str("\n"), Str("b"))
	r := mustRun(t, g, src)

	got := r.Report(NewLineMap(src))
	want := "Parse failed.\n" +
		"Furthest error at line 2, column 1.\n" +
		"Expected one of:\n" +
		"  str(\"b\")\n" +
		"Value stack: empty.\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestReportIncludesCallStack(t *testing.T) {
	g := Named("top", Seq(Str("a"), Named("tail", Str("b"))))
	r := mustRun(t, g, "ac", WithCallStackRecording())

	got := r.Report(nil)
	if !strings.Contains(got, "Call stack at furthest error (innermost first):") {
		t.Fatalf("no call stack section:\n%s", got)
	}
	if !strings.Contains(got, "  tail at position 1\n") {
		t.Errorf("missing innermost frame:\n%s", got)
	}
	if !strings.Contains(got, "  top at position 0\n") {
		t.Errorf("missing outermost frame:\n%s", got)
	}
}

func TestReportValueStackTopFirst(t *testing.T) {
	g := Seq(
		Push(Str("a"), func(*ActionContext) any { return "bottom" }),
		Push(Str("b"), func(*ActionContext) any { return "top" }),
	)
	r := mustRun(t, g, "ab")

	got := r.Report(nil)
	want := "Parse matched the whole input (2 positions).\n" +
		"Value stack (2 items, top first):\n" +
		"  top\n" +
		"  bottom\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestReportThrown(t *testing.T) {
	g := Action(Str("a"), func(*ActionContext) { panic("kaput") })
	r := mustRun(t, g, "a")

	got := r.Report(nil)
	if !strings.Contains(got, "Parse failed.\n") {
		t.Errorf("missing outcome line:\n%s", got)
	}
	if !strings.Contains(got, "Error thrown during the parse: kaput\n") {
		t.Errorf("missing thrown section:\n%s", got)
	}
}

func TestExpectedNamesDeduplicate(t *testing.T) {
	// Two distinct literal instances with the same text count once.
	g := Choice(Seq(Str("a"), Str("b")), Seq(Str("a"), Str("b")))
	r := mustRun(t, g, "ax")
	if diff := cmp.Diff([]string{`str("b")`}, r.ExpectedNames()); diff != "" {
		t.Errorf("expected names (-want +got):\n%s", diff)
	}
}
