package cloze

import (
	"reflect"
	"sort"
	"testing"
)

func TestEncodeAppends(t *testing.T) {
	got := Encode("The capital of France is", TagMultiChoice, 1, []Option{
		{Correct: true, Text: "Paris", Feedback: "Correct"},
		{Correct: false, Text: "Berlin", Feedback: "Incorrect"},
	})
	want := "The capital of France is {1:MULTICHOICE:=Paris#Correct~Berlin#Incorrect}"
	if got != want {
		t.Fatalf("Encode = %q, want %q", got, want)
	}
}

func TestEncodeReplacesBlankRun(t *testing.T) {
	got := Encode("Oxidation is the opposite of ____ in redox.", TagShortAnswer, 2, []Option{
		{Correct: true, Text: "reduction"},
	})
	want := "Oxidation is the opposite of {2:SHORTANSWER:=reduction} in redox."
	if got != want {
		t.Fatalf("Encode = %q, want %q", got, want)
	}
}

func TestEncodeSingleUnderscoreNotReplaced(t *testing.T) {
	got := Encode("a_b", TagShortAnswer, 1, []Option{{Correct: true, Text: "x"}})
	if got != "a_b {1:SHORTANSWER:=x}" {
		t.Fatalf("Encode = %q", got)
	}
}

// Literal braces in the stem or an option must survive a full encode and
// decode instead of being mistaken for block delimiters.
func TestEncodeEscapesBraces(t *testing.T) {
	got := Encode("Solve f{x} for ____", TagShortAnswer, 1, []Option{
		{Correct: true, Text: "g{x}"},
	})
	want := `Solve f\{x\} for {1:SHORTANSWER:=g\{x\}}`
	if got != want {
		t.Fatalf("Encode = %q, want %q", got, want)
	}

	clean, subs, err := Decode(got)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if clean != "Solve f{x} for ___" {
		t.Errorf("clean = %q", clean)
	}
	if len(subs) != 1 || len(subs[0].Options) != 1 {
		t.Fatalf("subs = %+v", subs)
	}
	if subs[0].Options[0].Text != "g{x}" {
		t.Errorf("option = %q, want %q", subs[0].Options[0].Text, "g{x}")
	}
}

func TestDecode(t *testing.T) {
	clean, subs, err := Decode("Pick one {1:MULTICHOICE:=Paris#Correct~Berlin#Incorrect} please")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if clean != "Pick one ___ please" {
		t.Fatalf("clean = %q", clean)
	}
	if len(subs) != 1 {
		t.Fatalf("subs = %d, want 1", len(subs))
	}
	s := subs[0]
	if s.Weight != 1 || s.Tag != TagMultiChoice || len(s.Options) != 2 {
		t.Fatalf("sub = %+v", s)
	}
	if !s.Options[0].Correct || s.Options[0].Text != "Paris" || s.Options[0].Feedback != "Correct" {
		t.Fatalf("option 0 = %+v", s.Options[0])
	}
	if s.Options[1].Correct || s.Options[1].Text != "Berlin" {
		t.Fatalf("option 1 = %+v", s.Options[1])
	}
}

func TestDecodeErrors(t *testing.T) {
	bad := []string{
		"open {1:MULTICHOICE:=x",
		"{x:MULTICHOICE:=a}",
		"{1:BOGUS:=a}",
		"{1}",
	}
	for _, in := range bad {
		if _, _, err := Decode(in); err == nil {
			t.Errorf("Decode(%q) succeeded, want error", in)
		}
	}
}

// Encoding then decoding must reproduce the same (text, correctness,
// feedback) tuples, order-independent, even with delimiter characters in
// the payload.
func TestRoundTrip(t *testing.T) {
	opts := []Option{
		{Correct: true, Text: "a=b", Feedback: "uses #1 symbol"},
		{Correct: false, Text: "c~d"},
		{Correct: true, Text: "curly }", Feedback: `back\slash`},
	}
	encoded := Encode("Choose: ____", TagMultiChoice, 3, opts)
	_, subs, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("subs = %d, want 1", len(subs))
	}
	got := append([]Option(nil), subs[0].Options...)
	want := append([]Option(nil), opts...)
	less := func(s []Option) func(i, j int) bool {
		return func(i, j int) bool { return s[i].Text < s[j].Text }
	}
	sort.Slice(got, less(got))
	sort.Slice(want, less(want))
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
	if subs[0].Weight != 3 {
		t.Fatalf("weight = %d, want 3", subs[0].Weight)
	}
}
