package score

import (
	"errors"
	"math"
	"testing"

	"github.com/questbank/qmlbank/internal/qml/condition"
)

const eps = 1e-9

func mustParse(t *testing.T, s string) condition.Expression {
	t.Helper()
	expr, err := condition.Parse(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return expr
}

func TestCombined(t *testing.T) {
	outs := []Outcome{
		{ID: "0", Score: 0},
		{ID: "1", Score: 0},
		{ID: "2", Score: 1},
	}
	want := `NOT "0" AND NOT "1" AND "2"`
	if got := Combined(outs); got != want {
		t.Fatalf("Combined = %q, want %q", got, want)
	}
}

func TestNormalizeBareReference(t *testing.T) {
	// A bare reference condition must be replaced by the synthesized
	// combined form before parsing proceeds.
	outs := []Outcome{
		{ID: "0", Score: 1, Condition: `"0"`},
		{ID: "1", Score: 0, Condition: `"1"`},
	}
	norm := Normalize(outs)
	want := `"0" AND NOT "1"`
	if norm[0].Condition != want {
		t.Fatalf("normalized condition = %q, want %q", norm[0].Condition, want)
	}
}

func TestNormalizeReclassifiesOther(t *testing.T) {
	outs := []Outcome{
		{ID: "right", Score: 1, Condition: `"0" MATCHES NOCASE "Paris"`},
		{ID: "mislabeled", Score: 0, Condition: "OTHER", Feedback: "Wrong"},
	}
	norm := Normalize(outs)
	if norm[1].ID != WrongID {
		t.Fatalf("catch-all id = %q, want %q", norm[1].ID, WrongID)
	}
	// A scoring OTHER outcome keeps its identity.
	outs[1].Score = 1
	norm = Normalize(outs)
	if norm[1].ID != "mislabeled" {
		t.Fatalf("scoring OTHER reclassified to %q", norm[1].ID)
	}

	// Only the trailing outcome is eligible; a mid-list OTHER stays put.
	outs = []Outcome{
		{ID: "stray", Score: 0, Condition: "OTHER"},
		{ID: "right", Score: 1, Condition: `"0" MATCHES NOCASE "Paris"`},
	}
	norm = Normalize(outs)
	if norm[0].ID != "stray" {
		t.Fatalf("mid-list OTHER reclassified to %q", norm[0].ID)
	}
}

func TestFractionsSingleResponse(t *testing.T) {
	expr := mustParse(t, `NOT "0" AND NOT "1" AND "2"`)
	fr, err := Fractions(expr, true)
	if err != nil {
		t.Fatalf("Fractions: %v", err)
	}
	want := []float64{0, 0, 1}
	if len(fr) != len(want) {
		t.Fatalf("len = %d, want %d", len(fr), len(want))
	}
	sum := 0.0
	for i := range want {
		if math.Abs(fr[i]-want[i]) > eps {
			t.Errorf("fraction[%d] = %v, want %v", i, fr[i], want[i])
		}
		if fr[i] > 0 {
			sum += fr[i]
		}
	}
	if math.Abs(sum-1.0) > eps {
		t.Errorf("positive fractions sum to %v, want 1.0", sum)
	}
}

func TestFractionsMultiResponse(t *testing.T) {
	expr := mustParse(t, `"0" AND NOT "1" AND "2" AND NOT "3"`)
	fr, err := Fractions(expr, false)
	if err != nil {
		t.Fatalf("Fractions: %v", err)
	}
	if len(fr) != 4 {
		t.Fatalf("len = %d, want 4", len(fr))
	}
	// Equal-and-opposite: correct = 1/2, incorrect = -1/2, selecting
	// everything nets zero.
	total := 0.0
	for i, f := range fr {
		want := 0.5
		if i == 1 || i == 3 {
			want = -0.5
		}
		if math.Abs(f-want) > eps {
			t.Errorf("fraction[%d] = %v, want %v", i, f, want)
		}
		total += f
	}
	if math.Abs(total) > eps {
		t.Errorf("full selection total = %v, want 0", total)
	}
}

func TestFractionsOrderIndependentOfCondition(t *testing.T) {
	// Comparisons out of declaration order still land at their choice
	// index.
	expr := mustParse(t, `"2" AND NOT "0" AND NOT "1"`)
	fr, err := Fractions(expr, true)
	if err != nil {
		t.Fatalf("Fractions: %v", err)
	}
	if fr[2] != 1 || fr[0] != 0 || fr[1] != 0 {
		t.Fatalf("fractions = %v, want [0 0 1]", fr)
	}
}

func TestFractionsNoCorrectAnswer(t *testing.T) {
	expr := mustParse(t, `NOT "0" AND NOT "1"`)
	fr, err := Fractions(expr, true)
	if !errors.Is(err, ErrNoCorrectAnswer) {
		t.Fatalf("err = %v, want ErrNoCorrectAnswer", err)
	}
	for _, f := range fr {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			t.Fatalf("got non-finite fraction %v", f)
		}
	}
}

func TestFractionsBadReference(t *testing.T) {
	expr := mustParse(t, `"abc"`)
	if _, err := Fractions(expr, true); err == nil {
		t.Fatal("non-numeric choice reference accepted")
	}
}

func TestBuildRightOutcome(t *testing.T) {
	outs := Normalize([]Outcome{
		{ID: "right", Score: 1, Condition: `"0" MATCHES NOCASE "Paris"`, Feedback: "Well done"},
		{ID: "wrong", Score: 0, Condition: "OTHER", Feedback: "Try again"},
	})
	agg, err := Build(outs)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if agg.Right == nil || agg.Combined == nil {
		t.Fatal("right outcome not recognized as authoritative")
	}
	if agg.Wrong == nil || agg.Wrong.Feedback != "Try again" {
		t.Fatalf("wrong outcome = %+v", agg.Wrong)
	}
	if len(agg.Stems) != 1 || agg.Stems[0].ID != "0" {
		t.Fatalf("stems = %+v", agg.Stems)
	}
}

func TestBuildPerStemOutcomes(t *testing.T) {
	outs := Normalize([]Outcome{
		{ID: "0", Score: 1, Condition: `"0" MATCHES NOCASE "cat" OR "0" MATCHES NOCASE "feline"`, Feedback: "first"},
		{ID: "1", Score: 2, Condition: `"1" MATCHES NOCASE "dog"`, Feedback: "second"},
	})
	agg, err := Build(outs)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if agg.Right != nil {
		t.Fatal("no right outcome expected")
	}
	if len(agg.Stems) != 2 {
		t.Fatalf("stems = %d, want 2", len(agg.Stems))
	}
	if len(agg.Stems[0].Alternatives) != 2 {
		t.Fatalf("stem 0 alternatives = %d, want 2 (OR split)", len(agg.Stems[0].Alternatives))
	}
	if agg.Stems[1].Score != 2 {
		t.Fatalf("stem 1 score = %d, want 2", agg.Stems[1].Score)
	}
}

func TestBuildBadCondition(t *testing.T) {
	outs := []Outcome{{ID: "right", Score: 1, Condition: `MATCHES MATCHES`}}
	_, err := Build(outs)
	var bad *BadConditionError
	if !errors.As(err, &bad) {
		t.Fatalf("err = %v, want *BadConditionError", err)
	}
	if bad.OutcomeID != "right" {
		t.Fatalf("offending outcome = %q, want right", bad.OutcomeID)
	}
}

func TestMatchesParisBerlin(t *testing.T) {
	outs := Normalize([]Outcome{
		{ID: "right", Score: 1, Condition: `"0" MATCHES NOCASE "Paris"`, Feedback: "Correct"},
		{ID: "wrong", Score: 0, Condition: "OTHER", Feedback: "Incorrect"},
	})
	agg, err := Build(outs)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	matches, residual := Matches(agg.Stems, []string{"Paris", "Berlin"}, agg.Wrong.Feedback)
	if len(matches) != 1 {
		t.Fatalf("matches = %+v, want one", matches)
	}
	m := matches[0]
	if m.StemID != "0" || m.ChoiceText != "Paris" || m.Score != 1 {
		t.Fatalf("match = %+v", m)
	}
	if len(residual) != 1 || residual[0].Text != "Berlin" || residual[0].Feedback != "Incorrect" {
		t.Fatalf("residual = %+v, want Berlin with wrong feedback", residual)
	}
}

func TestMatchesCaseInsensitiveConsumption(t *testing.T) {
	stems := []StemOutcome{{
		ID:    "0",
		Score: 1,
		Alternatives: []condition.Comparison{
			{Left: "0", Op: condition.OpMatches, Right: "paris", CaseSensitive: false},
		},
	}}
	_, residual := Matches(stems, []string{"Paris", "Berlin"}, "")
	if len(residual) != 1 || residual[0].Text != "Berlin" {
		t.Fatalf("residual = %+v, want only Berlin", residual)
	}
}
