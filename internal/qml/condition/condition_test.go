package condition

import (
	"errors"
	"testing"
)

func TestParseCombined(t *testing.T) {
	expr, err := Parse(`NOT "0" AND NOT "1" AND "2"`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(expr) != 1 {
		t.Fatalf("want 1 conjunction, got %d", len(expr))
	}
	cmps := expr.Comparisons()
	if len(cmps) != 3 {
		t.Fatalf("want 3 comparisons, got %d", len(cmps))
	}
	wantNeg := []bool{true, true, false}
	wantLeft := []string{"0", "1", "2"}
	for i, c := range cmps {
		if c.Negated != wantNeg[i] || c.Left != wantLeft[i] {
			t.Errorf("cmp %d = %+v, want negated=%v left=%q", i, c, wantNeg[i], wantLeft[i])
		}
		if c.Op != OpNone {
			t.Errorf("cmp %d has op %q, want bare reference", i, c.Op)
		}
	}
}

func TestParseOperators(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		wantN int // comparisons
		check func(t *testing.T, e Expression)
	}{
		{
			name:  "matches nocase",
			in:    `"0" MATCHES NOCASE "reduction"`,
			wantN: 1,
			check: func(t *testing.T, e Expression) {
				c := e[0][0]
				if c.Op != OpMatches || c.CaseSensitive || c.Left != "0" || c.Right != "reduction" {
					t.Errorf("got %+v", c)
				}
			},
		},
		{
			name:  "or alternatives",
			in:    `"0" MATCHES NOCASE "reduction" OR "0" NEAR NOCASE "reduction"`,
			wantN: 2,
			check: func(t *testing.T, e Expression) {
				if len(e) != 2 {
					t.Fatalf("want 2 disjuncts, got %d", len(e))
				}
				if e[1][0].Op != OpNear {
					t.Errorf("second disjunct op = %q, want NEAR", e[1][0].Op)
				}
			},
		},
		{
			name:  "numeric equals",
			in:    `"0" = "42"`,
			wantN: 1,
			check: func(t *testing.T, e Expression) {
				c := e[0][0]
				if c.Op != OpEquals || !c.CaseSensitive || c.Right != "42" {
					t.Errorf("got %+v", c)
				}
			},
		},
		{
			name:  "range literal kept atomic",
			in:    `"0" = "40 TO 44"`,
			wantN: 1,
			check: func(t *testing.T, e Expression) {
				if got := e[0][0].Right; got != "40 TO 44" {
					t.Errorf("right = %q, want quoted range kept whole", got)
				}
			},
		},
		{
			name:  "implicit conjunction of bare terms",
			in:    `NOT "0" "1"`,
			wantN: 2,
			check: func(t *testing.T, e Expression) {
				if !e[0][0].Negated || e[0][1].Negated {
					t.Errorf("NOT must bind to the single following literal: %+v", e[0])
				}
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			expr, err := Parse(tc.in)
			if err != nil {
				t.Fatalf("parse %q: %v", tc.in, err)
			}
			if got := len(expr.Comparisons()); got != tc.wantN {
				t.Fatalf("comparisons = %d, want %d", got, tc.wantN)
			}
			tc.check(t, expr)
		})
	}
}

func TestParseErrors(t *testing.T) {
	bad := []string{
		"",
		`OR "0"`,
		`"0" AND`,
		`NOT`,
		`"0" MATCHES`,
		`"0" MATCHES NOCASE`,
		`"unterminated`,
		`bogus`,
	}
	for _, in := range bad {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", in)
		} else {
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Errorf("Parse(%q) error %T, want *ParseError", in, err)
			}
		}
	}
}

func TestIsBareReference(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{`"0"`, true},
		{` "1" `, true},
		{`"10"`, false}, // 4 chars: full expression threshold
		{`NOT "0" AND "1"`, false},
	}
	for _, tc := range tests {
		if got := IsBareReference(tc.in); got != tc.want {
			t.Errorf("IsBareReference(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
