package score

import "strings"

// Match is one stem-to-choice correctness association.
type Match struct {
	StemID     string
	ChoiceText string
	Score      int
	Feedback   string
}

// Distractor is a choice that matched no stem, retained as an
// always-incorrect option.
type Distractor struct {
	Text     string
	Feedback string
}

// Matches pairs each stem's alternatives with the declared choices. Every
// alternative comparison becomes one Match carrying the stem outcome's
// score and feedback. A choice consumed by a match leaves the residual
// pool; whatever remains is returned as distractors carrying the
// catch-all feedback.
func Matches(stems []StemOutcome, choices []string, wrongFeedback string) ([]Match, []Distractor) {
	consumed := make([]bool, len(choices))
	var matches []Match
	for _, stem := range stems {
		for _, alt := range stem.Alternatives {
			if alt.Negated || alt.Right == "" {
				continue
			}
			matches = append(matches, Match{
				StemID:     stem.ID,
				ChoiceText: alt.Right,
				Score:      stem.Score,
				Feedback:   stem.Feedback,
			})
			for i, c := range choices {
				if consumed[i] {
					continue
				}
				if equalFold(c, alt.Right, alt.CaseSensitive) {
					consumed[i] = true
					break
				}
			}
		}
	}

	var residual []Distractor
	for i, c := range choices {
		if !consumed[i] {
			residual = append(residual, Distractor{Text: c, Feedback: wrongFeedback})
		}
	}
	return matches, residual
}

func equalFold(a, b string, caseSensitive bool) bool {
	if caseSensitive {
		return a == b
	}
	return strings.EqualFold(a, b)
}
