package question

import (
	"encoding/json"
	"fmt"
)

// Decode unmarshals a persisted payload back into its concrete variant.
func Decode(kind Kind, data []byte) (Question, error) {
	var q Question
	switch kind {
	case KindMultiChoice:
		q = &MultiChoice{}
	case KindTrueFalse:
		q = &TrueFalse{}
	case KindShortAnswer:
		q = &ShortAnswer{}
	case KindNumerical:
		q = &Numerical{}
	case KindEssay:
		q = &Essay{}
	case KindMatching:
		q = &Matching{}
	case KindCloze:
		q = &Cloze{}
	case KindCategory:
		q = &Category{}
	case KindUnknown:
		q = &Unknown{}
	default:
		return nil, fmt.Errorf("question: unknown kind %q", kind)
	}
	if err := json.Unmarshal(data, q); err != nil {
		return nil, err
	}
	return deref(q), nil
}

func deref(q Question) Question {
	switch v := q.(type) {
	case *MultiChoice:
		return *v
	case *TrueFalse:
		return *v
	case *ShortAnswer:
		return *v
	case *Numerical:
		return *v
	case *Essay:
		return *v
	case *Matching:
		return *v
	case *Cloze:
		return *v
	case *Category:
		return *v
	case *Unknown:
		return *v
	}
	return q
}
