package question

// Kind discriminates the question variants produced by the importers.
type Kind string

const (
	KindMultiChoice Kind = "multichoice"
	KindTrueFalse   Kind = "truefalse"
	KindShortAnswer Kind = "shortanswer"
	KindNumerical   Kind = "numerical"
	KindEssay       Kind = "essay"
	KindMatching    Kind = "matching"
	KindCloze       Kind = "cloze"
	KindCategory    Kind = "category"
	KindUnknown     Kind = "unknown"
)

// Format is the text format of a question's free-text fields.
type Format int

const (
	FormatAuto Format = iota
	FormatHTML
	FormatPlain
)

// Header holds the fields shared by every question kind.
type Header struct {
	Name            string `json:"name"`
	Text            string `json:"text"`
	TextFormat      Format `json:"text_format"`
	GeneralFeedback string `json:"general_feedback,omitempty"`
}

func (h Header) Head() Header { return h }

// Question is a closed union over the supported kinds. Every variant embeds
// Header; unknown source kinds are represented explicitly by Unknown so the
// caller can report the original tag.
type Question interface {
	Kind() Kind
	Head() Header
}

// Answer is one scored answer alternative with its feedback.
type Answer struct {
	Text     string  `json:"text"`
	Fraction float64 `json:"fraction"`
	Feedback string  `json:"feedback,omitempty"`
}

type MultiChoice struct {
	Header
	Single            bool     `json:"single"`
	Answers           []Answer `json:"answers"`
	CorrectFeedback   string   `json:"correct_feedback,omitempty"`
	PartialFeedback   string   `json:"partial_feedback,omitempty"`
	IncorrectFeedback string   `json:"incorrect_feedback,omitempty"`
}

func (MultiChoice) Kind() Kind { return KindMultiChoice }

type TrueFalse struct {
	Header
	Answer        bool   `json:"answer"`
	FeedbackTrue  string `json:"feedback_true,omitempty"`
	FeedbackFalse string `json:"feedback_false,omitempty"`
}

func (TrueFalse) Kind() Kind { return KindTrueFalse }

// ShortAnswer covers both the exact-match and the multi-blank form. In the
// multi-blank form the answer text carries all blanks joined by commas in
// document order.
type ShortAnswer struct {
	Header
	CaseSensitive bool     `json:"case_sensitive"`
	MultiBlank    bool     `json:"multi_blank"`
	Answers       []Answer `json:"answers"`
}

func (ShortAnswer) Kind() Kind { return KindShortAnswer }

// NumAnswer is one accepted numeric answer, exact or ranged.
type NumAnswer struct {
	Value    float64 `json:"value"`
	Min      float64 `json:"min,omitempty"`
	Max      float64 `json:"max,omitempty"`
	Ranged   bool    `json:"ranged"`
	Fraction float64 `json:"fraction"`
	Feedback string  `json:"feedback,omitempty"`
}

type Numerical struct {
	Header
	Answers []NumAnswer `json:"answers"`
}

func (Numerical) Kind() Kind { return KindNumerical }

type Essay struct {
	Header
}

func (Essay) Kind() Kind { return KindEssay }

// Pair associates one stem with one correct choice.
type Pair struct {
	StemText   string `json:"stem_text"`
	ChoiceText string `json:"choice_text"`
	Feedback   string `json:"feedback,omitempty"`
}

type Matching struct {
	Header
	Pairs       []Pair   `json:"pairs"`
	Distractors []string `json:"distractors,omitempty"`
}

func (Matching) Kind() Kind { return KindMatching }

// ClozeOption is one option of an embedded sub-question.
type ClozeOption struct {
	Correct  bool   `json:"correct"`
	Text     string `json:"text"`
	Feedback string `json:"feedback,omitempty"`
}

// ClozeSub is one embedded sub-question recovered from the encoded text.
type ClozeSub struct {
	Weight  int           `json:"weight"`
	Tag     string        `json:"tag"`
	Options []ClozeOption `json:"options"`
}

// Cloze holds embedded-answer markup in Header.Text plus the structured
// sub-questions the extractor recovered from it.
type Cloze struct {
	Header
	Subs []ClozeSub `json:"subs"`
}

func (Cloze) Kind() Kind { return KindCloze }

// Category is a marker record: it switches the target category for the
// questions that follow it in the batch.
type Category struct {
	Header
}

func (Category) Kind() Kind { return KindCategory }

// Unknown carries the original source kind tag for error reporting.
type Unknown struct {
	Header
	Tag string `json:"tag"`
}

func (Unknown) Kind() Kind { return KindUnknown }
