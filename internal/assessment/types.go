package assessment

import (
	"slices"
	"time"
)

// BankVersion identifies the revision of the built-in question tables.
// Bump the major version whenever a change alters how existing answer
// sequences classify; results across majors are not comparable.
const BankVersion = "v1.0.0"

// Instrument identifies one of the fixed psychometric instruments.
type Instrument string

const (
	InstrumentMBTI    Instrument = "mbti"
	InstrumentHolland Instrument = "holland"
	InstrumentIQ      Instrument = "iq"
	InstrumentEQ      Instrument = "eq"
	InstrumentDISC    Instrument = "disc"
)

// Instruments returns every instrument in presentation order.
func Instruments() []Instrument {
	return []Instrument{InstrumentMBTI, InstrumentHolland, InstrumentIQ, InstrumentEQ, InstrumentDISC}
}

// DisplayName returns the name shown on menus and passport cards.
func (i Instrument) DisplayName() string {
	switch i {
	case InstrumentMBTI:
		return "MBTI"
	case InstrumentHolland:
		return "Holland (RIASEC)"
	case InstrumentIQ:
		return "IQ"
	case InstrumentEQ:
		return "EQ"
	case InstrumentDISC:
		return "DISC"
	default:
		return string(i)
	}
}

// Category is one trait of an instrument's alphabet (an MBTI pole, a
// Holland letter, an EQ skill, a DISC style, an IQ question kind).
type Category string

// Option is one selectable answer of a multiple-choice question.
// For DISC every option carries the trait it scores.
type Option struct {
	Key      string   `json:"key"`
	Text     string   `json:"text"`
	Category Category `json:"category,omitempty"`
}

// Question is an immutable entry of a question table.
type Question struct {
	ID   string `json:"id"`
	Text string `json:"text"`

	// Category is the trait (or MBTI axis) this question scores.
	// Empty for DISC, where each option carries its own trait.
	Category Category `json:"category,omitempty"`

	// Options lists the labeled choices. Likert questions share the
	// instrument's scale and leave this empty.
	Options []Option `json:"options,omitempty"`

	// Correct is the key of the right option (IQ only).
	Correct string `json:"-"`
}

// Answer is a single response token: "A", "B", "N", a Likert digit, or an
// option key.
type Answer string

// ScoreVector maps each category of an instrument to its accumulated score.
type ScoreVector map[Category]float64

// NewScoreVector returns a vector with every category of alphabet at zero.
func NewScoreVector(alphabet []Category) ScoreVector {
	v := make(ScoreVector, len(alphabet))
	for _, c := range alphabet {
		v[c] = 0
	}
	return v
}

// Clone returns an independent copy of v.
func (v ScoreVector) Clone() ScoreVector {
	out := make(ScoreVector, len(v))
	for k, s := range v {
		out[k] = s
	}
	return out
}

// Get returns the score of c, or 0 when absent.
func (v ScoreVector) Get(c Category) float64 {
	return v[c]
}

// Total sums every category.
func (v ScoreVector) Total() float64 {
	var t float64
	for _, s := range v {
		t += s
	}
	return t
}

// plus returns a copy of v with delta added to c.
func (v ScoreVector) plus(c Category, delta float64) ScoreVector {
	out := v.Clone()
	out[c] += delta
	return out
}

// CategoryScore is a single (category, score) pair.
type CategoryScore struct {
	Category Category
	Score    float64
}

// Ordered lists the vector in alphabet order.
func (v ScoreVector) Ordered(alphabet []Category) []CategoryScore {
	out := make([]CategoryScore, 0, len(alphabet))
	for _, c := range alphabet {
		out = append(out, CategoryScore{Category: c, Score: v[c]})
	}
	return out
}

// Ranked lists the vector by descending score. Ties keep alphabet order.
func (v ScoreVector) Ranked(alphabet []Category) []CategoryScore {
	out := v.Ordered(alphabet)
	slices.SortStableFunc(out, func(a, b CategoryScore) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})
	return out
}

// Classification is the derived summary of a finished score vector.
type Classification struct {
	// Code is the type code (e.g. "ESTJ", "RIA", "D") or the tier code
	// for scalar instruments (e.g. "eq-excellent").
	Code string `json:"code"`

	// Label is the human-readable name of the type or tier.
	Label string `json:"label"`

	// Total is the summed raw score.
	Total float64 `json:"total"`

	// Tier is the 1-based ordered bucket (lowest = 1) for IQ and EQ.
	// Zero for type-code instruments.
	Tier int `json:"tier,omitempty"`
}

// Student identifies who took an instrument.
type Student struct {
	Name   string `json:"name"`
	Class  string `json:"class,omitempty"`
	School string `json:"school,omitempty"`
}

// Result is the externally visible record of one completed instrument.
// It is created once and never mutated.
type Result struct {
	ID             string         `json:"id"`
	Instrument     Instrument     `json:"instrument"`
	Classification Classification `json:"classification"`
	Scores         ScoreVector    `json:"scores"`
	Student        Student        `json:"student"`
	CompletedAt    time.Time      `json:"completed_at"`
	BankVersion    string         `json:"bank_version"`
}
