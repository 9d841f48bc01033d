package assessment

import (
	"time"

	"github.com/google/uuid"
)

// NewResult builds an immutable Result stamped with the current bank
// version. The score vector is copied.
func NewResult(inst Instrument, c Classification, scores ScoreVector, student Student, now time.Time) *Result {
	return &Result{
		ID:             uuid.NewString(),
		Instrument:     inst,
		Classification: c,
		Scores:         scores.Clone(),
		Student:        student,
		CompletedAt:    now.UTC(),
		BankVersion:    BankVersion,
	}
}

// Grade scores a complete answer sequence and wraps it into a Result.
func Grade(s Scorer, answers []Answer, student Student, now time.Time) (*Result, error) {
	v, c, err := Score(s, answers)
	if err != nil {
		return nil, err
	}
	return NewResult(s.Instrument(), c, v, student, now), nil
}

// Describe returns the display name of a category within an instrument.
func Describe(inst Instrument, c Category) string {
	switch inst {
	case InstrumentHolland:
		return HollandName(c)
	case InstrumentDISC:
		return DiscName(c)
	case InstrumentEQ:
		return EQSkillName(c)
	case InstrumentIQ:
		switch c {
		case IQNumeric:
			return "Số học"
		case IQVerbal:
			return "Ngôn ngữ"
		case IQLogic:
			return "Logic"
		}
	}
	return string(c)
}

// MaxScore returns the highest reachable value of one category, used to
// scale bars in reports.
func MaxScore(s Scorer, c Category) float64 {
	var top float64
	for _, q := range s.Questions() {
		switch s.Instrument() {
		case InstrumentMBTI:
			if ax, ok := mbtiAxisOf(q.Category); ok && (ax.first == c || ax.second == c) {
				top++
			}
		case InstrumentHolland:
			if q.Category == c {
				top += 4
			}
		case InstrumentEQ:
			if q.Category == c {
				top += 5
			}
		case InstrumentIQ:
			if q.Category == c {
				top++
			}
		case InstrumentDISC:
			for _, o := range q.Options {
				if o.Category == c {
					top++
				}
			}
		}
	}
	return top
}
