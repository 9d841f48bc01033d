package assessment

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

// Scorer folds answers for one instrument into a ScoreVector and derives
// its Classification. Implementations are stateless.
type Scorer interface {
	Instrument() Instrument

	// Alphabet lists the instrument's categories in tie-break order.
	Alphabet() []Category

	// Questions returns the constant question table in presentation order.
	Questions() []Question

	// Empty returns a vector with every category at zero.
	Empty() ScoreVector

	// Apply returns a new vector with the answer to q folded in. v is not
	// modified.
	Apply(v ScoreVector, q Question, a Answer) (ScoreVector, error)

	// Classify derives the classification of a finished vector.
	Classify(v ScoreVector) Classification
}

var registry = map[Instrument]Scorer{
	InstrumentMBTI:    mbtiScorer{},
	InstrumentHolland: hollandScorer{},
	InstrumentIQ:      iqScorer{},
	InstrumentEQ:      eqScorer{},
	InstrumentDISC:    discScorer{},
}

var aliases = map[string]Instrument{
	"mbti":        InstrumentMBTI,
	"holland":     InstrumentHolland,
	"riasec":      InstrumentHolland,
	"iq":          InstrumentIQ,
	"eq":          InstrumentEQ,
	"disc":        InstrumentDISC,
	"tinh-cach":   InstrumentMBTI,
	"nghe-nghiep": InstrumentHolland,
	"tri-tue":     InstrumentIQ,
	"cam-xuc":     InstrumentEQ,
	"hanh-vi":     InstrumentDISC,
}

// Scorers returns every scorer in presentation order.
func Scorers() []Scorer {
	return lo.Map(Instruments(), func(i Instrument, _ int) Scorer { return registry[i] })
}

// Lookup returns the scorer for an exact instrument name or alias.
func Lookup(name string) (Scorer, error) {
	if inst, ok := aliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return registry[inst], nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownInstrument, name)
}

// Find resolves a loosely typed instrument name ("hol", "Riasec") by
// exact lookup first and then by the closest fuzzy match.
func Find(query string) (Scorer, error) {
	if s, err := Lookup(query); err == nil {
		return s, nil
	}
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, fmt.Errorf("%w: empty name", ErrUnknownInstrument)
	}
	ranks := fuzzy.RankFindNormalizedFold(q, lo.Keys(aliases))
	if len(ranks) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownInstrument, query)
	}
	best := lo.MinBy(ranks, func(a, b fuzzy.Rank) bool {
		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		return a.Target < b.Target
	})
	return registry[aliases[best.Target]], nil
}

// Score validates the answer count and folds answers in question order.
func Score(s Scorer, answers []Answer) (ScoreVector, Classification, error) {
	qs := s.Questions()
	if len(answers) != len(qs) {
		return nil, Classification{}, &AnswerCountError{Instrument: s.Instrument(), Got: len(answers), Want: len(qs)}
	}
	v := s.Empty()
	for i, q := range qs {
		next, err := s.Apply(v, q, answers[i])
		if err != nil {
			return nil, Classification{}, withIndex(err, i)
		}
		v = next
	}
	return v, s.Classify(v), nil
}

func withIndex(err error, i int) error {
	if ie, ok := err.(*InvalidAnswerError); ok {
		cp := *ie
		cp.Index = i
		return &cp
	}
	return err
}
