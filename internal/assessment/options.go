package assessment

import "strconv"

// AnswerOptions lists what a student may pick for q. Multiple-choice
// questions return their own options; Likert questions get the
// instrument's scale keyed by digit.
func AnswerOptions(inst Instrument, q Question) []Option {
	if len(q.Options) > 0 {
		return q.Options
	}
	var (
		labels []string
		start  int
	)
	switch inst {
	case InstrumentHolland:
		labels, start = HollandScale, 0
	case InstrumentEQ:
		labels, start = EQScale, 1
	default:
		return nil
	}
	out := make([]Option, len(labels))
	for i, l := range labels {
		out[i] = Option{Key: strconv.Itoa(start + i), Text: l}
	}
	return out
}
