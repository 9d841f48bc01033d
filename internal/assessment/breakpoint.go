package assessment

// Order selects how a BreakpointTable compares scores to thresholds.
type Order int

const (
	// Ascending tables list tiers from low to high and match the first
	// tier whose threshold is >= the score.
	Ascending Order = iota

	// Descending tables list tiers from high to low and match the first
	// tier whose threshold is <= the score.
	Descending
)

// Breakpoint is one (threshold, label) row of a classification table.
type Breakpoint struct {
	Threshold float64
	Code      string
	Label     string
}

// BreakpointTable buckets a scalar score into an ordered label.
type BreakpointTable struct {
	Order    Order
	Tiers    []Breakpoint
	Fallback Breakpoint // matched when no threshold applies
}

// Lookup returns the matching row and its 1-based tier, where tier 1 is
// always the lowest bucket.
func (t BreakpointTable) Lookup(score float64) (Breakpoint, int) {
	n := len(t.Tiers)
	for i, bp := range t.Tiers {
		switch t.Order {
		case Ascending:
			if score <= bp.Threshold {
				return bp, i + 1
			}
		case Descending:
			if score >= bp.Threshold {
				return bp, n - i + 1
			}
		}
	}
	if t.Order == Ascending {
		return t.Fallback, n + 1
	}
	return t.Fallback, 1
}

// Labels lists every label from lowest to highest tier.
func (t BreakpointTable) Labels() []string {
	out := make([]string, 0, len(t.Tiers)+1)
	if t.Order == Descending {
		out = append(out, t.Fallback.Label)
		for i := len(t.Tiers) - 1; i >= 0; i-- {
			out = append(out, t.Tiers[i].Label)
		}
		return out
	}
	for _, bp := range t.Tiers {
		out = append(out, bp.Label)
	}
	return append(out, t.Fallback.Label)
}
