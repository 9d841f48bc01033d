package spacedrep

// BaseIntervals defines the expanding interval schedule in days.
// Stage 0 = first review after the card is added to a deck.
var BaseIntervals = []int{1, 3, 7, 14, 30, 60}

// MaxStage is the highest stage index in BaseIntervals.
const MaxStage = 5

// GraduationStage is the stage at which a card graduates.
// A card graduates after six consecutive correct reviews.
const GraduationStage = 6

// GraduatedIntervalDays is the review interval for graduated cards.
const GraduatedIntervalDays = 90

// intervalFor returns the interval in days for a stage.
func intervalFor(stage int) int {
	if stage < 0 {
		return BaseIntervals[0]
	}
	if stage >= len(BaseIntervals) {
		return BaseIntervals[MaxStage]
	}
	return BaseIntervals[stage]
}
