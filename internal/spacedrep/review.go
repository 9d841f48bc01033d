package spacedrep

import "time"

// CardState holds the review schedule for a single flashcard.
type CardState struct {
	Stage           int       `json:"stage"`
	NextReviewDate  time.Time `json:"next_review_date"`
	ConsecutiveHits int       `json:"consecutive_hits"`
	Graduated       bool      `json:"graduated"`
	LastReviewDate  time.Time `json:"last_review_date,omitzero"`
	Reviews         int       `json:"reviews"`
	Misses          int       `json:"misses"`
}

// NewCardState schedules a freshly added card for its first review.
func NewCardState(added time.Time) CardState {
	return CardState{NextReviewDate: added.AddDate(0, 0, BaseIntervals[0])}
}

// IsDue returns true if the card is due for review (at or past the review date).
func (cs *CardState) IsDue(now time.Time) bool {
	return !now.Before(cs.NextReviewDate)
}

// OverdueDays returns how many days past due the card is. Returns 0 if not yet due.
func (cs *CardState) OverdueDays(now time.Time) float64 {
	if now.Before(cs.NextReviewDate) {
		return 0
	}
	return now.Sub(cs.NextReviewDate).Hours() / 24.0
}

// IsLapsed returns true once a due card has gone unreviewed for more than
// half of its current interval.
func (cs *CardState) IsLapsed(now time.Time) bool {
	if !cs.IsDue(now) {
		return false
	}
	graceHours := float64(cs.CurrentIntervalDays()) * 0.5 * 24.0
	threshold := cs.NextReviewDate.Add(time.Duration(graceHours * float64(time.Hour)))
	return now.After(threshold)
}

// CurrentIntervalDays returns the current interval in days.
func (cs *CardState) CurrentIntervalDays() int {
	if cs.Graduated {
		return GraduatedIntervalDays
	}
	return intervalFor(cs.Stage)
}

// Review records one review answer and reschedules the card.
// A hit advances the stage; a miss sends the card back to stage 0.
func (cs *CardState) Review(correct bool, now time.Time) {
	cs.LastReviewDate = now
	cs.Reviews++

	if !correct {
		cs.Misses++
		cs.ConsecutiveHits = 0
		cs.Stage = 0
		cs.Graduated = false
		cs.NextReviewDate = now.AddDate(0, 0, BaseIntervals[0])
		return
	}

	cs.ConsecutiveHits++
	if !cs.Graduated {
		cs.Stage++
		if cs.ConsecutiveHits >= GraduationStage {
			cs.Graduated = true
		}
	}
	cs.NextReviewDate = now.AddDate(0, 0, cs.CurrentIntervalDays())
}

// ReviewStatus describes a card's review status for display.
type ReviewStatus string

const (
	ReviewNotDue    ReviewStatus = "not_due"
	ReviewDue       ReviewStatus = "due"
	ReviewOverdue   ReviewStatus = "overdue"
	ReviewGraduated ReviewStatus = "graduated"
)

// Label returns the Vietnamese display label.
func (s ReviewStatus) Label() string {
	switch s {
	case ReviewDue:
		return "Cần ôn"
	case ReviewOverdue:
		return "Quá hạn"
	case ReviewGraduated:
		return "Đã thuộc"
	default:
		return "Chưa đến hạn"
	}
}

// Status returns the review status for UI display.
func (cs *CardState) Status(now time.Time) ReviewStatus {
	if cs.Graduated && !cs.IsDue(now) {
		return ReviewGraduated
	}
	if cs.IsLapsed(now) {
		return ReviewOverdue
	}
	if cs.IsDue(now) {
		return ReviewDue
	}
	return ReviewNotDue
}

// DaysUntilReview returns the number of days until the next review.
// Returns 0 if already due.
func (cs *CardState) DaysUntilReview(now time.Time) int {
	if cs.IsDue(now) {
		return 0
	}
	return int(cs.NextReviewDate.Sub(now).Hours()/24.0) + 1
}
