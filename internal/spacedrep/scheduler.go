package spacedrep

import (
	"sort"
	"time"
)

// Scheduler tracks review state for a set of cards keyed by card ID.
type Scheduler struct {
	reviews map[string]*CardState
}

// NewScheduler creates a scheduler seeded with existing card states.
func NewScheduler(states map[string]CardState) *Scheduler {
	s := &Scheduler{reviews: make(map[string]*CardState, len(states))}
	for id, cs := range states {
		s.reviews[id] = &cs
	}
	return s
}

// Track starts scheduling a card. Cards already tracked are left alone.
func (s *Scheduler) Track(id string, added time.Time) {
	if _, ok := s.reviews[id]; ok {
		return
	}
	cs := NewCardState(added)
	s.reviews[id] = &cs
}

// DueCards returns the cards due for review, most overdue first.
func (s *Scheduler) DueCards(now time.Time) []string {
	type dueCard struct {
		id      string
		overdue float64
	}
	var due []dueCard

	for id, cs := range s.reviews {
		if cs.IsDue(now) {
			due = append(due, dueCard{id: id, overdue: cs.OverdueDays(now)})
		}
	}

	sort.Slice(due, func(i, j int) bool {
		if due[i].overdue != due[j].overdue {
			return due[i].overdue > due[j].overdue
		}
		return due[i].id < due[j].id
	})

	ids := make([]string, len(due))
	for i, d := range due {
		ids[i] = d.id
	}
	return ids
}

// RecordReview updates the schedule after a review answer. Unknown IDs are ignored.
func (s *Scheduler) RecordReview(id string, correct bool, now time.Time) {
	if cs := s.reviews[id]; cs != nil {
		cs.Review(correct, now)
	}
}

// Get returns the review state for a card, or nil if not tracked.
func (s *Scheduler) Get(id string) *CardState {
	return s.reviews[id]
}

// States exports a copy of every card state for persistence.
func (s *Scheduler) States() map[string]CardState {
	out := make(map[string]CardState, len(s.reviews))
	for id, cs := range s.reviews {
		out[id] = *cs
	}
	return out
}

// Summary counts cards per status.
func (s *Scheduler) Summary(now time.Time) map[ReviewStatus]int {
	out := make(map[ReviewStatus]int)
	for _, cs := range s.reviews {
		out[cs.Status(now)]++
	}
	return out
}
