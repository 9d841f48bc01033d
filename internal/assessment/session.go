package assessment

import "time"

// Session is one linear walk through an instrument's question table.
// Abandoning a session is dropping the value; nothing is persisted until
// Finish builds the Result.
type Session struct {
	scorer  Scorer
	index   int
	scores  ScoreVector
	answers []Answer
}

// NewSession starts a fresh attempt.
func NewSession(s Scorer) *Session {
	return &Session{
		scorer:  s,
		scores:  s.Empty(),
		answers: make([]Answer, 0, len(s.Questions())),
	}
}

// Scorer returns the instrument being taken.
func (s *Session) Scorer() Scorer { return s.scorer }

// Current returns the question awaiting an answer. ok is false once every
// question has been answered.
func (s *Session) Current() (q Question, ok bool) {
	qs := s.scorer.Questions()
	if s.index >= len(qs) {
		return Question{}, false
	}
	return qs[s.index], true
}

// Answer folds a into the running vector and advances. An invalid answer
// leaves the session unchanged.
func (s *Session) Answer(a Answer) error {
	q, ok := s.Current()
	if !ok {
		return ErrSessionComplete
	}
	next, err := s.scorer.Apply(s.scores, q, a)
	if err != nil {
		return withIndex(err, s.index)
	}
	s.scores = next
	s.answers = append(s.answers, a)
	s.index++
	return nil
}

// Done reports whether every question has been answered.
func (s *Session) Done() bool {
	return s.index >= len(s.scorer.Questions())
}

// Progress returns (answered, total).
func (s *Session) Progress() (int, int) {
	return s.index, len(s.scorer.Questions())
}

// Scores returns a copy of the running vector.
func (s *Session) Scores() ScoreVector {
	return s.scores.Clone()
}

// Answers returns a copy of the answers given so far.
func (s *Session) Answers() []Answer {
	return append([]Answer(nil), s.answers...)
}

// Finish classifies the completed vector into a Result.
func (s *Session) Finish(student Student, now time.Time) (*Result, error) {
	if !s.Done() {
		return nil, ErrSessionIncomplete
	}
	return NewResult(s.scorer.Instrument(), s.scorer.Classify(s.scores), s.scores, student, now), nil
}
