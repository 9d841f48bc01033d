package assessment

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownInstrument is returned by Lookup and Find.
	ErrUnknownInstrument = errors.New("unknown instrument")

	// ErrSessionComplete is returned when answering a finished session.
	ErrSessionComplete = errors.New("session already answered every question")

	// ErrSessionIncomplete is returned when finishing a session early.
	ErrSessionIncomplete = errors.New("session has unanswered questions")
)

// AnswerCountError reports an answer sequence whose length does not match
// the instrument's question table.
type AnswerCountError struct {
	Instrument Instrument
	Got        int
	Want       int
}

func (e *AnswerCountError) Error() string {
	return fmt.Sprintf("%s: got %d answers, want %d", e.Instrument, e.Got, e.Want)
}

// InvalidAnswerError reports a token that is not a valid response to a
// question.
type InvalidAnswerError struct {
	Instrument Instrument
	QuestionID string
	Index      int // 0-based position in the answer sequence, -1 if unknown
	Answer     Answer
	Allowed    []string
}

func (e *InvalidAnswerError) Error() string {
	pos := e.QuestionID
	if e.Index >= 0 {
		pos = fmt.Sprintf("%s (#%d)", e.QuestionID, e.Index+1)
	}
	return fmt.Sprintf("%s: invalid answer %q for question %s, allowed: %s",
		e.Instrument, e.Answer, pos, strings.Join(e.Allowed, ","))
}
