package metrics

import (
	"errors"

	"github.com/abhisek/laban/internal/assessment"
)

// ObserveGrade counts one grading attempt: a completed result, or a
// rejected answer sequence labelled by why it was refused.
func ObserveGrade(inst assessment.Instrument, res *assessment.Result, err error) {
	if err == nil && res != nil {
		AssessmentsCompleted.WithLabelValues(string(inst), res.Classification.Code).Inc()
		return
	}
	AssessmentsRejected.WithLabelValues(string(inst), RejectReason(err)).Inc()
}

// RejectReason maps a grading error to a low-cardinality label.
func RejectReason(err error) string {
	var (
		countErr   *assessment.AnswerCountError
		invalidErr *assessment.InvalidAnswerError
	)
	switch {
	case errors.As(err, &countErr):
		return "answer_count"
	case errors.As(err, &invalidErr):
		return "invalid_answer"
	case errors.Is(err, assessment.ErrSessionIncomplete):
		return "incomplete"
	default:
		return "other"
	}
}
