package llm

import (
	"context"
	"slices"
)

type (
	purposeKey struct{}
	studentKey struct{}
)

// Purposes lists the labels callers attach to requests: one per study
// tool plus career guidance.
var Purposes = []string{"flashcards", "writing", "homework", "mindmap", "lesson", "speaking", "chat", "guidance"}

// WithPurpose labels every request made with ctx. The label is stored on
// LLM events and used as a metrics dimension.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}

// metricPurpose folds labels outside Purposes into "other" so arbitrary
// strings cannot grow the metric series.
func metricPurpose(purpose string) string {
	if slices.Contains(Purposes, purpose) {
		return purpose
	}
	return "other"
}

// WithStudent records who a request is made for.
func WithStudent(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, studentKey{}, name)
}

// StudentFrom returns the name set by WithStudent, or "".
func StudentFrom(ctx context.Context) string {
	v, _ := ctx.Value(studentKey{}).(string)
	return v
}
