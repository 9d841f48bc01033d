package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/laban/internal/store"
)

func TestWriteUsage_Empty(t *testing.T) {
	var buf bytes.Buffer
	writeUsage(&buf, nil, nil)
	assert.Equal(t, "No LLM usage recorded yet.\n", buf.String())
}

func TestWriteUsage_PartialPricing(t *testing.T) {
	var buf bytes.Buffer
	writeUsage(&buf,
		[]store.LLMPurposeUsage{
			{Purpose: "flashcards", Calls: 3, Failures: 1, InputTokens: 1200, OutputTokens: 800, AvgLatencyMs: 900},
			{Purpose: "guidance", Calls: 1, InputTokens: 500, OutputTokens: 400, AvgLatencyMs: 1500},
		},
		[]store.LLMModelUsage{
			{Model: "unknown-model-x", Calls: 4, InputTokens: 1700, OutputTokens: 1200},
		},
	)

	out := buf.String()
	assert.Contains(t, out, "flashcards")
	assert.Contains(t, out, "TOTAL (partial)")
	assert.Contains(t, out, "Pricing unavailable for: unknown-model-x")
}

func TestWriteInteractions(t *testing.T) {
	var buf bytes.Buffer
	writeInteractions(&buf, []store.Interaction{
		{Kind: "homework", Student: "Lan", Input: "Giải\nphương trình bậc hai", Success: false, Timestamp: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)},
	})

	out := buf.String()
	assert.Contains(t, out, "homework")
	assert.Contains(t, out, "Giải phương trình bậc hai")
	assert.Contains(t, out, "✗")
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "$0.0042", formatCost(0.0042))
	assert.Equal(t, "$1.25", formatCost(1.25))
}
