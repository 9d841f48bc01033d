package guidance

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/laban/internal/assessment"
	"github.com/abhisek/laban/internal/llm"
	"github.com/abhisek/laban/internal/store"
)

type memLogger struct{ logs []store.Interaction }

func (m *memLogger) Append(_ context.Context, in store.Interaction) error {
	m.logs = append(m.logs, in)
	return nil
}

func grade(t *testing.T, inst assessment.Instrument, raw string, at time.Time) assessment.Result {
	t.Helper()
	sc, err := assessment.Lookup(string(inst))
	require.NoError(t, err)
	r, err := assessment.Grade(sc, assessment.ParseAnswers(raw), assessment.Student{Name: "Minh"}, at)
	require.NoError(t, err)
	return *r
}

func sampleReport() Report {
	return Report{
		Summary:     "Bạn là người hướng ngoại, thích công việc thực tế.",
		Strengths:   []string{"Giao tiếp tốt"},
		GrowthAreas: []string{"Kiên nhẫn"},
		Careers:     []Career{{Name: "Kỹ sư xây dựng", Reason: "Holland R cao"}},
		Majors:      []Major{{Name: "Kỹ thuật xây dựng", Universities: []string{"ĐH Bách khoa Hà Nội"}, Reason: "Phù hợp nhóm R"}},
		StudyAdvice: []string{"Học nhóm"},
	}
}

func TestLatest(t *testing.T) {
	base := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	oldDISC := grade(t, assessment.InstrumentDISC, strings.Repeat("A", 21), base)
	newDISC := grade(t, assessment.InstrumentDISC, strings.Repeat("B", 21), base.Add(time.Hour))
	mbti := grade(t, assessment.InstrumentMBTI, strings.Repeat("B", 20), base)

	got := Latest([]assessment.Result{newDISC, mbti, oldDISC})
	require.Len(t, got, 2)
	assert.Equal(t, assessment.InstrumentMBTI, got[0].Instrument)
	assert.Equal(t, newDISC.ID, got[1].ID)
	assert.Empty(t, Latest(nil))
}

func TestAnalyze(t *testing.T) {
	base := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	mock := llm.NewMockProvider(llm.MockJSON(sampleReport()))
	logger := &memLogger{}
	a := NewAnalyzer(mock, DefaultConfig(), logger)

	report, err := a.Analyze(context.Background(), Input{
		Student: assessment.Student{Name: "Minh", Class: "12A1", School: "THPT Trần Phú"},
		Results: []assessment.Result{
			grade(t, assessment.InstrumentHolland, strings.Repeat("4", 10)+strings.Repeat("0", 50), base),
			grade(t, assessment.InstrumentDISC, strings.Repeat("A", 21), base),
			grade(t, assessment.InstrumentDISC, strings.Repeat("C", 21), base.Add(time.Minute)),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Kỹ sư xây dựng", report.Careers[0].Name)

	req := mock.Calls[0]
	assert.Equal(t, "guidance-report", req.Schema.Name)
	msg := req.Messages[0].Content
	assert.Contains(t, msg, "Học sinh: Minh, lớp 12A1, trường THPT Trần Phú")
	assert.Contains(t, msg, "DISC: S", "latest DISC result is used")
	assert.NotContains(t, msg, "DISC: D")
	assert.Contains(t, msg, "Holland")

	require.Len(t, logger.logs, 1)
	assert.Equal(t, Kind, logger.logs[0].Kind)
	assert.Equal(t, "Minh", logger.logs[0].Student)
}

func TestAnalyze_NoResults(t *testing.T) {
	mock := llm.NewMockProvider()
	_, err := NewAnalyzer(mock, DefaultConfig(), nil).Analyze(context.Background(), Input{})
	assert.ErrorIs(t, err, ErrNoResults)
	assert.Zero(t, mock.CallCount())
}

func TestAnalyze_Failures(t *testing.T) {
	results := []assessment.Result{grade(t, assessment.InstrumentEQ, strings.Repeat("3", 14), time.Now())}

	logger := &memLogger{}
	_, err := NewAnalyzer(nil, DefaultConfig(), logger).Analyze(context.Background(), Input{Results: results})
	assert.ErrorIs(t, err, llm.ErrNotConfigured)
	require.Len(t, logger.logs, 1)
	assert.False(t, logger.logs[0].Success)

	bad := sampleReport()
	bad.Careers = []Career{}
	mock := llm.NewMockProvider(llm.MockJSON(bad))
	_, err = NewAnalyzer(mock, DefaultConfig(), nil).Analyze(context.Background(), Input{Results: results})
	var inv *llm.ErrInvalidResponse
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, llm.SchemaMismatch, inv.Kind)
}
