// Package guidance asks the AI for a combined career and study analysis of
// a student's assessment results.
package guidance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"github.com/abhisek/laban/internal/assessment"
	"github.com/abhisek/laban/internal/llm"
	"github.com/abhisek/laban/internal/store"
	"github.com/abhisek/laban/internal/study"
)

// Kind is the interaction-log kind and LLM purpose of an analysis.
const Kind = "guidance"

// ErrNoResults is returned when the student has not completed any instrument.
var ErrNoResults = errors.New("guidance: no assessment results to analyze")

// Input is what an analysis is based on.
type Input struct {
	Student assessment.Student
	Results []assessment.Result
}

// Career is one suggested occupation.
type Career struct {
	Name   string `json:"name"`
	Reason string `json:"reason" jsonschema:"description=Vì sao phù hợp dựa trên kết quả"`
}

// Major is one suggested university major.
type Major struct {
	Name         string   `json:"name"`
	Universities []string `json:"universities" jsonschema:"description=Một vài trường đại học tại Việt Nam có ngành này"`
	Reason       string   `json:"reason"`
}

// Report is the analysis returned to the student.
type Report struct {
	Summary     string   `json:"summary"`
	Strengths   []string `json:"strengths"`
	GrowthAreas []string `json:"growth_areas"`
	Careers     []Career `json:"careers" jsonschema:"minItems=1"`
	Majors      []Major  `json:"majors" jsonschema:"minItems=1"`
	StudyAdvice []string `json:"study_advice"`
}

// ReportSchema constrains the model's reply.
var ReportSchema = llm.SchemaFor[Report]("guidance-report", "Phân tích tổng hợp và định hướng nghề nghiệp")

// Config holds generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for analysis.
func DefaultConfig() Config {
	return Config{MaxTokens: 4096, Temperature: 0.4}
}

// Analyzer produces guidance reports.
type Analyzer struct {
	provider llm.Provider
	cfg      Config
	logger   study.InteractionLogger
}

// NewAnalyzer creates an analyzer. A nil logger disables interaction logging.
func NewAnalyzer(provider llm.Provider, cfg Config, logger study.InteractionLogger) *Analyzer {
	return &Analyzer{provider: provider, cfg: cfg, logger: logger}
}

// Analyze builds a report from the latest result of each instrument.
func (a *Analyzer) Analyze(ctx context.Context, in Input) (*Report, error) {
	latest := Latest(in.Results)
	if len(latest) == 0 {
		return nil, ErrNoResults
	}
	if a.provider == nil {
		a.record(ctx, in.Student, "", nil, llm.ErrNotConfigured)
		return nil, llm.ErrNotConfigured
	}

	user := buildUserMessage(in.Student, latest)
	resp, err := a.provider.Generate(llm.WithPurpose(ctx, Kind), llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: user}},
		Schema:      ReportSchema,
		MaxTokens:   a.cfg.MaxTokens,
		Temperature: a.cfg.Temperature,
	})
	var report Report
	if err == nil {
		report, err = llm.Decode[Report](resp)
	}
	a.record(ctx, in.Student, user, resp, err)
	if err != nil {
		return nil, fmt.Errorf("guidance: %w", err)
	}
	return &report, nil
}

func (a *Analyzer) record(ctx context.Context, st assessment.Student, input string, resp *llm.Response, err error) {
	if a.logger == nil {
		return
	}
	entry := store.Interaction{Kind: Kind, Student: st.Name, Input: input, Success: err == nil}
	if err != nil {
		entry.Output = err.Error()
	} else if resp != nil {
		entry.Output = string(resp.Content)
	}
	if lerr := a.logger.Append(context.WithoutCancel(ctx), entry); lerr != nil {
		slog.Warn("failed to record interaction", "kind", Kind, "err", lerr)
	}
}

// Latest keeps the most recent result per instrument, in instrument order.
func Latest(results []assessment.Result) []assessment.Result {
	newest := make(map[assessment.Instrument]assessment.Result)
	for _, r := range results {
		if cur, ok := newest[r.Instrument]; !ok || r.CompletedAt.After(cur.CompletedAt) {
			newest[r.Instrument] = r
		}
	}
	return lo.FilterMap(assessment.Instruments(), func(inst assessment.Instrument, _ int) (assessment.Result, bool) {
		r, ok := newest[inst]
		return r, ok
	})
}

const systemPrompt = `Bạn là chuyên gia hướng nghiệp cho học sinh THPT Việt Nam. Dựa trên kết quả các bài trắc nghiệm tính cách, sở thích nghề nghiệp, trí tuệ, cảm xúc và hành vi, hãy đưa ra phân tích tổng hợp bằng tiếng Việt: điểm mạnh, điểm cần phát triển, nghề nghiệp và ngành đại học phù hợp, lời khuyên học tập. Chỉ dựa trên dữ liệu được cung cấp.`

func buildUserMessage(st assessment.Student, results []assessment.Result) string {
	var b strings.Builder
	if st.Name != "" {
		fmt.Fprintf(&b, "Học sinh: %s", st.Name)
		if st.Class != "" {
			fmt.Fprintf(&b, ", lớp %s", st.Class)
		}
		if st.School != "" {
			fmt.Fprintf(&b, ", trường %s", st.School)
		}
		b.WriteString("\n")
	}
	b.WriteString("\nKết quả:\n")
	for _, r := range results {
		fmt.Fprintf(&b, "- %s: %s (%s)\n", r.Instrument.DisplayName(), r.Classification.Code, r.Classification.Label)
		sc, err := assessment.Lookup(string(r.Instrument))
		if err != nil {
			continue
		}
		parts := lo.Map(r.Scores.Ranked(sc.Alphabet()), func(cs assessment.CategoryScore, _ int) string {
			return fmt.Sprintf("%s %g", assessment.Describe(r.Instrument, cs.Category), cs.Score)
		})
		fmt.Fprintf(&b, "  Điểm: %s\n", strings.Join(parts, ", "))
	}
	b.WriteString("\nYêu cầu: 3 đến 5 nghề nghiệp và 3 đến 5 ngành đại học, mỗi mục kèm lý do ngắn.")
	return b.String()
}
