package llm

import (
	"context"
	"time"

	"github.com/abhisek/laban/internal/metrics"
)

// MetricsProvider is a decorator that reports call counts, latency and
// token usage to Prometheus.
type MetricsProvider struct {
	inner Provider
}

// WithMetrics wraps a Provider with Prometheus instrumentation.
func WithMetrics(p Provider) Provider {
	return &MetricsProvider{inner: p}
}

func (m *MetricsProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	purpose := metricPurpose(PurposeFrom(ctx))
	start := time.Now()

	resp, err := m.inner.Generate(ctx, req)

	metrics.LLMDuration.WithLabelValues(purpose).Observe(time.Since(start).Seconds())
	metrics.LLMRequests.WithLabelValues(purpose, Outcome(err)).Inc()
	if resp != nil {
		model := resp.Model
		if model == "" {
			model = m.inner.ModelID()
		}
		metrics.LLMTokens.WithLabelValues(model, "input").Add(float64(resp.Usage.InputTokens))
		metrics.LLMTokens.WithLabelValues(model, "output").Add(float64(resp.Usage.OutputTokens))
	}
	return resp, err
}

func (m *MetricsProvider) ModelID() string {
	return m.inner.ModelID()
}
