package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// OfflineReply answers free-text requests when the mock provider runs
// without canned responses, e.g. LABAN_LLM_PROVIDER=mock.
const OfflineReply = "Đây là câu trả lời mẫu ở chế độ ngoại tuyến. Hãy cấu hình khóa API để nhận phản hồi thật."

// MockResponse is a canned reply for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockText returns a canned reply for a schema-less request.
func MockText(text string) MockResponse {
	return MockResponse{Content: textContent(text, nil)}
}

// MockJSON marshals v into a canned structured reply.
func MockJSON(v any) MockResponse {
	b, err := json.Marshal(v)
	if err != nil {
		return MockResponse{Err: err}
	}
	return MockResponse{Content: b}
}

// MockProvider is a deterministic Provider for tests and offline use.
// Replies queued with For are served to requests carrying that purpose;
// everything else drains the shared queue in FIFO order.
type MockProvider struct {
	mu        sync.Mutex
	shared    []MockResponse
	byPurpose map[string][]MockResponse
	offline   bool

	Calls []Request
}

// NewMockProvider creates a MockProvider with the given shared replies.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{shared: responses, byPurpose: map[string][]MockResponse{}}
}

// NewOfflineProvider returns a mock that answers free-text requests with
// OfflineReply once its queues are empty. Structured requests still fail
// as unavailable.
func NewOfflineProvider() *MockProvider {
	m := NewMockProvider()
	m.offline = true
	return m
}

// For queues replies for requests labelled purpose via WithPurpose.
func (m *MockProvider) For(purpose string, responses ...MockResponse) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byPurpose[purpose] = append(m.byPurpose[purpose], responses...)
	return m
}

// AddResponse appends a reply to the shared queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shared = append(m.shared, resp)
}

// Generate serves the next queued reply, validating structured content
// the way a real provider does.
func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	resp, ok := m.next(PurposeFrom(ctx))
	if !ok {
		if !m.offline || req.Schema != nil {
			return nil, &ErrProviderUnavailable{}
		}
		resp = MockText(OfflineReply)
	}
	if resp.Err != nil {
		return nil, resp.Err
	}
	if err := validateResponse(req.Schema, resp.Content); err != nil {
		return nil, err
	}

	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

func (m *MockProvider) next(purpose string) (MockResponse, bool) {
	if q := m.byPurpose[purpose]; len(q) > 0 {
		m.byPurpose[purpose] = q[1:]
		return q[0], true
	}
	if len(m.shared) > 0 {
		resp := m.shared[0]
		m.shared = m.shared[1:]
		return resp, true
	}
	return MockResponse{}, false
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
