package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewOpenRouterProvider(t *testing.T) {
	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: "anthropic/claude-3-haiku"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "anthropic/claude-3-haiku" {
		t.Errorf("model = %q, namespaced IDs should pass through", p.ModelID())
	}

	if _, err := NewOpenRouterProvider(OpenRouterConfig{Model: "google/gemini-2.5-flash"}); err == nil {
		t.Fatal("expected error for empty API key")
	}
}

func TestOpenRouterProvider_HeadersAndLooseSchema(t *testing.T) {
	var title, referer string
	var strict any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		title = r.Header.Get("X-Title")
		referer = r.Header.Get("HTTP-Referer")

		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if rf, ok := body["response_format"].(map[string]any); ok {
			if js, ok := rf["json_schema"].(map[string]any); ok {
				strict = js["strict"]
			}
		}
		openAIReply(`{"topic":"Sinh học","cards":[]}`, "stop")(w, r)
	}))
	t.Cleanup(server.Close)

	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: "google/gemini-2.5-flash", BaseURL: server.URL + "/v1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "Tạo thẻ."}},
		Schema:   SchemaFor[testCardSet]("test-card-set", "cards"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if title != "Laban" || referer == "" {
		t.Errorf("attribution headers missing: title=%q referer=%q", title, referer)
	}
	if strict == true {
		t.Error("openrouter requests should not ask for strict schemas")
	}
}
