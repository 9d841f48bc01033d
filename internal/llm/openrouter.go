package llm

import "fmt"

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// openRouterHeaders identify the app on OpenRouter's usage dashboards.
var openRouterHeaders = map[string]string{
	"HTTP-Referer": "https://github.com/abhisek/laban",
	"X-Title":      "Laban",
}

// OpenRouterProvider is an OpenAIProvider pointed at OpenRouter. Model IDs
// pass through untouched since OpenRouter namespaces them by vendor, and
// structured output is non-strict because many routed models reject it.
type OpenRouterProvider struct {
	*OpenAIProvider
}

func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	inner, err := newOpenAIProviderRaw(OpenAIConfig{
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		BaseURL:     baseURL,
		Headers:     openRouterHeaders,
		LooseSchema: true,
	})
	if err != nil {
		return nil, err
	}
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}
