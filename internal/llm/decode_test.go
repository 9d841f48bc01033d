package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCard struct {
	Front string `json:"front" jsonschema:"description=Term or question"`
	Back  string `json:"back" jsonschema:"description=Definition or answer"`
}

type testCardSet struct {
	Topic string     `json:"topic"`
	Cards []testCard `json:"cards"`
}

func TestSchemaFor_ReflectsStruct(t *testing.T) {
	s := SchemaFor[testCardSet]("test-card-set", "A set of flashcards")
	assert.Equal(t, "test-card-set", s.Name)
	assert.Equal(t, "object", s.Definition["type"])
	assert.Equal(t, false, s.Definition["additionalProperties"])
	assert.NotContains(t, s.Definition, "$schema")
	assert.ElementsMatch(t, []any{"topic", "cards"}, s.Definition["required"])

	props, ok := s.Definition["properties"].(map[string]any)
	require.True(t, ok)
	cards, ok := props["cards"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "array", cards["type"])
	items, ok := cards["items"].(map[string]any)
	require.True(t, ok, "items should be inlined")
	itemProps := items["properties"].(map[string]any)
	front := itemProps["front"].(map[string]any)
	assert.Equal(t, "Term or question", front["description"])
}

func TestDecode(t *testing.T) {
	resp := &Response{Content: json.RawMessage(`{"topic":"Lịch sử","cards":[{"front":"1945","back":"Cách mạng tháng Tám"}]}`)}
	set, err := Decode[testCardSet](resp)
	require.NoError(t, err)
	assert.Equal(t, "Lịch sử", set.Topic)
	require.Len(t, set.Cards, 1)
	assert.Equal(t, "Cách mạng tháng Tám", set.Cards[0].Back)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		resp *Response
		want InvalidKind
	}{
		{"nil", nil, EmptyContent},
		{"empty", &Response{}, EmptyContent},
		{"garbage", &Response{Content: json.RawMessage(`{"topic":`)}, InvalidJSON},
		{"shape", &Response{Content: json.RawMessage(`{"topic":["a"],"cards":[]}`)}, SchemaMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode[testCardSet](tt.resp)
			assert.Equal(t, tt.want, invalidKind(t, err))
		})
	}
}

func TestText(t *testing.T) {
	got, err := Text(&Response{Content: textContent("Chào bạn!\nHôm nay thế nào?", nil)})
	require.NoError(t, err)
	assert.Equal(t, "Chào bạn!\nHôm nay thế nào?", got)

	got, err = Text(&Response{Content: json.RawMessage(`plain reply`)})
	require.NoError(t, err)
	assert.Equal(t, "plain reply", got)

	_, err = Text(&Response{})
	assert.Equal(t, EmptyContent, invalidKind(t, err))
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", Outcome(nil))
	assert.Equal(t, "invalid_json", Outcome(&ErrInvalidResponse{Kind: InvalidJSON}))
	assert.Equal(t, "schema_mismatch", Outcome(&ErrInvalidResponse{Kind: SchemaMismatch}))
	assert.Equal(t, "rate_limited", Outcome(&ErrRateLimit{}))
	assert.Equal(t, "unavailable", Outcome(&ErrProviderUnavailable{}))
	assert.Equal(t, "max_tokens", Outcome(&ErrMaxTokensExceeded{}))
	assert.Equal(t, "not_configured", Outcome(ErrNotConfigured))
}
