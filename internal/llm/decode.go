package llm

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// SchemaFor reflects T into a Schema. Fields without omitempty are
// required and unknown properties are rejected, which also satisfies
// OpenAI strict mode. Use `jsonschema:"description=..."` tags to guide
// the model.
func SchemaFor[T any](name, description string) *Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	reflected := reflector.Reflect(v)

	raw, err := json.Marshal(reflected)
	if err != nil {
		panic(fmt.Sprintf("llm: reflect schema %q: %v", name, err))
	}
	var def map[string]any
	if err := json.Unmarshal(raw, &def); err != nil {
		panic(fmt.Sprintf("llm: reflect schema %q: %v", name, err))
	}
	delete(def, "$schema")
	delete(def, "$id")

	return &Schema{Name: name, Description: description, Definition: def}
}

// Decode unmarshals a structured response into T. A response that slips
// past provider validation but does not fit T is reported as a
// SchemaMismatch.
func Decode[T any](resp *Response) (T, error) {
	var out T
	if resp == nil || len(resp.Content) == 0 {
		return out, &ErrInvalidResponse{Kind: EmptyContent, Err: fmt.Errorf("empty response")}
	}
	if !json.Valid(resp.Content) {
		return out, &ErrInvalidResponse{Kind: InvalidJSON, Content: resp.Content, Err: fmt.Errorf("content is not valid JSON")}
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return out, &ErrInvalidResponse{Kind: SchemaMismatch, Content: resp.Content, Err: err}
	}
	return out, nil
}

// Text returns the reply of a schema-less request. Content that is not a
// JSON string (a provider that ignored the wrapping) is returned verbatim.
func Text(resp *Response) (string, error) {
	if resp == nil || len(resp.Content) == 0 {
		return "", &ErrInvalidResponse{Kind: EmptyContent, Err: fmt.Errorf("empty response")}
	}
	var s string
	if err := json.Unmarshal(resp.Content, &s); err != nil {
		return string(resp.Content), nil
	}
	return s, nil
}
