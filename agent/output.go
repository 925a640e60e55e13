package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/hupe1980/agentlab/internal/schema"
)

// Output declares a structured result shape the agent must produce. The
// model is instructed to answer with a single JSON object; the answer is
// validated against the schema and invalid answers trigger bounded retries
// with the validation message fed back to the model.
type Output struct {
	schema map[string]any
}

// OutputType derives an Output from a struct sample. Constraint tags on the
// struct (pattern, minimum, maximum, enum, format) become schema keywords:
//
//	type ContactInfo struct {
//		Phone string `json:"phone" pattern:"^\\d{3}-\\d{3}-\\d{4}$"`
//		Age   int    `json:"age" minimum:"0" maximum:"120"`
//	}
func OutputType(sample any) *Output {
	return &Output{schema: schema.For(sample)}
}

// OutputSchema wraps an explicit JSON schema map as an Output.
func OutputSchema(s map[string]any) *Output {
	return &Output{schema: s}
}

// Schema returns the JSON schema of the declared output.
func (o *Output) Schema() map[string]any { return o.schema }

// instructions renders the schema directive appended to the system prompt.
func (o *Output) instructions() string {
	raw, err := json.Marshal(o.schema)
	if err != nil {
		raw = []byte("{}")
	}

	return "Respond with a single JSON object that conforms to this JSON schema. " +
		"Do not wrap it in markdown fences and do not add commentary.\n\nSchema:\n" + string(raw)
}

// validate extracts the JSON payload from raw model text and validates it
// against the schema. It returns the canonical payload on success.
func (o *Output) validate(text string) (string, error) {
	payload, err := extractJSON(text)
	if err != nil {
		return "", err
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(o.schema),
		gojsonschema.NewStringLoader(payload),
	)
	if err != nil {
		return "", fmt.Errorf("invalid JSON: %w", err)
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}

		return "", errors.New(strings.Join(msgs, "; "))
	}

	return payload, nil
}

// extractJSON locates the JSON object or array inside raw model text,
// tolerating markdown fences and surrounding prose.
func extractJSON(text string) (string, error) {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return "", errors.New("response contains no JSON payload")
	}

	var end int
	if text[start] == '{' {
		end = strings.LastIndex(text, "}")
	} else {
		end = strings.LastIndex(text, "]")
	}

	if end <= start {
		return "", errors.New("response contains truncated JSON")
	}

	payload := text[start : end+1]
	if !json.Valid([]byte(payload)) {
		return "", errors.New("response payload is not valid JSON")
	}

	return payload, nil
}
