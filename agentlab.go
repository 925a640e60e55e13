// Package agentlab is a collection of small building blocks for writing
// LLM-agent programs in Go: a tool-calling agent loop, provider adapters for
// OpenAI and Anthropic, structured output validation, retrieval helpers and a
// set of runnable example programs under examples/.
package agentlab

import (
	"fmt"
	"os"
	"strings"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/joho/godotenv"

	"github.com/hupe1980/agentlab/model"
	"github.com/hupe1980/agentlab/model/anthropic"
	"github.com/hupe1980/agentlab/model/openai"
)

// LoadEnv loads variables from a .env file in the working directory if one
// exists. Missing files are not an error so programs run fine with plain
// environment variables.
func LoadEnv() {
	_ = godotenv.Load()
}

// ModelFromEnv builds a model from the MODEL environment variable, formatted
// as "provider:name" (e.g. "openai:gpt-4o-mini" or
// "anthropic:claude-3-5-sonnet-20241022"). A bare name selects OpenAI; an
// unset variable selects the OpenAI default model. Credentials come from
// OPENAI_API_KEY / ANTHROPIC_API_KEY.
func ModelFromEnv() (model.Model, error) {
	raw := os.Getenv("MODEL")

	provider := "openai"
	name := ""

	if raw != "" {
		if i := strings.Index(raw, ":"); i >= 0 {
			provider = strings.ToLower(strings.TrimSpace(raw[:i]))
			name = strings.TrimSpace(raw[i+1:])
		} else {
			name = strings.TrimSpace(raw)
		}
	}

	switch provider {
	case "openai":
		return openai.NewModel(func(o *openai.Options) {
			if name != "" {
				o.Model = name
			}
		}), nil
	case "anthropic":
		return anthropic.NewModel(func(o *anthropic.Options) {
			if name != "" {
				o.Model = anthropicsdk.Model(name)
			}
		}), nil
	case "mock":
		mockName := name
		if mockName == "" {
			mockName = "mock-model"
		}

		return model.NewMockModel(mockName), nil
	default:
		return nil, fmt.Errorf("unknown model provider %q", provider)
	}
}
