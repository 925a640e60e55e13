package agent

import (
	"strings"

	"github.com/hupe1980/agentlab/core"
)

// InstructionsProvider supplies dynamic instruction text at runtime.
// Implementations can derive instructions from run dependencies, the
// environment, the time of day, etc.
type InstructionsProvider interface {
	Instructions(*core.RunContext) (string, error)
}

// InstructionsFunc is a functional adapter to allow ordinary functions to be
// used as providers.
type InstructionsFunc func(*core.RunContext) (string, error)

// Instructions implements InstructionsProvider.
func (f InstructionsFunc) Instructions(rc *core.RunContext) (string, error) { return f(rc) }

// Instruction represents either a static instruction string or a dynamic
// provider. This mirrors a union of string | provider in a Go-idiomatic way.
type Instruction struct {
	text     string
	provider InstructionsProvider
}

// NewInstructionFromText creates an Instruction from a static string.
func NewInstructionFromText(text string) Instruction { return Instruction{text: text} }

// NewInstructionFromProvider creates an Instruction from a dynamic provider.
func NewInstructionFromProvider(p InstructionsProvider) Instruction {
	return Instruction{provider: p}
}

// NewInstructionFromFunc creates an Instruction from a function.
func NewInstructionFromFunc(f func(*core.RunContext) (string, error)) Instruction {
	return Instruction{provider: InstructionsFunc(f)}
}

// IsStatic returns true if the instruction is backed by a static string.
func (i Instruction) IsStatic() bool { return i.provider == nil }

// Resolve returns the instruction text, invoking the provider if needed.
func (i Instruction) Resolve(rc *core.RunContext) (string, error) {
	if i.provider != nil {
		return i.provider.Instructions(rc)
	}

	return i.text, nil
}

// resolveAll resolves a list of instructions and joins the non-empty results
// with blank lines, producing the final system prompt.
func resolveAll(rc *core.RunContext, instructions []Instruction) (string, error) {
	parts := make([]string, 0, len(instructions))

	for _, ins := range instructions {
		text, err := ins.Resolve(rc)
		if err != nil {
			return "", err
		}

		if text = strings.TrimSpace(text); text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, "\n\n"), nil
}
