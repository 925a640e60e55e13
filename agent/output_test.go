package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactOut struct {
	Email string `json:"email" format:"email"`
	Phone string `json:"phone" pattern:"^\\d{3}-\\d{3}-\\d{4}$"`
	Age   int    `json:"age" minimum:"0" maximum:"120"`
}

func TestOutput_ValidatePayload(t *testing.T) {
	out := OutputType(contactOut{})

	payload, err := out.validate(`{"email":"a@b.com","phone":"555-123-4567","age":30}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"a@b.com","phone":"555-123-4567","age":30}`, payload)
}

func TestOutput_RejectsPatternViolation(t *testing.T) {
	out := OutputType(contactOut{})

	_, err := out.validate(`{"email":"a@b.com","phone":"5551234567","age":30}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "phone")
}

func TestOutput_RejectsOutOfRange(t *testing.T) {
	out := OutputType(contactOut{})

	_, err := out.validate(`{"email":"a@b.com","phone":"555-123-4567","age":130}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "age")
}

func TestOutput_RejectsMissingField(t *testing.T) {
	out := OutputType(contactOut{})

	_, err := out.validate(`{"email":"a@b.com","age":30}`)
	assert.Error(t, err)
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    string
		wantErr bool
	}{
		{
			name: "bare object",
			text: `{"a":1}`,
			want: `{"a":1}`,
		},
		{
			name: "fenced",
			text: "```json\n{\"a\":1}\n```",
			want: `{"a":1}`,
		},
		{
			name: "surrounded by prose",
			text: `Here you go: {"a":1} hope that helps!`,
			want: `{"a":1}`,
		},
		{
			name: "array payload",
			text: `[1,2,3]`,
			want: `[1,2,3]`,
		},
		{
			name:    "no json",
			text:    "sorry, no data",
			wantErr: true,
		},
		{
			name:    "truncated",
			text:    `{"a":1`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSON(tt.text)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutput_InstructionsContainSchema(t *testing.T) {
	out := OutputType(contactOut{})

	directive := out.instructions()
	assert.Contains(t, directive, "JSON schema")
	assert.Contains(t, directive, `"phone"`)
}
