package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contact struct {
	Name  string  `json:"name" description:"Full name"`
	Email string  `json:"email" format:"email"`
	Phone string  `json:"phone" pattern:"^\\d{3}-\\d{3}-\\d{4}$"`
	Age   int     `json:"age" minimum:"0" maximum:"120"`
	Note  *string `json:"note"`
	Tag   string  `json:"tag,omitempty" enum:"work,home"`
}

func TestFor_StructFields(t *testing.T) {
	s := For(contact{})

	assert.Equal(t, "object", s["type"])

	props, ok := s["properties"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, props, 6)

	phone := props["phone"].(map[string]any)
	assert.Equal(t, "string", phone["type"])
	assert.Equal(t, `^\d{3}-\d{3}-\d{4}$`, phone["pattern"])

	age := props["age"].(map[string]any)
	assert.Equal(t, "integer", age["type"])
	assert.Equal(t, float64(0), age["minimum"])
	assert.Equal(t, float64(120), age["maximum"])

	email := props["email"].(map[string]any)
	assert.Equal(t, "email", email["format"])

	tag := props["tag"].(map[string]any)
	assert.Equal(t, []any{"work", "home"}, tag["enum"])

	name := props["name"].(map[string]any)
	assert.Equal(t, "Full name", name["description"])
}

func TestFor_RequiredExcludesPointerAndOmitEmpty(t *testing.T) {
	s := For(contact{})

	required, ok := s["required"].([]string)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"name", "email", "phone", "age"}, required)
}

func TestFor_NestedAndSliceTypes(t *testing.T) {
	type item struct {
		Title string  `json:"title"`
		Hours float64 `json:"hours"`
	}

	type list struct {
		Items []item            `json:"items"`
		Done  bool              `json:"done"`
		Meta  map[string]string `json:"meta,omitempty"`
	}

	s := For(list{})
	props := s["properties"].(map[string]any)

	items := props["items"].(map[string]any)
	assert.Equal(t, "array", items["type"])

	elem := items["items"].(map[string]any)
	assert.Equal(t, "object", elem["type"])

	elemProps := elem["properties"].(map[string]any)
	assert.Equal(t, "number", elemProps["hours"].(map[string]any)["type"])

	assert.Equal(t, "boolean", props["done"].(map[string]any)["type"])
	assert.Equal(t, "object", props["meta"].(map[string]any)["type"])
}

func TestFor_NonStructSample(t *testing.T) {
	s := For("just a string")

	assert.Equal(t, "object", s["type"])
	assert.Empty(t, s["properties"])
}

func TestFor_PointerSample(t *testing.T) {
	s := For(&contact{})

	props, ok := s["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "name")
}
