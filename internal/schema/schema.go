// Package schema derives JSON Schemas from Go structs using reflection.
// Struct tags map onto schema keywords so validation-only data shapes can be
// declared inline on the type:
//
//	type ContactInfo struct {
//		Name  string `json:"name" description:"Full name of the person"`
//		Email string `json:"email" format:"email"`
//		Phone string `json:"phone" pattern:"^\\d{3}-\\d{3}-\\d{4}$"`
//		Age   int    `json:"age" minimum:"0" maximum:"120"`
//	}
//
// Fields are required unless they are pointers or carry the json omitempty
// option.
package schema

import (
	"reflect"
	"strconv"
	"strings"
)

// For derives the JSON schema for the type of the given sample value.
// Non-struct samples yield an empty object schema.
func For(sample any) map[string]any {
	t := reflect.TypeOf(sample)
	if t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t == nil || t.Kind() != reflect.Struct {
		return map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		}
	}

	return structSchema(t)
}

func structSchema(t reflect.Type) map[string]any {
	properties := make(map[string]any)
	required := make([]string, 0)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}

		fieldName := field.Name
		if jsonTag != "" {
			if name := strings.Split(jsonTag, ",")[0]; name != "" {
				fieldName = name
			}
		}

		properties[fieldName] = fieldSchema(field)

		if !hasOmitEmpty(jsonTag) && field.Type.Kind() != reflect.Ptr {
			required = append(required, fieldName)
		}
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}

	if len(required) > 0 {
		schema["required"] = required
	}

	return schema
}

func fieldSchema(field reflect.StructField) map[string]any {
	s := typeSchema(field.Type)

	if description := field.Tag.Get("description"); description != "" {
		s["description"] = description
	}

	if pattern := field.Tag.Get("pattern"); pattern != "" {
		s["pattern"] = pattern
	}

	if format := field.Tag.Get("format"); format != "" {
		s["format"] = format
	}

	if min := field.Tag.Get("minimum"); min != "" {
		if v, err := strconv.ParseFloat(min, 64); err == nil {
			s["minimum"] = v
		}
	}

	if max := field.Tag.Get("maximum"); max != "" {
		if v, err := strconv.ParseFloat(max, 64); err == nil {
			s["maximum"] = v
		}
	}

	if enum := field.Tag.Get("enum"); enum != "" {
		values := strings.Split(enum, ",")
		anyValues := make([]any, len(values))
		for i, v := range values {
			anyValues[i] = strings.TrimSpace(v)
		}
		s["enum"] = anyValues
	}

	return s
}

// typeSchema maps a Go type onto a JSON schema fragment, recursing into
// struct and slice element types.
func typeSchema(t reflect.Type) map[string]any {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		return map[string]any{"type": "string"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return map[string]any{"type": "integer"}
	case reflect.Float32, reflect.Float64:
		return map[string]any{"type": "number"}
	case reflect.Bool:
		return map[string]any{"type": "boolean"}
	case reflect.Slice, reflect.Array:
		return map[string]any{
			"type":  "array",
			"items": typeSchema(t.Elem()),
		}
	case reflect.Struct:
		return structSchema(t)
	case reflect.Map:
		return map[string]any{"type": "object"}
	default:
		return map[string]any{"type": "string"}
	}
}

func hasOmitEmpty(tag string) bool {
	parts := strings.Split(tag, ",")
	for _, part := range parts[1:] {
		if strings.TrimSpace(part) == "omitempty" {
			return true
		}
	}

	return false
}
