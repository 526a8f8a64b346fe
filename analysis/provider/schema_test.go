package provider

import (
	"strings"
	"testing"
)

type schemaProbe struct {
	Label    *string  `json:"label,omitempty" jsonschema:"enum=a,enum=b"`
	Score    *float64 `json:"score,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
	Name     string   `json:"name" jsonschema:"required"`
}

func TestGenerateSchema_InlineObject(t *testing.T) {
	t.Parallel()

	s := GenerateSchema[schemaProbe]()
	if s["type"] != "object" {
		t.Fatalf("type=%v, want object", s["type"])
	}
	if _, ok := s["$schema"]; ok {
		t.Fatalf("expected $schema to be dropped")
	}
	props, ok := s["properties"].(map[string]interface{})
	if !ok {
		t.Fatalf("properties missing: %v", s)
	}
	for _, k := range []string{"label", "score", "keywords", "name"} {
		if _, ok := props[k]; !ok {
			t.Fatalf("missing property %q in %v", k, props)
		}
	}
	req, _ := s["required"].([]interface{})
	if len(req) != 1 || req[0] != "name" {
		t.Fatalf("required=%v, want [name]", req)
	}
}

func TestSchemaText_MentionsFields(t *testing.T) {
	t.Parallel()

	text := SchemaText[schemaProbe]()
	if !strings.Contains(text, `"keywords"`) || !strings.Contains(text, `"enum"`) {
		t.Fatalf("schema text missing fields:\n%s", text)
	}
}
