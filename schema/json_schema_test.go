package schema

import (
	"encoding/json"
	"testing"
)

func TestJSONSchema_MarshalMergesExtra(t *testing.T) {
	s := String("an id")
	s.Extra = map[string]any{"format": "uuid", "type": "ignored"}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["format"] != "uuid" {
		t.Errorf("extra key missing: %v", got)
	}
	if got["type"] != "string" {
		t.Errorf("modelled key should win over Extra, got %v", got["type"])
	}
}

func TestObject_IsPermissive(t *testing.T) {
	s := Object(Props{"a": String("")}, "a")
	if s.AdditionalProperties == nil || !*s.AdditionalProperties {
		t.Fatal("Object should allow additional properties")
	}
	if len(s.Required) != 1 || s.Required[0] != "a" {
		t.Errorf("Required = %v", s.Required)
	}
	if Object(nil).Required != nil {
		t.Error("no required list expected when none given")
	}
}

func TestClone_IsDeep(t *testing.T) {
	orig := Object(Props{
		"Tags": ArrayOf(Tag("Key", "Value")),
	}, "Tags")
	c := orig.Clone()
	c.Properties["Tags"].Items.Properties["Key"].Description = "changed"
	c.Required[0] = "changed"
	*c.AdditionalProperties = false

	if orig.Properties["Tags"].Items.Properties["Key"].Description == "changed" {
		t.Error("nested property shared with clone")
	}
	if orig.Required[0] != "Tags" {
		t.Error("required list shared with clone")
	}
	if !*orig.AdditionalProperties {
		t.Error("additionalProperties shared with clone")
	}
}

func TestDescribe(t *testing.T) {
	base := Object(nil)
	d := base.Describe("desc")
	if d.Description != "desc" || base.Description != "" {
		t.Error("Describe must not modify the receiver")
	}
}

func TestTag(t *testing.T) {
	tag := Tag("TagKey", "TagValue")
	if tag.Type != "object" || !*tag.AdditionalProperties {
		t.Errorf("Tag should be an open object, got %+v", tag)
	}
	if tag.Properties["TagKey"] == nil || tag.Properties["TagValue"] == nil || len(tag.Properties) != 2 {
		t.Errorf("unexpected tag members %v", tag.Properties)
	}
}

func TestHelpers(t *testing.T) {
	if e := Enum("a", "b"); e.Type != "string" || len(e.Enum) != 2 {
		t.Errorf("Enum = %+v", e)
	}
	if s := Strings("ids"); s.Type != "array" || s.Items.Type != "string" || s.Description != "ids" {
		t.Errorf("Strings = %+v", s)
	}
	if n := Number("n"); n.Type != "number" {
		t.Errorf("Number = %+v", n)
	}
	if b := Boolean("b"); b.Type != "boolean" {
		t.Errorf("Boolean = %+v", b)
	}
}
