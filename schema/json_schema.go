package schema

import (
	"encoding/json"
	"maps"
)

// JSONSchema is the subset of JSON Schema used to describe block inputs and
// outputs. Keys not modelled as fields can be carried in Extra and are merged
// into the encoded object.
type JSONSchema struct {
	Type                 string                 `json:"type,omitempty"`
	Description          string                 `json:"description,omitempty"`
	Properties           map[string]*JSONSchema `json:"properties,omitempty"`
	Items                *JSONSchema            `json:"items,omitempty"`
	Required             []string               `json:"required,omitempty"`
	Enum                 []string               `json:"enum,omitempty"`
	AdditionalProperties *bool                  `json:"additionalProperties,omitempty"`
	Extra                map[string]any         `json:"-"`
}

// Props is shorthand for an object's property map.
type Props map[string]*JSONSchema

// MarshalJSON encodes the schema and merges Extra. Modelled keys win over
// Extra entries with the same name.
func (s *JSONSchema) MarshalJSON() ([]byte, error) {
	type plain JSONSchema
	data, err := json.Marshal((*plain)(s))
	if err != nil || len(s.Extra) == 0 {
		return data, err
	}
	merged := make(map[string]any, len(s.Extra)+4)
	maps.Copy(merged, s.Extra)
	var known map[string]any
	if err := json.Unmarshal(data, &known); err != nil {
		return nil, err
	}
	maps.Copy(merged, known)
	return json.Marshal(merged)
}

// Clone returns a deep copy of the schema.
func (s *JSONSchema) Clone() *JSONSchema {
	if s == nil {
		return nil
	}
	out := *s
	if s.Properties != nil {
		out.Properties = make(map[string]*JSONSchema, len(s.Properties))
		for k, v := range s.Properties {
			out.Properties[k] = v.Clone()
		}
	}
	out.Items = s.Items.Clone()
	out.Required = append([]string(nil), s.Required...)
	out.Enum = append([]string(nil), s.Enum...)
	if s.AdditionalProperties != nil {
		v := *s.AdditionalProperties
		out.AdditionalProperties = &v
	}
	if s.Extra != nil {
		out.Extra = maps.Clone(s.Extra)
	}
	return &out
}

// Describe returns a copy of s with the given description.
func (s *JSONSchema) Describe(desc string) *JSONSchema {
	out := s.Clone()
	out.Description = desc
	return out
}

func boolPtr(v bool) *bool { return &v }

// String returns a string schema.
func String(desc string) *JSONSchema {
	return &JSONSchema{Type: "string", Description: desc}
}

// Number returns a number schema.
func Number(desc string) *JSONSchema {
	return &JSONSchema{Type: "number", Description: desc}
}

// Boolean returns a boolean schema.
func Boolean(desc string) *JSONSchema {
	return &JSONSchema{Type: "boolean", Description: desc}
}

// Enum returns a string schema restricted to values.
func Enum(values ...string) *JSONSchema {
	return &JSONSchema{Type: "string", Enum: values}
}

// ArrayOf returns an array schema whose elements match items.
func ArrayOf(items *JSONSchema) *JSONSchema {
	return &JSONSchema{Type: "array", Items: items}
}

// Object returns an open object schema (additionalProperties: true). Upstream
// response shapes grow over time, so objects accept unknown keys by default.
func Object(props Props, required ...string) *JSONSchema {
	s := &JSONSchema{
		Type:                 "object",
		Properties:           map[string]*JSONSchema(props),
		AdditionalProperties: boolPtr(true),
	}
	if len(required) > 0 {
		s.Required = required
	}
	return s
}

// Tag is the tag object shared by EC2, KMS and RDS. Member names differ per
// service (Key/Value, TagKey/TagValue).
func Tag(keyName, valueName string) *JSONSchema {
	return Object(Props{
		keyName:   String("The key of the tag."),
		valueName: String("The value of the tag."),
	})
}

// Strings is an array of strings.
func Strings(desc string) *JSONSchema {
	s := ArrayOf(String(""))
	s.Description = desc
	return s
}
