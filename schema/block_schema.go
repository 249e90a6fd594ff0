package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// FieldType is the primitive type of a block config field. Object and array
// fields describe their shape with a nested JSONSchema.
type FieldType string

const (
	FieldTypeString FieldType = "string"
	FieldTypeNumber FieldType = "number"
	FieldTypeBool   FieldType = "boolean"
	FieldTypeObject FieldType = "object"
	FieldTypeArray  FieldType = "array"
)

// EncodingText marks a blob parameter that callers supply as UTF-8 text
// rather than base64.
const EncodingText = "text"

// RegionKey is the config key every block uses to select the AWS region.
const RegionKey = "region"

// ConfigFieldDef describes one input parameter of a block.
type ConfigFieldDef struct {
	Key         string
	Description string
	Type        FieldType
	Required    bool
	Schema      *JSONSchema // shape of object and array fields
	Encoding    string      // "" or EncodingText
}

// MarshalJSON encodes the field in the host declaration format:
// {name, description, type, required}, where type is either a primitive
// name or a nested schema.
func (f ConfigFieldDef) MarshalJSON() ([]byte, error) {
	var typ any = string(f.Type)
	if f.Schema != nil {
		typ = f.Schema
	}
	return json.Marshal(struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Type        any    `json:"type"`
		Required    bool   `json:"required"`
	}{f.Key, f.Description, typ, f.Required})
}

// AsRequired returns a copy of f marked required.
func (f ConfigFieldDef) AsRequired() ConfigFieldDef {
	f.Required = true
	return f
}

// AsText returns a copy of f whose blob value is taken as UTF-8 text.
func (f ConfigFieldDef) AsText() ConfigFieldDef {
	f.Encoding = EncodingText
	return f
}

// StringField declares a string parameter.
func StringField(key, desc string) ConfigFieldDef {
	return ConfigFieldDef{Key: key, Description: desc, Type: FieldTypeString}
}

// NumberField declares a numeric parameter.
func NumberField(key, desc string) ConfigFieldDef {
	return ConfigFieldDef{Key: key, Description: desc, Type: FieldTypeNumber}
}

// BoolField declares a boolean parameter.
func BoolField(key, desc string) ConfigFieldDef {
	return ConfigFieldDef{Key: key, Description: desc, Type: FieldTypeBool}
}

// ObjectField declares a structured parameter.
func ObjectField(key, desc string, shape *JSONSchema) ConfigFieldDef {
	return ConfigFieldDef{Key: key, Description: desc, Type: FieldTypeObject, Schema: shape}
}

// ArrayField declares a list parameter with the given element shape.
func ArrayField(key, desc string, items *JSONSchema) ConfigFieldDef {
	return ConfigFieldDef{Key: key, Description: desc, Type: FieldTypeArray, Schema: ArrayOf(items)}
}

// RegionField is the region parameter prepended to every block.
func RegionField() ConfigFieldDef {
	return StringField(RegionKey, "AWS region to send the request to (e.g. us-east-1).").AsRequired()
}

// BlockSchema is the static descriptor of one block.
type BlockSchema struct {
	Type         string // stable identifier, e.g. "ec2.describeInstances"
	Name         string // display name, e.g. "Describe Instances"
	Description  string
	Service      string
	ConfigFields []ConfigFieldDef
	Output       *JSONSchema
}

// Field returns the named field definition.
func (s *BlockSchema) Field(key string) (ConfigFieldDef, bool) {
	for _, f := range s.ConfigFields {
		if f.Key == key {
			return f, true
		}
	}
	return ConfigFieldDef{}, false
}

// Check reports structural problems in the schema definition itself.
func (s *BlockSchema) Check() error {
	var errs ValidationErrors
	if s.Type == "" {
		errs = append(errs, &ValidationError{Path: "type", Message: "block type is required"})
	}
	if s.Name == "" {
		errs = append(errs, &ValidationError{Path: s.Type + ".name", Message: "block name is required"})
	}
	seen := make(map[string]int, len(s.ConfigFields))
	for i, f := range s.ConfigFields {
		path := fmt.Sprintf("%s.configFields[%d]", s.Type, i)
		if f.Key == "" {
			errs = append(errs, &ValidationError{Path: path, Message: "field key is required"})
			continue
		}
		if first, dup := seen[f.Key]; dup {
			errs = append(errs, &ValidationError{
				Path:    path,
				Message: fmt.Sprintf("duplicate field %q (first defined at configFields[%d])", f.Key, first),
			})
			continue
		}
		seen[f.Key] = i
		if (f.Type == FieldTypeObject || f.Type == FieldTypeArray) && f.Schema == nil {
			errs = append(errs, &ValidationError{Path: path, Message: fmt.Sprintf("field %q of type %s needs a schema", f.Key, f.Type)})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Declaration returns the host-facing declaration of the block.
func (s *BlockSchema) Declaration() *BlockDeclaration {
	output := s.Output
	if output == nil {
		output = Object(nil)
	}
	return &BlockDeclaration{
		Type:        s.Type,
		Name:        s.Name,
		Description: s.Description,
		Inputs: map[string]InputDeclaration{
			"default": {Config: ConfigDeclaration(s.ConfigFields)},
		},
		Outputs: map[string]OutputDeclaration{
			"default": {Type: output},
		},
	}
}

// BlockDeclaration is what the hosting platform loads for each block.
type BlockDeclaration struct {
	Type        string                       `json:"type"`
	Name        string                       `json:"name"`
	Description string                       `json:"description"`
	Inputs      map[string]InputDeclaration  `json:"inputs"`
	Outputs     map[string]OutputDeclaration `json:"outputs"`
}

// InputDeclaration holds the config schema of an input channel.
type InputDeclaration struct {
	Config ConfigDeclaration `json:"config"`
}

// OutputDeclaration holds the payload type of an output channel.
type OutputDeclaration struct {
	Type *JSONSchema `json:"type"`
}

// ConfigDeclaration encodes as a JSON object keyed by field name, preserving
// declaration order.
type ConfigDeclaration []ConfigFieldDef

func (c ConfigDeclaration) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Registry holds block schemas keyed by type.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]*BlockSchema
}

// NewRegistry creates an empty schema registry.
func NewRegistry() *Registry {
	return &Registry{schemas: make(map[string]*BlockSchema)}
}

// Register adds a schema. Malformed schemas and duplicate types are rejected.
func (r *Registry) Register(s *BlockSchema) error {
	if err := s.Check(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.schemas[s.Type]; exists {
		return fmt.Errorf("schema %q already registered", s.Type)
	}
	r.schemas[s.Type] = s
	return nil
}

// Get returns the schema for a block type, or nil if not found.
func (r *Registry) Get(blockType string) *BlockSchema {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.schemas[blockType]
}

// Types returns a sorted list of all registered block types.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.schemas))
	for t := range r.schemas {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// All returns all schemas ordered by type.
func (r *Registry) All() []*BlockSchema {
	types := r.Types()
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*BlockSchema, 0, len(types))
	for _, t := range types {
		out = append(out, r.schemas[t])
	}
	return out
}
