package schema

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func testSchema() *BlockSchema {
	return &BlockSchema{
		Type:        "kms.encrypt",
		Name:        "Encrypt",
		Description: "Encrypts plaintext.",
		Service:     "kms",
		ConfigFields: []ConfigFieldDef{
			RegionField(),
			StringField("KeyId", "Key to use.").AsRequired(),
			StringField("Plaintext", "Data.").AsRequired().AsText(),
			ObjectField("EncryptionContext", "AAD.", Object(nil)),
			ArrayField("GrantTokens", "Tokens.", String("")),
		},
		Output: Object(Props{"CiphertextBlob": String("")}),
	}
}

func TestBlockSchema_Check(t *testing.T) {
	if err := testSchema().Check(); err != nil {
		t.Fatalf("valid schema rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*BlockSchema)
		want   string
	}{
		{"missing type", func(s *BlockSchema) { s.Type = "" }, "block type is required"},
		{"missing name", func(s *BlockSchema) { s.Name = "" }, "block name is required"},
		{"empty key", func(s *BlockSchema) { s.ConfigFields[1].Key = "" }, "field key is required"},
		{"duplicate key", func(s *BlockSchema) { s.ConfigFields[2].Key = "KeyId" }, `duplicate field "KeyId"`},
		{"object without schema", func(s *BlockSchema) { s.ConfigFields[3].Schema = nil }, "needs a schema"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSchema()
			tt.mutate(s)
			err := s.Check()
			if err == nil {
				t.Fatal("expected error")
			}
			var ves ValidationErrors
			if !errors.As(err, &ves) {
				t.Fatalf("expected ValidationErrors, got %T", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestBlockSchema_Field(t *testing.T) {
	s := testSchema()
	f, ok := s.Field("Plaintext")
	if !ok {
		t.Fatal("Plaintext not found")
	}
	if !f.Required || f.Encoding != EncodingText {
		t.Errorf("unexpected field %+v", f)
	}
	if _, ok := s.Field("Nope"); ok {
		t.Error("unknown field reported as found")
	}
}

func TestDeclaration_JSONShape(t *testing.T) {
	data, err := json.Marshal(testSchema().Declaration())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decl struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Inputs      map[string]struct {
			Config map[string]struct {
				Name        string          `json:"name"`
				Description string          `json:"description"`
				Type        json.RawMessage `json:"type"`
				Required    bool            `json:"required"`
			} `json:"config"`
		} `json:"inputs"`
		Outputs map[string]struct {
			Type map[string]any `json:"type"`
		} `json:"outputs"`
	}
	if err := json.Unmarshal(data, &decl); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if decl.Name != "Encrypt" || decl.Description != "Encrypts plaintext." {
		t.Errorf("unexpected header: %+v", decl)
	}
	cfg := decl.Inputs["default"].Config
	if len(cfg) != 5 {
		t.Fatalf("expected 5 config fields, got %d", len(cfg))
	}
	region := cfg["region"]
	if !region.Required || string(region.Type) != `"string"` {
		t.Errorf("region field = %+v", region)
	}
	if cfg["KeyId"].Name != "KeyId" || !cfg["KeyId"].Required {
		t.Errorf("KeyId field = %+v", cfg["KeyId"])
	}
	if cfg["GrantTokens"].Required {
		t.Error("GrantTokens should be optional")
	}
	var arr map[string]any
	if err := json.Unmarshal(cfg["GrantTokens"].Type, &arr); err != nil {
		t.Fatalf("array field type is not a schema: %s", cfg["GrantTokens"].Type)
	}
	if arr["type"] != "array" {
		t.Errorf("GrantTokens type = %v", arr)
	}

	out := decl.Outputs["default"].Type
	if out["type"] != "object" || out["additionalProperties"] != true {
		t.Errorf("output type must be a permissive object, got %v", out)
	}
}

func TestConfigDeclaration_PreservesOrder(t *testing.T) {
	data, err := json.Marshal(ConfigDeclaration(testSchema().ConfigFields))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	order := []string{`"region"`, `"KeyId"`, `"Plaintext"`, `"EncryptionContext"`, `"GrantTokens"`}
	last := -1
	for _, key := range order {
		idx := strings.Index(s, key+":")
		if idx < 0 {
			t.Fatalf("key %s missing from %s", key, s)
		}
		if idx < last {
			t.Errorf("key %s out of order in %s", key, s)
		}
		last = idx
	}
}

func TestDeclaration_NilOutputIsOpenObject(t *testing.T) {
	s := testSchema()
	s.Output = nil
	out := s.Declaration().Outputs["default"].Type
	if out.Type != "object" || out.AdditionalProperties == nil || !*out.AdditionalProperties {
		t.Errorf("expected open object, got %+v", out)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(testSchema()); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register(testSchema()); err == nil {
		t.Error("expected duplicate registration to fail")
	}

	bad := testSchema()
	bad.Type = "kms.bad"
	bad.Name = ""
	if err := r.Register(bad); err == nil {
		t.Error("expected malformed schema to be rejected")
	}

	other := testSchema()
	other.Type = "ec2.describeInstances"
	if err := r.Register(other); err != nil {
		t.Fatalf("Register: %v", err)
	}

	types := r.Types()
	if len(types) != 2 || types[0] != "ec2.describeInstances" || types[1] != "kms.encrypt" {
		t.Errorf("Types() = %v", types)
	}
	if r.Get("kms.encrypt") == nil {
		t.Error("Get returned nil for registered type")
	}
	if r.Get("kms.bad") != nil {
		t.Error("rejected schema should not be retrievable")
	}
	all := r.All()
	if len(all) != 2 || all[0].Type != "ec2.describeInstances" {
		t.Errorf("All() not ordered by type: %v", all)
	}
}
