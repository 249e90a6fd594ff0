package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// captureStdout redirects command output for the duration of a test.
func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })
	return &buf
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"list", "describe", "schema", "verify", "invoke", "whoami"} {
		if commands[name] == nil {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestRunList(t *testing.T) {
	out := captureStdout(t)
	if err := runList([]string{"-service", "kms"}); err != nil {
		t.Fatalf("runList: %v", err)
	}
	s := out.String()
	if !strings.Contains(s, "kms.encrypt") {
		t.Errorf("expected kms.encrypt in output:\n%s", s)
	}
	if strings.Contains(s, "ec2.") || strings.Contains(s, "rds.") {
		t.Errorf("service filter not applied:\n%s", s)
	}
}

func TestRunDescribe(t *testing.T) {
	out := captureStdout(t)
	if err := runDescribe([]string{"kms.encrypt"}); err != nil {
		t.Fatalf("runDescribe: %v", err)
	}
	s := out.String()
	for _, want := range []string{"kms.encrypt", "region", "(required)", "Output keys:", "CiphertextBlob"} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q:\n%s", want, s)
		}
	}

	out.Reset()
	if err := runDescribe([]string{"-json", "ec2.describeInstances"}); err != nil {
		t.Fatalf("runDescribe -json: %v", err)
	}
	var decl map[string]any
	if err := json.Unmarshal(out.Bytes(), &decl); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decl["type"] != "ec2.describeInstances" {
		t.Errorf("type = %v", decl["type"])
	}

	if err := runDescribe([]string{"kms.nope"}); err == nil {
		t.Error("expected error for unknown block")
	}
}

func TestRunSchema(t *testing.T) {
	captureStdout(t)
	path := filepath.Join(t.TempDir(), "blocks.json")
	if err := runSchema([]string{"-output", path}); err != nil {
		t.Fatalf("runSchema: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var decls []map[string]any
	if err := json.Unmarshal(data, &decls); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(decls) == 0 {
		t.Fatal("no declarations exported")
	}
}

func TestRunVerify(t *testing.T) {
	out := captureStdout(t)
	if err := runVerify(nil); err != nil {
		t.Fatalf("runVerify: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "0 failed") {
		t.Errorf("unexpected summary %q", out.String())
	}
}

func TestRunInvoke_ValidationError(t *testing.T) {
	captureStdout(t)
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIDTEST")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")

	err := runInvoke([]string{"-input", `{"region":"us-east-1"}`, "kms.encrypt"})
	if err == nil || !strings.Contains(err.Error(), "KeyId") {
		t.Fatalf("expected validation error naming KeyId, got %v", err)
	}
}

func TestRunInvoke_BadInput(t *testing.T) {
	captureStdout(t)
	if err := runInvoke([]string{"-input", `not json`, "kms.encrypt"}); err == nil {
		t.Fatal("expected error for invalid JSON input")
	}
	if err := runInvoke([]string{"-jq", ".[", "kms.encrypt"}); err == nil {
		t.Fatal("expected error for invalid jq filter")
	}
}

func TestRunFilter(t *testing.T) {
	out := captureStdout(t)
	code := mustCompile(t, ".Keys[].KeyId")
	payload := map[string]any{"Keys": []any{
		map[string]any{"KeyId": "a"},
		map[string]any{"KeyId": "b"},
	}}
	if err := runFilter(code, payload); err != nil {
		t.Fatalf("runFilter: %v", err)
	}
	if got := strings.Fields(out.String()); len(got) != 2 || got[0] != `"a"` || got[1] != `"b"` {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestReadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.json")
	if err := os.WriteFile(path, []byte(`{"region":"us-east-1"}`), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := readInput(path)
	if err != nil || !strings.Contains(string(data), "us-east-1") {
		t.Errorf("readInput = %q, %v", data, err)
	}
	if _, err := readInput(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
