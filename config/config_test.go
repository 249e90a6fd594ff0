package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Server.Address != ":8080" {
		t.Errorf("Address = %q", cfg.Server.Address)
	}
	if cfg.Telemetry.MetricsNamespace != "flows" {
		t.Errorf("MetricsNamespace = %q", cfg.Telemetry.MetricsNamespace)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestParse_ValidYAML(t *testing.T) {
	content := `
aws:
  accessKeyId: AKIDEXAMPLE
  secretAccessKey: ${TEST_SECRET}
  endpoint: http://localhost:4566
server:
  address: ":9090"
  rateLimit: 5
  burst: 10
log:
  level: debug
  format: json
`
	cfg, err := Parse([]byte(content), envMap(map[string]string{"TEST_SECRET": "s3cr3t"}))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.AWS.AccessKeyID != "AKIDEXAMPLE" || cfg.AWS.SecretAccessKey != "s3cr3t" {
		t.Errorf("credentials = %+v", cfg.AWS)
	}
	if cfg.AWS.Endpoint != "http://localhost:4566" {
		t.Errorf("Endpoint = %q", cfg.AWS.Endpoint)
	}
	if cfg.Server.Address != ":9090" || cfg.Server.RateLimit != 5 || cfg.Server.Burst != 10 {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	// Unset sections keep their defaults.
	if cfg.Telemetry.ServiceName != "flows-aws-api" {
		t.Errorf("ServiceName = %q", cfg.Telemetry.ServiceName)
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("server: [unclosed"), envMap(nil))
	if err == nil || !strings.Contains(err.Error(), "failed to parse config file") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Run("credentials from environment", func(t *testing.T) {
		cfg := Default()
		err := cfg.ApplyEnv(envMap(map[string]string{
			"AWS_ACCESS_KEY_ID":     "AKID",
			"AWS_SECRET_ACCESS_KEY": "secret",
			"AWS_SESSION_TOKEN":     "token",
			"FLOWS_AWS_ENDPOINT":    "http://localstack:4566",
			"FLOWS_RATE_LIMIT":      "2.5",
			"FLOWS_LOG_LEVEL":       "warn",
		}))
		if err != nil {
			t.Fatalf("ApplyEnv: %v", err)
		}
		if cfg.AWS.AccessKeyID != "AKID" || cfg.AWS.SecretAccessKey != "secret" || cfg.AWS.SessionToken != "token" {
			t.Errorf("AWS = %+v", cfg.AWS)
		}
		if cfg.AWS.Endpoint != "http://localstack:4566" {
			t.Errorf("Endpoint = %q", cfg.AWS.Endpoint)
		}
		if cfg.Server.RateLimit != 2.5 {
			t.Errorf("RateLimit = %v", cfg.Server.RateLimit)
		}
		if cfg.Log.Level != "warn" {
			t.Errorf("Level = %q", cfg.Log.Level)
		}
	})

	t.Run("file credentials win", func(t *testing.T) {
		cfg := Default()
		cfg.AWS.AccessKeyID = "FILE"
		cfg.AWS.SecretAccessKey = "file-secret"
		if err := cfg.ApplyEnv(envMap(map[string]string{
			"AWS_ACCESS_KEY_ID":     "ENV",
			"AWS_SECRET_ACCESS_KEY": "env-secret",
		})); err != nil {
			t.Fatalf("ApplyEnv: %v", err)
		}
		if cfg.AWS.AccessKeyID != "FILE" || cfg.AWS.SecretAccessKey != "file-secret" {
			t.Errorf("environment overrode file credentials: %+v", cfg.AWS)
		}
	})

	t.Run("bad rate limit", func(t *testing.T) {
		cfg := Default()
		if err := cfg.ApplyEnv(envMap(map[string]string{"FLOWS_RATE_LIMIT": "fast"})); err == nil {
			t.Fatal("expected error for non-numeric rate limit")
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppConfig)
		want   string
	}{
		{"key without secret", func(c *AppConfig) { c.AWS.AccessKeyID = "AKID" }, "must be set together"},
		{"token without key", func(c *AppConfig) { c.AWS.SessionToken = "tok" }, "sessionToken requires"},
		{"external id without role", func(c *AppConfig) { c.AWS.ExternalID = "ext" }, "externalId requires"},
		{"role not an arn", func(c *AppConfig) { c.AWS.RoleARN = "deployer" }, "not an ARN"},
		{"relative endpoint", func(c *AppConfig) { c.AWS.Endpoint = "localhost:4566" }, "absolute URL"},
		{"negative rate", func(c *AppConfig) { c.Server.RateLimit = -1 }, "rateLimit"},
		{"negative burst", func(c *AppConfig) { c.Server.Burst = -1 }, "burst"},
		{"bad level", func(c *AppConfig) { c.Log.Level = "trace" }, "log.level"},
		{"bad format", func(c *AppConfig) { c.Log.Format = "xml" }, "log.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	fp := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(fp, []byte("server:\n  address: \":7070\"\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(fp)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Address != ":7070" {
		t.Errorf("Address = %q", cfg.Server.Address)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_EnvironmentOnly(t *testing.T) {
	t.Setenv("FLOWS_SERVER_ADDRESS", ":6060")
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Address != ":6060" {
		t.Errorf("Address = %q", cfg.Server.Address)
	}
}

func TestHash(t *testing.T) {
	a := Hash([]byte("a"))
	if len(a) != 64 {
		t.Errorf("expected hex sha256, got %q", a)
	}
	if a == Hash([]byte("b")) {
		t.Error("different input produced the same hash")
	}
}

func TestLogConfig(t *testing.T) {
	levels := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
	}
	for in, want := range levels {
		if got := (LogConfig{Level: in}).SlogLevel(); got != want {
			t.Errorf("SlogLevel(%q) = %v, want %v", in, got, want)
		}
	}

	var buf bytes.Buffer
	LogConfig{Level: "info", Format: "json"}.NewLogger(&buf).Info("hello", "k", "v")
	if !strings.HasPrefix(buf.String(), "{") || !strings.Contains(buf.String(), `"k":"v"`) {
		t.Errorf("expected JSON log line, got %q", buf.String())
	}

	buf.Reset()
	logger := LogConfig{Level: "warn", Format: "text"}.NewLogger(&buf)
	logger.Info("dropped")
	logger.Warn("kept")
	if strings.Contains(buf.String(), "dropped") || !strings.Contains(buf.String(), "msg=kept") {
		t.Errorf("unexpected text output %q", buf.String())
	}
}
