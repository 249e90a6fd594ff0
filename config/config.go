package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AWSConfig holds the app-level credentials shared by every block invocation.
type AWSConfig struct {
	AccessKeyID     string `json:"accessKeyId,omitempty" yaml:"accessKeyId,omitempty"`
	SecretAccessKey string `json:"secretAccessKey,omitempty" yaml:"secretAccessKey,omitempty"`
	SessionToken    string `json:"sessionToken,omitempty" yaml:"sessionToken,omitempty"`
	// RoleARN, when set, is assumed via STS on top of the base credentials.
	RoleARN    string `json:"roleArn,omitempty" yaml:"roleArn,omitempty"`
	ExternalID string `json:"externalId,omitempty" yaml:"externalId,omitempty"`
	// Endpoint replaces the default regional endpoint for every block
	// (e.g. a LocalStack URL).
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
}

// ServerConfig configures the HTTP block host.
type ServerConfig struct {
	Address   string  `json:"address" yaml:"address"`
	RateLimit float64 `json:"rateLimit,omitempty" yaml:"rateLimit,omitempty"` // invocations per second, 0 = unlimited
	Burst     int     `json:"burst,omitempty" yaml:"burst,omitempty"`
}

// LogConfig configures the slog handler built in main.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`   // debug, info, warn, error
	Format string `json:"format" yaml:"format"` // text or json
}

// TelemetryConfig configures tracing and metrics.
type TelemetryConfig struct {
	OTLPEndpoint     string `json:"otlpEndpoint,omitempty" yaml:"otlpEndpoint,omitempty"`
	ServiceName      string `json:"serviceName" yaml:"serviceName"`
	MetricsNamespace string `json:"metricsNamespace" yaml:"metricsNamespace"`
}

// AppConfig is the full application configuration.
type AppConfig struct {
	AWS       AWSConfig       `json:"aws" yaml:"aws"`
	Server    ServerConfig    `json:"server" yaml:"server"`
	Log       LogConfig       `json:"log" yaml:"log"`
	Telemetry TelemetryConfig `json:"telemetry" yaml:"telemetry"`
}

// Default returns the configuration used when no file is given.
func Default() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{Address: ":8080"},
		Log:    LogConfig{Level: "info", Format: "text"},
		Telemetry: TelemetryConfig{
			ServiceName:      "flows-aws-api",
			MetricsNamespace: "flows",
		},
	}
}

// Load returns the configuration from path, or the defaults with
// environment overrides applied when path is empty.
func Load(path string) (*AppConfig, error) {
	if path != "" {
		return LoadFromFile(path)
	}
	cfg := Default()
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile reads a YAML config file, expands ${VAR} references, applies
// environment overrides and validates the result.
func LoadFromFile(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data, os.LookupEnv)
}

// Parse decodes YAML config bytes. lookup resolves ${VAR} references and
// environment overrides; pass os.LookupEnv in production.
func Parse(data []byte, lookup func(string) (string, bool)) (*AppConfig, error) {
	expanded := os.Expand(string(data), func(key string) string {
		v, _ := lookup(key)
		return v
	})

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides config values from the environment. The standard AWS_*
// credential variables fill in credentials only when the file sets none, so
// a file never mixes its key id with a secret from the shell.
func (c *AppConfig) ApplyEnv(lookup func(string) (string, bool)) error {
	if c.AWS.AccessKeyID == "" && c.AWS.SecretAccessKey == "" {
		if v, ok := lookup("AWS_ACCESS_KEY_ID"); ok {
			c.AWS.AccessKeyID = v
			c.AWS.SecretAccessKey, _ = lookup("AWS_SECRET_ACCESS_KEY")
			c.AWS.SessionToken, _ = lookup("AWS_SESSION_TOKEN")
		}
	}
	if v, ok := lookup("FLOWS_AWS_ENDPOINT"); ok {
		c.AWS.Endpoint = v
	}
	if v, ok := lookup("FLOWS_SERVER_ADDRESS"); ok && v != "" {
		c.Server.Address = v
	}
	if v, ok := lookup("FLOWS_RATE_LIMIT"); ok && v != "" {
		rl, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("FLOWS_RATE_LIMIT: %w", err)
		}
		c.Server.RateLimit = rl
	}
	if v, ok := lookup("FLOWS_LOG_LEVEL"); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup("OTEL_EXPORTER_OTLP_ENDPOINT"); ok && c.Telemetry.OTLPEndpoint == "" {
		c.Telemetry.OTLPEndpoint = v
	}
	return nil
}

// Validate checks the configuration for obvious mistakes.
func (c *AppConfig) Validate() error {
	var problems []string
	if (c.AWS.AccessKeyID == "") != (c.AWS.SecretAccessKey == "") {
		problems = append(problems, "aws.accessKeyId and aws.secretAccessKey must be set together")
	}
	if c.AWS.SessionToken != "" && c.AWS.AccessKeyID == "" {
		problems = append(problems, "aws.sessionToken requires aws.accessKeyId")
	}
	if c.AWS.ExternalID != "" && c.AWS.RoleARN == "" {
		problems = append(problems, "aws.externalId requires aws.roleArn")
	}
	if c.AWS.RoleARN != "" && !strings.HasPrefix(c.AWS.RoleARN, "arn:") {
		problems = append(problems, fmt.Sprintf("aws.roleArn %q is not an ARN", c.AWS.RoleARN))
	}
	if c.AWS.Endpoint != "" {
		u, err := url.Parse(c.AWS.Endpoint)
		if err != nil || u.Scheme == "" || u.Host == "" {
			problems = append(problems, fmt.Sprintf("aws.endpoint %q must be an absolute URL", c.AWS.Endpoint))
		}
	}
	if c.Server.RateLimit < 0 {
		problems = append(problems, "server.rateLimit must not be negative")
	}
	if c.Server.Burst < 0 {
		problems = append(problems, "server.burst must not be negative")
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("log.format %q is not one of text, json", c.Log.Format))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Hash returns a SHA-256 hex digest of raw config bytes.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
