package module

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/spacelift-io/flows-app-aws-api/config"
)

// roleSessionName identifies sessions created by AssumeRole.
const roleSessionName = "flows-aws-api"

// ClientConfig carries the app-level credentials and endpoint override used
// to build SDK clients. It is passed to blocks explicitly and never mutated
// by them.
type ClientConfig struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Endpoint        string

	// RoleARN is assumed on top of the base credentials when set.
	RoleARN    string
	ExternalID string

	// HTTPClient replaces the SDK's default transport when set.
	HTTPClient aws.HTTPClient
}

// ClientConfigFromApp converts the app config credentials section.
func ClientConfigFromApp(c config.AWSConfig) ClientConfig {
	return ClientConfig{
		AccessKeyID:     c.AccessKeyID,
		SecretAccessKey: c.SecretAccessKey,
		SessionToken:    c.SessionToken,
		Endpoint:        c.Endpoint,
		RoleARN:         c.RoleARN,
		ExternalID:      c.ExternalID,
	}
}

// HasStaticCredentials reports whether an access key pair is configured.
func (c ClientConfig) HasStaticCredentials() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// AWSConfig builds an aws.Config bound to region. With static credentials
// the config is assembled directly so no shared config files or environment
// are consulted; otherwise the SDK default chain resolves credentials. A
// configured RoleARN is then assumed through STS.
func (c ClientConfig) AWSConfig(ctx context.Context, region string) (aws.Config, error) {
	cfg, err := c.baseConfig(ctx, region)
	if err != nil {
		return aws.Config{}, err
	}
	if c.RoleARN != "" {
		provider := stscreds.NewAssumeRoleProvider(sts.NewFromConfig(cfg), c.RoleARN,
			func(o *stscreds.AssumeRoleOptions) {
				o.RoleSessionName = roleSessionName
				if c.ExternalID != "" {
					o.ExternalID = aws.String(c.ExternalID)
				}
			})
		cfg.Credentials = aws.NewCredentialsCache(provider)
	}
	return cfg, nil
}

func (c ClientConfig) baseConfig(ctx context.Context, region string) (aws.Config, error) {
	if c.HasStaticCredentials() {
		cfg := aws.Config{
			Region: region,
			Credentials: aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(c.AccessKeyID, c.SecretAccessKey, c.SessionToken),
			),
		}
		if c.HTTPClient != nil {
			cfg.HTTPClient = c.HTTPClient
		}
		if c.Endpoint != "" {
			cfg.BaseEndpoint = aws.String(c.Endpoint)
		}
		return cfg, nil
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if c.HTTPClient != nil {
		opts = append(opts, awsconfig.WithHTTPClient(c.HTTPClient))
	}
	if c.Endpoint != "" {
		opts = append(opts, awsconfig.WithBaseEndpoint(c.Endpoint))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return cfg, nil
}

// ClientConfigSource supplies the current client configuration.
type ClientConfigSource interface {
	ClientConfig() ClientConfig
}

// StaticClientConfig is a ClientConfigSource that never changes.
type StaticClientConfig ClientConfig

// ClientConfig returns the wrapped configuration.
func (s StaticClientConfig) ClientConfig() ClientConfig { return ClientConfig(s) }

// ClientConfigStore is a ClientConfigSource that can be swapped at runtime,
// e.g. when the config file is reloaded.
type ClientConfigStore struct {
	mu  sync.RWMutex
	cfg ClientConfig
}

// NewClientConfigStore creates a store holding cfg.
func NewClientConfigStore(cfg ClientConfig) *ClientConfigStore {
	return &ClientConfigStore{cfg: cfg}
}

// ClientConfig returns the current configuration.
func (s *ClientConfigStore) ClientConfig() ClientConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Set replaces the configuration. In-flight invocations keep the value they
// started with.
func (s *ClientConfigStore) Set(cfg ClientConfig) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
}
