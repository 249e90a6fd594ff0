// Package kms provides the block plugin for AWS Key Management Service
// operations.
package kms

import (
	"github.com/aws/aws-sdk-go-v2/service/kms"

	"github.com/spacelift-io/flows-app-aws-api/module"
	"github.com/spacelift-io/flows-app-aws-api/plugin"
)

// Service binds block types to the KMS client.
var Service = module.Service[*kms.Client, kms.Options]{
	Name: "kms",
	New:  kms.NewFromConfig,
}

// Plugin registers the KMS blocks.
type Plugin struct {
	plugin.BasePlugin
}

// New creates a new KMS plugin.
func New() *Plugin {
	blocks := Blocks()
	types := make([]string, len(blocks))
	for i, b := range blocks {
		types[i] = b.Type()
	}
	return &Plugin{
		BasePlugin: plugin.BasePlugin{
			PluginName:        "kms",
			PluginVersion:     "1.0.0",
			PluginDescription: "AWS KMS key management and cryptographic operations",
			Manifest: plugin.PluginManifest{
				Name:        "kms",
				Version:     "1.0.0",
				Author:      "Spacelift",
				Description: "Blocks for AWS Key Management Service: keys, aliases, encryption and signing.",
				Service:     Service.Name,
				BlockTypes:  types,
				Tags:        []string{"aws", "security", "encryption"},
			},
		},
	}
}

// Blocks returns the KMS blocks.
func (p *Plugin) Blocks() []module.Block { return Blocks() }
