// Package ec2 provides the block plugin for Amazon EC2 operations.
package ec2

import (
	"github.com/aws/aws-sdk-go-v2/service/ec2"

	"github.com/spacelift-io/flows-app-aws-api/module"
	"github.com/spacelift-io/flows-app-aws-api/plugin"
)

// Service binds block types to the EC2 client.
var Service = module.Service[*ec2.Client, ec2.Options]{
	Name: "ec2",
	New:  ec2.NewFromConfig,
}

// Plugin registers the EC2 blocks.
type Plugin struct {
	plugin.BasePlugin
}

// New creates a new EC2 plugin.
func New() *Plugin {
	blocks := Blocks()
	types := make([]string, len(blocks))
	for i, b := range blocks {
		types[i] = b.Type()
	}
	return &Plugin{
		BasePlugin: plugin.BasePlugin{
			PluginName:        "ec2",
			PluginVersion:     "1.0.0",
			PluginDescription: "Amazon EC2 instances, images, volumes and networking",
			Manifest: plugin.PluginManifest{
				Name:        "ec2",
				Version:     "1.0.0",
				Author:      "Spacelift",
				Description: "Blocks for Amazon EC2: instances, AMIs, EBS volumes, snapshots, security groups, VPCs and tags.",
				Service:     Service.Name,
				BlockTypes:  types,
				Tags:        []string{"aws", "compute"},
			},
		},
	}
}

// Blocks returns the EC2 blocks.
func (p *Plugin) Blocks() []module.Block { return Blocks() }
