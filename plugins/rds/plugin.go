// Package rds provides the block plugin for Amazon RDS operations.
package rds

import (
	"github.com/aws/aws-sdk-go-v2/service/rds"

	"github.com/spacelift-io/flows-app-aws-api/module"
	"github.com/spacelift-io/flows-app-aws-api/plugin"
)

// Service binds block types to the RDS client.
var Service = module.Service[*rds.Client, rds.Options]{
	Name: "rds",
	New:  rds.NewFromConfig,
}

// Plugin registers the RDS blocks.
type Plugin struct {
	plugin.BasePlugin
}

// New creates a new RDS plugin.
func New() *Plugin {
	blocks := Blocks()
	types := make([]string, len(blocks))
	for i, b := range blocks {
		types[i] = b.Type()
	}
	return &Plugin{
		BasePlugin: plugin.BasePlugin{
			PluginName:        "rds",
			PluginVersion:     "1.0.0",
			PluginDescription: "Amazon RDS instances, clusters and snapshots",
			Manifest: plugin.PluginManifest{
				Name:        "rds",
				Version:     "1.0.0",
				Author:      "Spacelift",
				Description: "Blocks for Amazon RDS: DB instances, Aurora clusters, snapshots, engine versions and tags.",
				Service:     Service.Name,
				BlockTypes:  types,
				Tags:        []string{"aws", "database"},
			},
		},
	}
}

// Blocks returns the RDS blocks.
func (p *Plugin) Blocks() []module.Block { return Blocks() }
