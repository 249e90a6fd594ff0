// Package all provides a single import point for all built-in block plugins.
// Hosts call [LoadAll] to register every standard plugin in one step instead
// of importing and wiring each service package individually.
//
//	reg := module.NewBlockRegistry()
//	if err := all.LoadAll(reg); err != nil {
//	    log.Fatalf("failed to load plugins: %v", err)
//	}
//
// For finer control (e.g. to skip a service), use [DefaultPlugins] and load
// the slice with plugin.Load.
package all

import (
	"github.com/spacelift-io/flows-app-aws-api/module"
	"github.com/spacelift-io/flows-app-aws-api/plugin"
	pluginec2 "github.com/spacelift-io/flows-app-aws-api/plugins/ec2"
	pluginkms "github.com/spacelift-io/flows-app-aws-api/plugins/kms"
	pluginrds "github.com/spacelift-io/flows-app-aws-api/plugins/rds"
)

// DefaultPlugins returns the standard set of built-in block plugins.
// The slice is freshly allocated on each call so callers may safely append
// custom plugins without affecting other callers.
func DefaultPlugins() []plugin.BlockPlugin {
	return []plugin.BlockPlugin{
		pluginec2.New(),
		pluginkms.New(),
		pluginrds.New(),
	}
}

// LoadAll registers every block of every default plugin in reg. The first
// error encountered is returned immediately.
func LoadAll(reg *module.BlockRegistry) error {
	for _, p := range DefaultPlugins() {
		if err := plugin.Load(reg, p); err != nil {
			return err
		}
	}
	return nil
}
