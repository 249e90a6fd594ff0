package plugin

import (
	"fmt"

	"github.com/spacelift-io/flows-app-aws-api/module"
)

// BlockPlugin contributes a set of blocks for one AWS service.
type BlockPlugin interface {
	Name() string
	Version() string
	Description() string

	// BlockManifest returns the plugin manifest.
	BlockManifest() *PluginManifest

	// Blocks returns the blocks this plugin provides. The slice is freshly
	// built on each call.
	Blocks() []module.Block
}

// BasePlugin provides the metadata half of BlockPlugin. Embed it in concrete
// plugins and implement Blocks.
type BasePlugin struct {
	PluginName        string
	PluginVersion     string
	PluginDescription string
	Manifest          PluginManifest
}

func (b *BasePlugin) Name() string        { return b.PluginName }
func (b *BasePlugin) Version() string     { return b.PluginVersion }
func (b *BasePlugin) Description() string { return b.PluginDescription }

// BlockManifest returns the plugin manifest.
func (b *BasePlugin) BlockManifest() *PluginManifest { return &b.Manifest }

// Load validates p's manifest and registers each of its blocks. Every block
// type must be listed in the manifest and belong to the manifest's service.
func Load(reg *module.BlockRegistry, p BlockPlugin) error {
	m := p.BlockManifest()
	if err := m.Validate(); err != nil {
		return fmt.Errorf("plugin %s: %w", p.Name(), err)
	}
	declared := make(map[string]bool, len(m.BlockTypes))
	for _, t := range m.BlockTypes {
		declared[t] = true
	}
	for _, b := range p.Blocks() {
		if !declared[b.Type()] {
			return fmt.Errorf("plugin %s: block %q not declared in manifest", p.Name(), b.Type())
		}
		if svc := b.Schema().Service; svc != m.Service {
			return fmt.Errorf("plugin %s: block %q belongs to service %q", p.Name(), b.Type(), svc)
		}
		if err := reg.Register(b); err != nil {
			return fmt.Errorf("plugin %s: %w", p.Name(), err)
		}
	}
	return nil
}
