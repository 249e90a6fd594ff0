package plugin

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/mod/semver"
)

// PluginManifest describes a block plugin and the block types it provides.
type PluginManifest struct {
	Name        string   `json:"name" yaml:"name"`
	Version     string   `json:"version" yaml:"version"`
	Author      string   `json:"author" yaml:"author"`
	Description string   `json:"description" yaml:"description"`
	Service     string   `json:"service" yaml:"service"`
	BlockTypes  []string `json:"blockTypes" yaml:"blockTypes"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Validate checks that a manifest has all required fields and valid semver.
func (m *PluginManifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("manifest: name is required")
	}
	if !isValidPluginName(m.Name) {
		return fmt.Errorf("manifest: name %q must be lowercase alphanumeric with hyphens", m.Name)
	}
	if m.Version == "" {
		return fmt.Errorf("manifest: version is required")
	}
	if canonicalVersion(m.Version) == "" {
		return fmt.Errorf("manifest: invalid version %q: expected major.minor.patch", m.Version)
	}
	if m.Author == "" {
		return fmt.Errorf("manifest: author is required")
	}
	if m.Description == "" {
		return fmt.Errorf("manifest: description is required")
	}
	if m.Service == "" {
		return fmt.Errorf("manifest: service is required")
	}
	seen := make(map[string]bool, len(m.BlockTypes))
	for _, t := range m.BlockTypes {
		if !strings.HasPrefix(t, m.Service+".") {
			return fmt.Errorf("manifest: block type %q is outside service %q", t, m.Service)
		}
		if seen[t] {
			return fmt.Errorf("manifest: block type %q listed twice", t)
		}
		seen[t] = true
	}
	return nil
}

var pluginNameRe = regexp.MustCompile(`^[a-z][a-z0-9-]*[a-z0-9]$`)

func isValidPluginName(name string) bool {
	if len(name) < 2 {
		return len(name) == 1 && name[0] >= 'a' && name[0] <= 'z'
	}
	return pluginNameRe.MatchString(name)
}

// canonicalVersion returns v with a "v" prefix, or "" unless v is a full
// major.minor.patch version.
func canonicalVersion(v string) string {
	v = "v" + strings.TrimPrefix(v, "v")
	if !semver.IsValid(v) || semver.Canonical(v) != strings.SplitN(v, "+", 2)[0] {
		return ""
	}
	return v
}
