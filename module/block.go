package module

import (
	"context"
	"maps"

	"github.com/spacelift-io/flows-app-aws-api/schema"
)

// DefaultChannel is the output channel every block emits on.
const DefaultChannel = "default"

// Block is a single operation adapter: a declared schema plus an Execute
// step that performs one upstream call and emits its response.
type Block interface {
	// Type returns the block's unique type identifier.
	Type() string

	// Schema returns the static input/output descriptor.
	Schema() *schema.BlockSchema

	// Execute runs one invocation. On success it emits exactly one event on
	// DefaultChannel; on failure it returns the upstream error.
	Execute(ctx context.Context, inv *Invocation) error
}

// Emitter receives events produced by a block.
type Emitter interface {
	Emit(ctx context.Context, channel string, payload map[string]any) error
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc func(ctx context.Context, channel string, payload map[string]any) error

// Emit calls f.
func (f EmitterFunc) Emit(ctx context.Context, channel string, payload map[string]any) error {
	return f(ctx, channel, payload)
}

// Invocation is one event delivered to a block by the host.
type Invocation struct {
	ID          string
	InputConfig map[string]any
	Client      ClientConfig
	Emitter     Emitter
}

// SplitRegion separates the region from the remaining command parameters.
// The input map is not modified.
func SplitRegion(input map[string]any) (string, map[string]any) {
	params := maps.Clone(input)
	if params == nil {
		params = map[string]any{}
	}
	region, _ := params[schema.RegionKey].(string)
	delete(params, schema.RegionKey)
	return region, params
}
