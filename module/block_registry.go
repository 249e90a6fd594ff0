package module

import (
	"errors"
	"fmt"
	"sync"

	"github.com/spacelift-io/flows-app-aws-api/schema"
)

// ErrUnknownBlock is returned when a block type is not registered.
var ErrUnknownBlock = errors.New("unknown block type")

// BlockRegistry maps block type strings to blocks.
type BlockRegistry struct {
	mu      sync.RWMutex
	blocks  map[string]Block
	schemas *schema.Registry
}

// NewBlockRegistry creates an empty BlockRegistry.
func NewBlockRegistry() *BlockRegistry {
	return &BlockRegistry{
		blocks:  make(map[string]Block),
		schemas: schema.NewRegistry(),
	}
}

// Register adds a block. Duplicate types and malformed schemas are rejected.
func (r *BlockRegistry) Register(b Block) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.blocks[b.Type()]; exists {
		return fmt.Errorf("block %q already registered", b.Type())
	}
	if err := r.schemas.Register(b.Schema()); err != nil {
		return fmt.Errorf("block %q: %w", b.Type(), err)
	}
	r.blocks[b.Type()] = b
	return nil
}

// Get returns the block of the given type.
func (r *BlockRegistry) Get(blockType string) (Block, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.blocks[blockType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBlock, blockType)
	}
	return b, nil
}

// Types returns all registered block types, sorted.
func (r *BlockRegistry) Types() []string {
	return r.schemas.Types()
}

// Schemas returns all block schemas ordered by type.
func (r *BlockRegistry) Schemas() []*schema.BlockSchema {
	return r.schemas.All()
}

// Declarations returns the host declarations of all blocks ordered by type.
func (r *BlockRegistry) Declarations() []*schema.BlockDeclaration {
	all := r.schemas.All()
	out := make([]*schema.BlockDeclaration, len(all))
	for i, s := range all {
		out[i] = s.Declaration()
	}
	return out
}

// Len returns the number of registered blocks.
func (r *BlockRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.blocks)
}
