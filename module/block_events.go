package module

import (
	"context"
	"time"

	"github.com/GoCodeAlone/modular"
	"github.com/GoCodeAlone/modular/modules/eventbus/v2"
)

// EventBusService is the service name the eventbus module registers under.
const EventBusService = "eventbus.provider"

// Lifecycle states of one invocation.
const (
	LifecycleInvoked   = "invoked"
	LifecycleSucceeded = "succeeded"
	LifecycleFailed    = "failed"
)

// BlockTopic returns the event bus topic for a block lifecycle event.
// Format: "block.<blockType>.<lifecycle>"
func BlockTopic(blockType, lifecycle string) string {
	return "block." + blockType + "." + lifecycle
}

// BlockLifecycleEvent is the payload published for invocation lifecycle
// events.
type BlockLifecycleEvent struct {
	BlockType    string         `json:"blockType"`
	InvocationID string         `json:"invocationId"`
	Region       string         `json:"region,omitempty"`
	Status       string         `json:"status"`
	Timestamp    time.Time      `json:"timestamp"`
	Duration     time.Duration  `json:"duration,omitempty"`
	Output       map[string]any `json:"output,omitempty"`
	Error        string         `json:"error,omitempty"`
}

// BlockEventPublisher publishes invocation lifecycle events to the EventBus.
// A publisher without an EventBus (or a nil publisher) drops every event.
type BlockEventPublisher struct {
	eventBus *eventbus.EventBusModule
}

// NewBlockEventPublisher resolves the "eventbus.provider" service from app.
func NewBlockEventPublisher(app modular.Application) *BlockEventPublisher {
	p := &BlockEventPublisher{}
	var eb *eventbus.EventBusModule
	if err := app.GetService(EventBusService, &eb); err == nil && eb != nil {
		p.eventBus = eb
	}
	return p
}

// Enabled reports whether events reach an EventBus.
func (p *BlockEventPublisher) Enabled() bool { return p != nil && p.eventBus != nil }

// Invoked publishes the start of an invocation.
func (p *BlockEventPublisher) Invoked(ctx context.Context, blockType, id, region string) {
	p.publish(ctx, BlockLifecycleEvent{
		BlockType:    blockType,
		InvocationID: id,
		Region:       region,
		Status:       LifecycleInvoked,
	})
}

// Succeeded publishes a completed invocation with its default output.
func (p *BlockEventPublisher) Succeeded(ctx context.Context, blockType, id, region string, d time.Duration, output map[string]any) {
	p.publish(ctx, BlockLifecycleEvent{
		BlockType:    blockType,
		InvocationID: id,
		Region:       region,
		Status:       LifecycleSucceeded,
		Duration:     d,
		Output:       output,
	})
}

// Failed publishes a failed invocation.
func (p *BlockEventPublisher) Failed(ctx context.Context, blockType, id, region string, d time.Duration, err error) {
	ev := BlockLifecycleEvent{
		BlockType:    blockType,
		InvocationID: id,
		Region:       region,
		Status:       LifecycleFailed,
		Duration:     d,
	}
	if err != nil {
		ev.Error = err.Error()
	}
	p.publish(ctx, ev)
}

func (p *BlockEventPublisher) publish(ctx context.Context, ev BlockLifecycleEvent) {
	if !p.Enabled() {
		return
	}
	ev.Timestamp = time.Now()
	_ = p.eventBus.Publish(ctx, BlockTopic(ev.BlockType, ev.Status), ev)
}
