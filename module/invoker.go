package module

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/GoCodeAlone/modular"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/spacelift-io/flows-app-aws-api/schema"
)

const tracerName = "github.com/spacelift-io/flows-app-aws-api/module"

// InvocationError wraps a failed block execution with its identity.
type InvocationError struct {
	BlockType    string
	InvocationID string
	Err          error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("block %s (invocation %s): %v", e.BlockType, e.InvocationID, e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }

// EmittedEvent is one event captured from a block.
type EmittedEvent struct {
	Channel string         `json:"channel"`
	Payload map[string]any `json:"payload"`
}

// InvocationResult is the outcome of a successful invocation.
type InvocationResult struct {
	ID     string         `json:"invocationId"`
	Events []EmittedEvent `json:"events"`
}

// Output returns the payload emitted on the default channel, or nil.
func (r *InvocationResult) Output() map[string]any {
	for _, ev := range r.Events {
		if ev.Channel == DefaultChannel {
			return ev.Payload
		}
	}
	return nil
}

// InvokerOption configures an Invoker.
type InvokerOption func(*Invoker)

// WithInvokerLogger sets the logger.
func WithInvokerLogger(l modular.Logger) InvokerOption {
	return func(iv *Invoker) { iv.logger = l }
}

// WithInvokerMetrics records invocations on mc.
func WithInvokerMetrics(mc *MetricsCollector) InvokerOption {
	return func(iv *Invoker) { iv.metrics = mc }
}

// WithTracerProvider sets the provider used for invocation spans. Defaults
// to the global provider.
func WithTracerProvider(tp trace.TracerProvider) InvokerOption {
	return func(iv *Invoker) { iv.tracer = tp.Tracer(tracerName) }
}

// WithEventPublisher publishes invocation lifecycle events through p.
func WithEventPublisher(p *BlockEventPublisher) InvokerOption {
	return func(iv *Invoker) { iv.events = p }
}

// Invoker is the host-side invocation layer: it validates the input against
// the block schema, runs the block once and collects what it emits.
type Invoker struct {
	registry *BlockRegistry
	clients  ClientConfigSource
	logger   modular.Logger
	metrics  *MetricsCollector
	tracer   trace.Tracer
	events   *BlockEventPublisher
}

// NewInvoker creates an Invoker over registry using credentials from clients.
func NewInvoker(registry *BlockRegistry, clients ClientConfigSource, opts ...InvokerOption) *Invoker {
	iv := &Invoker{
		registry: registry,
		clients:  clients,
		logger:   nopLogger{},
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(iv)
	}
	if iv.metrics != nil {
		iv.metrics.RegisteredBlocks.Set(float64(registry.Len()))
	}
	return iv
}

// Registry returns the block registry.
func (iv *Invoker) Registry() *BlockRegistry { return iv.registry }

// Invoke runs the block of the given type with input. Validation failures
// are returned as schema.ValidationErrors before any upstream call is made;
// block failures are returned as *InvocationError.
func (iv *Invoker) Invoke(ctx context.Context, blockType string, input map[string]any) (*InvocationResult, error) {
	block, err := iv.registry.Get(blockType)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	region, _ := input[schema.RegionKey].(string)

	ctx, span := iv.tracer.Start(ctx, "block.invoke", trace.WithAttributes(
		attribute.String("block.type", blockType),
		attribute.String("invocation.id", id),
		attribute.String("aws.region", region),
	))
	defer span.End()

	start := time.Now()
	if err := schema.ValidateInput(block.Schema(), input); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid input")
		iv.record(blockType, StatusInvalid, start)
		iv.logger.Debug("block input rejected", "block", blockType, "invocation", id, "error", err)
		return nil, err
	}

	result := &InvocationResult{ID: id, Events: []EmittedEvent{}}
	var mu sync.Mutex
	inv := &Invocation{
		ID:          id,
		InputConfig: input,
		Client:      iv.clients.ClientConfig(),
		Emitter: EmitterFunc(func(_ context.Context, channel string, payload map[string]any) error {
			mu.Lock()
			result.Events = append(result.Events, EmittedEvent{Channel: channel, Payload: payload})
			mu.Unlock()
			return nil
		}),
	}

	iv.logger.Debug("invoking block", "block", blockType, "invocation", id, "region", region)
	iv.events.Invoked(ctx, blockType, id, region)
	if err := block.Execute(ctx, inv); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "block failed")
		iv.record(blockType, StatusError, start)
		iv.events.Failed(ctx, blockType, id, region, time.Since(start), err)
		iv.logger.Warn("block invocation failed", "block", blockType, "invocation", id, "error", err)
		return nil, &InvocationError{BlockType: blockType, InvocationID: id, Err: err}
	}

	iv.record(blockType, StatusSuccess, start)
	iv.events.Succeeded(ctx, blockType, id, region, time.Since(start), result.Output())
	iv.logger.Debug("block invocation succeeded", "block", blockType, "invocation", id, "duration", time.Since(start))
	return result, nil
}

func (iv *Invoker) record(blockType, status string, start time.Time) {
	if iv.metrics != nil {
		iv.metrics.RecordInvocation(blockType, status, time.Since(start))
	}
}

// IsValidationError reports whether err came from input validation.
func IsValidationError(err error) bool {
	var ves schema.ValidationErrors
	var ve *schema.ValidationError
	return errors.As(err, &ves) || errors.As(err, &ve)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}
