package module

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/GoCodeAlone/modular"
	"github.com/GoCodeAlone/modular/modules/eventbus/v2"
)

// setupEventBus starts an in-memory EventBusModule and registers it on a
// test application under "eventbus.provider".
func setupEventBus(t *testing.T) (modular.Application, *eventbus.EventBusModule) {
	t.Helper()

	ebModule := eventbus.NewModule().(*eventbus.EventBusModule)

	busApp := modular.NewStdApplication(modular.NewStdConfigProvider(nil), nopLogger{})
	busApp.RegisterConfigSection("eventbus", modular.NewStdConfigProvider(&eventbus.EventBusConfig{
		Engine:                 "memory",
		MaxEventQueueSize:      1000,
		DefaultEventBufferSize: 10,
		WorkerCount:            5,
		EventTTL:               time.Hour,
		RetentionDays:          7,
	}))
	if err := ebModule.Init(busApp); err != nil {
		t.Fatalf("eventbus Init: %v", err)
	}
	if err := ebModule.Start(context.Background()); err != nil {
		t.Fatalf("eventbus Start: %v", err)
	}
	t.Cleanup(func() { _ = ebModule.Stop(context.Background()) })

	app := newTestApp(t)
	if err := app.RegisterService(EventBusService, ebModule); err != nil {
		t.Fatalf("RegisterService: %v", err)
	}
	return app, ebModule
}

// received counts events delivered to a subscription.
type received struct {
	mu     sync.Mutex
	events []eventbus.Event
}

func (r *received) handler(_ context.Context, ev eventbus.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *received) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func subscribe(t *testing.T, eb *eventbus.EventBusModule, topic string) *received {
	t.Helper()
	r := &received{}
	sub, err := eb.Subscribe(context.Background(), topic, r.handler)
	if err != nil {
		t.Fatalf("Subscribe(%s): %v", topic, err)
	}
	t.Cleanup(func() { _ = sub.Cancel() })
	return r
}

// waitForEvents polls until r has seen n events or a second has passed.
func waitForEvents(r *received, n int) int {
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) && r.len() < n {
		time.Sleep(10 * time.Millisecond)
	}
	return r.len()
}

func TestBlockTopic(t *testing.T) {
	tests := []struct {
		blockType, lifecycle, want string
	}{
		{"ec2.describeInstances", LifecycleInvoked, "block.ec2.describeInstances.invoked"},
		{"kms.encrypt", LifecycleSucceeded, "block.kms.encrypt.succeeded"},
		{"rds.createDBInstance", LifecycleFailed, "block.rds.createDBInstance.failed"},
	}
	for _, tc := range tests {
		if got := BlockTopic(tc.blockType, tc.lifecycle); got != tc.want {
			t.Errorf("BlockTopic(%q, %q) = %q; want %q", tc.blockType, tc.lifecycle, got, tc.want)
		}
	}
}

func TestBlockLifecycleEvent_JSON(t *testing.T) {
	data, err := json.Marshal(BlockLifecycleEvent{
		BlockType:    "kms.encrypt",
		InvocationID: "inv-1",
		Status:       LifecycleFailed,
		Error:        "AccessDeniedException",
	})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if m["blockType"] != "kms.encrypt" || m["invocationId"] != "inv-1" || m["error"] != "AccessDeniedException" {
		t.Errorf("unexpected encoding %s", data)
	}
	if _, ok := m["output"]; ok {
		t.Errorf("empty output should be omitted: %s", data)
	}
}

func TestBlockEventPublisher_NoEventBus(t *testing.T) {
	p := NewBlockEventPublisher(newTestApp(t))
	if p.Enabled() {
		t.Fatal("publisher without an eventbus should be disabled")
	}

	ctx := context.Background()
	p.Invoked(ctx, "fake.echo", "id", "us-east-1")
	p.Succeeded(ctx, "fake.echo", "id", "us-east-1", time.Second, nil)
	p.Failed(ctx, "fake.echo", "id", "us-east-1", time.Second, errors.New("boom"))

	var nilPublisher *BlockEventPublisher
	nilPublisher.Invoked(ctx, "fake.echo", "id", "us-east-1")
}

func TestInvoker_PublishesSuccessLifecycle(t *testing.T) {
	app, eb := setupEventBus(t)
	invoked := subscribe(t, eb, BlockTopic("fake.echo", LifecycleInvoked))
	succeeded := subscribe(t, eb, BlockTopic("fake.echo", LifecycleSucceeded))
	failed := subscribe(t, eb, BlockTopic("fake.echo", LifecycleFailed))

	iv, _, _ := newTestInvoker(t, newFakeBlock("fake.echo"))
	iv.events = NewBlockEventPublisher(app)
	if !iv.events.Enabled() {
		t.Fatal("publisher should resolve the eventbus service")
	}

	if _, err := iv.Invoke(context.Background(), "fake.echo", map[string]any{"region": "us-east-1"}); err != nil {
		t.Fatalf("Invoke: %v", err)
	}

	if n := waitForEvents(invoked, 1); n != 1 {
		t.Errorf("expected 1 invoked event, got %d", n)
	}
	if n := waitForEvents(succeeded, 1); n != 1 {
		t.Errorf("expected 1 succeeded event, got %d", n)
	}
	if failed.len() != 0 {
		t.Errorf("expected no failed events, got %d", failed.len())
	}
}

func TestInvoker_PublishesFailureLifecycle(t *testing.T) {
	app, eb := setupEventBus(t)
	succeeded := subscribe(t, eb, BlockTopic("fake.fail", LifecycleSucceeded))
	failed := subscribe(t, eb, BlockTopic("fake.fail", LifecycleFailed))

	block := newFakeBlock("fake.fail")
	block.execute = func(context.Context, *Invocation) error { return errors.New("upstream down") }

	reg := NewBlockRegistry()
	if err := reg.Register(block); err != nil {
		t.Fatalf("Register: %v", err)
	}
	iv := NewInvoker(reg, StaticClientConfig(staticTestClient()), WithEventPublisher(NewBlockEventPublisher(app)))

	if _, err := iv.Invoke(context.Background(), "fake.fail", map[string]any{"region": "us-east-1"}); err == nil {
		t.Fatal("expected invocation error")
	}

	if n := waitForEvents(failed, 1); n != 1 {
		t.Errorf("expected 1 failed event, got %d", n)
	}
	if succeeded.len() != 0 {
		t.Errorf("expected no succeeded events, got %d", succeeded.len())
	}
}

func TestInvoker_RejectedInputPublishesNothing(t *testing.T) {
	app, eb := setupEventBus(t)
	invoked := subscribe(t, eb, BlockTopic("fake.echo", LifecycleInvoked))

	iv, _, _ := newTestInvoker(t, newFakeBlock("fake.echo"))
	iv.events = NewBlockEventPublisher(app)

	if _, err := iv.Invoke(context.Background(), "fake.echo", map[string]any{}); err == nil {
		t.Fatal("expected validation error")
	}
	time.Sleep(50 * time.Millisecond)
	if invoked.len() != 0 {
		t.Errorf("validation failures must not enter the lifecycle, got %d events", invoked.len())
	}
}

func TestBlockHost_StartWiresEventBus(t *testing.T) {
	app, eb := setupEventBus(t)
	invoked := subscribe(t, eb, BlockTopic("fake.echo", LifecycleInvoked))

	iv, _, _ := newTestInvoker(t, newFakeBlock("fake.echo"))
	h := NewBlockHost("block-host", "127.0.0.1:0", iv)
	if err := h.Init(app); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := h.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { _ = h.Stop(context.Background()) })

	if !iv.events.Enabled() {
		t.Fatal("Start should attach the eventbus publisher to the invoker")
	}
	if _, err := iv.Invoke(context.Background(), "fake.echo", map[string]any{"region": "eu-west-1"}); err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if n := waitForEvents(invoked, 1); n != 1 {
		t.Errorf("expected 1 invoked event, got %d", n)
	}
}
