package module

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/GoCodeAlone/modular"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

// BlockHost serves the block API, metrics and health endpoints. It
// implements modular.Module.
type BlockHost struct {
	name    string
	address string
	api     *BlockAPI
	metrics *MetricsCollector
	logger  modular.Logger
	app     modular.Application

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
}

// HostOption configures a BlockHost.
type HostOption func(*BlockHost)

// WithRateLimit limits invocations to rps per second with the given burst.
// A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) HostOption {
	return func(h *BlockHost) {
		if rps <= 0 {
			return
		}
		if burst < 1 {
			burst = 1
		}
		h.api.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithHostMetrics exposes mc on /metrics.
func WithHostMetrics(mc *MetricsCollector) HostOption {
	return func(h *BlockHost) { h.metrics = mc }
}

// NewBlockHost creates a host listening on address.
func NewBlockHost(name, address string, invoker *Invoker, opts ...HostOption) *BlockHost {
	h := &BlockHost{
		name:    name,
		address: address,
		api:     NewBlockAPI(invoker, nil),
		logger:  nopLogger{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Name returns the module name.
func (h *BlockHost) Name() string { return h.name }

// Init picks up the application logger.
func (h *BlockHost) Init(app modular.Application) error {
	h.app = app
	h.logger = app.Logger()
	return nil
}

// Handler builds the routed, instrumented handler.
func (h *BlockHost) Handler() http.Handler {
	mux := http.NewServeMux()
	h.api.RegisterRoutes(mux)
	if h.metrics != nil {
		mux.Handle("GET /metrics", h.metrics.Handler())
	}
	return otelhttp.NewHandler(mux, h.name)
}

// Start binds the listener and serves in the background. When the
// application carries an EventBus, invocation lifecycle events are published
// to it from here on.
func (h *BlockHost) Start(ctx context.Context) error {
	if h.app != nil {
		if p := NewBlockEventPublisher(h.app); p.Enabled() {
			h.api.invoker.events = p
			h.logger.Info("publishing block lifecycle events", "service", EventBusService)
		}
	}

	ln, err := net.Listen("tcp", h.address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", h.address, err)
	}

	h.mu.Lock()
	h.listener = ln
	h.server = &http.Server{
		Handler:           h.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv := h.server
	h.mu.Unlock()

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			h.logger.Error("block host error", "error", err)
		}
	}()

	h.logger.Info("block host started", "address", ln.Addr().String())
	return nil
}

// Addr returns the bound address, or the configured one before Start.
func (h *BlockHost) Addr() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.listener != nil {
		return h.listener.Addr().String()
	}
	return h.address
}

// Stop gracefully shuts the server down.
func (h *BlockHost) Stop(ctx context.Context) error {
	h.mu.Lock()
	srv := h.server
	h.server = nil
	h.mu.Unlock()
	if srv == nil {
		return nil
	}
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down block host: %w", err)
	}
	h.logger.Info("block host stopped")
	return nil
}

// ProvidesServices exposes the host under its name.
func (h *BlockHost) ProvidesServices() []modular.ServiceProvider {
	return []modular.ServiceProvider{{Name: h.name, Description: "Block host", Instance: h}}
}

// RequiresServices declares the optional EventBus.
func (h *BlockHost) RequiresServices() []modular.ServiceDependency {
	return []modular.ServiceDependency{{Name: EventBusService, Required: false}}
}
