package config

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

const watcherTestYAML = `
aws:
  endpoint: http://localhost:4566
`

const watcherTestYAMLv2 = `
aws:
  endpoint: http://localhost:4567
`

func waitFor(t *testing.T, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return cond()
}

func TestWatcher_DetectsChange(t *testing.T) {
	dir := t.TempDir()
	fp := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(fp, []byte(watcherTestYAML), 0644); err != nil {
		t.Fatalf("write initial config: %v", err)
	}

	var mu sync.Mutex
	var last *AppConfig
	var called atomic.Int32

	w := NewWatcher(fp, func(cfg *AppConfig) {
		mu.Lock()
		last = cfg
		mu.Unlock()
		called.Add(1)
	}, WithWatchDebounce(50*time.Millisecond))
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	t.Cleanup(func() { _ = w.Stop() })

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(fp, []byte(watcherTestYAMLv2), 0644); err != nil {
		t.Fatalf("write updated config: %v", err)
	}

	if !waitFor(t, func() bool { return called.Load() > 0 }) {
		t.Fatal("onChange was not called after file modification")
	}
	mu.Lock()
	defer mu.Unlock()
	if last.AWS.Endpoint != "http://localhost:4567" {
		t.Errorf("Endpoint = %q", last.AWS.Endpoint)
	}
}

func TestWatcher_IgnoresUnchangedAndInvalid(t *testing.T) {
	dir := t.TempDir()
	fp := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(fp, []byte(watcherTestYAML), 0644); err != nil {
		t.Fatalf("write initial config: %v", err)
	}

	var called atomic.Int32
	w := NewWatcher(fp, func(*AppConfig) { called.Add(1) }, WithWatchDebounce(30*time.Millisecond))
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	t.Cleanup(func() { _ = w.Stop() })

	// Same bytes, then an invalid endpoint: neither should reach onChange.
	if err := os.WriteFile(fp, []byte(watcherTestYAML), 0644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}
	time.Sleep(200 * time.Millisecond)
	if err := os.WriteFile(fp, []byte("aws:\n  endpoint: not-a-url\n"), 0644); err != nil {
		t.Fatalf("write invalid config: %v", err)
	}
	time.Sleep(300 * time.Millisecond)

	if n := called.Load(); n != 0 {
		t.Errorf("onChange called %d times, want 0", n)
	}
}

func TestWatcher_StartMissingFile(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "nope.yaml"), func(*AppConfig) {})
	if err := w.Start(); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWatcher_StopIdempotent(t *testing.T) {
	dir := t.TempDir()
	fp := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(fp, []byte(watcherTestYAML), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	w := NewWatcher(fp, func(*AppConfig) {})
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Fatalf("first Stop: %v", err)
	}
	// fsnotify tolerates a second Close.
	_ = w.Stop()
}
