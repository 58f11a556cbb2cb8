package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kilianp07/sectionplanner/infra/logger"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "academic-calendar.yaml")
	other := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("terms: []\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	var reloads atomic.Int32
	w := &Watcher{
		Paths:    []string{path},
		Debounce: 20 * time.Millisecond,
		Log:      logger.NopLogger{},
		Reload: func(context.Context) error {
			reloads.Add(1)
			return nil
		},
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// give the watcher time to register
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(other, []byte("ignored"), 0o600); err != nil {
		t.Fatalf("write other: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("terms: []\n# edit\n"), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	deadline := time.Now().Add(2 * time.Second)
	for reloads.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if reloads.Load() == 0 {
		t.Fatalf("expected a reload")
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestWatcherMissingDir(t *testing.T) {
	w := &Watcher{
		Paths:  []string{filepath.Join(t.TempDir(), "nope", "cal.yaml")},
		Log:    logger.NopLogger{},
		Reload: func(context.Context) error { return nil },
	}
	if err := w.Run(context.Background()); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
