package memguard

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestWatchConfigAppliesChanges(t *testing.T) {
	path := writeConfig(t, "verbose = false\n")

	applied := make(chan Config, 4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- WatchConfig(ctx, path, zerolog.Nop(), func(c Config) { applied <- c })
	}()

	// Give the watcher a moment to arm before the first write.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("verbose = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-applied:
		if !cfg.Verbose {
			t.Errorf("applied config not verbose: %+v", cfg)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("config change never applied")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("WatchConfig returned %v on cancellation", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop on cancellation")
	}
}

func TestWatchConfigIgnoresBrokenReload(t *testing.T) {
	path := writeConfig(t, "verbose = false\n")

	applied := make(chan Config, 4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = WatchConfig(ctx, path, zerolog.Nop(), func(c Config) { applied <- c })
	}()

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte(`strategy = "telepathy"`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-applied:
		t.Errorf("invalid config applied: %+v", cfg)
	case <-time.After(500 * time.Millisecond):
		// Reload was rejected and previous settings kept.
	}
}
