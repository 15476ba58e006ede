package contextcollector

import (
	"context"
	"strings"
	"testing"

	"github.com/nlsh-dev/nlsh/internal/infrastructure/history"
)

func TestCollectSnapshot(t *testing.T) {
	t.Setenv("SHELL", "/usr/bin/zsh")

	ring := history.NewRing()
	ring.Add("ls -la", "total 8")

	snapshot, err := NewBasicCollector(ring).Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if snapshot.WorkingDir == "" {
		t.Error("expected working directory")
	}
	if snapshot.Shell != "zsh" {
		t.Errorf("shell = %q, want zsh", snapshot.Shell)
	}
	if snapshot.OS != "Linux" && snapshot.OS != "macOS" {
		t.Errorf("OS = %q, want Linux or macOS", snapshot.OS)
	}
	if !strings.Contains(snapshot.RecentHistory, "ls -la") {
		t.Errorf("recent history missing command: %q", snapshot.RecentHistory)
	}
}

func TestCollectWithoutRing(t *testing.T) {
	snapshot, err := NewBasicCollector(nil).Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if snapshot.RecentHistory != "" {
		t.Errorf("expected empty history, got %q", snapshot.RecentHistory)
	}
}

func TestCollectCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewBasicCollector(nil).Collect(ctx); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestDetectShellFallback(t *testing.T) {
	t.Setenv("SHELL", "")
	if got := detectShell(); got != "sh" {
		t.Errorf("detectShell = %q, want sh", got)
	}
}
