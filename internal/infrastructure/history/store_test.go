package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/nlsh-dev/nlsh/internal/domain"
)

func testRecord(prompt, command string) domain.HistoryRecord {
	return domain.HistoryRecord{
		Timestamp: time.Now(),
		Prompt:    prompt,
		Command:   command,
		Provider:  domain.ProviderGemini,
		Executed:  true,
		Success:   true,
		RiskLevel: domain.RiskSafe,
	}
}

func TestSQLiteStoreSaveAndRecords(t *testing.T) {
	store := NewSQLiteStoreAt(filepath.Join(t.TempDir(), "history.db"))

	if err := store.Save(testRecord("list files", "ls -la")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Save(testRecord("disk usage", "df -h")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	records, err := store.Records(0, "")
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Records() returned %d entries, want 2", len(records))
	}
	if records[0].Provider != domain.ProviderGemini {
		t.Fatalf("provider round-trip failed: %+v", records[0])
	}
}

func TestSQLiteStoreSearchAndLimit(t *testing.T) {
	store := NewSQLiteStoreAt(filepath.Join(t.TempDir(), "history.db"))

	for _, cmd := range []string{"ls -la", "df -h", "git status"} {
		if err := store.Save(testRecord("prompt", cmd)); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	records, err := store.Records(0, "git")
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if len(records) != 1 || records[0].Command != "git status" {
		t.Fatalf("search returned %+v, want the git entry", records)
	}

	limited, err := store.Records(2, "")
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("limit ignored, got %d entries", len(limited))
	}
}

func TestSQLiteStoreClear(t *testing.T) {
	store := NewSQLiteStoreAt(filepath.Join(t.TempDir(), "history.db"))

	if err := store.Save(testRecord("p", "c")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	records, err := store.Records(0, "")
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("Clear() left %d entries", len(records))
	}
}

func TestFileStoreFallbackRoundTrip(t *testing.T) {
	store := &fileStore{path: filepath.Join(t.TempDir(), "history.jsonl")}

	if err := store.Save(testRecord("list", "ls")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Save(testRecord("count", "wc -l")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	records, err := store.Records(0, "")
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if len(records) != 2 || records[0].Command != "wc -l" {
		t.Fatalf("expected newest first, got %+v", records)
	}
}
