package history

import (
	"strings"
	"testing"

	"github.com/nlsh-dev/nlsh/internal/domain"
)

func TestRingFormatEmpty(t *testing.T) {
	ring := NewRing()
	if got := ring.Format(); got != "" {
		t.Fatalf("empty ring Format() = %q, want empty", got)
	}
}

func TestRingFormatShowsCommandAndOutput(t *testing.T) {
	ring := NewRing()
	ring.Add("ls -la", "total 4\nfoo.txt\nbar.txt\n")

	got := ring.Format()
	if !strings.Contains(got, "1. $ ls -la") {
		t.Fatalf("Format() missing command line: %q", got)
	}
	if !strings.Contains(got, "   total 4") || !strings.Contains(got, "   foo.txt") {
		t.Fatalf("Format() missing output lines: %q", got)
	}
	// only the first two output lines survive
	if strings.Contains(got, "bar.txt") {
		t.Fatalf("Format() must truncate output to two lines: %q", got)
	}
}

func TestRingDropsOldestBeyondEntryLimit(t *testing.T) {
	ring := NewRing()
	for i := 0; i < domain.MaxContextEntries+5; i++ {
		ring.Add("echo "+strings.Repeat("x", i), "")
	}
	if ring.Len() != domain.MaxContextEntries {
		t.Fatalf("Len() = %d, want %d", ring.Len(), domain.MaxContextEntries)
	}
}

func TestRingEnforcesCharBudget(t *testing.T) {
	ring := NewRing()
	big := strings.Repeat("a", domain.MaxContextChars/2)
	ring.Add("first "+big, "")
	ring.Add("second "+big, "")
	ring.Add("third "+big, "")

	if ring.size() > domain.MaxContextChars {
		t.Fatalf("ring size %d exceeds budget %d", ring.size(), domain.MaxContextChars)
	}
	if !strings.Contains(ring.Format(), "third") {
		t.Fatal("newest entry must survive budget eviction")
	}
}

func TestRingTruncatesCapturedOutput(t *testing.T) {
	ring := NewRing()
	ring.Add("cat big", strings.Repeat("z", domain.MaxCapturedOutput*3))
	if ring.size() > len("cat big")+domain.MaxCapturedOutput {
		t.Fatalf("output not truncated, size = %d", ring.size())
	}
}

func TestRingFormatLimitsEntries(t *testing.T) {
	ring := NewRing()
	for i := 0; i < domain.MaxContextEntries; i++ {
		ring.Add("cmd", "")
	}
	got := ring.Format()
	if lines := strings.Count(got, "$ cmd"); lines != domain.ContextEntriesInPrompt {
		t.Fatalf("Format() rendered %d entries, want %d", lines, domain.ContextEntriesInPrompt)
	}
}
