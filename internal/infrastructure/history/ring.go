package history

import (
	"fmt"
	"strings"
	"sync"

	"github.com/nlsh-dev/nlsh/internal/domain"
	"github.com/nlsh-dev/nlsh/internal/ports"
)

// Ring keeps the most recent command/output exchanges of the current
// session. Its formatted tail is injected into the provider prompt so the
// model can resolve follow-ups like "do that again". The ring is bounded
// both by entry count and by total character budget, oldest entries dropped
// first.
type Ring struct {
	mu      sync.Mutex
	entries []ringEntry
}

type ringEntry struct {
	command string
	output  string
}

// NewRing creates an empty context ring.
func NewRing() *Ring {
	return &Ring{}
}

// Add records one executed command and a truncated copy of its output.
func (r *Ring) Add(command, output string) {
	if command == "" {
		return
	}
	if len(output) > domain.MaxCapturedOutput {
		output = output[:domain.MaxCapturedOutput]
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, ringEntry{command: command, output: output})
	for len(r.entries) > domain.MaxContextEntries {
		r.entries = r.entries[1:]
	}
	for r.size() > domain.MaxContextChars && len(r.entries) > 1 {
		r.entries = r.entries[1:]
	}
}

// Format renders the last few exchanges for the system prompt. Each entry
// shows the command and at most two output lines.
func (r *Ring) Format() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.entries) == 0 {
		return ""
	}

	tail := r.entries
	if len(tail) > domain.ContextEntriesInPrompt {
		tail = tail[len(tail)-domain.ContextEntriesInPrompt:]
	}

	var lines []string
	for i, entry := range tail {
		lines = append(lines, fmt.Sprintf("%d. $ %s", i+1, entry.command))
		if entry.output == "" {
			continue
		}
		outputLines := strings.Split(strings.TrimSpace(entry.output), "\n")
		if len(outputLines) > 2 {
			outputLines = outputLines[:2]
		}
		for _, out := range outputLines {
			lines = append(lines, "   "+out)
		}
	}
	return strings.Join(lines, "\n")
}

// Len reports how many exchanges the ring currently holds.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Ring) size() int {
	total := 0
	for _, entry := range r.entries {
		total += len(entry.command) + len(entry.output)
	}
	return total
}

var _ ports.ContextRecorder = (*Ring)(nil)
