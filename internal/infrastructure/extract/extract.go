// Package extract reduces a free-form provider response to a single shell
// command string.
package extract

import (
	"strings"

	"github.com/nlsh-dev/nlsh/internal/domain"
	"github.com/nlsh-dev/nlsh/internal/ports"
)

// Extractor adapts Command to the ports.CommandExtractor contract.
type Extractor struct{}

func (Extractor) Extract(response string) (string, error) {
	return Command(response)
}

var _ ports.CommandExtractor = Extractor{}

// Command parses raw model response text into exactly one shell command.
//
// The first fenced code block wins when present; outside or inside a block,
// blank lines and comment lines are dropped. A single surviving line is the
// command. Multiple surviving lines are joined with "; " only when each line
// has balanced quotes; the quote check is a best-effort heuristic, not a
// shell parser, so genuinely ambiguous responses fail instead of guessing.
// Syntactic validity is not checked here: a bad command surfaces as a
// non-zero exit at execution time.
func Command(response string) (string, error) {
	text := strings.TrimSpace(response)

	if block, ok := firstFencedBlock(text); ok {
		text = block
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}

	switch len(lines) {
	case 0:
		return "", &domain.ExtractionError{Reason: domain.ExtractionEmpty}
	case 1:
		return lines[0], nil
	}

	for _, line := range lines {
		if !quotesBalanced(line) {
			return "", &domain.ExtractionError{Reason: domain.ExtractionAmbiguous}
		}
	}
	return strings.Join(lines, "; "), nil
}

// firstFencedBlock returns the content of the first triple-backtick block,
// with an optional bash/sh/shell/zsh language tag removed.
func firstFencedBlock(text string) (string, bool) {
	start := strings.Index(text, "```")
	if start == -1 {
		return "", false
	}
	rest := text[start+3:]
	end := strings.Index(rest, "```")
	if end == -1 {
		return "", false
	}
	block := rest[:end]

	lines := strings.Split(block, "\n")
	if len(lines) > 0 {
		switch strings.TrimSpace(strings.ToLower(lines[0])) {
		case "bash", "sh", "shell", "zsh", "":
			lines = lines[1:]
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), true
}

// quotesBalanced reports whether single and double quotes pair up on one
// line, respecting backslash escapes outside single quotes.
func quotesBalanced(line string) bool {
	var inSingle, inDouble bool
	for i := 0; i < len(line); i++ {
		ch := line[i]
		if ch == '\\' && !inSingle {
			i++
			continue
		}
		switch ch {
		case '\'':
			if !inDouble {
				inSingle = !inSingle
			}
		case '"':
			if !inSingle {
				inDouble = !inDouble
			}
		}
	}
	return !inSingle && !inDouble
}
