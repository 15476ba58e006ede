package ai

import (
	"fmt"
	"strings"

	"github.com/nlsh-dev/nlsh/internal/domain"
)

// SystemPrompt renders the fixed translator instruction every adapter sends
// verbatim, regardless of provider. It directs the model to emit exactly one
// shell command for the detected operating system and nothing else.
func SystemPrompt(snapshot domain.ContextSnapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a shell command translator. Convert the user's request into a single shell command for %s", snapshot.OS)
	if snapshot.Shell != "" {
		fmt.Fprintf(&b, " (%s)", snapshot.Shell)
	}
	b.WriteString(".\n")
	fmt.Fprintf(&b, "Current directory: %s\n", snapshot.WorkingDir)

	b.WriteString("\nRecent command history:\n")
	if snapshot.RecentHistory == "" {
		b.WriteString("No previous commands.\n")
	} else {
		b.WriteString(snapshot.RecentHistory)
		b.WriteString("\n")
	}

	b.WriteString(`
Rules:
- Output ONLY the command, nothing else
- No explanations, no markdown, no backticks
- If unclear, make a reasonable assumption
- Prefer simple, common commands
- Use the command history for context (e.g., "do that again", "delete the file I just created")`)

	return b.String()
}
