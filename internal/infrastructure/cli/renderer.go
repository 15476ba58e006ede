package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/nlsh-dev/nlsh/internal/domain"
)

var (
	promptColor  = color.New(color.FgGreen, color.Bold)
	commandColor = color.New(color.FgCyan, color.Bold)
	okColor      = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errColor     = color.New(color.FgRed)
	infoColor    = color.New(color.Faint)
)

// renderError converts component failures into one-line messages. Nothing
// here terminates the loop and nothing is retried.
func renderError(w io.Writer, err error) {
	switch {
	case errors.Is(err, domain.ErrConfigMissing):
		errColor.Fprintln(w, "No API key for the active provider. Use !api to add one.")
	case errors.Is(err, domain.ErrAuth):
		errColor.Fprintln(w, "The provider rejected your API key. Use !api to update it.")
	case errors.Is(err, domain.ErrRateLimited):
		errColor.Fprintln(w, "Rate limited by the provider. Wait a moment and try again.")
	case errors.Is(err, domain.ErrNetwork):
		errColor.Fprintln(w, "Could not reach the provider. Check your connection.")
	case errors.Is(err, domain.ErrMalformedResponse):
		errColor.Fprintln(w, "The provider returned an unexpected response. Try rephrasing.")
	default:
		if extractionErr, ok := domain.IsExtractionError(err); ok {
			switch extractionErr.Reason {
			case domain.ExtractionEmpty:
				errColor.Fprintln(w, "The provider returned no usable command. Try rephrasing.")
			default:
				errColor.Fprintln(w, "The response was too ambiguous to turn into one command.")
			}
			return
		}
		errColor.Fprintf(w, "Error: %v\n", err)
	}
}

// renderOutcome reports what happened after a cycle completed without a
// component error. Command output itself has already streamed live.
func renderOutcome(w io.Writer, resp domain.PromptResponse) {
	if resp.FromCache {
		infoColor.Fprintln(w, "(cached)")
	}
	result := resp.ExecutionResult
	if result == nil {
		warnColor.Fprintln(w, "Command not executed.")
		return
	}
	if result.ExitCode != 0 {
		errColor.Fprintf(w, "exit status %d\n", result.ExitCode)
	}
}

// renderCommandPreview shows the command and any guardrail findings before
// the confirmation question.
func renderCommandPreview(w io.Writer, command string, level domain.RiskLevel, reasons []string) {
	fmt.Fprint(w, "\n  ")
	commandColor.Fprintln(w, command)
	if level == domain.RiskSafe || level == domain.RiskLow {
		return
	}
	warnColor.Fprintf(w, "  risk: %s\n", level)
	for _, reason := range reasons {
		warnColor.Fprintf(w, "   - %s\n", reason)
	}
}
