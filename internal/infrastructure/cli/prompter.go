package cli

import (
	"errors"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/mattn/go-isatty"

	"github.com/nlsh-dev/nlsh/internal/domain"
	"github.com/nlsh-dev/nlsh/internal/ports"
)

// Prompter implements ConfirmationPrompter with survey. Declining is never
// an error; interrupting the question counts as a decline.
type Prompter struct{}

func NewPrompter() *Prompter {
	return &Prompter{}
}

// Enabled reports whether interactive confirmation is possible at all.
// Without a terminal nothing executes, which fails safe.
func (p *Prompter) Enabled() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// Confirm shows the command plus guardrail findings and asks to proceed.
// Explicit-confirm commands require typing "yes" in full.
func (p *Prompter) Confirm(action domain.GuardrailAction, level domain.RiskLevel, command string, reasons []string) (bool, error) {
	renderCommandPreview(os.Stdout, command, level, reasons)

	if action == domain.ActionExplicitConfirm {
		var answer string
		err := survey.AskOne(&survey.Input{
			Message: "Type 'yes' to run this command:",
		}, &answer)
		if err != nil {
			return false, declineOnInterrupt(err)
		}
		return strings.TrimSpace(answer) == "yes", nil
	}

	run := false
	err := survey.AskOne(&survey.Confirm{
		Message: "Run this command?",
		Default: false,
	}, &run)
	if err != nil {
		return false, declineOnInterrupt(err)
	}
	return run, nil
}

func declineOnInterrupt(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return nil
	}
	return err
}

var _ ports.ConfirmationPrompter = (*Prompter)(nil)
