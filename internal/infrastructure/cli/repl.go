package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nlsh-dev/nlsh/internal/domain"
	"github.com/nlsh-dev/nlsh/internal/infrastructure/config"
	"github.com/nlsh-dev/nlsh/internal/pkg/filesystem"
	"github.com/nlsh-dev/nlsh/internal/ports"
	"github.com/nlsh-dev/nlsh/internal/services"
)

// shellStarters are command names that make an input line run directly
// instead of being sent to the provider. Anything the user plainly typed
// as shell should not burn an API call.
var shellStarters = map[string]struct{}{
	"ls": {}, "pwd": {}, "cat": {}, "echo": {}, "grep": {}, "find": {},
	"git": {}, "vim": {}, "nano": {}, "mkdir": {}, "rm": {}, "cp": {},
	"mv": {}, "touch": {}, "head": {}, "tail": {}, "less": {}, "top": {},
	"htop": {}, "ps": {}, "kill": {}, "docker": {}, "kubectl": {},
	"make": {}, "go": {}, "python": {}, "python3": {}, "npm": {},
	"curl": {}, "wget": {}, "ssh": {}, "clear": {}, "which": {},
	"chmod": {}, "chown": {}, "tar": {}, "df": {}, "du": {}, "man": {},
}

// REPL is the interactive loop. Every error from a cycle is rendered and
// the loop continues; only setup failures and EOF end it.
type REPL struct {
	Session   *services.SessionService
	Store     *config.FileStore
	Clipboard ports.Clipboard
	In        io.Reader
	Out       io.Writer

	provider    domain.ProviderKind
	lastCommand string
}

// Run enters the loop, performing first-time setup when no configuration
// exists yet. It returns nil on EOF, "exit" and interrupt.
func (r *REPL) Run(ctx context.Context) error {
	if r.In == nil {
		r.In = os.Stdin
	}
	if r.Out == nil {
		r.Out = os.Stdout
	}

	cfg, err := r.Store.Load(ctx)
	if errors.Is(err, domain.ErrConfigMissing) {
		cfg, err = firstRunSetup(r.Store, r.Out)
	}
	if err != nil {
		return err
	}
	r.provider = cfg.Provider

	infoColor.Fprintln(r.Out, "Type a request in plain language, !help for commands, exit to quit.")

	scanner := bufio.NewScanner(r.In)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		if ctx.Err() != nil {
			return nil
		}
		r.printPrompt()
		if !scanner.Scan() {
			fmt.Fprintln(r.Out)
			return nil
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}
		r.dispatch(ctx, line)
	}
}

// RunOnce handles a single prompt given on the command line, then returns.
func (r *REPL) RunOnce(ctx context.Context, prompt string) error {
	if r.In == nil {
		r.In = os.Stdin
	}
	if r.Out == nil {
		r.Out = os.Stdout
	}
	cfg, err := r.Store.Load(ctx)
	if errors.Is(err, domain.ErrConfigMissing) {
		cfg, err = firstRunSetup(r.Store, r.Out)
	}
	if err != nil {
		return err
	}
	r.provider = cfg.Provider
	r.runPrompt(ctx, prompt, false)
	return nil
}

func (r *REPL) dispatch(ctx context.Context, line string) {
	switch {
	case line == "!help":
		r.printHelp()
	case line == "!provider":
		r.switchProvider(ctx)
	case line == "!api":
		r.updateKey(ctx)
	case line == "!copy":
		r.copyLast()
	case line == "!cmd" || strings.HasPrefix(line, "!cmd "):
		rest := strings.TrimSpace(strings.TrimPrefix(line, "!cmd"))
		if rest == "" {
			warnColor.Fprintln(r.Out, "usage: !cmd <shell command>")
			return
		}
		r.runPrompt(ctx, rest, true)
	case strings.HasPrefix(line, "!"):
		warnColor.Fprintf(r.Out, "unknown command %s, see !help\n", line)
	case line == "cd" || strings.HasPrefix(line, "cd "):
		r.changeDir(strings.TrimSpace(strings.TrimPrefix(line, "cd")))
	case looksLikeShell(line):
		r.runPrompt(ctx, line, true)
	default:
		r.runPrompt(ctx, line, false)
	}
}

func (r *REPL) runPrompt(ctx context.Context, text string, direct bool) {
	resp, err := r.Session.Run(domain.PromptRequest{
		Context: ctx,
		Prompt:  text,
		Direct:  direct,
	})
	if resp.Command != "" {
		r.lastCommand = resp.Command
	}
	if err != nil {
		renderError(r.Out, err)
		return
	}
	renderOutcome(r.Out, resp)
}

// changeDir handles cd in-process so subsequent commands inherit the new
// working directory. Plain "cd" goes home.
func (r *REPL) changeDir(target string) {
	if target == "" {
		target = filesystem.UserHomeDir()
	}
	target = filesystem.ExpandHome(target)
	if err := os.Chdir(target); err != nil {
		renderError(r.Out, err)
	}
}

func (r *REPL) switchProvider(ctx context.Context) {
	cfg, err := r.Store.Load(ctx)
	if err != nil {
		renderError(r.Out, err)
		return
	}
	kind, err := selectProvider(cfg.Provider)
	if err != nil {
		renderError(r.Out, err)
		return
	}
	cfg.Provider = kind
	if cfg.APIKeys[kind] == "" {
		key, err := askKey(r.Out, kind)
		if err != nil {
			renderError(r.Out, err)
			return
		}
		cfg.SetKey(kind, key)
	}
	if err := r.Store.Save(cfg); err != nil {
		renderError(r.Out, err)
		return
	}
	r.provider = kind
	okColor.Fprintf(r.Out, "Provider switched to %s (model %s)\n", kind, cfg.ActiveModel())
}

// updateKey re-prompts the key for the active provider only. Keys stored
// for other providers stay untouched.
func (r *REPL) updateKey(ctx context.Context) {
	cfg, err := r.Store.Load(ctx)
	if err != nil {
		renderError(r.Out, err)
		return
	}
	key, err := askKey(r.Out, cfg.Provider)
	if err != nil {
		renderError(r.Out, err)
		return
	}
	cfg.SetKey(cfg.Provider, key)
	if err := r.Store.Save(cfg); err != nil {
		renderError(r.Out, err)
		return
	}
	okColor.Fprintf(r.Out, "API key updated for %s\n", cfg.Provider)
}

func (r *REPL) copyLast() {
	if r.lastCommand == "" {
		warnColor.Fprintln(r.Out, "nothing to copy yet")
		return
	}
	if r.Clipboard == nil || !r.Clipboard.Enabled() {
		warnColor.Fprintln(r.Out, "clipboard not available on this system")
		return
	}
	if err := r.Clipboard.Copy(r.lastCommand); err != nil {
		renderError(r.Out, err)
		return
	}
	okColor.Fprintf(r.Out, "Copied: %s\n", r.lastCommand)
}

func (r *REPL) printPrompt() {
	promptColor.Fprintf(r.Out, "[%s] %s ❯ ", r.provider, shortWorkingDir())
}

func (r *REPL) printHelp() {
	fmt.Fprint(r.Out, `Commands:
  !provider        switch AI provider (gemini, openai, claude, openrouter)
  !api             update the API key for the active provider
  !cmd <command>   run a shell command directly, no AI involved
  !copy            copy the last generated command to the clipboard
  !help            show this help
  cd <dir>         change the working directory
  exit             leave nlsh

Anything else is sent to the AI provider and comes back as a shell
command for you to confirm. Lines starting with a common command name
(ls, git, docker, ...) run directly.
`)
}

// looksLikeShell reports whether the line starts with a well-known command
// name or an explicit path, meaning the user typed shell, not English.
func looksLikeShell(line string) bool {
	if strings.HasPrefix(line, "./") || strings.HasPrefix(line, "/") {
		return true
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	_, ok := shellStarters[fields[0]]
	return ok
}

func shortWorkingDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return "?"
	}
	home := filesystem.UserHomeDir()
	if wd == home {
		return "~"
	}
	if strings.HasPrefix(wd, home+string(filepath.Separator)) {
		return "~" + wd[len(home):]
	}
	return wd
}
