// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The interactive loop and session service depend only on these contracts,
// never on a specific provider's wire shape or a concrete store. Adding a
// fifth AI provider touches one adapter in infrastructure/ai plus the
// ProviderKind enum, nothing here.
package ports

import (
	"context"

	"github.com/nlsh-dev/nlsh/internal/domain"
)

// CredentialStore persists the session configuration (provider + API keys).
// Load returns domain.ErrConfigMissing when no prior configuration exists.
type CredentialStore interface {
	Load(context.Context) (domain.Config, error)
	Save(domain.Config) error
	Path() string
}

// ProviderRequest contains everything an adapter needs for one generation.
type ProviderRequest struct {
	Prompt  string
	Model   string
	Context domain.ContextSnapshot
}

// Provider is the one capability all four AI adapters share: turn a prompt
// into raw response text. Request construction and response parsing are
// adapter-private.
type Provider interface {
	Kind() domain.ProviderKind
	Generate(context.Context, ProviderRequest) (string, error)
}

// ProviderFactory builds the adapter for a provider kind and API key.
type ProviderFactory interface {
	ForKind(kind domain.ProviderKind, apiKey string) (Provider, error)
}

// CommandExtractor reduces raw provider text to one executable command.
type CommandExtractor interface {
	Extract(response string) (string, error)
}

// SecurityService evaluates commands against guardrail rules before the
// loop asks for confirmation.
type SecurityService interface {
	Evaluate(command string) (domain.RiskAssessment, error)
}

// CommandExecutor runs shell commands with inherited stdio so output
// streams live, while still capturing a bounded copy for the context ring.
type CommandExecutor interface {
	Execute(ctx context.Context, command string) (domain.ExecutionResult, error)
}

// ConfirmationPrompter asks the user whether to run an extracted command.
type ConfirmationPrompter interface {
	Confirm(action domain.GuardrailAction, level domain.RiskLevel, command string, reasons []string) (bool, error)
	Enabled() bool
}

// HistoryRepository persists command history across sessions.
type HistoryRepository interface {
	Save(domain.HistoryRecord) error
	Records(limit int, search string) ([]domain.HistoryRecord, error)
	Clear() error
	ExportJSON(dest string) error
}

// CacheRepository stores extracted commands keyed by prompt hash. Key is
// part of the contract so callers never depend on the hashing scheme.
type CacheRepository interface {
	Key(provider domain.ProviderKind, model, prompt, context string) string
	Get(key string) (domain.CacheEntry, bool, error)
	Set(domain.CacheEntry) error
	Entries() ([]domain.CacheEntry, error)
	Clear() error
}

// ContextRecorder appends executed exchanges to the in-session context
// ring that ContextCollector reads back.
type ContextRecorder interface {
	Add(command, output string)
}

// ContextCollector snapshots the environment (cwd, shell, OS, recent
// exchanges) that the system prompt is rendered from.
type ContextCollector interface {
	Collect(ctx context.Context) (domain.ContextSnapshot, error)
}

// Clipboard copies generated commands for the !copy bang-command.
type Clipboard interface {
	Copy(text string) error
	Enabled() bool
}

// Logger is the verbose-gated logging abstraction used across layers.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
