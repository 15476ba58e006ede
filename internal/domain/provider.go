// Package domain defines core business entities and value objects for nlsh.
//
// The domain layer is independent of infrastructure concerns and represents
// pure business logic and data structures.
package domain

import "fmt"

// ProviderKind identifies one of the supported AI providers. The set is
// closed: adding a provider means adding a constant here plus one adapter in
// the ai package, nothing else.
type ProviderKind string

const (
	ProviderGemini     ProviderKind = "gemini"
	ProviderOpenAI     ProviderKind = "openai"
	ProviderClaude     ProviderKind = "claude"
	ProviderOpenRouter ProviderKind = "openrouter"
)

// ProviderKinds lists every supported provider in display order.
func ProviderKinds() []ProviderKind {
	return []ProviderKind{ProviderGemini, ProviderOpenAI, ProviderClaude, ProviderOpenRouter}
}

// ParseProviderKind validates a provider name read from config or user input.
func ParseProviderKind(name string) (ProviderKind, error) {
	for _, kind := range ProviderKinds() {
		if string(kind) == name {
			return kind, nil
		}
	}
	return "", fmt.Errorf("unknown provider %q (expected gemini, openai, claude or openrouter)", name)
}

// DefaultModel returns the model identifier used when the config does not
// override it.
func (k ProviderKind) DefaultModel() string {
	switch k {
	case ProviderGemini:
		return "gemini-2.5-flash"
	case ProviderOpenAI:
		return "gpt-4o-mini"
	case ProviderClaude:
		return "claude-3-5-sonnet-20240620"
	case ProviderOpenRouter:
		return "openai/gpt-4o-mini"
	default:
		return ""
	}
}

// KeySetupHint points the user at the provider's key management page during
// first-run setup.
func (k ProviderKind) KeySetupHint() string {
	switch k {
	case ProviderGemini:
		return "Get your free key at: https://aistudio.google.com/apikey"
	case ProviderOpenAI:
		return "Create a key at: https://platform.openai.com/api-keys"
	case ProviderClaude:
		return "Create a key at: https://console.anthropic.com/settings/keys"
	case ProviderOpenRouter:
		return "Create a key at: https://openrouter.ai/keys"
	default:
		return ""
	}
}
