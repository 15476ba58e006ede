package ai

import (
	"fmt"
	"net/http"

	"github.com/nlsh-dev/nlsh/internal/domain"
	"github.com/nlsh-dev/nlsh/internal/ports"
)

// Factory builds provider adapters. It maintains a single HTTP client with
// a bounded timeout shared across all adapters.
type Factory struct {
	httpClient *http.Client
}

// NewFactory creates a new adapter factory.
func NewFactory() *Factory {
	return &Factory{httpClient: newHTTPClient()}
}

// ForKind returns the adapter for a provider kind. The set is closed and
// dispatched by explicit identifier, never by runtime inspection.
func (f *Factory) ForKind(kind domain.ProviderKind, apiKey string) (ports.Provider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("no API key configured for provider %s", kind)
	}

	switch kind {
	case domain.ProviderGemini:
		return newGeminiAdapter(apiKey, "", f.httpClient), nil
	case domain.ProviderOpenAI:
		return newOpenAIAdapter(apiKey, "", f.httpClient), nil
	case domain.ProviderClaude:
		return newClaudeAdapter(apiKey, "", f.httpClient), nil
	case domain.ProviderOpenRouter:
		return newOpenRouterAdapter(apiKey, "", f.httpClient), nil
	default:
		return nil, fmt.Errorf("unsupported provider kind: %s", kind)
	}
}

var _ ports.ProviderFactory = (*Factory)(nil)
