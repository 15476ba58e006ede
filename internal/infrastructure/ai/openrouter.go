package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/nlsh-dev/nlsh/internal/domain"
	"github.com/nlsh-dev/nlsh/internal/ports"
)

const openrouterBaseURL = "https://openrouter.ai"

// openrouterAdapter talks to OpenRouter's OpenAI-compatible endpoint.
// OpenRouter additionally expects the HTTP-Referer and X-Title attribution
// headers.
type openrouterAdapter struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func newOpenRouterAdapter(apiKey, baseURL string, client *http.Client) *openrouterAdapter {
	if baseURL == "" {
		baseURL = openrouterBaseURL
	}
	return &openrouterAdapter{apiKey: apiKey, baseURL: baseURL, httpClient: client}
}

func (a *openrouterAdapter) Kind() domain.ProviderKind {
	return domain.ProviderOpenRouter
}

func (a *openrouterAdapter) Generate(ctx context.Context, req ports.ProviderRequest) (string, error) {
	payload := chatCompletionRequest{
		Model:     req.Model,
		MaxTokens: 512,
		Messages:  chatMessages(SystemPrompt(req.Context), req.Prompt),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("openrouter: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/api/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("openrouter: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+a.apiKey)
	httpReq.Header.Set("HTTP-Referer", "https://github.com/nlsh-dev/nlsh")
	httpReq.Header.Set("X-Title", "nlsh")

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return "", transportError(domain.ProviderOpenRouter, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", statusError(domain.ProviderOpenRouter, resp)
	}

	var decoded chatCompletionResponse
	if err := decodeInto(domain.ProviderOpenRouter, resp.Body, &decoded); err != nil {
		return "", err
	}

	text, ok := decoded.firstMessage()
	if !ok {
		return "", malformed(domain.ProviderOpenRouter, "no choices in response")
	}
	return strings.TrimSpace(text), nil
}

var _ ports.Provider = (*openrouterAdapter)(nil)
