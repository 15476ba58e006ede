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

const openaiBaseURL = "https://api.openai.com"

// openaiAdapter talks to the OpenAI chat-completions endpoint using bearer
// token authentication.
type openaiAdapter struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func newOpenAIAdapter(apiKey, baseURL string, client *http.Client) *openaiAdapter {
	if baseURL == "" {
		baseURL = openaiBaseURL
	}
	return &openaiAdapter{apiKey: apiKey, baseURL: baseURL, httpClient: client}
}

func (a *openaiAdapter) Kind() domain.ProviderKind {
	return domain.ProviderOpenAI
}

func (a *openaiAdapter) Generate(ctx context.Context, req ports.ProviderRequest) (string, error) {
	payload := chatCompletionRequest{
		Model:     req.Model,
		MaxTokens: 512,
		Messages:  chatMessages(SystemPrompt(req.Context), req.Prompt),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("openai: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("openai: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return "", transportError(domain.ProviderOpenAI, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", statusError(domain.ProviderOpenAI, resp)
	}

	var decoded chatCompletionResponse
	if err := decodeInto(domain.ProviderOpenAI, resp.Body, &decoded); err != nil {
		return "", err
	}

	text, ok := decoded.firstMessage()
	if !ok {
		return "", malformed(domain.ProviderOpenAI, "no choices in response")
	}
	return strings.TrimSpace(text), nil
}

var _ ports.Provider = (*openaiAdapter)(nil)
