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

const (
	claudeBaseURL    = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
)

// claudeAdapter talks to the Anthropic messages endpoint. Claude uses the
// custom x-api-key header, a separate top-level system field, and content
// wrapped in typed blocks.
type claudeAdapter struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func newClaudeAdapter(apiKey, baseURL string, client *http.Client) *claudeAdapter {
	if baseURL == "" {
		baseURL = claudeBaseURL
	}
	return &claudeAdapter{apiKey: apiKey, baseURL: baseURL, httpClient: client}
}

func (a *claudeAdapter) Kind() domain.ProviderKind {
	return domain.ProviderClaude
}

func (a *claudeAdapter) Generate(ctx context.Context, req ports.ProviderRequest) (string, error) {
	payload := claudeRequest{
		Model:     req.Model,
		MaxTokens: 1024,
		System:    SystemPrompt(req.Context),
		Messages: []claudeMessage{
			{
				Role:    "user",
				Content: []claudeContent{{Type: "text", Text: req.Prompt}},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("claude: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("claude: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", a.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return "", transportError(domain.ProviderClaude, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", statusError(domain.ProviderClaude, resp)
	}

	var decoded claudeResponse
	if err := decodeInto(domain.ProviderClaude, resp.Body, &decoded); err != nil {
		return "", err
	}

	text, ok := decoded.firstText()
	if !ok {
		return "", malformed(domain.ProviderClaude, "no content blocks in response")
	}
	return strings.TrimSpace(text), nil
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	System    string          `json:"system,omitempty"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string          `json:"role"`
	Content []claudeContent `json:"content"`
}

type claudeContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type claudeResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

func (r claudeResponse) firstText() (string, bool) {
	if len(r.Content) == 0 {
		return "", false
	}
	return r.Content[0].Text, true
}

var _ ports.Provider = (*claudeAdapter)(nil)
