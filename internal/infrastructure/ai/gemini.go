package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/nlsh-dev/nlsh/internal/domain"
	"github.com/nlsh-dev/nlsh/internal/ports"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com"

// geminiAdapter talks to the Gemini generateContent endpoint. Gemini
// authenticates via a key query parameter rather than a header.
type geminiAdapter struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func newGeminiAdapter(apiKey, baseURL string, client *http.Client) *geminiAdapter {
	if baseURL == "" {
		baseURL = geminiBaseURL
	}
	return &geminiAdapter{apiKey: apiKey, baseURL: baseURL, httpClient: client}
}

func (a *geminiAdapter) Kind() domain.ProviderKind {
	return domain.ProviderGemini
}

func (a *geminiAdapter) Generate(ctx context.Context, req ports.ProviderRequest) (string, error) {
	payload := geminiRequest{
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: SystemPrompt(req.Context)}},
		},
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: req.Prompt}}},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		a.baseURL, req.Model, url.QueryEscape(a.apiKey))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("gemini: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return "", transportError(domain.ProviderGemini, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", statusError(domain.ProviderGemini, resp)
	}

	var decoded geminiResponse
	if err := decodeInto(domain.ProviderGemini, resp.Body, &decoded); err != nil {
		return "", err
	}

	text, ok := decoded.firstText()
	if !ok {
		return "", malformed(domain.ProviderGemini, "no candidates in response")
	}
	return strings.TrimSpace(text), nil
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (r geminiResponse) firstText() (string, bool) {
	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return "", false
	}
	return r.Candidates[0].Content.Parts[0].Text, true
}

var _ ports.Provider = (*geminiAdapter)(nil)
