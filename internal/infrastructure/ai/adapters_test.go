package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlsh-dev/nlsh/internal/domain"
	"github.com/nlsh-dev/nlsh/internal/ports"
)

func testRequest() ports.ProviderRequest {
	return ports.ProviderRequest{
		Prompt: "list all python files",
		Model:  "test-model",
		Context: domain.ContextSnapshot{
			WorkingDir: "/tmp/project",
			Shell:      "zsh",
			OS:         "Linux",
		},
	}
}

func TestGeminiAdapterGenerate(t *testing.T) {
	var gotPath, gotKey string
	var gotBody geminiRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": "find . -name \"*.py\"\n"}},
				}},
			},
		})
	}))
	defer server.Close()

	adapter := newGeminiAdapter("secret", server.URL, server.Client())
	text, err := adapter.Generate(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, `find . -name "*.py"`, text)
	assert.Equal(t, "/v1beta/models/test-model:generateContent", gotPath)
	assert.Equal(t, "secret", gotKey)
	require.NotNil(t, gotBody.SystemInstruction)
	assert.Contains(t, gotBody.SystemInstruction.Parts[0].Text, "Output ONLY the command")
	require.Len(t, gotBody.Contents, 1)
	assert.Equal(t, "list all python files", gotBody.Contents[0].Parts[0].Text)
}

func TestOpenAIAdapterGenerate(t *testing.T) {
	var gotAuth string
	var gotBody chatCompletionRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "df -h"}},
			},
		})
	}))
	defer server.Close()

	adapter := newOpenAIAdapter("secret", server.URL, server.Client())
	text, err := adapter.Generate(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, "df -h", text)
	assert.Equal(t, "Bearer secret", gotAuth)
	require.Len(t, gotBody.Messages, 2)
	assert.Equal(t, "system", gotBody.Messages[0].Role)
	assert.Contains(t, gotBody.Messages[0].Content, "shell command translator")
	assert.Equal(t, "user", gotBody.Messages[1].Role)
}

func TestClaudeAdapterGenerate(t *testing.T) {
	var gotKey, gotVersion string
	var gotBody claudeRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]string{{"type": "text", "text": "uptime"}},
		})
	}))
	defer server.Close()

	adapter := newClaudeAdapter("secret", server.URL, server.Client())
	text, err := adapter.Generate(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, "uptime", text)
	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, anthropicVersion, gotVersion)
	assert.Contains(t, gotBody.System, "Output ONLY the command")
	require.Len(t, gotBody.Messages, 1)
	assert.Equal(t, "user", gotBody.Messages[0].Role)
}

func TestOpenRouterAdapterGenerate(t *testing.T) {
	var gotReferer, gotTitle string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/chat/completions", r.URL.Path)
		gotReferer = r.Header.Get("HTTP-Referer")
		gotTitle = r.Header.Get("X-Title")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "whoami"}},
			},
		})
	}))
	defer server.Close()

	adapter := newOpenRouterAdapter("secret", server.URL, server.Client())
	text, err := adapter.Generate(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, "whoami", text)
	assert.NotEmpty(t, gotReferer)
	assert.Equal(t, "nlsh", gotTitle)
}

func TestAdapterErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"unauthorized", http.StatusUnauthorized, `{}`, domain.ErrAuth},
		{"forbidden", http.StatusForbidden, `{}`, domain.ErrAuth},
		{"rate limited", http.StatusTooManyRequests, `{}`, domain.ErrRateLimited},
		{"server error", http.StatusInternalServerError, `{}`, domain.ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			adapter := newOpenAIAdapter("secret", server.URL, server.Client())
			_, err := adapter.Generate(context.Background(), testRequest())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAdapterMalformedResponses(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "plain text"},
		{"empty choices", `{"choices": []}`},
		{"wrong shape", `{"data": "nope"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			adapter := newOpenAIAdapter("secret", server.URL, server.Client())
			_, err := adapter.Generate(context.Background(), testRequest())
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrMalformedResponse)
		})
	}
}

func TestFactoryClosedSet(t *testing.T) {
	factory := NewFactory()

	for _, kind := range domain.ProviderKinds() {
		provider, err := factory.ForKind(kind, "key")
		require.NoError(t, err, "kind %s", kind)
		assert.Equal(t, kind, provider.Kind())
	}

	_, err := factory.ForKind(domain.ProviderKind("mystery"), "key")
	assert.Error(t, err)

	_, err = factory.ForKind(domain.ProviderOpenAI, "")
	assert.Error(t, err, "missing key must be rejected before any network call")
}

func TestSystemPromptMentionsOSAndDirectory(t *testing.T) {
	prompt := SystemPrompt(domain.ContextSnapshot{
		WorkingDir: "/home/dev",
		Shell:      "bash",
		OS:         "macOS",
	})
	assert.Contains(t, prompt, "macOS")
	assert.Contains(t, prompt, "/home/dev")
	assert.Contains(t, prompt, "No previous commands.")

	withHistory := SystemPrompt(domain.ContextSnapshot{
		OS:            "Linux",
		RecentHistory: "1. $ ls -la",
	})
	assert.Contains(t, withHistory, "1. $ ls -la")
	assert.NotContains(t, withHistory, "No previous commands.")
}
