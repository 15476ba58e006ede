// Package ai implements the four provider adapters (Gemini, OpenAI, Claude,
// OpenRouter) behind the ports.Provider interface.
//
// Each adapter owns its provider's endpoint, authentication scheme and JSON
// schema; everything above this package sees only Generate(prompt) -> text.
// Adapters never retry: 429 surfaces as domain.ErrRateLimited and retry
// policy stays with the user.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/nlsh-dev/nlsh/internal/domain"
)

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: domain.DefaultProviderTimeout}
}

// statusError maps a non-2xx response onto the shared error taxonomy.
func statusError(kind domain.ProviderKind, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s: %w (HTTP %d)", kind, domain.ErrAuth, resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%s: %w", kind, domain.ErrRateLimited)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%s: %w (HTTP %d)", kind, domain.ErrNetwork, resp.StatusCode)
	default:
		return fmt.Errorf("%s: unexpected HTTP %d: %s", kind, resp.StatusCode, string(body))
	}
}

// transportError wraps client.Do failures (timeout, DNS, reset).
func transportError(kind domain.ProviderKind, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%s: %w: %v", kind, domain.ErrNetwork, err)
}

// decodeInto unmarshals a 2xx body, converting decode failures into
// domain.ErrMalformedResponse.
func decodeInto(kind domain.ProviderKind, body io.Reader, out interface{}) error {
	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("%s: %w: %v", kind, domain.ErrMalformedResponse, err)
	}
	return nil
}

// malformed reports a 2xx response whose shape misses the expected text path.
func malformed(kind domain.ProviderKind, detail string) error {
	return fmt.Errorf("%s: %w: %s", kind, domain.ErrMalformedResponse, detail)
}
