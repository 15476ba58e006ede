package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the provider and credential layers. The interactive
// loop matches on these with errors.Is and turns them into user messages;
// none of them terminate the process.
var (
	// ErrConfigMissing signals that no configuration file exists yet and
	// first-time setup should run.
	ErrConfigMissing = errors.New("configuration not found")

	// ErrAuth is returned when the remote service rejects the API key
	// (HTTP 401/403).
	ErrAuth = errors.New("api key rejected by provider")

	// ErrRateLimited is returned when the remote service throttles the
	// request (HTTP 429). The loop never retries automatically.
	ErrRateLimited = errors.New("provider rate limit hit")

	// ErrNetwork covers transport-level failures: timeout, DNS, reset.
	ErrNetwork = errors.New("network error reaching provider")

	// ErrMalformedResponse means the HTTP call succeeded but the body did
	// not match the provider's documented schema.
	ErrMalformedResponse = errors.New("provider returned malformed response")
)

// ExtractionReason classifies why a provider response could not be reduced
// to a single shell command.
type ExtractionReason string

const (
	ExtractionEmpty     ExtractionReason = "empty"
	ExtractionAmbiguous ExtractionReason = "ambiguous"
)

// ExtractionError reports a failed command extraction.
type ExtractionError struct {
	Reason ExtractionReason
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("command extraction failed: %s response", e.Reason)
}

// IsExtractionError reports whether err is an ExtractionError, returning it.
func IsExtractionError(err error) (*ExtractionError, bool) {
	var extractionErr *ExtractionError
	if errors.As(err, &extractionErr) {
		return extractionErr, true
	}
	return nil, false
}
