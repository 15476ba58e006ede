package cli

import (
	"context"
	"os"
	"time"

	"github.com/briandowns/spinner"

	"github.com/nlsh-dev/nlsh/internal/domain"
	"github.com/nlsh-dev/nlsh/internal/ports"
)

// withSpinner decorates a provider factory so every request shows a
// spinner while the HTTP call is in flight. The spinner writes to stderr
// to stay out of command output.
func withSpinner(inner ports.ProviderFactory) ports.ProviderFactory {
	return spinnerFactory{inner: inner}
}

type spinnerFactory struct {
	inner ports.ProviderFactory
}

func (f spinnerFactory) ForKind(kind domain.ProviderKind, apiKey string) (ports.Provider, error) {
	provider, err := f.inner.ForKind(kind, apiKey)
	if err != nil {
		return nil, err
	}
	return spinningProvider{inner: provider}, nil
}

type spinningProvider struct {
	inner ports.Provider
}

func (p spinningProvider) Kind() domain.ProviderKind {
	return p.inner.Kind()
}

func (p spinningProvider) Generate(ctx context.Context, req ports.ProviderRequest) (string, error) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Writer = os.Stderr
	s.Suffix = " asking " + string(p.inner.Kind()) + "..."
	s.Start()
	defer s.Stop()
	return p.inner.Generate(ctx, req)
}

var _ ports.ProviderFactory = spinnerFactory{}
