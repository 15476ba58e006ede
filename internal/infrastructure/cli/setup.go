package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/nlsh-dev/nlsh/internal/domain"
	"github.com/nlsh-dev/nlsh/internal/infrastructure/config"
)

// firstRunSetup walks a new user through picking a provider and entering
// its API key, then persists the initial configuration.
func firstRunSetup(store *config.FileStore, out io.Writer) (domain.Config, error) {
	fmt.Fprintln(out, "Welcome to nlsh. Let's set up your AI provider.")

	kind, err := selectProvider(domain.ProviderGemini)
	if err != nil {
		return domain.Config{}, err
	}
	key, err := askKey(out, kind)
	if err != nil {
		return domain.Config{}, err
	}

	cfg := config.DefaultConfig(kind, key)
	if err := store.Save(cfg); err != nil {
		return domain.Config{}, fmt.Errorf("save config: %w", err)
	}
	okColor.Fprintf(out, "Configuration saved to %s\n", store.Path())
	return cfg, nil
}

func selectProvider(current domain.ProviderKind) (domain.ProviderKind, error) {
	options := make([]string, 0, len(domain.ProviderKinds()))
	for _, kind := range domain.ProviderKinds() {
		options = append(options, string(kind))
	}

	choice := string(current)
	err := survey.AskOne(&survey.Select{
		Message: "Select an AI provider:",
		Options: options,
		Default: string(current),
	}, &choice)
	if err != nil {
		return "", err
	}
	return domain.ParseProviderKind(choice)
}

func askKey(out io.Writer, kind domain.ProviderKind) (string, error) {
	infoColor.Fprintln(out, kind.KeySetupHint())

	var key string
	err := survey.AskOne(&survey.Password{
		Message: fmt.Sprintf("Enter your %s API key:", kind),
	}, &key, survey.WithValidator(survey.Required))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(key), nil
}
