// Package config persists the session configuration under ~/.nlsh.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nlsh-dev/nlsh/internal/domain"
	"github.com/nlsh-dev/nlsh/internal/pkg/filesystem"
	"github.com/nlsh-dev/nlsh/internal/ports"
)

// FileStore loads and saves YAML configuration from ~/.nlsh/config.yaml
// (overridable via NLSH_CONFIG). The file carries API keys, so it is written
// with owner-only permissions and replaced atomically.
type FileStore struct {
	overridePath string
}

// NewFileStore builds a store. An empty path means the default location.
func NewFileStore(path string) *FileStore {
	return &FileStore{overridePath: path}
}

// Load implements ports.CredentialStore. A missing file reports
// domain.ErrConfigMissing so the caller can run first-time setup.
func (s *FileStore) Load(context.Context) (domain.Config, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Config{}, domain.ErrConfigMissing
		}
		return domain.Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse config: %w", err)
	}
	return hydrateDefaults(cfg, data), nil
}

// Save writes the configuration atomically: marshal to a temp file in the
// same directory, fsync-free rename over the target. An interrupt mid-save
// never leaves a torn credential file behind.
func (s *FileStore) Save(cfg domain.Config) error {
	path := s.Path()
	if err := os.MkdirAll(filepath.Dir(path), domain.SecureDirectoryPermissions); err != nil {
		return fmt.Errorf("ensure config dir: %w", err)
	}

	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "config-*.yaml.tmp")
	if err != nil {
		return fmt.Errorf("create temp config: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(domain.SecureFilePermissions); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp config: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp config: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}

// Path returns the resolved config file path.
func (s *FileStore) Path() string {
	if s.overridePath != "" {
		return s.overridePath
	}
	if custom := os.Getenv("NLSH_CONFIG"); custom != "" {
		return filesystem.ExpandHome(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), ".nlsh", "config.yaml")
}

// Reset removes the stored configuration, forcing first-run setup.
func (s *FileStore) Reset() error {
	err := os.Remove(s.Path())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// DefaultConfig returns the configuration written during first-run setup.
func DefaultConfig(provider domain.ProviderKind, apiKey string) domain.Config {
	cfg := domain.Config{
		ConfigFormatVersion: "1",
		Provider:            provider,
		Preferences: domain.Preferences{
			TimeoutSeconds: 30,
			HistoryEnabled: true,
			CacheEnabled:   true,
		},
		Security: domain.SecuritySettings{
			Enabled: true,
		},
		Execution: domain.ExecutionSettings{
			ConfirmBeforeExecute: true,
		},
	}
	cfg.SetKey(provider, apiKey)
	return cfg
}

// safetyToggles mirrors the two safety switches with pointer fields so an
// omitted key can be told apart from an explicit false.
type safetyToggles struct {
	Security struct {
		Enabled *bool `yaml:"enabled"`
	} `yaml:"security"`
	Execution struct {
		ConfirmBeforeExecute *bool `yaml:"confirm_before_execute"`
	} `yaml:"execution"`
}

func hydrateDefaults(cfg domain.Config, raw []byte) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Provider == "" {
		cfg.Provider = domain.ProviderGemini
	}
	if cfg.Preferences.TimeoutSeconds <= 0 {
		cfg.Preferences.TimeoutSeconds = 30
	}
	if cfg.APIKeys == nil {
		cfg.APIKeys = make(map[domain.ProviderKind]string)
	}

	// A hand-written config that never mentions the guardrail or the
	// confirmation prompt must not silently disable them. Only an explicit
	// false in the file turns either off.
	var toggles safetyToggles
	_ = yaml.Unmarshal(raw, &toggles)
	if toggles.Security.Enabled == nil {
		cfg.Security.Enabled = true
	}
	if toggles.Execution.ConfirmBeforeExecute == nil {
		cfg.Execution.ConfirmBeforeExecute = true
	}
	return cfg
}

var _ ports.CredentialStore = (*FileStore)(nil)
