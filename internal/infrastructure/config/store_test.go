package config

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlsh-dev/nlsh/internal/domain"
)

func tempStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "config.yaml"))
}

func TestLoadMissingConfig(t *testing.T) {
	store := tempStore(t)

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrConfigMissing)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := tempStore(t)

	cfg := DefaultConfig(domain.ProviderOpenAI, "sk-test")
	cfg.SetKey(domain.ProviderGemini, "gm-test")
	require.NoError(t, store.Save(cfg))

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.ProviderOpenAI, loaded.Provider)
	assert.Equal(t, "sk-test", loaded.APIKeys[domain.ProviderOpenAI])
	assert.Equal(t, "gm-test", loaded.APIKeys[domain.ProviderGemini])
	assert.Equal(t, cfg.Preferences, loaded.Preferences)
	assert.Equal(t, cfg.Execution, loaded.Execution)
}

func TestSaveRestrictsPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions only")
	}
	store := tempStore(t)

	require.NoError(t, store.Save(DefaultConfig(domain.ProviderClaude, "key")))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(domain.SecureFilePermissions), info.Mode().Perm())
}

func TestSaveOverwritesAtomically(t *testing.T) {
	store := tempStore(t)

	require.NoError(t, store.Save(DefaultConfig(domain.ProviderGemini, "first")))
	require.NoError(t, store.Save(DefaultConfig(domain.ProviderGemini, "second")))

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "second", loaded.ActiveKey())

	// No temp files may linger after a completed save.
	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestUpdatingOneKeyLeavesOthersUntouched(t *testing.T) {
	store := tempStore(t)

	cfg := DefaultConfig(domain.ProviderOpenAI, "openai-key")
	cfg.SetKey(domain.ProviderClaude, "claude-key")
	require.NoError(t, store.Save(cfg))

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	loaded.SetKey(domain.ProviderOpenAI, "rotated")
	require.NoError(t, store.Save(loaded))

	final, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "rotated", final.APIKeys[domain.ProviderOpenAI])
	assert.Equal(t, "claude-key", final.APIKeys[domain.ProviderClaude])
}

func TestLoadMinimalConfigKeepsSafetyOn(t *testing.T) {
	store := tempStore(t)
	minimal := "provider: gemini\napi_keys:\n  gemini: test-key\n"
	require.NoError(t, os.WriteFile(store.Path(), []byte(minimal), 0o600))

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)

	// Omitted safety switches default on: a hand-written config must opt
	// out explicitly, never by leaving a section out.
	assert.True(t, loaded.Security.Enabled)
	assert.True(t, loaded.Execution.ConfirmBeforeExecute)
}

func TestLoadExplicitFalseDisablesSafety(t *testing.T) {
	store := tempStore(t)
	opted := "provider: gemini\n" +
		"api_keys:\n  gemini: test-key\n" +
		"security:\n  enabled: false\n" +
		"execution:\n  confirm_before_execute: false\n"
	require.NoError(t, os.WriteFile(store.Path(), []byte(opted), 0o600))

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)

	assert.False(t, loaded.Security.Enabled)
	assert.False(t, loaded.Execution.ConfirmBeforeExecute)
}

func TestReset(t *testing.T) {
	store := tempStore(t)

	require.NoError(t, store.Save(DefaultConfig(domain.ProviderGemini, "key")))
	require.NoError(t, store.Reset())

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrConfigMissing)

	// Resetting an absent config is not an error.
	assert.NoError(t, store.Reset())
}
