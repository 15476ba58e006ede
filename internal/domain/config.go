package domain

// Config mirrors ~/.nlsh/config.yaml. It holds the active provider, one API
// key per provider that has been configured, and user-level preferences.
type Config struct {
	ConfigFormatVersion string                  `yaml:"config_format_version"`
	Provider            ProviderKind            `yaml:"provider"`
	APIKeys             map[ProviderKind]string `yaml:"api_keys"`
	Models              map[ProviderKind]string `yaml:"models,omitempty"`
	Preferences         Preferences             `yaml:"preferences"`
	Security            SecuritySettings        `yaml:"security"`
	Execution           ExecutionSettings       `yaml:"execution"`
}

// Preferences captures user level toggles.
type Preferences struct {
	TimeoutSeconds int  `yaml:"timeout"`
	HistoryEnabled bool `yaml:"history_enabled"`
	CacheEnabled   bool `yaml:"cache_enabled"`
	Verbose        bool `yaml:"verbose"`
}

// SecuritySettings defines guardrail behavior.
type SecuritySettings struct {
	Enabled   bool   `yaml:"enabled"`
	RulesFile string `yaml:"rules_file,omitempty"`
}

// ExecutionSettings controls how extracted commands run.
type ExecutionSettings struct {
	Shell                string `yaml:"shell,omitempty"`
	ConfirmBeforeExecute bool   `yaml:"confirm_before_execute"`
}

// ActiveKey returns the API key for the currently selected provider.
func (c Config) ActiveKey() string {
	return c.APIKeys[c.Provider]
}

// ActiveModel returns the configured model for the active provider, falling
// back to the provider's default.
func (c Config) ActiveModel() string {
	if model, ok := c.Models[c.Provider]; ok && model != "" {
		return model
	}
	return c.Provider.DefaultModel()
}

// SetKey stores an API key for one provider without disturbing the others.
func (c *Config) SetKey(kind ProviderKind, key string) {
	if c.APIKeys == nil {
		c.APIKeys = make(map[ProviderKind]string)
	}
	c.APIKeys[kind] = key
}
