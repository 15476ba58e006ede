package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureDirectoryPermissions is the permission for the config dir (rwx------)
	SecureDirectoryPermissions = 0o700
	// SecureFilePermissions is the permission for the credential file (rw-------)
	SecureFilePermissions = 0o600
)

// Timeout constants
const (
	// DefaultProviderTimeout bounds one provider round trip.
	DefaultProviderTimeout = 30 * time.Second
)

// Context ring limits, matching the prompt-context budget the providers see.
const (
	// MaxContextEntries is how many recent exchanges the ring retains.
	MaxContextEntries = 10
	// MaxContextChars caps the combined command+output size of the ring.
	MaxContextChars = 4000
	// MaxCapturedOutput truncates each captured command output for context.
	MaxCapturedOutput = 500
	// ContextEntriesInPrompt is how many ring entries are rendered into
	// the provider prompt.
	ContextEntriesInPrompt = 5
)

// History and cache limits.
const (
	// DefaultHistoryLimit is the default number of history records shown.
	DefaultHistoryLimit = 20
	// DefaultMaxCacheEntries is the maximum number of cache entries kept.
	DefaultMaxCacheEntries = 100
	// DefaultCacheTTL bounds how long a cached response stays valid.
	DefaultCacheTTL = time.Hour
)
