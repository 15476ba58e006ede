package domain

import "time"

// HistoryRecord captures executed or generated command metadata.
type HistoryRecord struct {
	Timestamp       time.Time    `json:"timestamp"`
	Prompt          string       `json:"prompt"`
	Command         string       `json:"command"`
	Provider        ProviderKind `json:"provider"`
	Executed        bool         `json:"executed"`
	Success         bool         `json:"success"`
	ExitCode        int          `json:"exit_code"`
	RiskLevel       RiskLevel    `json:"risk_level"`
	ExecutionTimeMS int64        `json:"execution_time_ms"`
}

// CacheEntry stores one cached provider response.
type CacheEntry struct {
	Key       string       `json:"key"`
	Command   string       `json:"command"`
	Provider  ProviderKind `json:"provider"`
	Model     string       `json:"model"`
	CreatedAt time.Time    `json:"created_at"`
}
