package domain

import "context"

// PromptRequest captures one natural-language request from the REPL.
type PromptRequest struct {
	Context context.Context
	Prompt  string
	// Direct bypasses the provider and extractor: the prompt is treated as
	// a literal shell command (the !cmd path).
	Direct bool
}

// PromptResponse is the canonical response propagated back to the loop.
type PromptResponse struct {
	Command         string
	NaturalLanguage string
	Provider        ProviderKind
	RiskAssessment  RiskAssessment
	ExecutionResult *ExecutionResult
	FromCache       bool
}

// ExecutionResult wraps details from the command executor.
type ExecutionResult struct {
	Ran        bool
	Stdout     string
	Stderr     string
	ExitCode   int
	DurationMS int64
	Err        error
}

// ContextSnapshot describes the environment a provider prompt is built from.
type ContextSnapshot struct {
	WorkingDir string
	Shell      string
	OS         string
	// RecentHistory is the formatted tail of the context ring, giving the
	// model enough to resolve follow-ups like "do that again".
	RecentHistory string
}
