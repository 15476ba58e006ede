package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nlsh-dev/nlsh/internal/domain"
	"github.com/nlsh-dev/nlsh/internal/ports"
)

// SessionService orchestrates one request/confirm/execute cycle. The
// interactive loop calls Run for every line the user enters; direct
// commands (the !cmd path and inputs that already look like shell) skip
// the provider and extractor entirely.
type SessionService struct {
	Config    ports.CredentialStore
	Collector ports.ContextCollector
	Factory   ports.ProviderFactory
	Extractor ports.CommandExtractor
	Security  ports.SecurityService
	Executor  ports.CommandExecutor
	Prompter  ports.ConfirmationPrompter
	History   ports.HistoryRepository
	Cache     ports.CacheRepository
	Recorder  ports.ContextRecorder
	Logger    ports.Logger
}

// Run processes a single prompt end to end.
func (s *SessionService) Run(req domain.PromptRequest) (domain.PromptResponse, error) {
	if s.Config == nil || s.Collector == nil || s.Factory == nil || s.Extractor == nil ||
		s.Security == nil || s.Executor == nil || s.Logger == nil {
		return domain.PromptResponse{}, errors.New("services.SessionService dependencies not satisfied")
	}

	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := s.Config.Load(ctx)
	if err != nil {
		return domain.PromptResponse{}, fmt.Errorf("load config: %w", err)
	}

	resp := domain.PromptResponse{
		NaturalLanguage: req.Prompt,
		Provider:        cfg.Provider,
	}

	if req.Direct {
		resp.Command = strings.TrimSpace(req.Prompt)
		resp.NaturalLanguage = ""
	} else {
		command, fromCache, err := s.generate(ctx, cfg, req)
		if err != nil {
			return resp, err
		}
		resp.Command = command
		resp.FromCache = fromCache
	}

	risk, err := s.evaluate(cfg, resp.Command)
	if err != nil {
		return resp, err
	}
	resp.RiskAssessment = risk

	run, err := s.shouldExecute(cfg, risk, resp.Command, req.Direct)
	if err != nil {
		return resp, err
	}
	if !run {
		s.record(cfg, req, resp, nil)
		return resp, nil
	}

	result, err := s.Executor.Execute(ctx, resp.Command)
	resp.ExecutionResult = &result
	if err != nil {
		return resp, fmt.Errorf("execute: %w", err)
	}

	if s.Recorder != nil {
		s.Recorder.Add(resp.Command, result.Stdout+result.Stderr)
	}
	s.record(cfg, req, resp, &result)
	return resp, nil
}

// generate asks the active provider for a command, consulting the cache
// first. A missing API key surfaces as ErrConfigMissing so the loop can
// steer the user to !api.
func (s *SessionService) generate(ctx context.Context, cfg domain.Config, req domain.PromptRequest) (string, bool, error) {
	apiKey := cfg.ActiveKey()
	if apiKey == "" {
		return "", false, fmt.Errorf("no API key configured for %s: %w", cfg.Provider, domain.ErrConfigMissing)
	}

	snapshot, err := s.Collector.Collect(ctx)
	if err != nil {
		return "", false, fmt.Errorf("collect context: %w", err)
	}

	model := cfg.ActiveModel()
	var cacheKey string
	if cfg.Preferences.CacheEnabled && s.Cache != nil {
		cacheKey = s.Cache.Key(cfg.Provider, model, req.Prompt, snapshot.WorkingDir)
		if entry, ok, err := s.Cache.Get(cacheKey); err == nil && ok {
			s.Logger.Debug("cache hit", map[string]interface{}{"provider": string(cfg.Provider)})
			return entry.Command, true, nil
		}
	}

	provider, err := s.Factory.ForKind(cfg.Provider, apiKey)
	if err != nil {
		return "", false, fmt.Errorf("provider init: %w", err)
	}

	s.Logger.Debug("calling provider", map[string]interface{}{
		"provider": string(cfg.Provider),
		"model":    model,
	})

	raw, err := provider.Generate(ctx, ports.ProviderRequest{
		Prompt:  req.Prompt,
		Model:   model,
		Context: snapshot,
	})
	if err != nil {
		return "", false, err
	}

	command, err := s.Extractor.Extract(raw)
	if err != nil {
		return "", false, err
	}

	if cacheKey != "" {
		if err := s.Cache.Set(domain.CacheEntry{
			Key:       cacheKey,
			Command:   command,
			Provider:  cfg.Provider,
			Model:     model,
			CreatedAt: time.Now(),
		}); err != nil {
			s.Logger.Warn("cache write failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return command, false, nil
}

func (s *SessionService) evaluate(cfg domain.Config, command string) (domain.RiskAssessment, error) {
	if !cfg.Security.Enabled {
		return domain.RiskAssessment{Level: domain.RiskSafe, Action: domain.ActionAllow}, nil
	}
	risk, err := s.Security.Evaluate(command)
	if err != nil {
		return domain.RiskAssessment{}, fmt.Errorf("security evaluate: %w", err)
	}
	return risk, nil
}

// shouldExecute resolves guardrail action plus user preference into a
// yes/no. Direct commands were typed by the user, so only the guardrail
// can force a prompt for them.
func (s *SessionService) shouldExecute(cfg domain.Config, risk domain.RiskAssessment, command string, direct bool) (bool, error) {
	if risk.Action == domain.ActionBlock {
		return false, fmt.Errorf("command blocked by guardrail: %s", command)
	}

	needsPrompt := risk.Action == domain.ActionConfirm || risk.Action == domain.ActionExplicitConfirm
	if !direct && cfg.Execution.ConfirmBeforeExecute {
		needsPrompt = true
	}
	if !needsPrompt {
		return true, nil
	}
	if s.Prompter == nil || !s.Prompter.Enabled() {
		return false, nil
	}
	return s.Prompter.Confirm(risk.Action, risk.Level, command, risk.Reasons)
}

func (s *SessionService) record(cfg domain.Config, req domain.PromptRequest, resp domain.PromptResponse, result *domain.ExecutionResult) {
	if !cfg.Preferences.HistoryEnabled || s.History == nil {
		return
	}
	record := domain.HistoryRecord{
		Timestamp: time.Now(),
		Prompt:    resp.NaturalLanguage,
		Command:   resp.Command,
		Provider:  cfg.Provider,
		RiskLevel: resp.RiskAssessment.Level,
	}
	if result != nil {
		record.Executed = result.Ran
		record.Success = result.Ran && result.ExitCode == 0
		record.ExitCode = result.ExitCode
		record.ExecutionTimeMS = result.DurationMS
	}
	if err := s.History.Save(record); err != nil {
		s.Logger.Warn("history save failed", map[string]interface{}{"error": err.Error()})
	}
}
