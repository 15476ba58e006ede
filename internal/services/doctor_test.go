package services

import (
	"context"
	"errors"
	"testing"

	"github.com/nlsh-dev/nlsh/internal/domain"
)

func TestDoctorReportsMissingConfig(t *testing.T) {
	svc := &DoctorService{
		Config: stubConfig{err: domain.ErrConfigMissing},
	}
	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Healthy() {
		t.Fatal("missing config must not be healthy")
	}
	if len(report.Checks) != 1 || report.Checks[0].Name != "Config file" {
		t.Fatalf("unexpected checks: %+v", report.Checks)
	}
}

func TestDoctorFlagsMissingKey(t *testing.T) {
	cfg := baseConfig()
	cfg.Provider = domain.ProviderOpenRouter // key never stored

	svc := &DoctorService{
		Config:   stubConfig{cfg: cfg},
		Security: stubSecurity{},
	}
	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	found := false
	for _, check := range report.Checks {
		if check.Name == "API key (openrouter)" {
			found = true
			if check.OK {
				t.Error("missing key check must not pass")
			}
			if check.Advice == "" {
				t.Error("missing key check should advise how to fix it")
			}
		}
	}
	if !found {
		t.Fatalf("no API key check in %+v", report.Checks)
	}
}

func TestDoctorGuardrailDisabled(t *testing.T) {
	cfg := baseConfig()
	cfg.Security.Enabled = false

	svc := &DoctorService{
		Config:   stubConfig{cfg: cfg},
		Security: stubSecurity{err: errors.New("must not be called")},
	}
	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, check := range report.Checks {
		if check.Name == "Guardrail" && check.OK {
			t.Error("disabled guardrail must be flagged")
		}
	}
}
