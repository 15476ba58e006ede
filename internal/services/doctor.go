package services

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/nlsh-dev/nlsh/internal/domain"
	"github.com/nlsh-dev/nlsh/internal/pkg/filesystem"
	"github.com/nlsh-dev/nlsh/internal/ports"
)

// DoctorService runs environment diagnostics for the doctor subcommand.
type DoctorService struct {
	Config   ports.CredentialStore
	Security ports.SecurityService
}

// Run executes all checks and returns a report. The report is advisory;
// Run itself fails only when it cannot even attempt the checks.
func (s *DoctorService) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.Config.Load(ctx)
	if err != nil {
		checks = append(checks, domain.HealthCheck{
			Name:   "Config file",
			Detail: fmt.Sprintf("not loadable at %s: %v", s.Config.Path(), err),
			Advice: "run nlsh once to complete first-time setup",
		})
		return domain.HealthReport{Checks: checks}, nil
	}
	checks = append(checks, pass("Config file", s.Config.Path()))

	checks = append(checks, s.keyCheck(cfg))
	checks = append(checks, filePermissionCheck(s.Config.Path()))
	checks = append(checks, shellCheck(cfg))
	checks = append(checks, s.guardrailCheck(cfg))

	return domain.HealthReport{Checks: checks}, nil
}

func (s *DoctorService) keyCheck(cfg domain.Config) domain.HealthCheck {
	name := fmt.Sprintf("API key (%s)", cfg.Provider)
	if cfg.ActiveKey() == "" {
		return domain.HealthCheck{
			Name:   name,
			Detail: "no key stored for the active provider",
			Advice: "use !api inside the session, see " + cfg.Provider.KeySetupHint(),
		}
	}
	return pass(name, fmt.Sprintf("stored, model %s", cfg.ActiveModel()))
}

func filePermissionCheck(path string) domain.HealthCheck {
	info, err := os.Stat(path)
	if err != nil {
		return domain.HealthCheck{Name: "Config permissions", Detail: err.Error()}
	}
	if perm := info.Mode().Perm(); perm != domain.SecureFilePermissions {
		return domain.HealthCheck{
			Name:   "Config permissions",
			Detail: fmt.Sprintf("mode %04o, want %04o", perm, domain.SecureFilePermissions),
			Advice: fmt.Sprintf("chmod 600 %s", path),
		}
	}
	return pass("Config permissions", "0600")
}

func shellCheck(cfg domain.Config) domain.HealthCheck {
	shell := cfg.Execution.Shell
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "sh"
	}
	if _, err := exec.LookPath(shell); err != nil {
		return domain.HealthCheck{
			Name:   "Shell",
			Detail: fmt.Sprintf("%s not found on PATH", shell),
			Advice: "set execution.shell in the config to an installed shell",
		}
	}
	return pass("Shell", shell)
}

func (s *DoctorService) guardrailCheck(cfg domain.Config) domain.HealthCheck {
	if !cfg.Security.Enabled {
		return domain.HealthCheck{
			Name:   "Guardrail",
			Detail: "disabled in config",
			Advice: "set security.enabled: true to screen generated commands",
		}
	}
	if cfg.Security.RulesFile != "" {
		expanded := filesystem.ExpandHome(cfg.Security.RulesFile)
		if _, err := os.Stat(expanded); err != nil {
			return domain.HealthCheck{
				Name:   "Guardrail",
				Detail: fmt.Sprintf("rules file missing at %s", expanded),
				Advice: "remove security.rules_file to use the built-in rules",
			}
		}
	}
	if s.Security != nil {
		if _, err := s.Security.Evaluate("ls"); err != nil {
			return domain.HealthCheck{Name: "Guardrail", Detail: err.Error()}
		}
	}
	return pass("Guardrail", "rules loaded")
}

func pass(name, detail string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, OK: true, Detail: detail}
}
