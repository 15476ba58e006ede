package assets

import (
	_ "embed"
)

// DefaultGuardrailYAML contains the embedded default guardrail rules, used
// when ~/.nlsh/guardrail.yaml does not exist.
//
//go:embed defaults/guardrail.yaml
var DefaultGuardrailYAML []byte
