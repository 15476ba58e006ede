package contextcollector

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"github.com/nlsh-dev/nlsh/internal/domain"
	"github.com/nlsh-dev/nlsh/internal/infrastructure/history"
	"github.com/nlsh-dev/nlsh/internal/ports"
)

// BasicCollector snapshots the environment the prompt builder needs:
// working directory, shell, OS name, and the recent interaction ring.
type BasicCollector struct {
	ring *history.Ring
}

func NewBasicCollector(ring *history.Ring) *BasicCollector {
	return &BasicCollector{ring: ring}
}

// Collect gathers the pieces that feed the system prompt.
func (c *BasicCollector) Collect(ctx context.Context) (domain.ContextSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.ContextSnapshot{}, err
	}
	wd, _ := os.Getwd()
	snapshot := domain.ContextSnapshot{
		WorkingDir: wd,
		Shell:      detectShell(),
		OS:         osName(),
	}
	if c.ring != nil {
		snapshot.RecentHistory = c.ring.Format()
	}
	return snapshot, nil
}

func detectShell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return filepath.Base(shell)
	}
	return "sh"
}

func osName() string {
	if runtime.GOOS == "darwin" {
		return "macOS"
	}
	return "Linux"
}

var _ ports.ContextCollector = (*BasicCollector)(nil)
