package app

import (
	"context"
	"errors"

	"github.com/nlsh-dev/nlsh/internal/domain"
	"github.com/nlsh-dev/nlsh/internal/infrastructure/ai"
	"github.com/nlsh-dev/nlsh/internal/infrastructure/cache"
	"github.com/nlsh-dev/nlsh/internal/infrastructure/config"
	contextcollector "github.com/nlsh-dev/nlsh/internal/infrastructure/context"
	"github.com/nlsh-dev/nlsh/internal/infrastructure/executor"
	"github.com/nlsh-dev/nlsh/internal/infrastructure/extract"
	"github.com/nlsh-dev/nlsh/internal/infrastructure/history"
	"github.com/nlsh-dev/nlsh/internal/infrastructure/security"
	"github.com/nlsh-dev/nlsh/internal/pkg/logger"
	"github.com/nlsh-dev/nlsh/internal/ports"
	"github.com/nlsh-dev/nlsh/internal/services"
)

// Container wires application services to infrastructure adapters.
type Container struct {
	Session *services.SessionService
	Doctor  *services.DoctorService
	Config  *config.FileStore
	History ports.HistoryRepository
	Cache   ports.CacheRepository
	Ring    *history.Ring
	Logger  ports.Logger
}

// BuildContainer constructs the dependency graph. A missing config file is
// not an error here: the interactive loop runs first-time setup for it.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	store := config.NewFileStore("")

	rulesFile := ""
	if cfg, err := store.Load(ctx); err == nil {
		rulesFile = cfg.Security.RulesFile
	} else if !errors.Is(err, domain.ErrConfigMissing) {
		return nil, err
	}

	guardrail, err := security.NewGuardrail(rulesFile)
	if err != nil {
		// fall back to the embedded rules rather than refusing to start
		if guardrail, err = security.NewGuardrail(""); err != nil {
			return nil, err
		}
	}

	log := logger.NewStd(verbose)
	ring := history.NewRing()
	historyStore := history.NewSQLiteStore()
	cacheStore := cache.NewFileCache()

	session := &services.SessionService{
		Config:    store,
		Collector: contextcollector.NewBasicCollector(ring),
		Factory:   ai.NewFactory(),
		Extractor: extract.Extractor{},
		Security:  guardrail,
		Executor:  executor.NewLocalExecutor(""),
		History:   historyStore,
		Cache:     cacheStore,
		Recorder:  ring,
		Logger:    log,
	}

	doctor := &services.DoctorService{
		Config:   store,
		Security: guardrail,
	}

	return &Container{
		Session: session,
		Doctor:  doctor,
		Config:  store,
		History: historyStore,
		Cache:   cacheStore,
		Ring:    ring,
		Logger:  log,
	}, nil
}
