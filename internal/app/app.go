package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/rotodraft/rotodraft/internal/config"
	"github.com/rotodraft/rotodraft/internal/domain/draft"
	"github.com/rotodraft/rotodraft/internal/domain/player"
	"github.com/rotodraft/rotodraft/internal/infrastructure/repository/memory"
	"github.com/rotodraft/rotodraft/internal/infrastructure/repository/postgres"
	"github.com/rotodraft/rotodraft/internal/interfaces/httpapi"
	"github.com/rotodraft/rotodraft/internal/platform/cache"
	idgen "github.com/rotodraft/rotodraft/internal/platform/id"
	"github.com/rotodraft/rotodraft/internal/usecase"
)

// App owns the wired service graph and the HTTP server.
type App struct {
	Server    *http.Server
	Valuation *usecase.ValuationService

	cfg    config.Config
	db     *sqlx.DB
	logger *slog.Logger
}

func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		playerRepo player.Repository
		draftRepo  draft.Repository
		db         *sqlx.DB
	)

	if strings.TrimSpace(cfg.DBURL) == "" {
		var seed []player.Player
		if cfg.SeedDemoPlayers {
			seed = memory.SeedPlayers()
		}
		playerRepo = memory.NewPlayerRepository(seed)
		draftRepo = memory.NewDraftRepository()
		logger.Info("using in-memory repositories", "seeded_players", len(seed))
	} else {
		var err error
		db, err = openDB(cfg)
		if err != nil {
			return nil, err
		}
		playerRepo = postgres.NewPlayerRepository(db)
		draftRepo = postgres.NewDraftRepository(db)
		logger.Info("using postgres repositories", "database", dbNameFromURL(cfg.DBURL))
	}

	valuationSvc := usecase.NewValuationService(playerRepo, draftRepo, logger)
	playerSvc := usecase.NewPlayerService(playerRepo, logger)
	draftSvc := usecase.NewDraftService(playerRepo, draftRepo, valuationSvc, idgen.NewRandomGenerator(), logger)

	var standingsCache *cache.Store
	if cfg.CacheEnabled {
		standingsCache = cache.NewStore(cfg.CacheTTL)
	}
	needsSvc := usecase.NewNeedsService(playerRepo, draftRepo, standingsCache, logger)

	handler := httpapi.NewHandler(cfg.League, playerSvc, draftSvc, valuationSvc, needsSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{
		Server:    server,
		Valuation: valuationSvc,
		cfg:       cfg,
		db:        db,
		logger:    logger,
	}, nil
}

// WarmValuations runs a full revaluation so dollar values exist before the
// first request arrives.
func (a *App) WarmValuations(ctx context.Context) error {
	updated, err := a.Valuation.Recalculate(ctx, a.cfg.League, usecase.ScopeFull)
	if err != nil {
		return err
	}
	a.logger.Info("initial valuation complete", "players_updated", updated)
	return nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
