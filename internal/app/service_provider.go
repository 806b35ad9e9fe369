package app

import (
	"context"
	"errors"
	gameAPI "last_queue/internal/api/game"
	"last_queue/internal/config"
	"last_queue/internal/config/env"
	"last_queue/internal/logger"
	"last_queue/internal/middleware"
	"last_queue/internal/repository"
	"last_queue/internal/repository/ledger_repo"
	"last_queue/internal/repository/ledger_stats_repo"
	"last_queue/internal/repository/session_repo"
	"last_queue/internal/service"
	"last_queue/internal/service/game"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ServiceProvider struct {
	// Logging
	logCfg config.LogConfig
	logger *log.Logger

	//TXManager
	txManager trm.Manager

	// Database
	pgConfig     config.PGConfig
	pgConfigured bool
	dbClient     *pgxpool.Pool

	// Game bits
	sessionCfg   config.SessionConfig
	tokenCfg     config.TokenConfig
	seedCfg      config.SeedConfig
	narrativeCfg config.NarrativeConfig
	sessionRepo  repository.SessionRepository
	ledgerRepo   repository.LedgerRepository
	gameServ     service.GameService
	gameHand     *gameAPI.Handler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) LogCfg() config.LogConfig {
	if sp.logCfg == nil {
		cfg, err := env.NewLogConfig()
		if err != nil {
			panic("failed to get log config: " + err.Error())
		}
		sp.logCfg = cfg
	}
	return sp.logCfg
}

func (sp *ServiceProvider) Logger() *log.Logger {
	if sp.logger == nil {
		l, err := logger.New(sp.LogCfg())
		if err != nil {
			panic("failed to create logger: " + err.Error())
		}
		sp.logger = l
	}
	return sp.logger
}

// PgConfig возвращает nil, если PG_DSN не задан: тогда журнал концовок хранится в памяти
func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil && !sp.pgConfigured {
		cfg, err := env.NewPGConfig()
		if err != nil && !errors.Is(err, env.ErrPGNotConfigured) {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
		sp.pgConfigured = true
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		err = ledger_repo.EnsureSchema(ctx, dbc)
		if err != nil {
			panic("failed to prepare ledger schema: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		if sp.PgConfig() == nil {
			sp.txManager = memoryTxManager{}
			return sp.txManager
		}

		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) SessionCfg() config.SessionConfig {
	if sp.sessionCfg == nil {
		cfg, err := env.NewSessionConfig()
		if err != nil {
			panic("failed to get session config: " + err.Error())
		}
		sp.sessionCfg = cfg
	}
	return sp.sessionCfg
}

func (sp *ServiceProvider) TokenCfg() config.TokenConfig {
	if sp.tokenCfg == nil {
		cfg, err := env.NewTokenConfig()
		if err != nil {
			panic("failed to get token config: " + err.Error())
		}
		sp.tokenCfg = cfg
	}
	return sp.tokenCfg
}

func (sp *ServiceProvider) SeedCfg() config.SeedConfig {
	if sp.seedCfg == nil {
		cfg, err := env.NewSeedConfig()
		if err != nil {
			panic("failed to get seed config: " + err.Error())
		}
		sp.seedCfg = cfg
	}
	return sp.seedCfg
}

func (sp *ServiceProvider) NarrativeCfg() config.NarrativeConfig {
	if sp.narrativeCfg == nil {
		cfg, err := env.NewNarrativeConfig()
		if err != nil {
			panic("failed to get narrative config: " + err.Error())
		}
		sp.narrativeCfg = cfg
	}
	return sp.narrativeCfg
}

func (sp *ServiceProvider) SessionRepository() repository.SessionRepository {
	if sp.sessionRepo == nil {
		sp.sessionRepo = session_repo.NewSessionRepository(sp.SessionCfg().IdleTTL())
	}
	return sp.sessionRepo
}

func (sp *ServiceProvider) LedgerRepository(ctx context.Context) repository.LedgerRepository {
	if sp.ledgerRepo == nil {
		if sp.PgConfig() == nil {
			sp.Logger().Warn("PG_DSN not set, ending ledger is kept in memory")
			sp.ledgerRepo = ledger_stats_repo.NewLedgerStatsRepository()
		} else {
			sp.ledgerRepo = ledger_repo.NewLedgerRepository(sp.DBClient(ctx))
		}
	}
	return sp.ledgerRepo
}

func (sp *ServiceProvider) GameService(ctx context.Context) service.GameService {
	if sp.gameServ == nil {
		sp.gameServ = game.NewGameService(
			sp.SessionRepository(),
			sp.LedgerRepository(ctx),
			sp.TXManager(ctx),
			sp.TokenCfg(),
			sp.SeedCfg(),
			sp.Logger(),
		)
	}
	return sp.gameServ
}

func (sp *ServiceProvider) GameHandler(ctx context.Context) *gameAPI.Handler {
	if sp.gameHand == nil {
		sp.gameHand = gameAPI.NewHandler(gameAPI.HandlerDeps{
			Serv:      sp.GameService(ctx),
			Narrative: sp.NarrativeCfg(),
			TokenCfg:  sp.TokenCfg(),
			Log:       sp.Logger(),
		})
	}
	return sp.gameHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		r.Use(chimw.RequestID)
		r.Use(chimw.RealIP)
		r.Use(middleware.RequestLogger(sp.Logger()))
		r.Use(chimw.Recoverer)

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		// Game endpoints
		sp.GameHandler(ctx).Mount(r, middleware.RunToken(sp.TokenCfg().RunTokenSecretKey()))

		sp.router = r
	}

	return sp.router
}

// Close освобождает пул соединений, если он создавался
func (sp *ServiceProvider) Close() {
	if sp.dbClient != nil {
		sp.dbClient.Close()
	}
}
