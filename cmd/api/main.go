// @title                       Financy API
// @version                     1.0
// @description                 Personal finance backend for students: expenses, categories and monthly budgets.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/Shivon404/financy-backend/internal/api"
	"github.com/Shivon404/financy-backend/internal/api/handler"
	"github.com/Shivon404/financy-backend/internal/core/ports"
	"github.com/Shivon404/financy-backend/internal/core/service"
	"github.com/Shivon404/financy-backend/internal/infrastructure/db/mongo"
	"github.com/Shivon404/financy-backend/internal/infrastructure/db/redis"
	"github.com/Shivon404/financy-backend/internal/infrastructure/db/sqldb"
	"github.com/Shivon404/financy-backend/internal/pkg/config"
	"github.com/Shivon404/financy-backend/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{})
		boot.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "financy-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
	log.Info().Msg("server stopped gracefully")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	dbCfg := sqldb.Config{Driver: cfg.DB.Driver, DSN: cfg.DB.DSN}

	if err := sqldb.RunMigrations(dbCfg); err != nil {
		return err
	}
	log.Info().Str("driver", cfg.DB.Driver).Msg("migrations applied")

	gw, err := sqldb.Connect(ctx, dbCfg, logger.Component("sqldb"))
	if err != nil {
		return err
	}
	defer gw.Close()

	checks := map[string]handler.HealthCheck{"sql": gw.Ping}

	// Redis and Mongo are optional. The interfaces stay nil when disabled.
	var idem service.IdempotencyChecker
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		idem = redis.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis idempotency enabled")
	} else {
		log.Info().Msg("REDIS_ADDR not set, idempotency keys are ignored")
	}

	var audit ports.AuditRepository
	if cfg.Mongo.URI != "" {
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(dctx)
		}()
		repo := mongo.NewAuditRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("audit index creation failed")
		}
		audit = repo
		checks["mongodb"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongo audit trail enabled")
	} else {
		log.Info().Msg("MONGO_URI not set, audit trail disabled")
	}

	users := sqldb.NewUserRepository(gw)
	categories := sqldb.NewCategoryRepository(gw)
	expenses := sqldb.NewExpenseRepository(gw)
	budgets := sqldb.NewBudgetRepository(gw)

	e := api.NewRouter(api.Deps{
		Auth:         service.NewAuthService(users, audit, cfg.JWTSecret, cfg.TokenTTL, logger.Component("auth")),
		Accounts:     service.NewAccountService(users, audit, logger.Component("accounts")),
		Categories:   service.NewCategoryService(categories, logger.Component("categories")),
		Expenses:     service.NewExpenseService(expenses, categories, users, idem, logger.Component("expenses")),
		Budgets:      service.NewBudgetService(budgets, categories, users, logger.Component("budgets")),
		HealthChecks: checks,
		JWTSecret:    cfg.JWTSecret,
		Log:          logger.Component("http"),
	})
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 10 * time.Second
	e.Server.IdleTimeout = 60 * time.Second

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting financy api")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
