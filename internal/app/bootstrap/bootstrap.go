package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	catalog "ratehub/contexts/content-catalog/catalog-service"
	catalogpostgres "ratehub/contexts/content-catalog/catalog-service/adapters/postgres"
	accounts "ratehub/contexts/identity-access/accounts-service"
	accountspostgres "ratehub/contexts/identity-access/accounts-service/adapters/postgres"
	authorization "ratehub/contexts/identity-access/authorization-service"
	signup "ratehub/contexts/identity-access/signup-service"
	jwtadapter "ratehub/contexts/identity-access/signup-service/adapters/jwt"
	signuppostgres "ratehub/contexts/identity-access/signup-service/adapters/postgres"
	signupworkers "ratehub/contexts/identity-access/signup-service/application/workers"
	review "ratehub/contexts/review-engagement/review-service"
	reviewpostgres "ratehub/contexts/review-engagement/review-service/adapters/postgres"
	"ratehub/internal/platform/config"
	"ratehub/internal/platform/db"
	"ratehub/internal/platform/httpserver"
	"ratehub/internal/platform/mailer"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	mail     *mailer.Queue
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	janitor      signupworkers.CodeJanitor
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}
	// Tokens signed under a fallback secret would be forgeable.
	if strings.TrimSpace(cfg.TokenSecret) == "" {
		return nil, errors.New("TOKEN_SECRET is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	accountsRepo := accountspostgres.NewRepository(pg.DB, logger)
	signupRepo := signuppostgres.NewRepository(pg.DB, logger)
	catalogRepo := catalogpostgres.NewRepository(pg.DB, logger)
	reviewRepo := reviewpostgres.NewRepository(pg.DB, logger)
	for _, migrate := range []func() error{
		accountsRepo.AutoMigrate,
		signupRepo.AutoMigrate,
		catalogRepo.AutoMigrate,
		reviewRepo.AutoMigrate,
	} {
		if err := migrate(); err != nil {
			_ = pg.Close()
			return nil, err
		}
	}

	mail := mailer.NewQueue(cfg.MailFrom, cfg.MailQueueSize, logger)
	tokens := jwtadapter.NewIssuer(cfg.TokenSecret, cfg.TokenTTL)

	signupModule := signup.NewModule(signup.Dependencies{
		Accounts: signupRepo,
		Codes:    signupRepo,
		CodeGen:  signuppostgres.RandomCodeGenerator{},
		Notifier: mail,
		Tokens:   tokens,
		Clock:    signuppostgres.SystemClock{},
		IDGen:    signuppostgres.UUIDGenerator{},
		Logger:   logger,
	})

	accountsModule := accounts.NewModule(accounts.Dependencies{
		Repository: accountsRepo,
		Clock:      accountspostgres.SystemClock{},
		IDGen:      accountspostgres.UUIDGenerator{},
		Logger:     logger,
	})

	catalogModule := catalog.NewModule(catalog.Dependencies{
		Repository: catalogRepo,
		Ratings:    reviewRepo,
		Clock:      catalogpostgres.SystemClock{},
		IDGen:      catalogpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	reviewModule := review.NewModule(review.Dependencies{
		Repository: reviewRepo,
		Titles:     catalogRepo,
		Clock:      reviewpostgres.SystemClock{},
		IDGen:      reviewpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	authzModule := authorization.NewModule(authorization.Dependencies{
		Logger: logger,
	})

	server := httpserver.New(httpserver.Modules{
		Signup:        signupModule,
		Accounts:      accountsModule,
		Catalog:       catalogModule,
		Reviews:       reviewModule,
		Authorization: authzModule,
	}, tokens, logger, normalizeAddr(cfg.HTTPPort))

	return &APIApp{
		server:   server,
		postgres: pg,
		mail:     mail,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	signupRepo := signuppostgres.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		janitor: signupworkers.CodeJanitor{
			Codes:  signupRepo,
			Clock:  signuppostgres.SystemClock{},
			TTL:    24 * time.Hour,
			Logger: logger,
		},
		pollInterval: time.Minute,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(ctx context.Context) error {
	// Mail "delivery" logs the outbound message until SMTP transport lands.
	a.mail.Consume(ctx, func(_ context.Context, message mailer.Message) error {
		a.logger.Info("confirmation mail delivered",
			"event", "mail_delivered",
			"module", "internal/app/bootstrap",
			"layer", "platform",
			"to", message.To,
			"username", message.Username,
		)
		return nil
	})

	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.janitor.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
