// Package server wires the portfolio application: configuration, database,
// migrations, media host, services and the HTTP boundary, plus graceful
// shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/bibe1s/JRSolisPortfolio/internal/logging"
	"github.com/bibe1s/JRSolisPortfolio/internal/server/auth"
	"github.com/bibe1s/JRSolisPortfolio/internal/server/cache"
	"github.com/bibe1s/JRSolisPortfolio/internal/server/config"
	"github.com/bibe1s/JRSolisPortfolio/internal/server/httpapi"
	"github.com/bibe1s/JRSolisPortfolio/internal/server/mediahost"
	"github.com/bibe1s/JRSolisPortfolio/internal/server/migrations"
	"github.com/bibe1s/JRSolisPortfolio/internal/server/repositories/profile"
	"github.com/bibe1s/JRSolisPortfolio/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	api    *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewJSON()

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	// Explicit idempotent schema initialization, instead of lazy table
	// creation hidden inside the read path.
	if err := runMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	var profileCache cache.ProfileCache
	if cfg.RedisAddr != "" {
		profileCache = cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			TTL:      cfg.CacheTTL,
		})
	}

	host, err := mediahost.NewS3Host(ctx, mediahost.S3Config{
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		Bucket:        cfg.S3Bucket,
		Region:        cfg.S3Region,
		BaseEndpoint:  cfg.S3BaseEndpoint,
		PublicBaseURL: cfg.S3PublicBaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("media host init error: %w", err)
	}

	repo := profile.NewPostgresRepository(db)
	profiles := services.NewProfileService(repo, profileCache, logger)
	media := services.NewMediaService(host, logger)
	verifier := auth.NewVerifier([]byte(cfg.SecretKey), cfg.AdminEmail)

	api := httpapi.NewServer(cfg.EndpointAddr, verifier, profiles, media, logger)

	return &App{config: cfg, logger: logger, db: db, api: api}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.api.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
