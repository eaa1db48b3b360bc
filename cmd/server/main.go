package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "senti/docs" // swagger docs

	"senti/internal/auth"
	"senti/internal/cache"
	"senti/internal/catalog"
	"senti/internal/config"
	"senti/internal/db"
	"senti/internal/handler"
	"senti/internal/logging"
	"senti/internal/repository"
	"senti/internal/router"
	"senti/internal/service"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:          "senti-server",
	Short:        "Senti platform backend",
	Long:         "Serves the Senti session, navigation gate and listings over HTTP.",
	SilenceUsage: true,
	RunE:         runServer,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "senti.yaml", "path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
}

// @title Senti API
// @version 1.0
// @description Session, navigation gate and listings for the Senti social-entrepreneur platform.
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slot, closeSlot, err := newSlot(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeSlot()

	var codec auth.IdentityCodec = auth.JSONCodec{}
	if cfg.Session.SigningKey != "" {
		codec = auth.NewSignedCodec(cfg.Session.SigningKey)
	}

	credentials, funding, err := newRepositories(cfg, logger)
	if err != nil {
		return err
	}
	directory, err := newDirectory()
	if err != nil {
		return err
	}

	// Initialize services
	sessionService := service.NewSessionService(ctx, credentials, slot, codec, logger)
	pageService := service.NewPageService(funding, directory, logger)

	// Initialize handlers
	sessionHandler := handler.NewSessionHandler(sessionService)
	pageHandler := handler.NewPageHandler(pageService, sessionService, cfg.Session.Backend)
	listingHandler := handler.NewListingHandler(pageService)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, logger, sessionService, sessionHandler, pageHandler, listingHandler)

	logger.Info("swagger documentation available", zap.String("url", swaggerURL(cfg)))

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.ServerPort
		logger.Info("server starting", zap.String("addr", addr), zap.String("session_backend", cfg.Session.Backend),
			zap.String("catalog_source", cfg.Catalog.Source))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server start: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("server shutting down")
	return e.Shutdown(shutdownCtx)
}

func newSlot(ctx context.Context, cfg *config.Config, logger *zap.Logger) (auth.Slot, func(), error) {
	switch cfg.Session.Backend {
	case config.BackendMemory:
		return auth.NewMemorySlot(), func() {}, nil
	case config.BackendFile:
		slot := auth.NewFileSlot(cfg.Session.Dir)
		logger.Debug("session slot", zap.String("path", slot.Path()))
		return slot, func() {}, nil
	case config.BackendRedis:
		client := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := client.Ping(ctx); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("redis %s: %w", cfg.Redis.Addr, err)
		}
		return auth.NewRedisSlot(client, cfg.Session.KeyPrefix), func() { client.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
}

func newRepositories(cfg *config.Config, logger *zap.Logger) (repository.CredentialRepository, repository.FundingRepository, error) {
	if cfg.Catalog.Source == config.SourceMySQL {
		gormDB, err := db.NewMySQL(cfg.Catalog.MySQLDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("database init: %w", err)
		}
		if err := db.Migrate(gormDB); err != nil {
			return nil, nil, fmt.Errorf("auto-migrate: %w", err)
		}
		logger.Info("catalog loaded from mysql")
		return repository.NewSQLCredentialRepository(gormDB), repository.NewSQLFundingRepository(gormDB), nil
	}

	creds, err := catalog.Credentials()
	if err != nil {
		return nil, nil, err
	}
	funding, err := catalog.Funding()
	if err != nil {
		return nil, nil, err
	}
	logger.Info("catalog loaded from embedded data", zap.Int("credentials", len(creds)), zap.Int("funding", len(funding)))
	return repository.NewMemoryCredentialRepository(creds), repository.NewMemoryFundingRepository(funding), nil
}

func newDirectory() (repository.DirectoryRepository, error) {
	events, err := catalog.Events()
	if err != nil {
		return nil, err
	}
	resources, err := catalog.Resources()
	if err != nil {
		return nil, err
	}
	mentors, err := catalog.Mentors()
	if err != nil {
		return nil, err
	}
	return repository.NewMemoryDirectoryRepository(events, resources, mentors), nil
}

func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return host + "/swagger/index.html"
}
