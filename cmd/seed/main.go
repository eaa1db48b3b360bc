package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"senti/internal/catalog"
	"senti/internal/config"
	"senti/internal/db"
	apperrors "senti/internal/errors"
	"senti/internal/logging"
	"senti/internal/model"
	"senti/internal/repository"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:          "senti-seed",
	Short:        "Seed the MySQL catalog with the built-in demo data",
	SilenceUsage: true,
	RunE:         runSeed,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "senti.yaml", "path to the YAML config file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("starting seed")

	gormDB, err := db.NewMySQL(cfg.Catalog.MySQLDSN)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database migrations completed")

	creds, err := catalog.Credentials()
	if err != nil {
		return err
	}
	funding, err := catalog.Funding()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	added, skipped, err := seedCredentials(ctx, repository.NewSQLCredentialRepository(gormDB), creds)
	if err != nil {
		return err
	}
	logger.Info("credentials seeded", zap.Int("created", added), zap.Int("already_present", skipped))

	created, updated, err := seedFunding(ctx, repository.NewSQLFundingRepository(gormDB), funding)
	if err != nil {
		return err
	}
	logger.Info("funding seeded", zap.Int("created", created), zap.Int("updated", updated),
		zap.Int("total", created+updated))
	return nil
}

// seedCredentials records every demo credential, leaving existing emails untouched.
func seedCredentials(ctx context.Context, repo repository.CredentialRepository, creds []model.MockCredential) (added int, skipped int, err error) {
	for _, c := range creds {
		err := repo.Add(ctx, c.Identity(), c.Password)
		switch {
		case errors.Is(err, apperrors.ErrEmailAlreadyInUse):
			skipped++
		case err != nil:
			return added, skipped, fmt.Errorf("seed credential %s: %w", c.Email, err)
		default:
			added++
		}
	}
	return added, skipped, nil
}

type fundingUpserter interface {
	Upsert(ctx context.Context, item *model.CatalogItem) (bool, error)
}

// seedFunding creates new opportunities or overwrites the stored copies.
func seedFunding(ctx context.Context, repo fundingUpserter, items []model.CatalogItem) (created int, updated int, err error) {
	for i := range items {
		isNew, err := repo.Upsert(ctx, &items[i])
		if err != nil {
			return created, updated, err
		}
		if isNew {
			created++
		} else {
			updated++
		}
	}
	return created, updated, nil
}
