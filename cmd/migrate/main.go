package main

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/platform/config"
	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/platform/logging"
	"github.com/rs/zerolog"
)

// seedMigrationsTable はシードの適用履歴を保持するテーブルです。スキーマのバージョンとは独立して管理します。
const seedMigrationsTable = "seed_migrations"

func main() {
	var (
		configPath    = flag.String("config", "", "path to config file (defaults to CONFIG_PATH env or assets/local.yaml)")
		migrationsDir = flag.String("dir", "assets/migrations", "directory containing migration files")
		seedsDir      = flag.String("seeds", "assets/seeds", "directory containing seed files (used by the seed action)")
	)
	flag.Parse()

	action := "up"
	if flag.NArg() > 0 {
		action = flag.Arg(0)
	}

	cfgPath := config.EffectivePath(*configPath)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		bootstrap := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		bootstrap.Fatal().Err(err).Str("path", cfgPath).Msg("failed to load config")
	}

	logger := logging.Component(logging.New(cfg.Logging, os.Stderr), "migrate")

	requested := action
	dir, dsn := *migrationsDir, cfg.Database.DSN()
	if action == "seed" {
		dir = *seedsDir
		dsn, err = withMigrationsTable(dsn, seedMigrationsTable)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to build seed dsn")
		}
		action = "up"
	}

	if err := runMigration(logger, action, dir, dsn); err != nil {
		logger.Fatal().Err(err).Str("action", action).Str("dir", dir).Msg("migration failed")
	}

	logger.Info().Str("action", requested).Str("dir", dir).Msg("migration completed")
}

// withMigrationsTable は golang-migrate の x-migrations-table パラメータを DSN に付与します。
func withMigrationsTable(dsn, table string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("parse dsn: %w", err)
	}
	q := u.Query()
	q.Set("x-migrations-table", table)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func runMigration(logger zerolog.Logger, action, dir, dsn string) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve path for %s: %w", dir, err)
	}
	absDir = filepath.ToSlash(absDir)

	m, err := migrate.New(fmt.Sprintf("file://%s", absDir), dsn)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	switch action {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
		return nil
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
		return nil
	case "drop":
		return m.Drop()
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			if errors.Is(err, migrate.ErrNilVersion) {
				logger.Info().Msg("no migration applied")
				return nil
			}
			return err
		}
		logger.Info().Uint("version", version).Bool("dirty", dirty).Msg("current version")
		return nil
	default:
		return fmt.Errorf("unsupported action %q", action)
	}
}
