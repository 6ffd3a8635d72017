package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/adapters/repository/postgres"
	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/core/employee"
	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/core/transaction"
	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/platform/config"
	pg "github.com/ogurasousui/codex-grpc-transaction-browser/internal/platform/db/postgres"
	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/platform/logging"
	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/platform/server"
	"github.com/rs/zerolog"
)

func main() {
	configPath := flag.String("config", "", "path to config file (defaults to CONFIG_PATH env or assets/local.yaml)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath := config.EffectivePath(*configPath)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		bootstrap := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		bootstrap.Fatal().Err(err).Str("path", cfgPath).Msg("failed to load config")
	}

	logger := logging.New(cfg.Logging, os.Stderr)

	dbPool, err := pg.NewPool(ctx, cfg.Database, logging.Component(logger, "postgres"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize database pool")
	}
	defer dbPool.Close()

	txManager := pg.NewTransactionManager(dbPool)
	employeeRepo := postgres.NewEmployeeRepository(dbPool)
	transactionRepo := postgres.NewTransactionRepository(dbPool)

	employeeSvc := employee.NewService(employeeRepo, txManager)
	transactionSvc := transaction.NewService(transactionRepo, employeeRepo, txManager)

	grpcServer := server.New(cfg.Server.ListenAddr, employeeSvc, transactionSvc, logging.Component(logger, "grpc"))

	if err := grpcServer.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("server stopped with error")
		dbPool.Close()
		os.Exit(1)
	}

	logger.Info().Msg("server stopped")
}
