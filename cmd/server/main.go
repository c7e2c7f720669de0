package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/ogurasousui/transaction-review/internal/adapters/grpc/handler"
	"github.com/ogurasousui/transaction-review/internal/adapters/repository/postgres"
	"github.com/ogurasousui/transaction-review/internal/core/employee"
	"github.com/ogurasousui/transaction-review/internal/core/transaction"
	"github.com/ogurasousui/transaction-review/internal/platform/config"
	pg "github.com/ogurasousui/transaction-review/internal/platform/db/postgres"
	"github.com/ogurasousui/transaction-review/internal/platform/logger"
	"github.com/ogurasousui/transaction-review/internal/platform/server"
)

func main() {
	configPath := flag.String("config", "", "path to config file (defaults to CONFIG_PATH env or assets/local.yaml)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(config.PathFromEnv(*configPath))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Logging)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	dbPool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		zl.Fatal("failed to initialize database pool", zap.Error(err))
	}
	defer dbPool.Close()

	txManager := pg.NewTransactionManager(dbPool)
	employeeSvc := employee.NewService(postgres.NewEmployeeRepository(dbPool), txManager)
	transactionSvc := transaction.NewService(postgres.NewTransactionRepository(dbPool), txManager, cfg.Review.PageSize)

	reviewHandler := handler.NewReviewGrpcHandler(employeeSvc, transactionSvc)
	grpcServer := server.New(cfg.Server.ListenAddr, zl, reviewHandler)

	zl.Info("starting review server",
		zap.String("addr", cfg.Server.ListenAddr),
		zap.Int("page_size", cfg.Review.PageSize),
	)

	if err := grpcServer.Run(ctx); err != nil {
		zl.Fatal("server stopped with error", zap.Error(err))
	}
	zl.Info("gRPC server stopped")
}
