package main

import (
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/ogurasousui/transaction-review/internal/platform/config"
	"github.com/ogurasousui/transaction-review/internal/platform/db/migration"
	"github.com/ogurasousui/transaction-review/internal/platform/logger"
)

func main() {
	var (
		configPath    = flag.String("config", "", "path to config file (defaults to CONFIG_PATH env or assets/local.yaml)")
		migrationsDir = flag.String("dir", "assets/migrations", "directory containing migration files")
		seedsDir      = flag.String("seeds", "assets/seeds", "directory containing seed files")
		seed          = flag.Bool("seed", false, "apply the action to seed files instead of schema migrations")
	)
	flag.Parse()

	action := "up"
	if flag.NArg() > 0 {
		action = flag.Arg(0)
	}

	cfg, err := config.Load(config.PathFromEnv(*configPath))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Logging)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	newRunner, dir := migration.New, *migrationsDir
	if *seed {
		newRunner, dir = migration.NewSeeder, *seedsDir
	}

	runner, err := newRunner(dir, cfg.Database.DSN(), zl)
	if err != nil {
		zl.Fatal("failed to prepare migration", zap.String("dir", dir), zap.Error(err))
	}

	applyErr := runner.Apply(action)
	if err := runner.Close(); err != nil {
		zl.Warn("failed to close migration", zap.Error(err))
	}
	if applyErr != nil {
		zl.Fatal("migration failed", zap.String("action", action), zap.String("dir", dir), zap.Error(applyErr))
	}

	zl.Info("migration completed", zap.String("action", action), zap.String("dir", dir))
}
