package main

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/ogurasousui/transaction-review/internal/adapters/grpc/reviewrpc"
	"github.com/ogurasousui/transaction-review/internal/client/fetch"
	"github.com/ogurasousui/transaction-review/internal/client/review"
	"github.com/ogurasousui/transaction-review/internal/platform/config"
	"github.com/ogurasousui/transaction-review/internal/platform/logger"
)

// session は 1 回のコマンド実行で使う View と接続を束ねます。
type session struct {
	view   *review.View
	conn   *grpc.ClientConn
	logger *zap.Logger
}

func openSession() (*session, error) {
	cfg, err := config.LoadClient(config.PathFromEnv(cfgFile))
	if err != nil {
		return nil, err
	}
	if logLvl != "" {
		cfg.Logging.Level = strings.ToLower(logLvl)
	}

	zl, err := logger.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	conn, err := reviewrpc.Dial(cfg.Client.ServerAddr)
	if err != nil {
		return nil, err
	}

	transport := reviewrpc.NewClient(conn, cfg.Client.CallTimeout)
	view := review.NewView(fetch.NewCache(cfg.Client.CacheTTL), transport, zl)

	return &session{view: view, conn: conn, logger: zl}, nil
}

func (s *session) Close() {
	if err := s.conn.Close(); err != nil {
		s.logger.Warn("failed to close connection", zap.Error(err))
	}
	_ = s.logger.Sync()
}

// load は初期表示を行い、employeeID が指定されていればその社員に絞り込みます。
func (s *session) load(ctx context.Context, employeeID string) error {
	if err := s.view.Init(ctx); err != nil {
		return fmt.Errorf("initial load: %w", err)
	}
	if employeeID == "" {
		return nil
	}

	target := findEmployee(s.view.Employees(), employeeID)
	if target == nil {
		return fmt.Errorf("unknown employee %q", employeeID)
	}
	return s.view.Select(ctx, target)
}

func findEmployee(options []review.Employee, id string) *review.Employee {
	for i := range options {
		if options[i].ID == id {
			return &options[i]
		}
	}
	return nil
}
