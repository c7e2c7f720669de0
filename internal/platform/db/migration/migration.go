// Package migration は golang-migrate によるスキーマ移行とシード投入を扱います。
package migration

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// SeedsTable はシードの適用履歴を記録するテーブルです。スキーマ側の履歴とは分けて管理します。
const SeedsTable = "schema_seeds"

// Runner は一つのソースディレクトリに対する移行を実行します。
type Runner struct {
	m      *migrate.Migrate
	logger *zap.Logger
}

// New は dir のマイグレーションを dsn に適用する Runner を生成します。
func New(dir, dsn string, logger *zap.Logger) (*Runner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	src, err := SourceURL(dir)
	if err != nil {
		return nil, err
	}

	m, err := migrate.New(src, dsn)
	if err != nil {
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	m.Log = migrateLogger{sugar: logger.Sugar()}

	return &Runner{m: m, logger: logger}, nil
}

// NewSeeder はシード用の Runner を生成します。履歴は SeedsTable に記録されます。
func NewSeeder(dir, dsn string, logger *zap.Logger) (*Runner, error) {
	seedDSN, err := WithMigrationsTable(dsn, SeedsTable)
	if err != nil {
		return nil, err
	}
	return New(dir, seedDSN, logger)
}

// Apply は action (up, down, drop, reset, version) を実行します。
func (r *Runner) Apply(action string) error {
	switch action {
	case "up":
		return ignoreNoChange(r.m.Up())
	case "down":
		return ignoreNoChange(r.m.Down())
	case "reset":
		if err := ignoreNoChange(r.m.Down()); err != nil {
			return err
		}
		return ignoreNoChange(r.m.Up())
	case "drop":
		return r.m.Drop()
	case "version":
		version, dirty, err := r.m.Version()
		if err != nil {
			if errors.Is(err, migrate.ErrNilVersion) {
				r.logger.Info("no migration applied")
				return nil
			}
			return err
		}
		r.logger.Info("migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return nil
	default:
		return fmt.Errorf("unsupported action %q", action)
	}
}

// Close はソースとデータベースの接続を閉じます。
func (r *Runner) Close() error {
	srcErr, dbErr := r.m.Close()
	return errors.Join(srcErr, dbErr)
}

// SourceURL は dir を file:// 形式の絶対 URL に変換します。
func SourceURL(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve path for %s: %w", dir, err)
	}
	return "file://" + filepath.ToSlash(absDir), nil
}

// WithMigrationsTable は dsn に x-migrations-table を付与します。
func WithMigrationsTable(dsn, table string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("parse dsn: %w", err)
	}
	q := u.Query()
	q.Set("x-migrations-table", table)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

// migrateLogger は migrate.Logger を zap に橋渡しします。
type migrateLogger struct {
	sugar *zap.SugaredLogger
}

func (l migrateLogger) Printf(format string, v ...any) {
	l.sugar.Infof(format, v...)
}

func (l migrateLogger) Verbose() bool {
	return false
}
