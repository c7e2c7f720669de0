package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath は CONFIG_PATH が未指定の場合に利用する設定ファイルです。
const DefaultPath = "assets/local.yaml"

const (
	defaultPageSize    = 5
	maxPageSize        = 200
	defaultCacheTTL    = 5 * time.Minute
	defaultCallTimeout = 10 * time.Second
	defaultLogLevel    = "info"
)

// Config はアプリケーション全体の設定を表現します。
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Review   ReviewConfig   `yaml:"review"`
	Client   ClientConfig   `yaml:"client"`
}

// ServerConfig は gRPC サーバーに関する設定です。
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// DatabaseConfig は PostgreSQL 接続に関する設定です。
type DatabaseConfig struct {
	Host               string        `yaml:"host"`
	Port               int           `yaml:"port"`
	User               string        `yaml:"user"`
	Password           string        `yaml:"password"`
	Name               string        `yaml:"name"`
	SSLMode            string        `yaml:"ssl_mode"`
	MaxOpenConns       int           `yaml:"max_open_conns"`
	MaxIdleConns       int           `yaml:"max_idle_conns"`
	ConnMaxLifetime    time.Duration `yaml:"-"`
	ConnMaxIdleTime    time.Duration `yaml:"-"`
	ConnMaxLifetimeRaw string        `yaml:"conn_max_lifetime"`
	ConnMaxIdleTimeRaw string        `yaml:"conn_max_idle_time"`
}

// LoggingConfig は zap ロガーの設定です。
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// ReviewConfig は取引レビュー API の振る舞いに関する設定です。
type ReviewConfig struct {
	PageSize int `yaml:"page_size"`
}

// ClientConfig はレビュー CLI が接続するサーバーとキャッシュの設定です。
type ClientConfig struct {
	ServerAddr     string        `yaml:"server_addr"`
	CacheTTL       time.Duration `yaml:"-"`
	CallTimeout    time.Duration `yaml:"-"`
	CacheTTLRaw    string        `yaml:"cache_ttl"`
	CallTimeoutRaw string        `yaml:"call_timeout"`
}

// Load は指定されたパスから設定ファイルを読み込み、サーバー側の設定を検証します。
func Load(path string) (*Config, error) {
	cfg, err := read(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadClient は CLI 向けに client と logging セクションのみを検証して読み込みます。
func LoadClient(path string) (*Config, error) {
	cfg, err := read(path)
	if err != nil {
		return nil, err
	}

	cfg.Logging.normalize()
	if err := cfg.Client.validateAndNormalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// PathFromEnv は flag の値、CONFIG_PATH、既定値の順で設定ファイルのパスを決定します。
func PathFromEnv(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("CONFIG_PATH"); env != "" {
		return env
	}
	return DefaultPath
}

func read(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validateAndNormalize() error {
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("config: server.listen_addr must be set")
	}

	db := &c.Database
	if err := db.validateAndNormalize(); err != nil {
		return err
	}

	if err := c.Review.validateAndNormalize(); err != nil {
		return err
	}

	c.Logging.normalize()

	return nil
}

func (d *DatabaseConfig) validateAndNormalize() error {
	if d.Host == "" {
		return fmt.Errorf("config: database.host must be set")
	}
	if d.Port == 0 {
		return fmt.Errorf("config: database.port must be set")
	}
	if d.User == "" {
		return fmt.Errorf("config: database.user must be set")
	}
	if d.Password == "" {
		return fmt.Errorf("config: database.password must be set")
	}
	if d.Name == "" {
		return fmt.Errorf("config: database.name must be set")
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}

	lifetime, err := parseDurationAllowEmpty(d.ConnMaxLifetimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_lifetime: %w", err)
	}
	d.ConnMaxLifetime = lifetime

	idleTime, err := parseDurationAllowEmpty(d.ConnMaxIdleTimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_idle_time: %w", err)
	}
	d.ConnMaxIdleTime = idleTime

	return nil
}

func (r *ReviewConfig) validateAndNormalize() error {
	if r.PageSize == 0 {
		r.PageSize = defaultPageSize
	}
	if r.PageSize < 0 || r.PageSize > maxPageSize {
		return fmt.Errorf("config: review.page_size must be between 1 and %d", maxPageSize)
	}
	return nil
}

func (l *LoggingConfig) normalize() {
	l.Level = strings.ToLower(strings.TrimSpace(l.Level))
	if l.Level == "" {
		l.Level = defaultLogLevel
	}
}

func (c *ClientConfig) validateAndNormalize() error {
	if c.ServerAddr == "" {
		return fmt.Errorf("config: client.server_addr must be set")
	}

	ttl, err := parseDurationAllowEmpty(c.CacheTTLRaw)
	if err != nil {
		return fmt.Errorf("config: client.cache_ttl: %w", err)
	}
	if ttl == 0 {
		ttl = defaultCacheTTL
	}
	c.CacheTTL = ttl

	timeout, err := parseDurationAllowEmpty(c.CallTimeoutRaw)
	if err != nil {
		return fmt.Errorf("config: client.call_timeout: %w", err)
	}
	if timeout == 0 {
		timeout = defaultCallTimeout
	}
	c.CallTimeout = timeout

	return nil
}

func parseDurationAllowEmpty(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	return d, nil
}

// DSN は pgx 用の接続文字列を返します。ユーザー名とパスワードはエスケープされます。
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}
