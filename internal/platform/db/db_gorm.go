// Package db はGORMによるデータベース接続（PostgreSQL / SQLite）を提供します。
package db

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"company_intel/internal/platform/env"
)

// Driver names accepted in DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverNone     = "none"
)

// ErrDisabled is returned by Open when DB_DRIVER=none.
var ErrDisabled = errors.New("database disabled")

// retryInterval は接続リトライの間隔です。
var retryInterval = 3 * time.Second

// Config はデータベース接続の設定を保持します。
type Config struct {
	Driver       string
	User         string
	Password     string
	Name         string
	Host         string
	Port         string
	SSLMode      string
	InstanceName string // Cloud SQL のインスタンス接続名（設定時はUnixソケット接続）
	SQLitePath   string
	ConnTimeout  time.Duration
}

// LoadConfigFromEnv は環境変数からデータベース設定を読み込みます。
func LoadConfigFromEnv() Config {
	return Config{
		Driver:       env.Get("DB_DRIVER", DriverSQLite),
		User:         env.Get("DB_USER", ""),
		Password:     env.Get("DB_PASSWORD", ""),
		Name:         env.Get("DB_NAME", ""),
		Host:         env.Get("DB_HOST", "localhost"),
		Port:         env.Get("DB_PORT", "5432"),
		SSLMode:      env.Get("DB_SSLMODE", "disable"),
		InstanceName: env.Get("INSTANCE_CONNECTION_NAME", ""),
		SQLitePath:   env.Get("SQLITE_PATH", "company_intel.db"),
		ConnTimeout:  env.GetDuration("DB_CONNECT_TIMEOUT", 60*time.Second),
	}
}

// BuildDSN はドライバーに応じたDSN文字列を生成します。
func BuildDSN(cfg Config) string {
	if cfg.Driver == DriverSQLite {
		return cfg.SQLitePath
	}
	host, port := cfg.Host, cfg.Port
	if cfg.InstanceName != "" {
		host, port = "/cloudsql/"+cfg.InstanceName, ""
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		host, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
	if port != "" {
		dsn += " port=" + port
	}
	return dsn
}

// ConnectWithRetry は timeout まで retryInterval ごとに接続を試みます。
func ConnectWithRetry(dsn string, timeout time.Duration, opener func(string) (*gorm.DB, error)) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %v: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "retry_in", retryInterval)
		time.Sleep(retryInterval)
	}
}

// Open は設定に従ってDBへ接続します。DB_DRIVER=none の場合は ErrDisabled を返します。
func Open(cfg Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	switch cfg.Driver {
	case DriverNone:
		return nil, ErrDisabled
	case DriverSQLite:
		return gorm.Open(sqlite.Open(BuildDSN(cfg)), gcfg)
	case DriverPostgres:
		return ConnectWithRetry(BuildDSN(cfg), cfg.ConnTimeout, func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), gcfg)
		})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}

// Ping はコネクションプールの疎通を確認します。
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
