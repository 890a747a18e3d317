// Package db はPostgreSQLへのGORM接続を提供します。
package db

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	cikmapadapters "cikmap_backend/internal/feature/cikmap/adapters"
)

// Config はデータベース接続設定です。
type Config struct {
	User          string
	Password      string
	Name          string
	Host          string
	Port          string
	SSLMode       string
	InstanceName  string // Cloud SQL のインスタンス接続名。設定時はUnixソケットで接続する
	RunMigrations bool
}

const (
	connectTimeout = 60 * time.Second
	retryInterval  = 3 * time.Second
)

// BuildDSN は設定からPostgreSQLのDSN文字列を生成します。
func BuildDSN(cfg Config) string {
	host, port := cfg.Host, cfg.Port
	if cfg.InstanceName != "" {
		host = "/cloudsql/" + cfg.InstanceName
		port = "5432"
	}
	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		host, cfg.User, cfg.Password, cfg.Name, port, sslmode)
}

// Open は接続できるまで最大60秒リトライし、必要に応じてマイグレーションを実行します。
func Open(cfg Config) (*gorm.DB, error) {
	return open(postgres.Open(BuildDSN(cfg)), cfg.RunMigrations, connectTimeout, retryInterval)
}

func open(dialector gorm.Dialector, migrate bool, timeout, interval time.Duration) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(timeout)
	for {
		db, err = gorm.Open(dialector, &gorm.Config{})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %v: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err)
		time.Sleep(interval)
	}

	if migrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// Migrate はアプリケーションのテーブルを作成・更新します。
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&cikmapadapters.TickerModel{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
