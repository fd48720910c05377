// Package database opens gorm connections for the relational store backends.
package database

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/janisto/profile-pages/internal/platform/config"
	applog "github.com/janisto/profile-pages/internal/platform/logging"
)

// Open connects to the database selected by backend. Errors are translated
// to gorm sentinels (gorm.ErrDuplicatedKey) so stores can detect unique
// constraint races without driver-specific checks.
func Open(ctx context.Context, backend, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch backend {
	case config.BackendPostgres:
		dialector = postgres.Open(normalizeDSN(dsn))
	case config.BackendSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database backend %q", backend)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", backend, err)
	}

	applog.LogInfo(ctx, "database connected", zap.String("backend", backend))
	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// normalizeDSN trims surrounding quotes that often leak in from .env files.
func normalizeDSN(raw string) string {
	return strings.Trim(strings.TrimSpace(raw), "\"'")
}
