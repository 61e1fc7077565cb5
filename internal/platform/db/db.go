package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Database wraps DB connectivity.
// Keep transaction helpers close to repositories to support outbox + state
// consistency.
type Database struct {
	DB *gorm.DB
}

// Connect opens a gorm handle from a DSN. A postgres DSN selects the
// postgres driver; anything else is treated as a sqlite file path, which is
// what local development and repository tests use.
func Connect(dsn string) (*Database, error) {
	if dsn == "" {
		return nil, errors.New("database dsn is required")
	}

	dialector := dialectorFor(dsn)
	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open gorm %s: %w", dialector.Name(), err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("resolve sql db handle: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Database{DB: db}, nil
}

func dialectorFor(dsn string) gorm.Dialector {
	lowered := strings.ToLower(dsn)
	if strings.HasPrefix(lowered, "postgres://") ||
		strings.HasPrefix(lowered, "postgresql://") ||
		strings.Contains(lowered, "host=") {
		return postgres.Open(dsn)
	}
	return sqlite.Open(dsn)
}

func (d *Database) Close() error {
	if d == nil || d.DB == nil {
		return nil
	}
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
