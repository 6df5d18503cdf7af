package testutil

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	appdb "github.com/yungbote/contactbook-backend/internal/data/db"
	"github.com/yungbote/contactbook-backend/internal/platform/logger"
)

var (
	logOnce sync.Once
	logg    *logger.Logger
	logErr  error

	dbSeq atomic.Int64
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DB returns a migrated database private to the calling test. By default
// that is a fresh in-memory SQLite database; TEST_POSTGRES_DSN switches to
// Postgres, truncating the tables when the test ends.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	silent := gormLogger.Default.LogMode(gormLogger.Silent)

	if dsn := os.Getenv("TEST_POSTGRES_DSN"); dsn != "" {
		db, err := appdb.Open(postgres.Open(dsn), silent)
		if err != nil {
			tb.Fatalf("open postgres: %v", err)
		}
		if err := appdb.AutoMigrateAll(db); err != nil {
			tb.Fatalf("migrate: %v", err)
		}
		tb.Cleanup(func() {
			_ = db.Exec("TRUNCATE TABLE addresses, contacts, users RESTART IDENTITY CASCADE").Error
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		})
		return db
	}

	name := fmt.Sprintf("file:contactbook_test_%d?mode=memory&cache=shared&_foreign_keys=on", dbSeq.Add(1))
	db, err := appdb.Open(sqlite.Open(name), silent)
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sql db: %v", err)
	}
	// Every connection to a memory database must be the same one.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	if err := appdb.AutoMigrateAll(db); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	tb.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}
