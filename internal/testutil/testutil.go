// Package testutil opens throwaway databases for package tests.
package testutil

import (
	"regexp"
	"testing"

	"github.com/lshigami/examhub/database"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var nonWord = regexp.MustCompile(`[^A-Za-z0-9_]`)

// DB returns a migrated in-memory SQLite database private to the calling test.
// The test is skipped when the SQLite driver cannot be opened.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dsn := "file:" + nonWord.ReplaceAllString(tb.Name(), "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		tb.Skipf("sqlite unavailable: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		tb.Skipf("sqlite unavailable: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := database.AutoMigrate(db); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	return db
}

// Tx begins a transaction that is rolled back when the test ends.
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
