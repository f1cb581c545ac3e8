package database_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lshigami/examhub/database"
	"github.com/lshigami/examhub/internal/model"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func TestAutoMigrateLogsOnce(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:automigrate?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	sqlDB, _ := db.DB()
	t.Cleanup(func() { _ = sqlDB.Close() })

	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	if err := database.AutoMigrate(db); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), "Running database migrations"); n != 1 {
		t.Errorf("start message logged %d times", n)
	}
	if n := strings.Count(buf.String(), "Database migration completed"); n != 1 {
		t.Errorf("completion message logged %d times", n)
	}
	if !db.Migrator().HasTable(&model.StudentAnswer{}) {
		t.Error("student_answers table missing")
	}
}
