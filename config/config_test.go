package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)
	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Grading.Provider != "key" {
		t.Errorf("Grading.Provider = %q, want key", cfg.Grading.Provider)
	}
	if cfg.Database.SSLMode != "disable" {
		t.Errorf("Database.SSLMode = %q, want disable", cfg.Database.SSLMode)
	}
	if cfg.Gemini.Model == "" {
		t.Error("Gemini.Model should have a default")
	}
}

func TestFromViperOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("SERVER_PORT", "9090")
	v.Set("GRADING_PROVIDER", "  Gemini ")
	v.Set("DATABASE_NAME", "exams")
	v.Set("LOG_FILE", "/tmp/examhub.log")

	cfg := fromViper(v)
	if cfg.Server.Port != "9090" {
		t.Errorf("Server.Port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Grading.Provider != "gemini" {
		t.Errorf("Grading.Provider = %q, want gemini", cfg.Grading.Provider)
	}
	if cfg.Database.Name != "exams" {
		t.Errorf("Database.Name = %q", cfg.Database.Name)
	}
	if cfg.Log.File != "/tmp/examhub.log" {
		t.Errorf("Log.File = %q", cfg.Log.File)
	}
}
