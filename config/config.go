package config

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Gemini   Gemini
	OpenAI   OpenAI
	Grading  Grading
	Log      Log
}

type Server struct {
	Port    string
	GinMode string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type Gemini struct {
	APIKey string
	Model  string
}

type OpenAI struct {
	APIKey  string
	BaseURL string
	Model   string
}

type Grading struct {
	// Provider used for open and photo answers: key, gemini or openai.
	Provider string
}

type Log struct {
	Level  string
	Format string
	File   string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("GRADING_PROVIDER", "key")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
}

func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	var config Config

	config.Server.Port = v.GetString("SERVER_PORT")
	config.Server.GinMode = v.GetString("GIN_MODE")

	config.Database.Host = v.GetString("DATABASE_HOST")
	config.Database.Port = v.GetString("DATABASE_PORT")
	config.Database.User = v.GetString("DATABASE_USER")
	config.Database.Password = v.GetString("DATABASE_PASSWORD")
	config.Database.Name = v.GetString("DATABASE_NAME")
	config.Database.SSLMode = v.GetString("DATABASE_SSLMODE")

	config.Gemini.APIKey = v.GetString("GEMINI_API_KEY")
	config.Gemini.Model = v.GetString("GEMINI_MODEL")

	config.OpenAI.APIKey = v.GetString("OPENAI_API_KEY")
	config.OpenAI.BaseURL = v.GetString("OPENAI_BASE_URL")
	config.OpenAI.Model = v.GetString("OPENAI_MODEL")

	config.Grading.Provider = strings.ToLower(strings.TrimSpace(v.GetString("GRADING_PROVIDER")))

	config.Log.Level = v.GetString("LOG_LEVEL")
	config.Log.Format = v.GetString("LOG_FORMAT")
	config.Log.File = v.GetString("LOG_FILE")

	log.Info().
		Str("port", config.Server.Port).
		Str("dbHost", config.Database.Host).
		Str("dbName", config.Database.Name).
		Str("gradingProvider", config.Grading.Provider).
		Bool("geminiConfigured", config.Gemini.APIKey != "").
		Bool("openaiConfigured", config.OpenAI.APIKey != "").
		Msg("Config loaded")
	return &config
}
