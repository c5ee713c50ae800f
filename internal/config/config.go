package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageMongo    = "mongo"
)

type Config struct {
	App struct {
		Name    string `envconfig:"APP_NAME" default:"Zen Tracker"`
		Port    int    `envconfig:"PORT" default:"8080"`
		// LogFile receives the terminal UI's logs.
		LogFile string `envconfig:"TUI_LOG_FILE" default:"zentracker-tui.log"`
	}

	Storage struct {
		Driver string `envconfig:"STORAGE_DRIVER" default:"sqlite"`
		Path   string `envconfig:"STORAGE_PATH" default:"data/zentracker.db"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"zentracker"`
	}

	Mongo struct {
		URI      string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
		Database string `envconfig:"MONGO_DATABASE" default:"zentracker"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		AllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
	}

	Gemini struct {
		APIKey     string        `envconfig:"GEMINI_API_KEY"`
		Model      string        `envconfig:"GEMINI_MODEL" default:"gemini-3-flash-preview"`
		Timeout    time.Duration `envconfig:"GEMINI_TIMEOUT" default:"20s"`
		SampleSize int           `envconfig:"GEMINI_SAMPLE_SIZE" default:"20"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	switch cfg.Storage.Driver {
	case StorageSQLite, StoragePostgres, StorageMongo:
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	return &cfg, nil
}
