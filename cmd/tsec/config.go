package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const Version = "0.1.0"

type Config struct {
	Env         string
	DuckDB      string
	HTTPTimeout time.Duration

	PGHost     string
	PGPort     string
	PGUser     string
	PGPassword string
	PGDatabase string
}

// LoadConfig reads the environment, optionally seeded from a .env file.
func LoadConfig() (Config, []string) {
	var warnings []string
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		warnings = append(warnings, "unable to load .env: "+err.Error())
	}

	cfg := Config{
		Env:        getEnv("TSEC_ENV", "development"),
		DuckDB:     getEnv("TSEC_DUCKDB", ""),
		PGHost:     getEnv("TSEC_PG_HOST", ""),
		PGPort:     getEnv("TSEC_PG_PORT", "5432"),
		PGUser:     getEnv("TSEC_PG_USER", "tsec"),
		PGPassword: getEnv("TSEC_PG_PASSWORD", "tsec"),
		PGDatabase: getEnv("TSEC_PG_DB", "tsec"),
	}

	timeout := getEnv("TSEC_HTTP_TIMEOUT", "30s")
	d, err := time.ParseDuration(timeout)
	if err != nil {
		warnings = append(warnings, "invalid TSEC_HTTP_TIMEOUT "+timeout+", falling back to 30s")
		d = 30 * time.Second
	}
	cfg.HTTPTimeout = d

	return cfg, warnings
}

func (c Config) NewLogger() (*zap.Logger, error) {
	if c.Env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
