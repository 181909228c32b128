package main

import (
	"context"
	"os"
	"strings"

	"github.com/nimasrn/donor-hub/internal/config"
	"github.com/nimasrn/donor-hub/pkg/logger"
	"github.com/nimasrn/donor-hub/pkg/pg"
)

// usage: cli [up|down|status|redo] --env=.env --dir=./migrations
func main() {
	err := config.Load(getEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}
	pgConf := pg.Config{
		User:           config.Get().PostgresWriteUser,
		Host:           config.Get().PostgresWriteHost,
		Port:           config.Get().PostgresWritePort,
		Password:       config.Get().PostgresWritePassword,
		Database:       config.Get().PostgresWriteDatabase,
		SSLMode:        config.Get().PostgresSSLMode,
		ConnectTimeout: config.Get().PostgresConnectTimeout,
	}
	err = pg.Migrate(context.Background(), pgConf, getMigrationPath(), getCommand())
	if err != nil {
		logger.Error("migration: error running migrations", "error", err)
		os.Exit(1)
	}
}

func getCommand() string {
	for _, v := range os.Args[1:] {
		if !strings.HasPrefix(v, "--") {
			return v
		}
	}
	return "up"
}

func getEnvPath() string {
	if p := flagValue("--env="); p != "" {
		return p
	}
	if _, err := os.Stat(".env"); err != nil {
		logger.Warn("no .env file found, reading the environment only")
		return ""
	}
	return ".env"
}

func getMigrationPath() string {
	if p := flagValue("--dir="); p != "" {
		return p
	}
	return "./migrations"
}

func flagValue(prefix string) string {
	for _, v := range os.Args {
		if strings.HasPrefix(v, prefix) {
			p := strings.TrimPrefix(v, prefix)
			if _, err := os.Stat(p); err != nil {
				logger.Error("failed to open the passed path, got error "+err.Error(), "flag", prefix)
				return ""
			}
			return p
		}
	}
	return ""
}
