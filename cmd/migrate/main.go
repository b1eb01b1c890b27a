package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"court-scheduler/internal/infra/db"
	"court-scheduler/internal/pkg/config"
)

func main() {
	command := flag.String("command", "up", "Command to run (up, down, version)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	dsn := cfg.DB.BuildDSN()

	switch *command {
	case "up", "down":
		if err := db.Migrate(dsn, db.Direction(*command)); err != nil {
			slog.Error("migration failed", "command", *command, "error", err)
			os.Exit(1)
		}
		slog.Info("migration finished", "command", *command)
	case "version":
		version, dirty, err := db.Version(dsn)
		if err != nil {
			slog.Error("failed to read schema version", "error", err)
			os.Exit(1)
		}
		fmt.Printf("Version: %d, Dirty: %v\n", version, dirty)
	default:
		slog.Error("unknown command", "command", *command)
		flag.Usage()
		os.Exit(2)
	}
}
