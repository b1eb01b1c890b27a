package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"court-scheduler/internal/handler/middleware"
	"court-scheduler/internal/infra/db"
	"court-scheduler/internal/infra/query"
	"court-scheduler/internal/infra/uow"
	"court-scheduler/internal/pkg/clock"
	"court-scheduler/internal/pkg/config"
	"court-scheduler/internal/usecase/commands"
)

// calendarimport replaces court calendars with the ones described in a YAML file.
func main() {
	path := flag.String("file", "", "Path to the calendar YAML file")
	flag.Parse()
	if *path == "" {
		flag.Usage()
		os.Exit(2)
	}
	os.Exit(run(*path))
}

func run(path string) int {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}
	logger := middleware.NewLogger(cfg.Log)

	f, err := os.Open(path)
	if err != nil {
		logger.Error("failed to open calendar file", "path", path, "error", err)
		return 1
	}
	items, err := parseImport(f)
	_ = f.Close()
	if err != nil {
		logger.Error("invalid calendar file", "path", path, "error", err)
		return 1
	}

	ctx := context.Background()
	pool, cleanup, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		logger.Error("failed to connect database", "error", err)
		return 1
	}
	defer cleanup()

	cmds := commands.NewCalendarUseCase(uow.NewPostgresUoW(pool, query.New(), cfg.DB.TxTimeout), clock.NewRealClock())

	failed := 0
	for _, it := range items {
		if err := cmds.ImportCalendar(ctx, it.Meta, it.Patch); err != nil {
			failed++
			logger.Error("calendar import failed", "court_id", it.Meta.CourtID, "error", err)
			continue
		}
		logger.Info("calendar imported", "court_id", it.Meta.CourtID)
	}
	logger.Info("calendar import finished", "total", len(items), "failed", failed)
	if failed > 0 {
		return 1
	}
	return 0
}
