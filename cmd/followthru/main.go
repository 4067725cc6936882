package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/followthru/followthru/adapter/cli"
	"github.com/followthru/followthru/adapter/cli/auth"
	"github.com/followthru/followthru/adapter/cli/habit"
	"github.com/followthru/followthru/internal/app"
	"github.com/followthru/followthru/pkg/config"
	"github.com/followthru/followthru/pkg/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(observability.LogConfig{
		Level:       observability.LogLevel(cfg.LogLevel),
		Format:      observability.LogFormat(cfg.LogFormat),
		Output:      os.Stderr,
		ServiceName: "followthru",
	})
	cli.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := container.Close(); err != nil {
			logger.Warn("shutdown error", "error", err)
		}
	}()

	cli.SetApp(&cli.App{
		CreateHabitHandler:      container.CreateHabitHandler,
		UpdateHabitHandler:      container.UpdateHabitHandler,
		DeleteHabitHandler:      container.DeleteHabitHandler,
		RecordCompletionHandler: container.RecordCompletionHandler,

		ListHabitsHandler:    container.ListHabitsHandler,
		GetHabitHandler:      container.GetHabitHandler,
		MonthStatusHandler:   container.MonthStatusHandler,
		MonthlyStatsHandler:  container.MonthlyStatsHandler,
		OverviewStatsHandler: container.OverviewStatsHandler,

		Session: container.Session,
	})

	cli.AddCommand(habit.NewCommand())
	cli.AddCommand(auth.NewCommand())

	cli.ExecuteContext(ctx)
}
