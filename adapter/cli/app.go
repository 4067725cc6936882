package cli

import (
	"context"

	"github.com/followthru/followthru/internal/habits/application/commands"
	"github.com/followthru/followthru/internal/habits/application/queries"
	identityApp "github.com/followthru/followthru/internal/identity/application"
)

// App carries the wired handlers the commands run against.
type App struct {
	CreateHabitHandler      *commands.CreateHabitHandler
	UpdateHabitHandler      *commands.UpdateHabitHandler
	DeleteHabitHandler      *commands.DeleteHabitHandler
	RecordCompletionHandler *commands.RecordCompletionHandler

	ListHabitsHandler    *queries.ListHabitsHandler
	GetHabitHandler      *queries.GetHabitHandler
	MonthStatusHandler   *queries.MonthStatusHandler
	MonthlyStatsHandler  *queries.MonthlyStatsHandler
	OverviewStatsHandler *queries.OverviewStatsHandler

	Session *identityApp.SessionService
}

var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}

func contextWithCommandInfo(ctx context.Context, info commandContext) context.Context {
	return context.WithValue(ctx, commandContextKey{}, info)
}

func commandInfoFromContext(ctx context.Context) (commandContext, bool) {
	info, ok := ctx.Value(commandContextKey{}).(commandContext)
	return info, ok
}
