package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/followthru/followthru/internal/habits/application/queries"
)

// FindHabitID accepts a habit id or a habit name and returns the id.
// Names match case-insensitively and must be unique.
func FindHabitID(ctx context.Context, arg string) (uuid.UUID, error) {
	if id, err := uuid.Parse(arg); err == nil {
		return id, nil
	}

	habits, err := GetApp().ListHabitsHandler.Handle(ctx, queries.ListHabitsQuery{})
	if err != nil {
		return uuid.Nil, err
	}

	var matches []queries.HabitDTO
	for _, h := range habits {
		if strings.EqualFold(h.Name, arg) {
			matches = append(matches, h)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0].ID, nil
	case 0:
		return uuid.Nil, fmt.Errorf("no habit named %q", arg)
	default:
		return uuid.Nil, fmt.Errorf("%d habits named %q, use the id instead", len(matches), arg)
	}
}
