package reminder

import "github.com/trackgoals/trackgoals/pkg/tracker"

// Querier is the slice of the storage layer the sweep reads from.
type Querier interface {
	ListUsers() ([]tracker.User, error)
	ListHabits(userID string) ([]tracker.Habit, error)
}
