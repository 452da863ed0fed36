package storage

import (
	"errors"
	"time"

	"github.com/trackgoals/trackgoals/pkg/tracker"
)

var (
	// ErrNotFound covers both "does not exist" and "owned by someone else";
	// callers must not be able to tell the two apart.
	ErrNotFound = errors.New("not found")

	ErrEmailTaken = errors.New("email already in use")
)

// Store is the document store behind the API. Habit and goal operations are
// owner-scoped: a habit or goal id that does not exist under the given user
// yields ErrNotFound. Implementations must be safe for concurrent use.
type Store interface {
	CreateUser(u tracker.User) error
	GetUserByEmail(email string) (tracker.User, error)
	ListUsers() ([]tracker.User, error)

	CreateHabit(userID string, h tracker.Habit) error
	ListHabits(userID string) ([]tracker.Habit, error)
	GetHabit(userID, habitID string) (tracker.Habit, error)
	// AddHabitCompletion inserts ts into the habit's completion set. The set is
	// keyed by exact instant, not calendar day: the same instant twice is a
	// no-op, two instants on the same day are both kept.
	AddHabitCompletion(userID, habitID string, ts time.Time) error
	DeleteHabit(userID, habitID string) error

	CreateGoal(userID string, g tracker.Goal) error
	ListGoals(userID string) ([]tracker.Goal, error)
	GetGoal(userID, goalID string) (tracker.Goal, error)
	UpdateGoal(userID string, g tracker.Goal) error
	SetGoalCompleted(userID, goalID string, at time.Time) error
	DeleteGoal(userID, goalID string) error

	Close() error
}
