// Package reminder implements the daily sweep that emails each user the
// habits they have not completed today.
package reminder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/trackgoals/trackgoals/internal/logger"
	"github.com/trackgoals/trackgoals/pkg/tracker"
)

// Notifier delivers a reminder to one user. Errors are logged by the sweep,
// never retried.
type Notifier interface {
	SendReminder(to, name string, pendingHabits []string) error
}

// Sweep iterates all users and notifies each one with pending habits for
// today. A failure for one user is logged and the run continues; only a
// failure to list users aborts the sweep. Concurrent sweeps are not guarded
// against; this is a low-frequency batch job.
func Sweep(ctx context.Context, store Querier, notifier Notifier) error {
	users, err := store.ListUsers()
	if err != nil {
		return fmt.Errorf("listing users: %w", err)
	}

	today := time.Now()
	for _, u := range users {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		habits, err := store.ListHabits(u.ID)
		if err != nil {
			logger.Error("Failed to list habits for reminder", "user_id", u.ID, "error", err)
			continue
		}

		pending := pendingToday(habits, today, time.Local)
		if len(pending) == 0 {
			continue
		}

		if err := notifier.SendReminder(u.Email, u.Name, pending); err != nil {
			logger.Error("Failed to send reminder", "user_id", u.ID, "error", err)
			continue
		}
		logger.Info("Reminder sent", "user_id", u.ID, "pending", len(pending))
	}

	return nil
}

// pendingToday returns the names of habits with no completion falling on
// today's calendar date in loc.
func pendingToday(habits []tracker.Habit, today time.Time, loc *time.Location) []string {
	var out []string
	for _, h := range habits {
		if !h.CompletedOn(today, loc) {
			out = append(out, h.Name)
		}
	}
	return out
}

// RunDaily blocks, running Sweep every day at the given local hour until the
// context is cancelled.
func RunDaily(ctx context.Context, store Querier, notifier Notifier, hour int) {
	for {
		wait := untilNextRun(time.Now(), hour)
		logger.Info("Next reminder sweep scheduled", "in", wait.Round(time.Second).String())

		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}

		if err := Sweep(ctx, store, notifier); err != nil {
			logger.Error("Reminder sweep failed", "error", err)
		}
	}
}

// untilNextRun returns the duration from now until the next occurrence of
// hour o'clock local time, always in the future.
func untilNextRun(now time.Time, hour int) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}

// Body renders the plain-text reminder message.
func Body(name string, pendingHabits []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\nYou have some habits to complete today:\n", name)
	for _, h := range pendingHabits {
		fmt.Fprintf(&b, "- %s\n", h)
	}
	b.WriteString("\nStay consistent!")
	return b.String()
}
