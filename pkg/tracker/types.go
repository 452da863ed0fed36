package tracker

import "time"

// User is an account holder. The password hash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Habit is a recurring task. CompletedDates is a set of completion instants;
// two instants on the same calendar day are distinct entries.
type Habit struct {
	ID             string      `json:"id"`
	UserID         string      `json:"userId"`
	Name           string      `json:"name"`
	Description    string      `json:"description,omitempty"`
	Frequency      string      `json:"frequency"`
	CreatedAt      time.Time   `json:"createdAt"`
	CompletedDates []time.Time `json:"completedDates"`
}

// Goal is a time-boxed objective. Progress is advisory (0-100) and independent
// of the Completed flag.
type Goal struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Completed   bool      `json:"completed"`
	Progress    int       `json:"progress"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// GoalProgress is one goal's dashboard entry.
type GoalProgress struct {
	GoalName  string `json:"goalName"`
	Progress  int    `json:"progress"`
	Completed bool   `json:"completed"`
}

// DayCount is one day of habit-completion chart data.
type DayCount struct {
	Date      string `json:"date"`
	Completed int    `json:"completed"`
}

// DashboardSummary aggregates a user's habits and goals over a date window.
type DashboardSummary struct {
	TotalHabits            int            `json:"totalHabits"`
	TotalGoals             int            `json:"totalGoals"`
	HabitsCompletedInRange int            `json:"habitsCompletedInRange"`
	GoalsProgress          []GoalProgress `json:"goalsProgress"`
	HabitCompletionChart   []DayCount     `json:"habitCompletionChartData"`
}

// CompletedOn reports whether any completion instant falls on the given
// calendar day in loc. Array length is meaningless here: marking a habit twice
// in one day records two instants.
func (h Habit) CompletedOn(day time.Time, loc *time.Location) bool {
	y, m, d := day.In(loc).Date()
	for _, ts := range h.CompletedDates {
		cy, cm, cd := ts.In(loc).Date()
		if cy == y && cm == m && cd == d {
			return true
		}
	}
	return false
}
