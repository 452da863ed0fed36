package server

import (
	"math"
	"time"

	"github.com/trackgoals/trackgoals/pkg/tracker"
)

const dayFormat = "2006-01-02"

// dateSequence returns every calendar date from start to end inclusive as
// YYYY-MM-DD strings. An end before start yields an empty sequence.
func dateSequence(start, end time.Time, loc *time.Location) []string {
	startDay := truncateToDay(start, loc)
	endDay := truncateToDay(end, loc)

	var out []string
	for d := startDay; !d.After(endDay); d = d.AddDate(0, 0, 1) {
		out = append(out, d.Format(dayFormat))
	}
	return out
}

func truncateToDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// goalProgress reports how far through its time window a goal is, clamped to
// 0-100. A zero-duration window is always 0%; the stored completed flag is
// passed through untouched either way.
func goalProgress(g tracker.Goal, now time.Time) tracker.GoalProgress {
	progress := 0
	if total := g.EndDate.Sub(g.StartDate); total > 0 {
		elapsed := now.Sub(g.StartDate)
		progress = int(math.Round(float64(elapsed) / float64(total) * 100))
		progress = min(100, max(0, progress))
	}
	return tracker.GoalProgress{
		GoalName:  g.Title,
		Progress:  progress,
		Completed: g.Completed,
	}
}

// completionChart counts, per date in the sequence, how many habits have at
// least one completion falling on that calendar day in loc. A habit completed
// twice on one day counts once for that day; a habit completed on several
// days counts once per day.
func completionChart(habits []tracker.Habit, dates []string, loc *time.Location) []tracker.DayCount {
	daysDone := make([]map[string]struct{}, len(habits))
	for i, h := range habits {
		daysDone[i] = make(map[string]struct{}, len(h.CompletedDates))
		for _, ts := range h.CompletedDates {
			daysDone[i][ts.In(loc).Format(dayFormat)] = struct{}{}
		}
	}

	out := make([]tracker.DayCount, 0, len(dates))
	for _, date := range dates {
		count := 0
		for i := range habits {
			if _, ok := daysDone[i][date]; ok {
				count++
			}
		}
		out = append(out, tracker.DayCount{Date: date, Completed: count})
	}
	return out
}

func buildDashboard(habits []tracker.Habit, goals []tracker.Goal, start, end, now time.Time, loc *time.Location) tracker.DashboardSummary {
	dates := dateSequence(start, end, loc)
	chart := completionChart(habits, dates, loc)

	completedInRange := 0
	for _, day := range chart {
		completedInRange += day.Completed
	}

	progress := make([]tracker.GoalProgress, 0, len(goals))
	for _, g := range goals {
		progress = append(progress, goalProgress(g, now))
	}

	return tracker.DashboardSummary{
		TotalHabits:            len(habits),
		TotalGoals:             len(goals),
		HabitsCompletedInRange: completedInRange,
		GoalsProgress:          progress,
		HabitCompletionChart:   chart,
	}
}
