package server

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/trackgoals/trackgoals/pkg/tracker"
)

func TestDashboard_MalformedDatesRejected(t *testing.T) {
	_, h := newTestServer(newMemStore())
	token := signupAndLogin(t, h, "a@b.com")

	for _, q := range []string{
		"?startDate=notadate",
		"?endDate=07/14/2025",
		"?startDate=2025-13-40",
	} {
		rr := mockRequest(h, http.MethodGet, "/api/dashboard"+q, token, nil)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: got %d want 400", q, rr.Code)
		}
	}
}

func TestDashboard_DefaultWindowIsSevenDays(t *testing.T) {
	_, h := newTestServer(newMemStore())
	token := signupAndLogin(t, h, "a@b.com")

	rr := mockRequest(h, http.MethodGet, "/api/dashboard", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200, body: %s", rr.Code, rr.Body.String())
	}
	var sum tracker.DashboardSummary
	if err := json.Unmarshal(rr.Body.Bytes(), &sum); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(sum.HabitCompletionChart) != 7 {
		t.Fatalf("got %d chart days, want 7", len(sum.HabitCompletionChart))
	}
	today := time.Now().Format("2006-01-02")
	if sum.HabitCompletionChart[6].Date != today {
		t.Fatalf("last chart day %s, want today %s", sum.HabitCompletionChart[6].Date, today)
	}
}

func TestDashboard_CountsOnlyCallersDocuments(t *testing.T) {
	_, h := newTestServer(newMemStore())
	aToken := signupAndLogin(t, h, "a@b.com")
	bToken := signupAndLogin(t, h, "b@b.com")

	for i := 0; i < 3; i++ {
		mockRequest(h, http.MethodPost, "/api/habits/", aToken, map[string]string{
			"name": "guitar", "frequency": "daily",
		})
	}
	mockRequest(h, http.MethodPost, "/api/goals/", aToken, map[string]any{
		"title": "read", "startDate": "2025-01-01", "endDate": "2025-02-01",
	})

	rr := mockRequest(h, http.MethodGet, "/api/dashboard", bToken, nil)
	var sum tracker.DashboardSummary
	_ = json.Unmarshal(rr.Body.Bytes(), &sum)
	if sum.TotalHabits != 0 || sum.TotalGoals != 0 {
		t.Fatalf("dashboard leaked another user's documents: %+v", sum)
	}

	rr = mockRequest(h, http.MethodGet, "/api/dashboard", aToken, nil)
	_ = json.Unmarshal(rr.Body.Bytes(), &sum)
	if sum.TotalHabits != 3 || sum.TotalGoals != 1 {
		t.Fatalf("got %d habits / %d goals, want 3 / 1", sum.TotalHabits, sum.TotalGoals)
	}
}

func TestDashboard_CompletionInWindow(t *testing.T) {
	st := newMemStore()
	_, h := newTestServer(st)
	token := signupAndLogin(t, h, "a@b.com")

	rr := mockRequest(h, http.MethodPost, "/api/habits/", token, map[string]string{
		"name": "guitar", "frequency": "daily",
	})
	var created tracker.Habit
	_ = json.Unmarshal(rr.Body.Bytes(), &created)

	// Marking twice today records two instants but one completed day.
	mockRequest(h, http.MethodPatch, "/api/habits/"+created.ID+"/complete", token, nil)
	mockRequest(h, http.MethodPatch, "/api/habits/"+created.ID+"/complete", token, nil)

	today := time.Now().Format("2006-01-02")
	rr = mockRequest(h, http.MethodGet, "/api/dashboard?startDate="+today+"&endDate="+today, token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200, body: %s", rr.Code, rr.Body.String())
	}
	var sum tracker.DashboardSummary
	_ = json.Unmarshal(rr.Body.Bytes(), &sum)
	if len(sum.HabitCompletionChart) != 1 {
		t.Fatalf("got %d chart days, want 1", len(sum.HabitCompletionChart))
	}
	if sum.HabitCompletionChart[0].Completed != 1 {
		t.Fatalf("got %d, want 1 completed habit today", sum.HabitCompletionChart[0].Completed)
	}
	if sum.HabitsCompletedInRange != 1 {
		t.Fatalf("got %d completed in range, want 1", sum.HabitsCompletedInRange)
	}
}

func TestDashboard_EndBeforeStartIsEmptyNotError(t *testing.T) {
	_, h := newTestServer(newMemStore())
	token := signupAndLogin(t, h, "a@b.com")

	rr := mockRequest(h, http.MethodGet, "/api/dashboard?startDate=2025-07-15&endDate=2025-07-13", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200", rr.Code)
	}
	var sum tracker.DashboardSummary
	_ = json.Unmarshal(rr.Body.Bytes(), &sum)
	if sum.HabitsCompletedInRange != 0 || len(sum.HabitCompletionChart) != 0 {
		t.Fatalf("degenerate range should be empty: %+v", sum)
	}
}
