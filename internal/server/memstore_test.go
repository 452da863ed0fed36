package server

import (
	"sync"
	"time"

	"github.com/trackgoals/trackgoals/internal/storage"
	"github.com/trackgoals/trackgoals/pkg/tracker"
)

// memStore is an in-memory Store for handler tests. calls counts every
// storage operation so tests can assert a request never touched storage.
type memStore struct {
	mu     sync.RWMutex
	users  map[string]tracker.User // by email
	habits map[string]map[string]tracker.Habit
	goals  map[string]map[string]tracker.Goal
	calls  int
}

func newMemStore() *memStore {
	return &memStore{
		users:  map[string]tracker.User{},
		habits: map[string]map[string]tracker.Habit{},
		goals:  map[string]map[string]tracker.Goal{},
	}
}

func (m *memStore) callCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls
}

func (m *memStore) CreateUser(u tracker.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if _, ok := m.users[u.Email]; ok {
		return storage.ErrEmailTaken
	}
	m.users[u.Email] = u
	return nil
}

func (m *memStore) GetUserByEmail(email string) (tracker.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	u, ok := m.users[email]
	if !ok {
		return tracker.User{}, storage.ErrNotFound
	}
	return u, nil
}

func (m *memStore) ListUsers() ([]tracker.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	out := make([]tracker.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *memStore) CreateHabit(userID string, h tracker.Habit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.habits[userID] == nil {
		m.habits[userID] = map[string]tracker.Habit{}
	}
	m.habits[userID][h.ID] = h
	return nil
}

func (m *memStore) ListHabits(userID string) ([]tracker.Habit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	out := []tracker.Habit{}
	for _, h := range m.habits[userID] {
		out = append(out, h)
	}
	return out, nil
}

func (m *memStore) GetHabit(userID, habitID string) (tracker.Habit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	h, ok := m.habits[userID][habitID]
	if !ok {
		return tracker.Habit{}, storage.ErrNotFound
	}
	return h, nil
}

func (m *memStore) AddHabitCompletion(userID, habitID string, ts time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	h, ok := m.habits[userID][habitID]
	if !ok {
		return storage.ErrNotFound
	}
	for _, existing := range h.CompletedDates {
		if existing.Equal(ts) {
			return nil
		}
	}
	h.CompletedDates = append(h.CompletedDates, ts)
	m.habits[userID][habitID] = h
	return nil
}

func (m *memStore) DeleteHabit(userID, habitID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if _, ok := m.habits[userID][habitID]; !ok {
		return storage.ErrNotFound
	}
	delete(m.habits[userID], habitID)
	return nil
}

func (m *memStore) CreateGoal(userID string, g tracker.Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.goals[userID] == nil {
		m.goals[userID] = map[string]tracker.Goal{}
	}
	m.goals[userID][g.ID] = g
	return nil
}

func (m *memStore) ListGoals(userID string) ([]tracker.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	out := []tracker.Goal{}
	for _, g := range m.goals[userID] {
		out = append(out, g)
	}
	return out, nil
}

func (m *memStore) GetGoal(userID, goalID string) (tracker.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	g, ok := m.goals[userID][goalID]
	if !ok {
		return tracker.Goal{}, storage.ErrNotFound
	}
	return g, nil
}

func (m *memStore) UpdateGoal(userID string, g tracker.Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if _, ok := m.goals[userID][g.ID]; !ok {
		return storage.ErrNotFound
	}
	m.goals[userID][g.ID] = g
	return nil
}

func (m *memStore) SetGoalCompleted(userID, goalID string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	g, ok := m.goals[userID][goalID]
	if !ok {
		return storage.ErrNotFound
	}
	g.Completed = true
	g.UpdatedAt = at
	m.goals[userID][goalID] = g
	return nil
}

func (m *memStore) DeleteGoal(userID, goalID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if _, ok := m.goals[userID][goalID]; !ok {
		return storage.ErrNotFound
	}
	delete(m.goals[userID], goalID)
	return nil
}

func (m *memStore) Close() error {
	return nil
}

var _ storage.Store = (*memStore)(nil)
