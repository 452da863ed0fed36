package reminder

import (
	"errors"
	"sync"
)

type sentMail struct {
	To      string
	Name    string
	Pending []string
}

type mockNotifier struct {
	mu      sync.Mutex
	sent    []sentMail
	failFor map[string]bool
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{failFor: map[string]bool{}}
}

func (m *mockNotifier) SendReminder(to, name string, pendingHabits []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFor[to] {
		return errors.New("delivery failed")
	}
	m.sent = append(m.sent, sentMail{To: to, Name: name, Pending: pendingHabits})
	return nil
}

var _ Notifier = (*mockNotifier)(nil)
