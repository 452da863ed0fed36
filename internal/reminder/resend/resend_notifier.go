package resend

import (
	"github.com/resend/resend-go/v2"

	"github.com/trackgoals/trackgoals/internal/reminder"
)

const subject = "TrackGoals - Daily Habit Reminder"

type ResendNotifier struct {
	APIKey string
	From   string
}

func (r *ResendNotifier) SendReminder(to, name string, pendingHabits []string) error {
	client := resend.NewClient(r.APIKey)
	params := &resend.SendEmailRequest{
		From:    r.From,
		To:      []string{to},
		Subject: subject,
		Text:    reminder.Body(name, pendingHabits),
	}

	_, err := client.Emails.Send(params)
	return err
}

var _ reminder.Notifier = (*ResendNotifier)(nil)
