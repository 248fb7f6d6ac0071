// Package reminder emails users a digest of their incomplete todos on a
// configurable cron schedule.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ErlanBelekov/tasklist-api/internal/email"
	"github.com/ErlanBelekov/tasklist-api/internal/metrics"
	"github.com/ErlanBelekov/tasklist-api/internal/repository"
	"github.com/robfig/cron/v3"
)

type Reminder struct {
	todos  repository.TodoRepository
	email  email.Sender
	logger *slog.Logger
	sched  cron.Schedule
}

func New(todos repository.TodoRepository, emailSender email.Sender, logger *slog.Logger, cronExpr string) (*Reminder, error) {
	sched, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("parse reminder cron: %w", err)
	}
	return &Reminder{
		todos:  todos,
		email:  emailSender,
		logger: logger.With("component", "reminder"),
		sched:  sched,
	}, nil
}

func (r *Reminder) Start(ctx context.Context) {
	r.logger.Info("reminder started")

	for {
		next := r.sched.Next(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			r.logger.Info("reminder shut down")
			return
		case <-timer.C:
			r.run(ctx)
		}
	}
}

func (r *Reminder) run(ctx context.Context) {
	start := time.Now()
	defer func() {
		metrics.ReminderCycleDuration.Observe(time.Since(start).Seconds())
	}()

	digests, err := r.todos.PendingDigests(ctx)
	if err != nil {
		r.logger.Error("reminder pending digests", "error", err)
		return
	}

	sent := 0
	for _, d := range digests {
		subject := "Your open todos"
		body := fmt.Sprintf(`<p>Hi %s,</p><p>You have %d open todo(s) across your task lists.</p>`, d.Name, d.PendingCount)
		if err := r.email.Send(ctx, d.Email, subject, body); err != nil {
			r.logger.Error("send reminder", "user_id", d.UserID, "error", err)
			continue
		}
		metrics.RemindersSentTotal.Inc()
		sent++
	}

	if sent > 0 {
		r.logger.Info("reminders sent", "count", sent)
	}
}
