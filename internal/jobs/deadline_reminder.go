package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"internport-backend/internal/domain"
	"internport-backend/pkg/metrics"

	"github.com/riverqueue/river"
)

type DeadlineReminderArgs struct{}

func (DeadlineReminderArgs) Kind() string { return JobKindDeadlineReminder }

// DeadlineReminderWorker mails every applicant of an active internship whose
// deadline falls within the next 24 hours.
type DeadlineReminderWorker struct {
	river.WorkerDefaults[DeadlineReminderArgs]
	Repo   domain.NotificationRepository
	Mailer domain.Mailer
	Logger *slog.Logger
	Now    func() time.Time
}

func ReminderMail(r domain.DeadlineReminder) domain.Mail {
	return domain.Mail{
		To:      r.StudentEmail,
		Subject: "Deadline Reminder: " + r.Title,
		Body:    fmt.Sprintf("The application deadline for %s is approaching.", r.Title),
	}
}

func (w *DeadlineReminderWorker) Work(ctx context.Context, job *river.Job[DeadlineReminderArgs]) error {
	logger := loggerOr(w.Logger)
	now := nowOr(w.Now)()

	reminders, err := w.Repo.ListDeadlineReminders(ctx, now, now.Add(ReminderHorizon))
	if err != nil {
		metrics.JobRuns.WithLabelValues(JobKindDeadlineReminder, "error").Inc()
		return fmt.Errorf("list deadline reminders: %w", err)
	}

	sent, failed := 0, 0
	for _, r := range reminders {
		if err := w.Mailer.Send(ctx, ReminderMail(r)); err != nil {
			failed++
			logger.Warn("deadline reminder not sent",
				"internship_id", r.InternshipID,
				"error", err,
			)
			continue
		}
		sent++
	}

	metrics.JobRuns.WithLabelValues(JobKindDeadlineReminder, "success").Inc()
	logger.Info("deadline reminders processed",
		"attempt", job.Attempt,
		"sent", sent,
		"failed", failed,
	)
	return nil
}
