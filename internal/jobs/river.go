// Package jobs holds the River workers run by the worker process.
package jobs

import (
	"log/slog"
	"time"

	"internport-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
)

const (
	JobKindDeadlineReminder = "deadline_reminder"
	JobKindDailySummary     = "daily_summary"
)

const (
	ReminderInterval = time.Hour
	SummaryInterval  = 24 * time.Hour
	// ReminderHorizon is how far ahead a deadline triggers a reminder.
	ReminderHorizon = 24 * time.Hour
	// Mail is best effort, so a failed run is only retried a few times.
	MaxAttempts = 3
)

// NewWorkers registers every worker against the given repository and mailer.
func NewWorkers(repo domain.NotificationRepository, mailer domain.Mailer, logger *slog.Logger) *river.Workers {
	workers := river.NewWorkers()
	river.AddWorker[DeadlineReminderArgs](workers, &DeadlineReminderWorker{Repo: repo, Mailer: mailer, Logger: logger})
	river.AddWorker[DailySummaryArgs](workers, &DailySummaryWorker{Repo: repo, Mailer: mailer, Logger: logger})
	return workers
}

// NewPeriodicJobs is the schedule: reminders hourly, the summary daily.
func NewPeriodicJobs() []*river.PeriodicJob {
	return []*river.PeriodicJob{
		river.NewPeriodicJob(
			river.PeriodicInterval(ReminderInterval),
			func() (river.JobArgs, *river.InsertOpts) {
				return DeadlineReminderArgs{}, nil
			},
			&river.PeriodicJobOpts{RunOnStart: false},
		),
		river.NewPeriodicJob(
			river.PeriodicInterval(SummaryInterval),
			func() (river.JobArgs, *river.InsertOpts) {
				return DailySummaryArgs{}, nil
			},
			&river.PeriodicJobOpts{RunOnStart: false},
		),
	}
}

func NewClientConfig(workers *river.Workers, logger *slog.Logger, periodicJobs []*river.PeriodicJob) *river.Config {
	config := &river.Config{
		Workers:      workers,
		MaxAttempts:  MaxAttempts,
		PeriodicJobs: periodicJobs,
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 10},
		},
	}
	if logger != nil {
		config.Logger = logger
	}
	return config
}

// NewClient creates a River client using pgx v5.
func NewClient(pool *pgxpool.Pool, workers *river.Workers, logger *slog.Logger) (*river.Client[pgx.Tx], error) {
	return river.NewClient(riverpgxv5.New(pool), NewClientConfig(workers, logger, NewPeriodicJobs()))
}
