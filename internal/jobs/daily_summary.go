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

type DailySummaryArgs struct{}

func (DailySummaryArgs) Kind() string { return JobKindDailySummary }

// DailySummaryWorker tells each company how many applications it received
// in the last 24 hours. Companies with none get no mail.
type DailySummaryWorker struct {
	river.WorkerDefaults[DailySummaryArgs]
	Repo   domain.NotificationRepository
	Mailer domain.Mailer
	Logger *slog.Logger
	Now    func() time.Time
}

func SummaryMail(s domain.CompanySummary) domain.Mail {
	return domain.Mail{
		To:      s.Email,
		Subject: "Daily Applications Summary",
		Body:    fmt.Sprintf("You received %d new applications yesterday.", s.NewApplications),
	}
}

func (w *DailySummaryWorker) Work(ctx context.Context, job *river.Job[DailySummaryArgs]) error {
	logger := loggerOr(w.Logger)
	since := nowOr(w.Now)().Add(-SummaryInterval)

	summaries, err := w.Repo.CountNewApplicationsByCompany(ctx, since)
	if err != nil {
		metrics.JobRuns.WithLabelValues(JobKindDailySummary, "error").Inc()
		return fmt.Errorf("count new applications: %w", err)
	}

	sent := 0
	for _, s := range summaries {
		if s.NewApplications <= 0 {
			continue
		}
		if err := w.Mailer.Send(ctx, SummaryMail(s)); err != nil {
			logger.Warn("daily summary not sent", "company_id", s.CompanyID, "error", err)
			continue
		}
		sent++
	}

	metrics.JobRuns.WithLabelValues(JobKindDailySummary, "success").Inc()
	logger.Info("daily summaries processed", "attempt", job.Attempt, "companies", len(summaries), "sent", sent)
	return nil
}

func loggerOr(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}

func nowOr(now func() time.Time) func() time.Time {
	if now == nil {
		return time.Now
	}
	return now
}
