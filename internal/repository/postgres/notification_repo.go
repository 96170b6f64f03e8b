package postgres

import (
	"context"
	"time"

	"internport-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type notificationRepo struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) domain.NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) ListDeadlineReminders(ctx context.Context, from, to time.Time) ([]domain.DeadlineReminder, error) {
	query := `
		SELECT i.id, i.title, i.last_date, u.email
		FROM internships i
		JOIN applications a ON a.internship_id = i.id
		JOIN student_profiles s ON s.id = a.student_id
		JOIN users u ON u.id = s.user_id
		WHERE i.is_active = TRUE AND i.last_date > $1 AND i.last_date <= $2
		ORDER BY i.last_date, i.id, u.email`

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.DeadlineReminder
	for rows.Next() {
		var d domain.DeadlineReminder
		if err := rows.Scan(&d.InternshipID, &d.Title, &d.LastDate, &d.StudentEmail); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *notificationRepo) CountNewApplicationsByCompany(ctx context.Context, since time.Time) ([]domain.CompanySummary, error) {
	query := `
		SELECT c.id, c.company_name, u.email, COUNT(a.id)
		FROM applications a
		JOIN internships i ON i.id = a.internship_id
		JOIN company_profiles c ON c.id = i.company_id
		JOIN users u ON u.id = c.user_id
		WHERE a.applied_at >= $1
		GROUP BY c.id, c.company_name, u.email
		ORDER BY c.id`

	rows, err := r.db.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CompanySummary
	for rows.Next() {
		var s domain.CompanySummary
		if err := rows.Scan(&s.CompanyID, &s.CompanyName, &s.Email, &s.NewApplications); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
