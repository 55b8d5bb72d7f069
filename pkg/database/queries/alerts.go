package queries

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/edumetric/edumetric/pkg/models"
)

type AlertRepository struct {
	db *sql.DB
}

func NewAlertRepository(db *sql.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) Insert(ctx context.Context, alert *models.MentorAlert) error {
	query := `
		INSERT INTO mentor_alerts
			(rno, student_name, mentor, mentor_email, performance_label, risk_label, dropout_label, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		alert.RNO, alert.StudentName, alert.Mentor, alert.MentorEmail,
		alert.PerformanceLabel, alert.RiskLabel, alert.DropoutLabel, alert.Reason,
	).Scan(&alert.ID, &alert.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert mentor alert: %w", err)
	}

	return nil
}

// Recent returns the latest alerts, newest first.
func (r *AlertRepository) Recent(ctx context.Context, limit int) ([]models.MentorAlert, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, rno, student_name, COALESCE(mentor, ''), COALESCE(mentor_email, ''),
			performance_label, risk_label, dropout_label, reason, created_at
		FROM mentor_alerts
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load mentor alerts: %w", err)
	}
	defer rows.Close()

	var alerts []models.MentorAlert
	for rows.Next() {
		var a models.MentorAlert
		err := rows.Scan(&a.ID, &a.RNO, &a.StudentName, &a.Mentor, &a.MentorEmail,
			&a.PerformanceLabel, &a.RiskLabel, &a.DropoutLabel, &a.Reason, &a.CreatedAt)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}

	return alerts, rows.Err()
}

// ForStudent returns every alert raised for one roll number.
func (r *AlertRepository) ForStudent(ctx context.Context, rno string) ([]models.MentorAlert, error) {
	query := `
		SELECT id, rno, student_name, COALESCE(mentor, ''), COALESCE(mentor_email, ''),
			performance_label, risk_label, dropout_label, reason, created_at
		FROM mentor_alerts
		WHERE rno = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, rno)
	if err != nil {
		return nil, fmt.Errorf("failed to load alerts for %s: %w", rno, err)
	}
	defer rows.Close()

	var alerts []models.MentorAlert
	for rows.Next() {
		var a models.MentorAlert
		err := rows.Scan(&a.ID, &a.RNO, &a.StudentName, &a.Mentor, &a.MentorEmail,
			&a.PerformanceLabel, &a.RiskLabel, &a.DropoutLabel, &a.Reason, &a.CreatedAt)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}

	return alerts, rows.Err()
}
