package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/edumetric/edumetric/pkg/models"
)

var ErrStudentNotFound = errors.New("student not found")

const studentColumns = `
	rno, name, email, dept, year, curr_sem, batch_year,
	sem1, sem2, sem3, sem4, sem5, sem6, sem7, sem8,
	internal_marks, total_days_curr, attended_days_curr,
	prev_attendance_perc, behavior_score,
	mentor, mentor_email,
	COALESCE(performance_label, ''), COALESCE(risk_label, ''), COALESCE(dropout_label, ''),
	performance_overall, risk_score, dropout_score`

type StudentRepository struct {
	db *sql.DB
}

func NewStudentRepository(db *sql.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

func scanStudent(row interface{ Scan(...interface{}) error }) (*models.StudentRecord, error) {
	var s models.StudentRecord
	var perfOverall, riskScore, dropScore sql.NullFloat64

	err := row.Scan(
		&s.RNO, &s.Name, &s.Email, &s.Dept, &s.Year, &s.CurrSem, &s.BatchYear,
		&s.Sem1, &s.Sem2, &s.Sem3, &s.Sem4, &s.Sem5, &s.Sem6, &s.Sem7, &s.Sem8,
		&s.InternalMarks, &s.TotalDaysCurr, &s.AttendedDaysCurr,
		&s.PrevAttendancePct, &s.BehaviorScore,
		&s.Mentor, &s.MentorEmail,
		&s.PerformanceLabel, &s.RiskLabel, &s.DropoutLabel,
		&perfOverall, &riskScore, &dropScore,
	)
	if err != nil {
		return nil, err
	}

	if perfOverall.Valid {
		s.PerformanceOverall = &perfOverall.Float64
	}
	if riskScore.Valid {
		s.RiskScore = &riskScore.Float64
	}
	if dropScore.Valid {
		s.DropoutScore = &dropScore.Float64
	}

	return &s, nil
}

// LoadAll returns every student record, ordered by roll number. The result
// is the snapshot the query executor works against.
func (r *StudentRepository) LoadAll(ctx context.Context) ([]models.StudentRecord, error) {
	query := `SELECT ` + studentColumns + ` FROM students ORDER BY rno`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load students: %w", err)
	}
	defer rows.Close()

	var students []models.StudentRecord
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, *s)
	}

	return students, rows.Err()
}

func (r *StudentRepository) GetByRNO(ctx context.Context, rno string) (*models.StudentRecord, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE rno = $1`

	s, err := scanStudent(r.db.QueryRowContext(ctx, query, rno))
	if err == sql.ErrNoRows {
		return nil, ErrStudentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get student %s: %w", rno, err)
	}

	return s, nil
}

func (r *StudentRepository) Insert(ctx context.Context, s *models.StudentRecord) error {
	query := `
		INSERT INTO students (
			rno, name, email, dept, year, curr_sem, batch_year,
			sem1, sem2, sem3, sem4, sem5, sem6, sem7, sem8,
			internal_marks, total_days_curr, attended_days_curr,
			prev_attendance_perc, behavior_score,
			mentor, mentor_email
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22
		)`

	_, err := r.db.ExecContext(ctx, query,
		s.RNO, s.Name, s.Email, s.Dept, s.Year, s.CurrSem, s.BatchYear,
		s.Sem1, s.Sem2, s.Sem3, s.Sem4, s.Sem5, s.Sem6, s.Sem7, s.Sem8,
		s.InternalMarks, s.TotalDaysCurr, s.AttendedDaysCurr,
		s.PrevAttendancePct, s.BehaviorScore,
		s.Mentor, s.MentorEmail,
	)
	if err != nil {
		return fmt.Errorf("failed to insert student %s: %w", s.RNO, err)
	}

	return nil
}

func (r *StudentRepository) Update(ctx context.Context, s *models.StudentRecord) error {
	query := `
		UPDATE students SET
			name = $2, email = $3, dept = $4, year = $5, curr_sem = $6, batch_year = $7,
			sem1 = $8, sem2 = $9, sem3 = $10, sem4 = $11,
			sem5 = $12, sem6 = $13, sem7 = $14, sem8 = $15,
			internal_marks = $16, total_days_curr = $17, attended_days_curr = $18,
			prev_attendance_perc = $19, behavior_score = $20,
			mentor = $21, mentor_email = $22,
			updated_at = NOW()
		WHERE rno = $1`

	result, err := r.db.ExecContext(ctx, query,
		s.RNO, s.Name, s.Email, s.Dept, s.Year, s.CurrSem, s.BatchYear,
		s.Sem1, s.Sem2, s.Sem3, s.Sem4, s.Sem5, s.Sem6, s.Sem7, s.Sem8,
		s.InternalMarks, s.TotalDaysCurr, s.AttendedDaysCurr,
		s.PrevAttendancePct, s.BehaviorScore,
		s.Mentor, s.MentorEmail,
	)
	if err != nil {
		return fmt.Errorf("failed to update student %s: %w", s.RNO, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrStudentNotFound
	}

	return nil
}

func (r *StudentRepository) Delete(ctx context.Context, rno string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE rno = $1`, rno)
	if err != nil {
		return fmt.Errorf("failed to delete student %s: %w", rno, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrStudentNotFound
	}

	return nil
}

// BatchInsert loads many records inside one transaction, used by the seeder
// and bulk imports. Either every record lands or none do.
func (r *StudentRepository) BatchInsert(ctx context.Context, students []models.StudentRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin batch insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO students (
			rno, name, email, dept, year, curr_sem, batch_year,
			sem1, sem2, sem3, sem4, sem5, sem6, sem7, sem8,
			internal_marks, total_days_curr, attended_days_curr,
			prev_attendance_perc, behavior_score,
			mentor, mentor_email
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22
		)
		ON CONFLICT (rno) DO NOTHING`)
	if err != nil {
		return fmt.Errorf("failed to prepare batch insert: %w", err)
	}
	defer stmt.Close()

	for i := range students {
		s := &students[i]
		_, err := stmt.ExecContext(ctx,
			s.RNO, s.Name, s.Email, s.Dept, s.Year, s.CurrSem, s.BatchYear,
			s.Sem1, s.Sem2, s.Sem3, s.Sem4, s.Sem5, s.Sem6, s.Sem7, s.Sem8,
			s.InternalMarks, s.TotalDaysCurr, s.AttendedDaysCurr,
			s.PrevAttendancePct, s.BehaviorScore,
			s.Mentor, s.MentorEmail,
		)
		if err != nil {
			return fmt.Errorf("failed to insert student %s: %w", s.RNO, err)
		}
	}

	return tx.Commit()
}

// UpdateScores persists the engine's labels and scores back onto the record
// so later group queries can reuse them without recomputation.
func (r *StudentRepository) UpdateScores(ctx context.Context, rno string, f *models.FeatureSet, p *models.Prediction) error {
	query := `
		UPDATE students SET
			performance_label = $2, risk_label = $3, dropout_label = $4,
			performance_overall = $5, risk_score = $6, dropout_score = $7,
			updated_at = NOW()
		WHERE rno = $1`

	result, err := r.db.ExecContext(ctx, query,
		rno,
		p.PerformanceLabel, p.RiskLabel, p.DropoutLabel,
		f.PerformanceOverall, f.RiskScore, f.DropoutScore,
	)
	if err != nil {
		return fmt.Errorf("failed to update scores for %s: %w", rno, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrStudentNotFound
	}

	return nil
}

func (r *StudentRepository) ListDepartments(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT dept FROM students WHERE dept <> '' ORDER BY dept`)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	var depts []string
	for rows.Next() {
		var dept string
		if err := rows.Scan(&dept); err != nil {
			return nil, err
		}
		depts = append(depts, dept)
	}

	return depts, rows.Err()
}

func (r *StudentRepository) ListYears(ctx context.Context) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT year FROM students WHERE year > 0 ORDER BY year`)
	if err != nil {
		return nil, fmt.Errorf("failed to list years: %w", err)
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var year int
		if err := rows.Scan(&year); err != nil {
			return nil, err
		}
		years = append(years, year)
	}

	return years, rows.Err()
}

func (r *StudentRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM students`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count students: %w", err)
	}
	return count, nil
}
