package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"submission_service/internal/domain"
)

const submissionColumns = `id, assignment_id, student_id, submission_url, note, submitted_at, status, feedback, grade, reviewed_at`

type SubmissionRepository struct {
	db *sql.DB
}

func NewSubmissionRepository(db *sql.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) Create(ctx context.Context, submission *domain.Submission) error {
	query := `
		INSERT INTO submissions (id, assignment_id, student_id, submission_url, note, submitted_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	id, err := uuid.NewV7()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query,
		id,
		submission.AssignmentID,
		submission.StudentID,
		submission.SubmissionURL,
		submission.Note,
		submission.SubmittedAt,
		submission.Status,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicate
		}
		return err
	}

	submission.ID = id
	return nil
}

// Resubmit resets a rejected submission in place for a new attempt. The row
// keeps its identity so the one-submission-per-pair invariant holds.
func (r *SubmissionRepository) Resubmit(ctx context.Context, submission *domain.Submission) error {
	query := `
		UPDATE submissions
		SET submission_url = $2, note = $3, submitted_at = $4, status = $5,
		    feedback = NULL, grade = NULL, reviewed_at = NULL
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query,
		submission.ID,
		submission.SubmissionURL,
		submission.Note,
		submission.SubmittedAt,
		submission.Status,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SubmissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *SubmissionRepository) GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID uuid.UUID) (*domain.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE assignment_id = $1 AND student_id = $2`
	return r.scanOne(r.db.QueryRowContext(ctx, query, assignmentID, studentID))
}

func (r *SubmissionRepository) ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]*domain.Submission, error) {
	query := `
		SELECT ` + submissionColumns + `
		FROM submissions
		WHERE assignment_id = $1
		ORDER BY submitted_at, id
	`
	return r.list(ctx, query, assignmentID)
}

func (r *SubmissionRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*domain.Submission, error) {
	query := `
		SELECT ` + submissionColumns + `
		FROM submissions
		WHERE student_id = $1
		ORDER BY submitted_at, id
	`
	return r.list(ctx, query, studentID)
}

// UpdateReview writes status, feedback, grade and reviewed_at in a single
// statement so a review either fully applies or leaves the row unchanged.
func (r *SubmissionRepository) UpdateReview(ctx context.Context, submission *domain.Submission) error {
	query := `
		UPDATE submissions
		SET status = $2, feedback = $3, grade = $4, reviewed_at = $5
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query,
		submission.ID,
		submission.Status,
		submission.Feedback,
		submission.Grade,
		submission.ReviewedAt,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SubmissionRepository) CountByStatus(ctx context.Context, assignmentID uuid.UUID) (map[domain.SubmissionStatus]int, error) {
	query := `
		SELECT status, COUNT(*)
		FROM submissions
		WHERE assignment_id = $1
		GROUP BY status
	`

	rows, err := r.db.QueryContext(ctx, query, assignmentID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[domain.SubmissionStatus]int)
	for rows.Next() {
		var status domain.SubmissionStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}

	return counts, rows.Err()
}

func (r *SubmissionRepository) scanOne(row *sql.Row) (*domain.Submission, error) {
	var submission domain.Submission
	err := row.Scan(
		&submission.ID,
		&submission.AssignmentID,
		&submission.StudentID,
		&submission.SubmissionURL,
		&submission.Note,
		&submission.SubmittedAt,
		&submission.Status,
		&submission.Feedback,
		&submission.Grade,
		&submission.ReviewedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &submission, nil
}

func (r *SubmissionRepository) list(ctx context.Context, query string, args ...interface{}) ([]*domain.Submission, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var submissions []*domain.Submission
	for rows.Next() {
		var submission domain.Submission
		err := rows.Scan(
			&submission.ID,
			&submission.AssignmentID,
			&submission.StudentID,
			&submission.SubmissionURL,
			&submission.Note,
			&submission.SubmittedAt,
			&submission.Status,
			&submission.Feedback,
			&submission.Grade,
			&submission.ReviewedAt,
		)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, &submission)
	}

	return submissions, rows.Err()
}
