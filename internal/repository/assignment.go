package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"submission_service/internal/domain"
)

type AssignmentRepository struct {
	db *sql.DB
}

func NewAssignmentRepository(db *sql.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) Create(ctx context.Context, assignment *domain.Assignment) error {
	query := `
		INSERT INTO assignments (id, instructor_id, title, description, deadline, max_points, created_at, edited_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	id, err := uuid.NewV7()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query,
		id,
		assignment.InstructorID,
		assignment.Title,
		assignment.Description,
		assignment.Deadline,
		assignment.MaxPoints,
		assignment.CreatedAt,
		assignment.EditedAt,
	)
	if err != nil {
		return err
	}

	assignment.ID = id
	return nil
}

func (r *AssignmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Assignment, error) {
	query := `
		SELECT id, instructor_id, title, description, deadline, max_points, created_at, edited_at
		FROM assignments
		WHERE id = $1
	`

	var assignment domain.Assignment
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&assignment.ID,
		&assignment.InstructorID,
		&assignment.Title,
		&assignment.Description,
		&assignment.Deadline,
		&assignment.MaxPoints,
		&assignment.CreatedAt,
		&assignment.EditedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &assignment, nil
}

func (r *AssignmentRepository) Update(ctx context.Context, assignment *domain.Assignment) error {
	query := `
		UPDATE assignments
		SET title = $2, description = $3, deadline = $4, max_points = $5, edited_at = $6
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query,
		assignment.ID,
		assignment.Title,
		assignment.Description,
		assignment.Deadline,
		assignment.MaxPoints,
		assignment.EditedAt,
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

func (r *AssignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM assignments WHERE id = $1`, id)
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

func (r *AssignmentRepository) ListByFilter(ctx context.Context, filter domain.AssignmentFilter) ([]*domain.Assignment, error) {
	query := `
		SELECT id, instructor_id, title, description, deadline, max_points, created_at, edited_at
		FROM assignments
	`
	var args []interface{}

	if filter.InstructorID != uuid.Nil {
		query += ` WHERE instructor_id = $1`
		args = append(args, filter.InstructorID)
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var assignments []*domain.Assignment
	for rows.Next() {
		var assignment domain.Assignment
		err := rows.Scan(
			&assignment.ID,
			&assignment.InstructorID,
			&assignment.Title,
			&assignment.Description,
			&assignment.Deadline,
			&assignment.MaxPoints,
			&assignment.CreatedAt,
			&assignment.EditedAt,
		)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, &assignment)
	}

	return assignments, rows.Err()
}

func (r *AssignmentRepository) FindAssignmentsDueSoon(ctx context.Context, window time.Duration) ([]*domain.Assignment, error) {
	query := `
		SELECT id, instructor_id, title, description, deadline, max_points, created_at, edited_at
		FROM assignments
		WHERE deadline > NOW() AND deadline <= NOW() + $1::interval
		ORDER BY deadline
	`

	rows, err := r.db.QueryContext(ctx, query, window.String())
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var assignments []*domain.Assignment
	for rows.Next() {
		var assignment domain.Assignment
		err := rows.Scan(
			&assignment.ID,
			&assignment.InstructorID,
			&assignment.Title,
			&assignment.Description,
			&assignment.Deadline,
			&assignment.MaxPoints,
			&assignment.CreatedAt,
			&assignment.EditedAt,
		)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, &assignment)
	}

	return assignments, rows.Err()
}
