package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"submission_service/internal/domain"
)

type AssignmentRepository interface {
	Create(ctx context.Context, assignment *domain.Assignment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Assignment, error)
	Update(ctx context.Context, assignment *domain.Assignment) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByFilter(ctx context.Context, filter domain.AssignmentFilter) ([]*domain.Assignment, error)
}

type SubmissionRepository interface {
	Create(ctx context.Context, submission *domain.Submission) error
	Resubmit(ctx context.Context, submission *domain.Submission) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
	GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID uuid.UUID) (*domain.Submission, error)
	ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]*domain.Submission, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*domain.Submission, error)
	UpdateReview(ctx context.Context, submission *domain.Submission) error
	CountByStatus(ctx context.Context, assignmentID uuid.UUID) (map[domain.SubmissionStatus]int, error)
}

type EventProducer interface {
	Send(ctx context.Context, topic string, message interface{}) error
}

// Clock supplies "now" for deadline checks and timestamps; injected so tests
// can pin time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func SystemClock() Clock { return systemClock{} }
