package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"submission_service/internal/domain"
	"submission_service/internal/pkg/ctxdata"
	"submission_service/internal/repository"
)

type AssignmentServiceInterface interface {
	CreateAssignment(ctx context.Context, assignment *domain.Assignment) (*domain.Assignment, error)
	GetAssignment(ctx context.Context, id uuid.UUID) (*domain.Assignment, error)
	UpdateAssignment(ctx context.Context, assignment *domain.Assignment) (*domain.Assignment, error)
	DeleteAssignment(ctx context.Context, id uuid.UUID) error
	ListAssignments(ctx context.Context, filter domain.AssignmentFilter) ([]*domain.Assignment, error)
}

type assignmentService struct {
	assignmentRepo AssignmentRepository
	submissionRepo SubmissionRepository
	clock          Clock
}

func NewAssignmentService(
	assignmentRepo AssignmentRepository,
	submissionRepo SubmissionRepository,
	clock Clock,
) AssignmentServiceInterface {
	return &assignmentService{
		assignmentRepo: assignmentRepo,
		submissionRepo: submissionRepo,
		clock:          clock,
	}
}

func (s *assignmentService) CreateAssignment(ctx context.Context, req *domain.Assignment) (*domain.Assignment, error) {
	userRole, ok := ctxdata.GetUserRole(ctx)
	if !ok || userRole != string(domain.UserRoleInstructor) {
		return nil, ErrPermissionDenied
	}

	userID, ok := ctxdata.GetUserID(ctx)
	if !ok || userID != req.InstructorID.String() {
		return nil, ErrPermissionDenied
	}

	if strings.TrimSpace(req.Title) == "" || req.MaxPoints <= 0 {
		return nil, ErrInvalidArgument
	}

	now := s.clock.Now()
	assignment := &domain.Assignment{
		InstructorID: req.InstructorID,
		Title:        req.Title,
		Description:  req.Description,
		Deadline:     req.Deadline,
		MaxPoints:    req.MaxPoints,
		CreatedAt:    now,
		EditedAt:     now,
	}

	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, err
	}

	return assignment, nil
}

func (s *assignmentService) GetAssignment(ctx context.Context, id uuid.UUID) (*domain.Assignment, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	return assignment, nil
}

func (s *assignmentService) UpdateAssignment(ctx context.Context, req *domain.Assignment) (*domain.Assignment, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}

	userID, ok := ctxdata.GetUserID(ctx)
	if !ok || userID != assignment.InstructorID.String() {
		return nil, ErrPermissionDenied
	}

	if strings.TrimSpace(req.Title) == "" || req.MaxPoints <= 0 {
		return nil, ErrInvalidArgument
	}

	if !req.Deadline.Equal(assignment.Deadline) {
		counts, err := s.submissionRepo.CountByStatus(ctx, assignment.ID)
		if err != nil {
			return nil, err
		}
		total := 0
		for _, n := range counts {
			total += n
		}
		if total > 0 {
			return nil, ErrDeadlineLocked
		}
	}

	assignment.Title = req.Title
	assignment.Description = req.Description
	assignment.Deadline = req.Deadline
	assignment.MaxPoints = req.MaxPoints
	assignment.EditedAt = s.clock.Now()

	if err := s.assignmentRepo.Update(ctx, assignment); err != nil {
		return nil, err
	}

	return assignment, nil
}

func (s *assignmentService) DeleteAssignment(ctx context.Context, id uuid.UUID) error {
	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}

	userID, ok := ctxdata.GetUserID(ctx)
	if !ok || userID != assignment.InstructorID.String() {
		return ErrPermissionDenied
	}

	return s.assignmentRepo.Delete(ctx, id)
}

func (s *assignmentService) ListAssignments(ctx context.Context, filter domain.AssignmentFilter) ([]*domain.Assignment, error) {
	return s.assignmentRepo.ListByFilter(ctx, filter)
}
