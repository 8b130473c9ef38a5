package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"submission_service/internal/domain"
	"submission_service/internal/pkg/ctxdata"
	"submission_service/internal/pkg/logging"
	"submission_service/internal/repository"
)

type SubmissionServiceInterface interface {
	SubmitWork(ctx context.Context, assignmentID, studentID uuid.UUID, submissionURL string, note *string) (*domain.Submission, error)
	GetSubmission(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
	ListSubmissionsByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]*domain.Submission, error)
	ListSubmissionsByStudent(ctx context.Context, studentID uuid.UUID) ([]*domain.Submission, error)
}

type submissionService struct {
	submissionRepo SubmissionRepository
	assignmentRepo AssignmentRepository
	policy         domain.EligibilityPolicy
	clock          Clock
	producer       EventProducer
}

func NewSubmissionService(
	submissionRepo SubmissionRepository,
	assignmentRepo AssignmentRepository,
	policy domain.EligibilityPolicy,
	clock Clock,
	producer EventProducer,
) SubmissionServiceInterface {
	return &submissionService{
		submissionRepo: submissionRepo,
		assignmentRepo: assignmentRepo,
		policy:         policy,
		clock:          clock,
		producer:       producer,
	}
}

func (s *submissionService) SubmitWork(ctx context.Context, assignmentID, studentID uuid.UUID, submissionURL string, note *string) (*domain.Submission, error) {
	if strings.TrimSpace(submissionURL) == "" {
		return nil, ErrInvalidArgument
	}

	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}

	userID, ok := ctxdata.GetUserID(ctx)
	if !ok || userID != studentID.String() {
		return nil, ErrPermissionDenied
	}

	existing, err := s.submissionRepo.GetByAssignmentAndStudent(ctx, assignmentID, studentID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	now := s.clock.Now()
	if err := s.policy.CanSubmit(assignment, existing, now); err != nil {
		return nil, err
	}

	submission := &domain.Submission{
		AssignmentID:  assignmentID,
		StudentID:     studentID,
		SubmissionURL: submissionURL,
		Note:          note,
		SubmittedAt:   now,
		Status:        domain.SubmissionStatusPending,
	}

	if existing != nil {
		// Resubmission after rejection: the policy already allowed it.
		submission.ID = existing.ID
		if err := s.submissionRepo.Resubmit(ctx, submission); err != nil {
			return nil, err
		}
	} else {
		if err := s.submissionRepo.Create(ctx, submission); err != nil {
			return nil, err
		}
	}

	s.emit(ctx, TopicSubmissionReceived, map[string]interface{}{
		"submission_id": submission.ID,
		"assignment_id": assignment.ID,
		"student_id":    studentID,
		"instructor_id": assignment.InstructorID,
		"submitted_at":  submission.SubmittedAt,
	})

	return submission, nil
}

func (s *submissionService) GetSubmission(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	submission, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}

	assignment, err := s.assignmentRepo.GetByID(ctx, submission.AssignmentID)
	if err != nil {
		return nil, err
	}

	userID, ok := ctxdata.GetUserID(ctx)
	if !ok || (userID != submission.StudentID.String() && userID != assignment.InstructorID.String()) {
		return nil, ErrPermissionDenied
	}

	return submission, nil
}

func (s *submissionService) ListSubmissionsByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]*domain.Submission, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
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

	return s.submissionRepo.ListByAssignment(ctx, assignmentID)
}

func (s *submissionService) ListSubmissionsByStudent(ctx context.Context, studentID uuid.UUID) ([]*domain.Submission, error) {
	userID, ok := ctxdata.GetUserID(ctx)
	if !ok || userID != studentID.String() {
		return nil, ErrPermissionDenied
	}

	return s.submissionRepo.ListByStudent(ctx, studentID)
}

func (s *submissionService) emit(ctx context.Context, topic string, message map[string]interface{}) {
	if err := s.producer.Send(ctx, topic, message); err != nil {
		if log, ok := logging.GetFromContext(ctx); ok {
			log.Warn(ctx, "failed to publish event",
				zap.String("topic", topic),
				zap.Error(err),
			)
		}
	}
}
