package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"submission_service/internal/domain"
	"submission_service/internal/pkg/ctxdata"
	"submission_service/internal/pkg/logging"
	"submission_service/internal/repository"
)

// ReviewInput carries the optional parts of a review; nil fields are left
// untouched on the submission.
type ReviewInput struct {
	Status   *domain.SubmissionStatus
	Feedback *string
	Grade    *int
}

type ReviewServiceInterface interface {
	Review(ctx context.Context, submissionID uuid.UUID, input ReviewInput) (*domain.Submission, error)
	SetStatus(ctx context.Context, submissionID uuid.UUID, status domain.SubmissionStatus) (*domain.Submission, error)
	SetFeedback(ctx context.Context, submissionID uuid.UUID, feedback string) (*domain.Submission, error)
	SetGrade(ctx context.Context, submissionID uuid.UUID, grade int) (*domain.Submission, error)
}

type reviewService struct {
	submissionRepo SubmissionRepository
	assignmentRepo AssignmentRepository
	clock          Clock
	producer       EventProducer
}

func NewReviewService(
	submissionRepo SubmissionRepository,
	assignmentRepo AssignmentRepository,
	clock Clock,
	producer EventProducer,
) ReviewServiceInterface {
	return &reviewService{
		submissionRepo: submissionRepo,
		assignmentRepo: assignmentRepo,
		clock:          clock,
		producer:       producer,
	}
}

func (s *reviewService) Review(ctx context.Context, submissionID uuid.UUID, input ReviewInput) (*domain.Submission, error) {
	if input.Status == nil && input.Feedback == nil && input.Grade == nil {
		return nil, ErrInvalidArgument
	}

	submission, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}

	assignment, err := s.assignmentRepo.GetByID(ctx, submission.AssignmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}

	userRole, ok := ctxdata.GetUserRole(ctx)
	if !ok || userRole != string(domain.UserRoleInstructor) {
		return nil, ErrPermissionDenied
	}
	userID, ok := ctxdata.GetUserID(ctx)
	if !ok || userID != assignment.InstructorID.String() {
		return nil, ErrPermissionDenied
	}

	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, ErrInvalidArgument
		}
		if !submission.Status.CanTransitionTo(*input.Status) {
			return nil, ErrInvalidTransition
		}
	}

	if input.Grade != nil {
		// A grade only makes sense together with or after a decision.
		decided := submission.Status != domain.SubmissionStatusPending ||
			(input.Status != nil && *input.Status != domain.SubmissionStatusPending)
		if !decided {
			return nil, ErrInvalidArgument
		}
		if *input.Grade < 0 || *input.Grade > assignment.MaxPoints {
			return nil, ErrInvalidGrade
		}
	}

	if input.Status != nil {
		submission.Status = *input.Status
	}
	if input.Feedback != nil {
		submission.Feedback = input.Feedback
	}
	if input.Grade != nil {
		submission.Grade = input.Grade
	}
	now := s.clock.Now()
	submission.ReviewedAt = &now

	if err := s.submissionRepo.UpdateReview(ctx, submission); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}

	s.emit(ctx, TopicSubmissionReviewed, map[string]interface{}{
		"submission_id": submission.ID,
		"assignment_id": assignment.ID,
		"student_id":    submission.StudentID,
		"status":        submission.Status,
		"reviewed_at":   now,
	})

	return submission, nil
}

func (s *reviewService) SetStatus(ctx context.Context, submissionID uuid.UUID, status domain.SubmissionStatus) (*domain.Submission, error) {
	return s.Review(ctx, submissionID, ReviewInput{Status: &status})
}

func (s *reviewService) SetFeedback(ctx context.Context, submissionID uuid.UUID, feedback string) (*domain.Submission, error) {
	return s.Review(ctx, submissionID, ReviewInput{Feedback: &feedback})
}

func (s *reviewService) SetGrade(ctx context.Context, submissionID uuid.UUID, grade int) (*domain.Submission, error) {
	return s.Review(ctx, submissionID, ReviewInput{Grade: &grade})
}

func (s *reviewService) emit(ctx context.Context, topic string, message map[string]interface{}) {
	if err := s.producer.Send(ctx, topic, message); err != nil {
		if log, ok := logging.GetFromContext(ctx); ok {
			log.Warn(ctx, "failed to publish event",
				zap.String("topic", topic),
				zap.Error(err),
			)
		}
	}
}
