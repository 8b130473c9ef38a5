package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"submission_service/internal/domain"
	"submission_service/internal/pkg/ctxdata"
	"submission_service/internal/repository"
	"submission_service/internal/service"
	"submission_service/internal/service/mocks"
)

func instructorCtx(instructorID uuid.UUID) context.Context {
	ctx := ctxdata.WithUserID(context.Background(), instructorID.String())
	return ctxdata.WithUserRole(ctx, string(domain.UserRoleInstructor))
}

func pendingSubmission(assignmentID, studentID uuid.UUID) *domain.Submission {
	return &domain.Submission{
		ID:           uuid.New(),
		AssignmentID: assignmentID,
		StudentID:    studentID,
		Status:       domain.SubmissionStatusPending,
	}
}

func statusPtr(s domain.SubmissionStatus) *domain.SubmissionStatus { return &s }
func strPtr(s string) *string                                      { return &s }
func intPtr(n int) *int                                            { return &n }

func TestReviewService_Review(t *testing.T) {
	instructorID := uuid.New()
	studentID := uuid.New()
	assignment := testAssignment(instructorID)

	newService := func(submission *domain.Submission) (service.ReviewServiceInterface, *mocks.SubmissionRepository, *mocks.EventProducer) {
		submissionRepo := new(mocks.SubmissionRepository)
		assignmentRepo := new(mocks.AssignmentRepository)
		producer := new(mocks.EventProducer)

		submissionRepo.On("GetByID", mock.Anything, submission.ID).Return(submission, nil)
		assignmentRepo.On("GetByID", mock.Anything, assignment.ID).Return(assignment, nil)

		svc := service.NewReviewService(submissionRepo, assignmentRepo, mocks.FixedClock{Time: beforeDue}, producer)
		return svc, submissionRepo, producer
	}

	t.Run("accept with feedback", func(t *testing.T) {
		submission := pendingSubmission(assignment.ID, studentID)
		svc, submissionRepo, producer := newService(submission)
		submissionRepo.On("UpdateReview", mock.Anything, submission).Return(nil)
		producer.On("Send", mock.Anything, service.TopicSubmissionReviewed, mock.Anything).Return(nil)

		reviewed, err := svc.Review(instructorCtx(instructorID), submission.ID, service.ReviewInput{
			Status:   statusPtr(domain.SubmissionStatusAccepted),
			Feedback: strPtr("Great job"),
		})
		require.NoError(t, err)

		assert.Equal(t, domain.SubmissionStatusAccepted, reviewed.Status)
		require.NotNil(t, reviewed.Feedback)
		assert.Equal(t, "Great job", *reviewed.Feedback)
		require.NotNil(t, reviewed.ReviewedAt)
		assert.Equal(t, beforeDue, *reviewed.ReviewedAt)
		submissionRepo.AssertExpectations(t)
		producer.AssertExpectations(t)
	})

	t.Run("other instructor is forbidden and nothing changes", func(t *testing.T) {
		submission := pendingSubmission(assignment.ID, studentID)
		svc, submissionRepo, _ := newService(submission)

		_, err := svc.Review(instructorCtx(uuid.New()), submission.ID, service.ReviewInput{
			Status: statusPtr(domain.SubmissionStatusAccepted),
		})
		assert.ErrorIs(t, err, service.ErrPermissionDenied)
		assert.Equal(t, domain.SubmissionStatusPending, submission.Status)
		submissionRepo.AssertNotCalled(t, "UpdateReview", mock.Anything, mock.Anything)
	})

	t.Run("student role is forbidden even with matching id", func(t *testing.T) {
		submission := pendingSubmission(assignment.ID, studentID)
		svc, _, _ := newService(submission)

		ctx := ctxdata.WithUserRole(
			ctxdata.WithUserID(context.Background(), instructorID.String()),
			string(domain.UserRoleStudent),
		)
		_, err := svc.Review(ctx, submission.ID, service.ReviewInput{
			Status: statusPtr(domain.SubmissionStatusAccepted),
		})
		assert.ErrorIs(t, err, service.ErrPermissionDenied)
	})

	t.Run("set status is idempotent", func(t *testing.T) {
		submission := pendingSubmission(assignment.ID, studentID)
		svc, submissionRepo, producer := newService(submission)
		submissionRepo.On("UpdateReview", mock.Anything, submission).Return(nil)
		producer.On("Send", mock.Anything, service.TopicSubmissionReviewed, mock.Anything).Return(nil)

		first, err := svc.SetStatus(instructorCtx(instructorID), submission.ID, domain.SubmissionStatusRejected)
		require.NoError(t, err)

		second, err := svc.SetStatus(instructorCtx(instructorID), submission.ID, domain.SubmissionStatusRejected)
		require.NoError(t, err)
		assert.Equal(t, first.Status, second.Status)
		assert.Equal(t, first.Feedback, second.Feedback)
		assert.Equal(t, first.Grade, second.Grade)
	})

	t.Run("correcting a prior decision", func(t *testing.T) {
		submission := pendingSubmission(assignment.ID, studentID)
		submission.Status = domain.SubmissionStatusAccepted
		svc, submissionRepo, producer := newService(submission)
		submissionRepo.On("UpdateReview", mock.Anything, submission).Return(nil)
		producer.On("Send", mock.Anything, service.TopicSubmissionReviewed, mock.Anything).Return(nil)

		reviewed, err := svc.SetStatus(instructorCtx(instructorID), submission.ID, domain.SubmissionStatusRejected)
		require.NoError(t, err)
		assert.Equal(t, domain.SubmissionStatusRejected, reviewed.Status)
	})

	t.Run("no re-opening to pending", func(t *testing.T) {
		submission := pendingSubmission(assignment.ID, studentID)
		submission.Status = domain.SubmissionStatusAccepted
		svc, submissionRepo, _ := newService(submission)

		_, err := svc.SetStatus(instructorCtx(instructorID), submission.ID, domain.SubmissionStatusPending)
		assert.ErrorIs(t, err, service.ErrInvalidTransition)
		submissionRepo.AssertNotCalled(t, "UpdateReview", mock.Anything, mock.Anything)
	})

	t.Run("grade above max points", func(t *testing.T) {
		submission := pendingSubmission(assignment.ID, studentID)
		submission.Status = domain.SubmissionStatusAccepted
		svc, submissionRepo, _ := newService(submission)

		_, err := svc.SetGrade(instructorCtx(instructorID), submission.ID, 150)
		assert.ErrorIs(t, err, service.ErrInvalidGrade)
		assert.Nil(t, submission.Grade)
		submissionRepo.AssertNotCalled(t, "UpdateReview", mock.Anything, mock.Anything)
	})

	t.Run("grade requires a decision", func(t *testing.T) {
		submission := pendingSubmission(assignment.ID, studentID)
		svc, _, _ := newService(submission)

		_, err := svc.SetGrade(instructorCtx(instructorID), submission.ID, 90)
		assert.ErrorIs(t, err, service.ErrInvalidArgument)
	})

	t.Run("grade alongside decision", func(t *testing.T) {
		submission := pendingSubmission(assignment.ID, studentID)
		svc, submissionRepo, producer := newService(submission)
		submissionRepo.On("UpdateReview", mock.Anything, submission).Return(nil)
		producer.On("Send", mock.Anything, service.TopicSubmissionReviewed, mock.Anything).Return(nil)

		reviewed, err := svc.Review(instructorCtx(instructorID), submission.ID, service.ReviewInput{
			Status: statusPtr(domain.SubmissionStatusAccepted),
			Grade:  intPtr(95),
		})
		require.NoError(t, err)
		require.NotNil(t, reviewed.Grade)
		assert.Equal(t, 95, *reviewed.Grade)
	})

	t.Run("feedback is last-write-wins", func(t *testing.T) {
		submission := pendingSubmission(assignment.ID, studentID)
		submission.Status = domain.SubmissionStatusAccepted
		submission.Feedback = strPtr("first pass")
		svc, submissionRepo, producer := newService(submission)
		submissionRepo.On("UpdateReview", mock.Anything, submission).Return(nil)
		producer.On("Send", mock.Anything, service.TopicSubmissionReviewed, mock.Anything).Return(nil)

		reviewed, err := svc.SetFeedback(instructorCtx(instructorID), submission.ID, "second pass")
		require.NoError(t, err)
		assert.Equal(t, "second pass", *reviewed.Feedback)
	})

	t.Run("empty input", func(t *testing.T) {
		submission := pendingSubmission(assignment.ID, studentID)
		svc, _, _ := newService(submission)

		_, err := svc.Review(instructorCtx(instructorID), submission.ID, service.ReviewInput{})
		assert.ErrorIs(t, err, service.ErrInvalidArgument)
	})

	t.Run("unknown submission", func(t *testing.T) {
		submissionRepo := new(mocks.SubmissionRepository)
		id := uuid.New()
		submissionRepo.On("GetByID", mock.Anything, id).Return(nil, repository.ErrNotFound)

		svc := service.NewReviewService(submissionRepo, new(mocks.AssignmentRepository), mocks.FixedClock{Time: beforeDue}, new(mocks.EventProducer))

		_, err := svc.SetStatus(instructorCtx(instructorID), id, domain.SubmissionStatusAccepted)
		assert.ErrorIs(t, err, service.ErrSubmissionNotFound)
	})
}
