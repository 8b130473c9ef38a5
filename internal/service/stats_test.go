package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"submission_service/internal/domain"
	"submission_service/internal/service"
	"submission_service/internal/service/mocks"
)

func TestStatsService_AssignmentStats(t *testing.T) {
	instructorID := uuid.New()
	assignment := testAssignment(instructorID)

	grade90, grade70 := 90, 70
	submissions := []*domain.Submission{
		{Status: domain.SubmissionStatusAccepted, Grade: &grade90},
		{Status: domain.SubmissionStatusRejected, Grade: &grade70},
		{Status: domain.SubmissionStatusPending},
	}

	submissionRepo := new(mocks.SubmissionRepository)
	assignmentRepo := new(mocks.AssignmentRepository)
	assignmentRepo.On("GetByID", mock.Anything, assignment.ID).Return(assignment, nil)
	submissionRepo.On("CountByStatus", mock.Anything, assignment.ID).Return(map[domain.SubmissionStatus]int{
		domain.SubmissionStatusAccepted: 1,
		domain.SubmissionStatusRejected: 1,
		domain.SubmissionStatusPending:  1,
	}, nil)
	submissionRepo.On("ListByAssignment", mock.Anything, assignment.ID).Return(submissions, nil)

	svc := service.NewStatsService(submissionRepo, assignmentRepo)

	stats, err := svc.AssignmentStats(instructorCtx(instructorID), assignment.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.Accepted)
	assert.Equal(t, 1, stats.Rejected)
	require.NotNil(t, stats.AverageGrade)
	assert.InDelta(t, 80.0, *stats.AverageGrade, 0.001)

	_, err = svc.AssignmentStats(instructorCtx(uuid.New()), assignment.ID)
	assert.ErrorIs(t, err, service.ErrPermissionDenied)
}

func TestStatsService_StudentStats(t *testing.T) {
	studentID := uuid.New()

	submissionRepo := new(mocks.SubmissionRepository)
	submissionRepo.On("ListByStudent", mock.Anything, studentID).Return([]*domain.Submission{
		{Status: domain.SubmissionStatusAccepted},
		{Status: domain.SubmissionStatusPending},
	}, nil)

	svc := service.NewStatsService(submissionRepo, new(mocks.AssignmentRepository))

	stats, err := svc.StudentStats(studentCtx(studentID), studentID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Accepted)
	assert.Equal(t, 1, stats.Pending)
	assert.Nil(t, stats.AverageGrade)

	_, err = svc.StudentStats(studentCtx(uuid.New()), studentID)
	assert.ErrorIs(t, err, service.ErrPermissionDenied)
}
