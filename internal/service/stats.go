package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"submission_service/internal/domain"
	"submission_service/internal/pkg/ctxdata"
	"submission_service/internal/repository"
)

// AssignmentStats feeds the instructor dashboard's status breakdown.
type AssignmentStats struct {
	AssignmentID uuid.UUID
	Total        int
	Pending      int
	Accepted     int
	Rejected     int
	AverageGrade *float64
}

type StudentStats struct {
	StudentID    uuid.UUID
	Total        int
	Pending      int
	Accepted     int
	Rejected     int
	AverageGrade *float64
}

type StatsServiceInterface interface {
	AssignmentStats(ctx context.Context, assignmentID uuid.UUID) (*AssignmentStats, error)
	StudentStats(ctx context.Context, studentID uuid.UUID) (*StudentStats, error)
}

type statsService struct {
	submissionRepo SubmissionRepository
	assignmentRepo AssignmentRepository
}

func NewStatsService(submissionRepo SubmissionRepository, assignmentRepo AssignmentRepository) StatsServiceInterface {
	return &statsService{
		submissionRepo: submissionRepo,
		assignmentRepo: assignmentRepo,
	}
}

func (s *statsService) AssignmentStats(ctx context.Context, assignmentID uuid.UUID) (*AssignmentStats, error) {
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

	counts, err := s.submissionRepo.CountByStatus(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	submissions, err := s.submissionRepo.ListByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	stats := &AssignmentStats{
		AssignmentID: assignmentID,
		Pending:      counts[domain.SubmissionStatusPending],
		Accepted:     counts[domain.SubmissionStatusAccepted],
		Rejected:     counts[domain.SubmissionStatusRejected],
	}
	stats.Total = stats.Pending + stats.Accepted + stats.Rejected
	stats.AverageGrade = averageGrade(submissions)

	return stats, nil
}

func (s *statsService) StudentStats(ctx context.Context, studentID uuid.UUID) (*StudentStats, error) {
	userID, ok := ctxdata.GetUserID(ctx)
	if !ok || userID != studentID.String() {
		return nil, ErrPermissionDenied
	}

	submissions, err := s.submissionRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	stats := &StudentStats{StudentID: studentID, Total: len(submissions)}
	for _, submission := range submissions {
		switch submission.Status {
		case domain.SubmissionStatusPending:
			stats.Pending++
		case domain.SubmissionStatusAccepted:
			stats.Accepted++
		case domain.SubmissionStatusRejected:
			stats.Rejected++
		}
	}
	stats.AverageGrade = averageGrade(submissions)

	return stats, nil
}

func averageGrade(submissions []*domain.Submission) *float64 {
	var sum, graded int
	for _, submission := range submissions {
		if submission.Grade != nil {
			sum += *submission.Grade
			graded++
		}
	}
	if graded == 0 {
		return nil
	}
	avg := float64(sum) / float64(graded)
	return &avg
}
