package httpapi

import (
	"time"

	"github.com/go-playground/validator/v10"

	"submission_service/internal/domain"
	"submission_service/internal/service"
)

var validate = validator.New()

type createAssignmentRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline" validate:"required"`
	MaxPoints   int       `json:"maxPoints" validate:"required,gt=0"`
}

type updateAssignmentRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline" validate:"required"`
	MaxPoints   int       `json:"maxPoints" validate:"required,gt=0"`
}

type createSubmissionRequest struct {
	AssignmentID  string  `json:"assignmentId" validate:"required,uuid"`
	SubmissionURL string  `json:"submissionUrl" validate:"required,url"`
	Note          *string `json:"note"`
}

type reviewSubmissionRequest struct {
	Status   *string `json:"status" validate:"omitempty,oneof=PENDING ACCEPTED REJECTED"`
	Feedback *string `json:"feedback"`
	Grade    *int    `json:"grade" validate:"omitempty,gte=0"`
}

type assignmentResponse struct {
	ID           string    `json:"id"`
	InstructorID string    `json:"instructorId"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Deadline     time.Time `json:"deadline"`
	MaxPoints    int       `json:"maxPoints"`
	CreatedAt    time.Time `json:"createdAt"`
	EditedAt     time.Time `json:"editedAt"`
}

type submissionResponse struct {
	ID            string     `json:"id"`
	AssignmentID  string     `json:"assignmentId"`
	StudentID     string     `json:"studentId"`
	SubmissionURL string     `json:"submissionUrl"`
	Note          *string    `json:"note,omitempty"`
	SubmittedAt   time.Time  `json:"submittedAt"`
	Status        string     `json:"status"`
	Feedback      *string    `json:"feedback,omitempty"`
	Grade         *int       `json:"grade,omitempty"`
	ReviewedAt    *time.Time `json:"reviewedAt,omitempty"`
}

type assignmentStatsResponse struct {
	AssignmentID string   `json:"assignmentId"`
	Total        int      `json:"total"`
	Pending      int      `json:"pending"`
	Accepted     int      `json:"accepted"`
	Rejected     int      `json:"rejected"`
	AverageGrade *float64 `json:"averageGrade,omitempty"`
}

type studentStatsResponse struct {
	StudentID    string   `json:"studentId"`
	Total        int      `json:"total"`
	Pending      int      `json:"pending"`
	Accepted     int      `json:"accepted"`
	Rejected     int      `json:"rejected"`
	AverageGrade *float64 `json:"averageGrade,omitempty"`
}

func toAssignmentResponse(a *domain.Assignment) *assignmentResponse {
	return &assignmentResponse{
		ID:           a.ID.String(),
		InstructorID: a.InstructorID.String(),
		Title:        a.Title,
		Description:  a.Description,
		Deadline:     a.Deadline,
		MaxPoints:    a.MaxPoints,
		CreatedAt:    a.CreatedAt,
		EditedAt:     a.EditedAt,
	}
}

func toAssignmentResponses(assignments []*domain.Assignment) []*assignmentResponse {
	out := make([]*assignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, toAssignmentResponse(a))
	}
	return out
}

func toSubmissionResponse(s *domain.Submission) *submissionResponse {
	return &submissionResponse{
		ID:            s.ID.String(),
		AssignmentID:  s.AssignmentID.String(),
		StudentID:     s.StudentID.String(),
		SubmissionURL: s.SubmissionURL,
		Note:          s.Note,
		SubmittedAt:   s.SubmittedAt,
		Status:        string(s.Status),
		Feedback:      s.Feedback,
		Grade:         s.Grade,
		ReviewedAt:    s.ReviewedAt,
	}
}

func toSubmissionResponses(submissions []*domain.Submission) []*submissionResponse {
	out := make([]*submissionResponse, 0, len(submissions))
	for _, s := range submissions {
		out = append(out, toSubmissionResponse(s))
	}
	return out
}

func toAssignmentStatsResponse(stats *service.AssignmentStats) *assignmentStatsResponse {
	return &assignmentStatsResponse{
		AssignmentID: stats.AssignmentID.String(),
		Total:        stats.Total,
		Pending:      stats.Pending,
		Accepted:     stats.Accepted,
		Rejected:     stats.Rejected,
		AverageGrade: stats.AverageGrade,
	}
}

func toStudentStatsResponse(stats *service.StudentStats) *studentStatsResponse {
	return &studentStatsResponse{
		StudentID:    stats.StudentID.String(),
		Total:        stats.Total,
		Pending:      stats.Pending,
		Accepted:     stats.Accepted,
		Rejected:     stats.Rejected,
		AverageGrade: stats.AverageGrade,
	}
}
