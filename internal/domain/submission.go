package domain

import (
	"time"

	"github.com/google/uuid"
)

type Submission struct {
	ID            uuid.UUID
	AssignmentID  uuid.UUID
	StudentID     uuid.UUID
	SubmissionURL string
	Note          *string
	SubmittedAt   time.Time
	Status        SubmissionStatus
	Feedback      *string
	Grade         *int
	ReviewedAt    *time.Time
}
