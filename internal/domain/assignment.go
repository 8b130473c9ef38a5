package domain

import (
	"time"

	"github.com/google/uuid"
)

type Assignment struct {
	ID           uuid.UUID
	InstructorID uuid.UUID
	Title        string
	Description  string
	Deadline     time.Time
	MaxPoints    int
	CreatedAt    time.Time
	EditedAt     time.Time
}

type AssignmentFilter struct {
	InstructorID uuid.UUID
}
