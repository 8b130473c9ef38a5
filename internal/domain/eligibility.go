package domain

import (
	"fmt"
	"time"
)

type DenialReason string

const (
	DenialAlreadySubmitted DenialReason = "ALREADY_SUBMITTED"
	DenialDeadlinePassed   DenialReason = "DEADLINE_PASSED"
)

// EligibilityError is an expected, user-facing denial, not an internal failure.
type EligibilityError struct {
	Reason DenialReason
}

func (e *EligibilityError) Error() string {
	return fmt.Sprintf("submission denied: %s", e.Reason)
}

// EligibilityPolicy decides whether a student may submit against an assignment.
// It is pure: no side effects, identical inputs give identical answers.
type EligibilityPolicy struct {
	// AllowResubmission lets a student replace a REJECTED submission.
	AllowResubmission bool
}

func (p EligibilityPolicy) CanSubmit(assignment *Assignment, existing *Submission, now time.Time) error {
	if existing != nil {
		if !p.AllowResubmission || existing.Status != SubmissionStatusRejected {
			return &EligibilityError{Reason: DenialAlreadySubmitted}
		}
	}
	if now.After(assignment.Deadline) {
		return &EligibilityError{Reason: DenialDeadlinePassed}
	}
	return nil
}
