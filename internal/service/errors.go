package service

import "errors"

var (
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInvalidGrade       = errors.New("grade out of range")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrDeadlineLocked     = errors.New("deadline is locked once submissions exist")
)

const (
	TopicSubmissionReceived  = "submission-received"
	TopicSubmissionReviewed  = "submission-reviewed"
	TopicAssignmentReminders = "assignment-reminders"
)
