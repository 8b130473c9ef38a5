package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"submission_service/internal/domain"
)

func TestSubmissionStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.SubmissionStatus
		to      domain.SubmissionStatus
		allowed bool
	}{
		{"pending to accepted", domain.SubmissionStatusPending, domain.SubmissionStatusAccepted, true},
		{"pending to rejected", domain.SubmissionStatusPending, domain.SubmissionStatusRejected, true},
		{"accepted to rejected", domain.SubmissionStatusAccepted, domain.SubmissionStatusRejected, true},
		{"rejected to accepted", domain.SubmissionStatusRejected, domain.SubmissionStatusAccepted, true},
		{"accepted to accepted is a no-op", domain.SubmissionStatusAccepted, domain.SubmissionStatusAccepted, true},
		{"pending to pending is a no-op", domain.SubmissionStatusPending, domain.SubmissionStatusPending, true},
		{"no re-opening from accepted", domain.SubmissionStatusAccepted, domain.SubmissionStatusPending, false},
		{"no re-opening from rejected", domain.SubmissionStatusRejected, domain.SubmissionStatusPending, false},
		{"unknown target", domain.SubmissionStatusPending, domain.SubmissionStatusUnspecified, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestToSubmissionStatus(t *testing.T) {
	assert.Equal(t, domain.SubmissionStatusPending, domain.ToSubmissionStatus("PENDING"))
	assert.Equal(t, domain.SubmissionStatusAccepted, domain.ToSubmissionStatus("ACCEPTED"))
	assert.Equal(t, domain.SubmissionStatusRejected, domain.ToSubmissionStatus("REJECTED"))
	assert.Equal(t, domain.SubmissionStatusUnspecified, domain.ToSubmissionStatus("banana"))
	assert.False(t, domain.SubmissionStatusUnspecified.IsValid())
}
