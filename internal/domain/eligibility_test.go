package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"submission_service/internal/domain"
)

func TestEligibilityPolicy_CanSubmit(t *testing.T) {
	deadline := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	assignment := &domain.Assignment{
		ID:       uuid.New(),
		Deadline: deadline,
	}

	t.Run("allowed before deadline", func(t *testing.T) {
		now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
		policy := domain.EligibilityPolicy{}

		err := policy.CanSubmit(assignment, nil, now)
		assert.NoError(t, err)
	})

	t.Run("denied when already submitted", func(t *testing.T) {
		now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
		existing := &domain.Submission{Status: domain.SubmissionStatusPending}
		policy := domain.EligibilityPolicy{}

		err := policy.CanSubmit(assignment, existing, now)
		require.Error(t, err)

		var eligibility *domain.EligibilityError
		require.True(t, errors.As(err, &eligibility))
		assert.Equal(t, domain.DenialAlreadySubmitted, eligibility.Reason)
	})

	t.Run("denied after deadline", func(t *testing.T) {
		now := time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)
		policy := domain.EligibilityPolicy{}

		err := policy.CanSubmit(assignment, nil, now)
		require.Error(t, err)

		var eligibility *domain.EligibilityError
		require.True(t, errors.As(err, &eligibility))
		assert.Equal(t, domain.DenialDeadlinePassed, eligibility.Reason)
	})

	t.Run("allowed exactly at deadline", func(t *testing.T) {
		policy := domain.EligibilityPolicy{}

		err := policy.CanSubmit(assignment, nil, deadline)
		assert.NoError(t, err)
	})

	t.Run("already-submitted wins over deadline", func(t *testing.T) {
		now := time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)
		existing := &domain.Submission{Status: domain.SubmissionStatusAccepted}
		policy := domain.EligibilityPolicy{}

		err := policy.CanSubmit(assignment, existing, now)
		require.Error(t, err)

		var eligibility *domain.EligibilityError
		require.True(t, errors.As(err, &eligibility))
		assert.Equal(t, domain.DenialAlreadySubmitted, eligibility.Reason)
	})

	t.Run("resubmission after rejection when enabled", func(t *testing.T) {
		now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
		existing := &domain.Submission{Status: domain.SubmissionStatusRejected}
		policy := domain.EligibilityPolicy{AllowResubmission: true}

		err := policy.CanSubmit(assignment, existing, now)
		assert.NoError(t, err)
	})

	t.Run("no resubmission of accepted work even when enabled", func(t *testing.T) {
		now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
		existing := &domain.Submission{Status: domain.SubmissionStatusAccepted}
		policy := domain.EligibilityPolicy{AllowResubmission: true}

		err := policy.CanSubmit(assignment, existing, now)
		require.Error(t, err)

		var eligibility *domain.EligibilityError
		require.True(t, errors.As(err, &eligibility))
		assert.Equal(t, domain.DenialAlreadySubmitted, eligibility.Reason)
	})

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		now := time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)
		policy := domain.EligibilityPolicy{}

		first := policy.CanSubmit(assignment, nil, now)
		second := policy.CanSubmit(assignment, nil, now)
		assert.Equal(t, first, second)
	})
}
