package domain

type SubmissionStatus string

const (
	SubmissionStatusUnspecified SubmissionStatus = "UNSPECIFIED"
	SubmissionStatusPending     SubmissionStatus = "PENDING"
	SubmissionStatusAccepted    SubmissionStatus = "ACCEPTED"
	SubmissionStatusRejected    SubmissionStatus = "REJECTED"
)

type UserRole string

const (
	UserRoleStudent    UserRole = "student"
	UserRoleInstructor UserRole = "instructor"
	UserRoleAdmin      UserRole = "admin"
)

func (s SubmissionStatus) IsValid() bool {
	switch s {
	case SubmissionStatusPending, SubmissionStatusAccepted, SubmissionStatusRejected:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether a review may move a submission from s to target.
// Setting the current status again is allowed (callers treat it as a no-op);
// re-opening a reviewed submission back to PENDING is not.
func (s SubmissionStatus) CanTransitionTo(target SubmissionStatus) bool {
	if !s.IsValid() || !target.IsValid() {
		return false
	}
	if target == SubmissionStatusPending {
		return s == SubmissionStatusPending
	}
	return true
}

func ToSubmissionStatus(status string) SubmissionStatus {
	switch status {
	case "PENDING":
		return SubmissionStatusPending
	case "ACCEPTED":
		return SubmissionStatusAccepted
	case "REJECTED":
		return SubmissionStatusRejected
	default:
		return SubmissionStatusUnspecified
	}
}
