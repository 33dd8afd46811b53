package domain

import "errors"

// Compliance check status constants
const (
	CheckStatusPassed  = "passed"
	CheckStatusFailed  = "failed"
	CheckStatusPending = "pending"
)

var (
	ErrCheckNotFound   = errors.New("compliance check not found")
	ErrCheckNotPending = errors.New("compliance check is not pending")
	ErrInvalidID       = errors.New("invalid id")
)

// ErrAuditUnavailable means a check request could not be recorded because no
// audit publisher is configured.
var ErrAuditUnavailable = errors.New("audit publisher unavailable")

type ComplianceCheck struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	LastCheck string `json:"last_check"`
	Status    string `json:"status"`
	NextDue   string `json:"next_due"`
}

// Runnable reports whether the check can be triggered from the dashboard.
func (c ComplianceCheck) Runnable() bool {
	return c.Status == CheckStatusPending
}
