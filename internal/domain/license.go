package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// License status constants
const (
	LicenseStatusValid    = "valid"
	LicenseStatusExpiring = "expiring"
	LicenseStatusExpired  = "expired"
)

// Badge color classes
const (
	ColorGreen  = "green"
	ColorYellow = "yellow"
	ColorRed    = "red"
	ColorBlue   = "blue"
	ColorPurple = "purple"
	ColorOrange = "orange"
	ColorGray   = "gray"
)

// License is a professional license or credential held by a staff member.
// Status is stored as supplied and never derived from ExpiryDate.
type License struct {
	ID            string `json:"id"`
	StaffName     string `json:"staff_name"`
	LicenseType   string `json:"license_type"`
	LicenseNumber string `json:"license_number"`
	IssueDate     string `json:"issue_date"`
	ExpiryDate    string `json:"expiry_date"`
	Status        string `json:"status"`
	VerifiedBy    string `json:"verified_by"`
}

// NeedsAttention reports whether the license is expiring or already expired.
func (l License) NeedsAttention() bool {
	return l.Status == LicenseStatusExpiring || l.Status == LicenseStatusExpired
}

// Matches does a case-insensitive substring match against staff name,
// license type and license number. A blank query matches everything.
func (l License) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(l.StaffName), q) ||
		strings.Contains(strings.ToLower(l.LicenseType), q) ||
		strings.Contains(strings.ToLower(l.LicenseNumber), q)
}

// StatusColor maps license and compliance check statuses to a badge color.
func StatusColor(status string) string {
	switch status {
	case LicenseStatusValid, CheckStatusPassed:
		return ColorGreen
	case LicenseStatusExpiring, CheckStatusPending:
		return ColorYellow
	case LicenseStatusExpired, CheckStatusFailed:
		return ColorRed
	default:
		return ColorGray
	}
}

// Capitalize upper-cases the first letter and leaves the rest untouched.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
