package domain

// DefaultComplianceScore is the percentage shown on the compliance score card.
const DefaultComplianceScore = 94

// DashboardStats backs the four stat cards and the licenses tab badge.
type DashboardStats struct {
	ValidLicenses    int `json:"valid_licenses"`
	ExpiringLicenses int `json:"expiring_licenses"`
	ComplianceScore  int `json:"compliance_score"`
	AuditEvents      int `json:"audit_events"`
	// AttentionCount is expiring + expired; the badge is hidden when zero.
	AttentionCount int `json:"attention_count"`
}

// ComputeStats derives the counters from the current record lists.
func ComputeStats(licenses []License, audit []AuditLogEntry, score int) DashboardStats {
	stats := DashboardStats{
		ComplianceScore: score,
		AuditEvents:     len(audit),
	}
	for _, l := range licenses {
		switch l.Status {
		case LicenseStatusValid:
			stats.ValidLicenses++
		case LicenseStatusExpiring:
			stats.ExpiringLicenses++
		}
		if l.NeedsAttention() {
			stats.AttentionCount++
		}
	}
	return stats
}
