package domain

import "time"

// Audit log categories
const (
	AuditCategoryAccess     = "access"
	AuditCategoryData       = "data"
	AuditCategorySystem     = "system"
	AuditCategoryCompliance = "compliance"
)

// NoTarget is the placeholder stored in AuditLogEntry.Target when an action
// has no target. It is never displayed.
const NoTarget = "-"

// AuditLogEntry is a single row of the audit trail shown on the dashboard.
type AuditLogEntry struct {
	ID          string `json:"id"`
	Action      string `json:"action"`
	PerformedBy string `json:"performed_by"`
	Target      string `json:"target"`
	Timestamp   string `json:"timestamp"`
	Details     string `json:"details"`
	Category    string `json:"category"`
}

// HasTarget reports whether the entry names a real target.
func (e AuditLogEntry) HasTarget() bool {
	return e.Target != "" && e.Target != NoTarget
}

// AuditFilter selects which audit categories are visible.
type AuditFilter string

const (
	AuditFilterAll        AuditFilter = "all"
	AuditFilterAccess     AuditFilter = AuditCategoryAccess
	AuditFilterData       AuditFilter = AuditCategoryData
	AuditFilterSystem     AuditFilter = AuditCategorySystem
	AuditFilterCompliance AuditFilter = AuditCategoryCompliance
)

// AuditFilters returns the filter options in dropdown order.
func AuditFilters() []AuditFilter {
	return []AuditFilter{AuditFilterAll, AuditFilterAccess, AuditFilterData, AuditFilterSystem, AuditFilterCompliance}
}

// ParseAuditFilter falls back to AuditFilterAll for unknown values.
func ParseAuditFilter(s string) AuditFilter {
	for _, f := range AuditFilters() {
		if string(f) == s {
			return f
		}
	}
	return AuditFilterAll
}

// Allows reports whether an entry of the given category passes the filter.
func (f AuditFilter) Allows(category string) bool {
	return f == AuditFilterAll || string(f) == category
}

func CategoryColor(category string) string {
	switch category {
	case AuditCategoryAccess:
		return ColorBlue
	case AuditCategoryData:
		return ColorPurple
	case AuditCategorySystem:
		return ColorOrange
	case AuditCategoryCompliance:
		return ColorGreen
	default:
		return ColorGray
	}
}

// AuditEvent is the envelope published to the audit topic when an action is
// requested from the dashboard.
type AuditEvent struct {
	ID         string                 `json:"id"`
	Service    string                 `json:"service"`
	EventType  string                 `json:"event_type"`
	EntityID   string                 `json:"entity_id"`
	Actor      string                 `json:"actor,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
	Payload    map[string]interface{} `json:"payload"`
}
