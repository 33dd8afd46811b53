package domain

// CompliancePath is the route of the Compliance & Legal screen.
const CompliancePath = "/compliance"

type NavItem struct {
	Path  string `json:"path"`
	Icon  string `json:"icon"`
	Label string `json:"label"`
}

// Navigation returns the sidebar entries shared by all admin screens.
func Navigation() []NavItem {
	return []NavItem{
		{Path: "/dashboard", Icon: "home", Label: "Dashboard"},
		{Path: "/staff", Icon: "users", Label: "Staff"},
		{Path: "/schedule", Icon: "calendar", Label: "Schedule"},
		{Path: "/attendance", Icon: "clock", Label: "Attendance"},
		{Path: "/payroll", Icon: "wallet", Label: "Payroll"},
		{Path: "/reports", Icon: "chart", Label: "Reports"},
		{Path: CompliancePath, Icon: "shield", Label: "Compliance & Legal"},
		{Path: "/settings", Icon: "settings", Label: "Settings"},
	}
}

// Tab is one of the three dashboard views.
type Tab string

const (
	TabLicenses   Tab = "licenses"
	TabAudit      Tab = "audit"
	TabCompliance Tab = "compliance"
)

func Tabs() []Tab {
	return []Tab{TabLicenses, TabAudit, TabCompliance}
}

// ParseTab returns TabLicenses, the initial view, for unknown input.
func ParseTab(s string) Tab {
	for _, t := range Tabs() {
		if string(t) == s {
			return t
		}
	}
	return TabLicenses
}

func (t Tab) Label() string {
	switch t {
	case TabAudit:
		return "Audit Logs"
	case TabCompliance:
		return "Compliance Checks"
	default:
		return "Licenses & Credentials"
	}
}
