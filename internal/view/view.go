package view

import (
	"net/url"
	"strconv"
	"strings"

	"compliance-service/internal/domain"
	"compliance-service/internal/service"
)

// RoleLabel is the role string shown under the user name in the header.
const RoleLabel = "Administrator"

type Page struct {
	Title      string
	UserName   string
	Role       string
	Avatar     string
	BranchName string
	BranchLogo string
	Gender     string
	Sidebar    []SidebarItem
	BackPath   string
	ExportPath string
	Stats      []StatCard
	Tabs       []TabLink
	ActiveTab  domain.Tab
	Licenses   *LicenseView
	Audit      *AuditView
	Compliance *ComplianceView
}

type SidebarItem struct {
	Path   string
	Icon   string
	Label  string
	Active bool
}

type StatCard struct {
	Label string
	Value string
	Color string
}

type TabLink struct {
	Tab    domain.Tab
	Label  string
	Href   string
	Active bool
	// Badge is empty when the tab carries no badge.
	Badge string
}

type LicenseView struct {
	Search string
	Rows   []LicenseRow
}

type LicenseRow struct {
	domain.License
	StatusLabel string
	StatusColor string
}

type AuditView struct {
	Filter  domain.AuditFilter
	Options []FilterOption
	Rows    []AuditRow
}

type FilterOption struct {
	Value    string
	Label    string
	Selected bool
}

type AuditRow struct {
	domain.AuditLogEntry
	ShowTarget    bool
	CategoryColor string
}

type ComplianceView struct {
	Cards []ComplianceCard
}

type ComplianceCard struct {
	domain.ComplianceCheck
	StatusLabel string
	StatusColor string
	Highlight   bool
	ShowAction  bool
	ActionPath  string
}

// NewPage builds the view model; exactly one of Licenses, Audit and
// Compliance is set, matching the active tab.
func NewPage(d *service.Dashboard) *Page {
	p := &Page{
		Title:      "Compliance & Legal",
		UserName:   d.Profile.DisplayName(),
		Role:       RoleLabel,
		Avatar:     d.Profile.Avatar(),
		BranchName: d.Profile.BranchName,
		BranchLogo: d.Profile.BranchLogo,
		Gender:     d.Profile.Gender,
		BackPath:   "/dashboard",
		ExportPath: exportPath(d),
		ActiveTab:  d.ActiveTab,
		Stats:      statCards(d.Stats),
		Tabs:       tabLinks(d.ActiveTab, d.Stats.AttentionCount),
	}

	for _, item := range d.Navigation {
		p.Sidebar = append(p.Sidebar, SidebarItem{
			Path:   item.Path,
			Icon:   item.Icon,
			Label:  item.Label,
			Active: item.Path == domain.CompliancePath,
		})
	}

	switch d.ActiveTab {
	case domain.TabAudit:
		p.Audit = auditView(d.AuditLogs, d.Filter)
	case domain.TabCompliance:
		p.Compliance = complianceView(d.Checks)
	default:
		p.Licenses = licenseView(d.Licenses, d.Search)
	}

	return p
}

// exportPath carries the active view's search or filter so the download
// matches what is on screen.
func exportPath(d *service.Dashboard) string {
	q := url.Values{}
	q.Set("tab", string(d.ActiveTab))
	switch d.ActiveTab {
	case domain.TabAudit:
		q.Set("category", string(d.Filter))
	case domain.TabLicenses:
		if search := strings.TrimSpace(d.Search); search != "" {
			q.Set("q", search)
		}
	}
	return "/api/compliance/export?" + q.Encode()
}

func statCards(s domain.DashboardStats) []StatCard {
	return []StatCard{
		{Label: "Valid Licenses", Value: strconv.Itoa(s.ValidLicenses), Color: domain.ColorGreen},
		{Label: "Expiring Soon", Value: strconv.Itoa(s.ExpiringLicenses), Color: domain.ColorYellow},
		{Label: "Compliance Score", Value: strconv.Itoa(s.ComplianceScore) + "%", Color: domain.ColorBlue},
		{Label: "Audit Events", Value: strconv.Itoa(s.AuditEvents), Color: domain.ColorPurple},
	}
}

func tabLinks(active domain.Tab, attention int) []TabLink {
	links := make([]TabLink, 0, len(domain.Tabs()))
	for _, t := range domain.Tabs() {
		link := TabLink{
			Tab:    t,
			Label:  t.Label(),
			Href:   domain.CompliancePath + "?tab=" + string(t),
			Active: t == active,
		}
		if t == domain.TabLicenses && attention > 0 {
			link.Badge = strconv.Itoa(attention)
		}
		links = append(links, link)
	}
	return links
}

func licenseView(licenses []domain.License, search string) *LicenseView {
	v := &LicenseView{Search: search, Rows: make([]LicenseRow, 0, len(licenses))}
	for _, l := range licenses {
		v.Rows = append(v.Rows, LicenseRow{
			License:     l,
			StatusLabel: domain.Capitalize(l.Status),
			StatusColor: domain.StatusColor(l.Status),
		})
	}
	return v
}

func auditView(entries []domain.AuditLogEntry, filter domain.AuditFilter) *AuditView {
	v := &AuditView{Filter: filter, Rows: make([]AuditRow, 0, len(entries))}
	for _, f := range domain.AuditFilters() {
		label := "All Categories"
		if f != domain.AuditFilterAll {
			label = domain.Capitalize(string(f))
		}
		v.Options = append(v.Options, FilterOption{Value: string(f), Label: label, Selected: f == filter})
	}
	for _, e := range entries {
		v.Rows = append(v.Rows, AuditRow{
			AuditLogEntry: e,
			ShowTarget:    e.HasTarget(),
			CategoryColor: domain.CategoryColor(e.Category),
		})
	}
	return v
}

func complianceView(checks []domain.ComplianceCheck) *ComplianceView {
	v := &ComplianceView{Cards: make([]ComplianceCard, 0, len(checks))}
	for _, c := range checks {
		card := ComplianceCard{
			ComplianceCheck: c,
			StatusLabel:     domain.Capitalize(c.Status),
			StatusColor:     domain.StatusColor(c.Status),
			Highlight:       c.Status == domain.CheckStatusFailed,
			ShowAction:      c.Runnable(),
		}
		if card.ShowAction {
			card.ActionPath = "/api/compliance/checks/" + c.ID + "/run"
		}
		v.Cards = append(v.Cards, card)
	}
	return v
}
