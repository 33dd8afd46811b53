package server

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"

	"compliance-service/internal/domain"

	log "github.com/sirupsen/logrus"

	"github.com/labstack/echo/v4"
)

// Export streams the requested dashboard view as a CSV attachment.
func (s *Server) Export(c echo.Context) error {
	ctx := c.Request().Context()
	tab := domain.ParseTab(c.QueryParam("tab"))

	var rows [][]string
	switch tab {
	case domain.TabAudit:
		entries, err := s.dashboardService.FilterAuditLogs(ctx, domain.ParseAuditFilter(c.QueryParam("category")))
		if err != nil {
			return s.exportError(c, tab, err)
		}
		rows = auditRows(entries)
	case domain.TabCompliance:
		checks, err := s.dashboardService.ListComplianceChecks(ctx)
		if err != nil {
			return s.exportError(c, tab, err)
		}
		rows = checkRows(checks)
	default:
		licenses, err := s.dashboardService.SearchLicenses(ctx, c.QueryParam("q"))
		if err != nil {
			return s.exportError(c, tab, err)
		}
		rows = licenseRows(licenses)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return s.exportError(c, tab, err)
	}

	s.dashboardService.RecordExport(ctx, tab, len(rows)-1, s.profile(c).DisplayName())

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "compliance-"+string(tab)+".csv"))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (s *Server) exportError(c echo.Context, tab domain.Tab, err error) error {
	log.WithError(err).WithField("tab", tab).Error("Failed to export compliance report")
	statusCode, errorMsg := handleComplianceError(err)
	return c.JSON(statusCode, map[string]string{
		"error": errorMsg,
	})
}

func licenseRows(licenses []domain.License) [][]string {
	rows := [][]string{{"Staff Member", "License Type", "License Number", "Issue Date", "Expiry Date", "Status", "Verified By"}}
	for _, l := range licenses {
		rows = append(rows, []string{l.StaffName, l.LicenseType, l.LicenseNumber, l.IssueDate, l.ExpiryDate, domain.Capitalize(l.Status), l.VerifiedBy})
	}
	return rows
}

func auditRows(entries []domain.AuditLogEntry) [][]string {
	rows := [][]string{{"Action", "Performed By", "Target", "Timestamp", "Details", "Category"}}
	for _, e := range entries {
		target := ""
		if e.HasTarget() {
			target = e.Target
		}
		rows = append(rows, []string{e.Action, e.PerformedBy, target, e.Timestamp, e.Details, e.Category})
	}
	return rows
}

func checkRows(checks []domain.ComplianceCheck) [][]string {
	rows := [][]string{{"Check", "Category", "Last Check", "Status", "Next Due"}}
	for _, ch := range checks {
		rows = append(rows, []string{ch.Name, ch.Category, ch.LastCheck, domain.Capitalize(ch.Status), ch.NextDue})
	}
	return rows
}
