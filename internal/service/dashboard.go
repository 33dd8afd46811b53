package service

import (
	"context"
	"fmt"

	"compliance-service/internal/domain"
	"compliance-service/internal/repository"

	log "github.com/sirupsen/logrus"
)

type DashboardServiceInterface interface {
	Stats(ctx context.Context) (domain.DashboardStats, error)
	SearchLicenses(ctx context.Context, query string) ([]domain.License, error)
	FilterAuditLogs(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditLogEntry, error)
	ListComplianceChecks(ctx context.Context) ([]domain.ComplianceCheck, error)
	Dashboard(ctx context.Context, query DashboardQuery) (*Dashboard, error)
	RunCheck(ctx context.Context, id, actor string) (*domain.ComplianceCheck, error)
	RecordExport(ctx context.Context, tab domain.Tab, rows int, actor string)
}

// DashboardQuery carries the local UI state of one screen render.
type DashboardQuery struct {
	Tab      string
	Search   string
	Category string
	Profile  domain.Profile
}

// Dashboard is everything the Compliance & Legal screen displays.
type Dashboard struct {
	Profile    domain.Profile
	Navigation []domain.NavItem
	Stats      domain.DashboardStats
	ActiveTab  domain.Tab
	Search     string
	Filter     domain.AuditFilter
	Licenses   []domain.License
	AuditLogs  []domain.AuditLogEntry
	Checks     []domain.ComplianceCheck
}

type DashboardService struct {
	repo            repository.ComplianceRepository
	audit           *AuditService
	complianceScore int
}

func NewDashboardService(repo repository.ComplianceRepository, audit *AuditService, complianceScore int) *DashboardService {
	return &DashboardService{
		repo:            repo,
		audit:           audit,
		complianceScore: complianceScore,
	}
}

func (s *DashboardService) Stats(ctx context.Context) (domain.DashboardStats, error) {
	licenses, err := s.repo.ListLicenses(ctx)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("failed to list licenses: %w", err)
	}
	audit, err := s.repo.ListAuditLogs(ctx)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return domain.ComputeStats(licenses, audit, s.complianceScore), nil
}

func (s *DashboardService) SearchLicenses(ctx context.Context, query string) ([]domain.License, error) {
	licenses, err := s.repo.ListLicenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list licenses: %w", err)
	}
	return filterLicenses(licenses, query), nil
}

func (s *DashboardService) FilterAuditLogs(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditLogEntry, error) {
	entries, err := s.repo.ListAuditLogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return filterAuditLogs(entries, filter), nil
}

func (s *DashboardService) ListComplianceChecks(ctx context.Context) ([]domain.ComplianceCheck, error) {
	checks, err := s.repo.ListComplianceChecks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list compliance checks: %w", err)
	}
	return checks, nil
}

func (s *DashboardService) Dashboard(ctx context.Context, query DashboardQuery) (*Dashboard, error) {
	licenses, err := s.repo.ListLicenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list licenses: %w", err)
	}
	audit, err := s.repo.ListAuditLogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	checks, err := s.repo.ListComplianceChecks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list compliance checks: %w", err)
	}

	filter := domain.ParseAuditFilter(query.Category)

	return &Dashboard{
		Profile:    query.Profile,
		Navigation: domain.Navigation(),
		Stats:      domain.ComputeStats(licenses, audit, s.complianceScore),
		ActiveTab:  domain.ParseTab(query.Tab),
		Search:     query.Search,
		Filter:     filter,
		Licenses:   filterLicenses(licenses, query.Search),
		AuditLogs:  filterAuditLogs(audit, filter),
		Checks:     checks,
	}, nil
}

// RunCheck requests execution of a pending compliance check. The check
// record is left as is; only the request is published.
func (s *DashboardService) RunCheck(ctx context.Context, id, actor string) (*domain.ComplianceCheck, error) {
	if id == "" {
		return nil, domain.ErrInvalidID
	}

	check, err := s.repo.GetComplianceCheck(ctx, id)
	if err != nil {
		return nil, err
	}
	if !check.Runnable() {
		return nil, domain.ErrCheckNotPending
	}

	if err := s.audit.RecordCheckRequested(ctx, check, actor); err != nil {
		log.WithError(err).WithField("check_id", id).Error("Failed to publish compliance check request")
		return nil, fmt.Errorf("failed to request compliance check: %w", err)
	}

	log.WithFields(log.Fields{
		"check_id": check.ID,
		"name":     check.Name,
		"actor":    actor,
	}).Info("Compliance check requested")

	return check, nil
}

// RecordExport is best effort: a publish failure never blocks the download.
func (s *DashboardService) RecordExport(ctx context.Context, tab domain.Tab, rows int, actor string) {
	if err := s.audit.RecordExport(ctx, tab, rows, actor); err != nil {
		log.WithError(err).WithField("tab", tab).Warn("Failed to publish export event")
	}
}

func filterLicenses(licenses []domain.License, query string) []domain.License {
	out := make([]domain.License, 0, len(licenses))
	for _, l := range licenses {
		if l.Matches(query) {
			out = append(out, l)
		}
	}
	return out
}

func filterAuditLogs(entries []domain.AuditLogEntry, filter domain.AuditFilter) []domain.AuditLogEntry {
	out := make([]domain.AuditLogEntry, 0, len(entries))
	for _, e := range entries {
		if filter.Allows(e.Category) {
			out = append(out, e)
		}
	}
	return out
}
