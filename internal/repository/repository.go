package repository

import (
	"context"

	"compliance-service/internal/domain"
)

// ComplianceRepository is the read-only source of the dashboard records.
type ComplianceRepository interface {
	ListLicenses(ctx context.Context) ([]domain.License, error)
	ListAuditLogs(ctx context.Context) ([]domain.AuditLogEntry, error)
	ListComplianceChecks(ctx context.Context) ([]domain.ComplianceCheck, error)
	GetComplianceCheck(ctx context.Context, id string) (*domain.ComplianceCheck, error)
}
