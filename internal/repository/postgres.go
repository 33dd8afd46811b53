package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"compliance-service/internal/domain"

	log "github.com/sirupsen/logrus"

	_ "github.com/lib/pq"
)

const (
	queryTimeout    = 5 * time.Second
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
)

type postgresComplianceRepository struct {
	db *sql.DB
}

func NewPostgresComplianceRepository(db *sql.DB) *postgresComplianceRepository {
	return &postgresComplianceRepository{db: db}
}

func (r *postgresComplianceRepository) ListLicenses(ctx context.Context) ([]domain.License, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		SELECT id, staff_name, license_type, license_number,
			issue_date, expiry_date, status, verified_by
		FROM licenses
		ORDER BY LENGTH(id) ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.WithError(err).Error("Failed to list licenses")
		return nil, fmt.Errorf("failed to list licenses: %w", err)
	}
	defer rows.Close()

	var licenses []domain.License
	for rows.Next() {
		var l domain.License
		var issued, expires time.Time
		if err := rows.Scan(
			&l.ID,
			&l.StaffName,
			&l.LicenseType,
			&l.LicenseNumber,
			&issued,
			&expires,
			&l.Status,
			&l.VerifiedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan license: %w", err)
		}
		l.IssueDate = issued.Format(dateLayout)
		l.ExpiryDate = expires.Format(dateLayout)
		licenses = append(licenses, l)
	}

	return licenses, rows.Err()
}

func (r *postgresComplianceRepository) ListAuditLogs(ctx context.Context) ([]domain.AuditLogEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		SELECT id, action, performed_by, target, occurred_at, details, category
		FROM audit_logs
		ORDER BY occurred_at DESC, LENGTH(id) ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.WithError(err).Error("Failed to list audit logs")
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	defer rows.Close()

	var entries []domain.AuditLogEntry
	for rows.Next() {
		var e domain.AuditLogEntry
		var target sql.NullString
		var occurredAt time.Time
		if err := rows.Scan(
			&e.ID,
			&e.Action,
			&e.PerformedBy,
			&target,
			&occurredAt,
			&e.Details,
			&e.Category,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit log: %w", err)
		}
		e.Target = domain.NoTarget
		if target.Valid && target.String != "" {
			e.Target = target.String
		}
		e.Timestamp = occurredAt.Format(timestampLayout)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (r *postgresComplianceRepository) ListComplianceChecks(ctx context.Context) ([]domain.ComplianceCheck, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		SELECT id, name, category, last_check, status, next_due
		FROM compliance_checks
		ORDER BY LENGTH(id) ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.WithError(err).Error("Failed to list compliance checks")
		return nil, fmt.Errorf("failed to list compliance checks: %w", err)
	}
	defer rows.Close()

	var checks []domain.ComplianceCheck
	for rows.Next() {
		c, err := scanComplianceCheck(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan compliance check: %w", err)
		}
		checks = append(checks, *c)
	}

	return checks, rows.Err()
}

func (r *postgresComplianceRepository) GetComplianceCheck(ctx context.Context, id string) (*domain.ComplianceCheck, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		SELECT id, name, category, last_check, status, next_due
		FROM compliance_checks
		WHERE id = $1
	`

	check, err := scanComplianceCheck(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCheckNotFound
		}
		log.WithError(err).WithField("check_id", id).Error("Failed to get compliance check")
		return nil, fmt.Errorf("failed to get compliance check: %w", err)
	}

	return check, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanComplianceCheck(row scanner) (*domain.ComplianceCheck, error) {
	var c domain.ComplianceCheck
	var lastCheck, nextDue time.Time
	if err := row.Scan(&c.ID, &c.Name, &c.Category, &lastCheck, &c.Status, &nextDue); err != nil {
		return nil, err
	}
	c.LastCheck = lastCheck.Format(dateLayout)
	c.NextDue = nextDue.Format(dateLayout)
	return &c, nil
}
