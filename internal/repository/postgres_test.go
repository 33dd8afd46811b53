package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"compliance-service/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	licenseColumns = []string{"id", "staff_name", "license_type", "license_number", "issue_date", "expiry_date", "status", "verified_by"}
	auditColumns   = []string{"id", "action", "performed_by", "target", "occurred_at", "details", "category"}
	checkColumns   = []string{"id", "name", "category", "last_check", "status", "next_due"}
)

func newMockRepository(t *testing.T) (*postgresComplianceRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresComplianceRepository(db), mock
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPostgresListLicenses(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("FROM licenses").WillReturnRows(sqlmock.NewRows(licenseColumns).
		AddRow("1", "Sarah Johnson", "Registered Nurse", "RN-2023-45678", date(2023, 1, 15), date(2025, 1, 15), "valid", "State Board of Nursing"))

	licenses, err := repo.ListLicenses(context.Background())
	require.NoError(t, err)
	require.Len(t, licenses, 1)
	assert.Equal(t, domain.License{
		ID:            "1",
		StaffName:     "Sarah Johnson",
		LicenseType:   "Registered Nurse",
		LicenseNumber: "RN-2023-45678",
		IssueDate:     "2023-01-15",
		ExpiryDate:    "2025-01-15",
		Status:        domain.LicenseStatusValid,
		VerifiedBy:    "State Board of Nursing",
	}, licenses[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListLicensesQueryError(t *testing.T) {
	repo, mock := newMockRepository(t)
	boom := errors.New("connection reset")

	mock.ExpectQuery("FROM licenses").WillReturnError(boom)

	_, err := repo.ListLicenses(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListLicensesScanError(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("FROM licenses").WillReturnRows(sqlmock.NewRows(licenseColumns).
		AddRow("1", "Sarah Johnson", "Registered Nurse", "RN-2023-45678", "not-a-date", date(2025, 1, 15), "valid", "State Board of Nursing"))

	_, err := repo.ListLicenses(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to scan license")
}

func TestPostgresListLicensesRowsError(t *testing.T) {
	repo, mock := newMockRepository(t)
	boom := errors.New("stream interrupted")

	mock.ExpectQuery("FROM licenses").WillReturnRows(sqlmock.NewRows(licenseColumns).
		AddRow("1", "Sarah Johnson", "Registered Nurse", "RN-2023-45678", date(2023, 1, 15), date(2025, 1, 15), "valid", "").
		AddRow("2", "Michael Chen", "Pharmacist License", "PH-2022-12345", date(2022, 6, 1), date(2024, 6, 1), "expiring", "").
		RowError(1, boom))

	_, err := repo.ListLicenses(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestPostgresListAuditLogs(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("FROM audit_logs").WillReturnRows(sqlmock.NewRows(auditColumns).
		AddRow("2", "Staff Record Updated", "hr@clinic.com", "Sarah Johnson", time.Date(2024, 1, 20, 10, 30, 45, 0, time.UTC), "Updated contact information", "data").
		AddRow("1", "User Login", "admin@clinic.com", nil, time.Date(2024, 1, 20, 9, 15, 23, 0, time.UTC), "Successful login", "access").
		AddRow("4", "System Backup", "system", "", time.Date(2024, 1, 20, 2, 0, 0, 0, time.UTC), "Automated daily backup", "system"))

	entries, err := repo.ListAuditLogs(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "Sarah Johnson", entries[0].Target)
	assert.Equal(t, "2024-01-20 10:30:45", entries[0].Timestamp)
	assert.Equal(t, domain.NoTarget, entries[1].Target)
	assert.Equal(t, domain.NoTarget, entries[2].Target)
	assert.Equal(t, "2024-01-20 02:00:00", entries[2].Timestamp)
	assert.False(t, entries[1].HasTarget())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListAuditLogsRowsError(t *testing.T) {
	repo, mock := newMockRepository(t)
	boom := errors.New("stream interrupted")

	mock.ExpectQuery("FROM audit_logs").WillReturnRows(sqlmock.NewRows(auditColumns).
		AddRow("1", "User Login", "admin@clinic.com", nil, time.Now(), "", "access").
		RowError(0, boom))

	_, err := repo.ListAuditLogs(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestPostgresListComplianceChecks(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("FROM compliance_checks").WillReturnRows(sqlmock.NewRows(checkColumns).
		AddRow("1", "HIPAA Privacy Review", "Privacy", date(2024, 1, 15), "passed", date(2024, 4, 15)).
		AddRow("2", "Staff License Verification", "Credentials", date(2024, 1, 10), "pending", date(2024, 1, 25)))

	checks, err := repo.ListComplianceChecks(context.Background())
	require.NoError(t, err)
	require.Len(t, checks, 2)
	assert.Equal(t, "2024-01-15", checks[0].LastCheck)
	assert.Equal(t, "2024-04-15", checks[0].NextDue)
	assert.True(t, checks[1].Runnable())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetComplianceCheck(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("FROM compliance_checks").WithArgs("2").WillReturnRows(sqlmock.NewRows(checkColumns).
		AddRow("2", "Staff License Verification", "Credentials", date(2024, 1, 10), "pending", date(2024, 1, 25)))

	check, err := repo.GetComplianceCheck(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, &domain.ComplianceCheck{
		ID:        "2",
		Name:      "Staff License Verification",
		Category:  "Credentials",
		LastCheck: "2024-01-10",
		Status:    domain.CheckStatusPending,
		NextDue:   "2024-01-25",
	}, check)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetComplianceCheckNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("FROM compliance_checks").WithArgs("99").WillReturnRows(sqlmock.NewRows(checkColumns))

	_, err := repo.GetComplianceCheck(context.Background(), "99")
	assert.ErrorIs(t, err, domain.ErrCheckNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetComplianceCheckQueryError(t *testing.T) {
	repo, mock := newMockRepository(t)
	boom := errors.New("connection reset")

	mock.ExpectQuery("FROM compliance_checks").WithArgs("2").WillReturnError(boom)

	_, err := repo.GetComplianceCheck(context.Background(), "2")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrCheckNotFound)
}
