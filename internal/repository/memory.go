package repository

import (
	"context"
	"sort"

	"compliance-service/internal/domain"
)

type memoryRepository struct {
	licenses []domain.License
	audit    []domain.AuditLogEntry
	checks   []domain.ComplianceCheck
}

// NewMemoryRepository serves the built-in sample records.
func NewMemoryRepository() *memoryRepository {
	return NewMemoryRepositoryWith(SampleLicenses(), SampleAuditLogs(), SampleComplianceChecks())
}

// NewMemoryRepositoryWith serves the given records instead of the samples.
// Records are kept in the order the postgres repository returns them:
// licenses and checks by id, audit entries newest first.
func NewMemoryRepositoryWith(licenses []domain.License, audit []domain.AuditLogEntry, checks []domain.ComplianceCheck) *memoryRepository {
	r := &memoryRepository{
		licenses: append([]domain.License(nil), licenses...),
		audit:    append([]domain.AuditLogEntry(nil), audit...),
		checks:   append([]domain.ComplianceCheck(nil), checks...),
	}

	sort.SliceStable(r.licenses, func(i, j int) bool { return idLess(r.licenses[i].ID, r.licenses[j].ID) })
	sort.SliceStable(r.checks, func(i, j int) bool { return idLess(r.checks[i].ID, r.checks[j].ID) })
	sort.SliceStable(r.audit, func(i, j int) bool {
		a, b := r.audit[i], r.audit[j]
		if a.Timestamp != b.Timestamp {
			return a.Timestamp > b.Timestamp
		}
		return idLess(a.ID, b.ID)
	})

	return r
}

// idLess orders numeric text ids naturally ("2" before "10"), matching
// ORDER BY LENGTH(id), id.
func idLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

func (r *memoryRepository) ListLicenses(ctx context.Context) ([]domain.License, error) {
	return append([]domain.License(nil), r.licenses...), nil
}

func (r *memoryRepository) ListAuditLogs(ctx context.Context) ([]domain.AuditLogEntry, error) {
	return append([]domain.AuditLogEntry(nil), r.audit...), nil
}

func (r *memoryRepository) ListComplianceChecks(ctx context.Context) ([]domain.ComplianceCheck, error) {
	return append([]domain.ComplianceCheck(nil), r.checks...), nil
}

func (r *memoryRepository) GetComplianceCheck(ctx context.Context, id string) (*domain.ComplianceCheck, error) {
	for _, c := range r.checks {
		if c.ID == id {
			check := c
			return &check, nil
		}
	}
	return nil, domain.ErrCheckNotFound
}

func SampleLicenses() []domain.License {
	return []domain.License{
		{
			ID:            "1",
			StaffName:     "Sarah Johnson",
			LicenseType:   "Registered Nurse",
			LicenseNumber: "RN-2023-45678",
			IssueDate:     "2023-01-15",
			ExpiryDate:    "2025-01-15",
			Status:        domain.LicenseStatusValid,
			VerifiedBy:    "State Board of Nursing",
		},
		{
			ID:            "2",
			StaffName:     "Michael Chen",
			LicenseType:   "Pharmacist License",
			LicenseNumber: "PH-2022-12345",
			IssueDate:     "2022-06-01",
			ExpiryDate:    "2024-06-01",
			Status:        domain.LicenseStatusExpiring,
			VerifiedBy:    "State Pharmacy Board",
		},
		{
			ID:            "3",
			StaffName:     "Emily Davis",
			LicenseType:   "CPR Certification",
			LicenseNumber: "CPR-2023-78901",
			IssueDate:     "2023-03-10",
			ExpiryDate:    "2024-03-10",
			Status:        domain.LicenseStatusExpired,
			VerifiedBy:    "American Heart Association",
		},
		{
			ID:            "4",
			StaffName:     "James Wilson",
			LicenseType:   "Medical Assistant Certification",
			LicenseNumber: "MA-2023-34567",
			IssueDate:     "2023-08-20",
			ExpiryDate:    "2025-08-20",
			Status:        domain.LicenseStatusValid,
			VerifiedBy:    "AAMA",
		},
	}
}

func SampleAuditLogs() []domain.AuditLogEntry {
	return []domain.AuditLogEntry{
		{ID: "1", Action: "User Login", PerformedBy: "admin@clinic.com", Target: domain.NoTarget, Timestamp: "2024-01-20 09:15:23", Details: "Successful login from 192.168.1.100", Category: domain.AuditCategoryAccess},
		{ID: "2", Action: "Staff Record Updated", PerformedBy: "hr@clinic.com", Target: "Sarah Johnson", Timestamp: "2024-01-20 10:30:45", Details: "Updated contact information", Category: domain.AuditCategoryData},
		{ID: "3", Action: "License Verified", PerformedBy: "compliance@clinic.com", Target: "Michael Chen", Timestamp: "2024-01-20 11:00:12", Details: "Pharmacist license verified with state board", Category: domain.AuditCategoryCompliance},
		{ID: "4", Action: "System Backup", PerformedBy: "system", Target: domain.NoTarget, Timestamp: "2024-01-20 02:00:00", Details: "Automated daily backup completed", Category: domain.AuditCategorySystem},
		{ID: "5", Action: "Permission Changed", PerformedBy: "admin@clinic.com", Target: "James Wilson", Timestamp: "2024-01-19 16:45:30", Details: "Granted scheduling access", Category: domain.AuditCategoryAccess},
		{ID: "6", Action: "Payroll Export", PerformedBy: "finance@clinic.com", Target: domain.NoTarget, Timestamp: "2024-01-19 15:20:00", Details: "Exported January payroll report", Category: domain.AuditCategoryData},
		{ID: "7", Action: "Failed Login Attempt", PerformedBy: "unknown", Target: domain.NoTarget, Timestamp: "2024-01-19 03:12:54", Details: "3 failed attempts from 203.0.113.42", Category: domain.AuditCategoryAccess},
		{ID: "8", Action: "Policy Acknowledged", PerformedBy: "emily.davis@clinic.com", Target: "HIPAA Policy v3", Timestamp: "2024-01-18 13:05:10", Details: "Annual HIPAA policy acknowledgement", Category: domain.AuditCategoryCompliance},
	}
}

func SampleComplianceChecks() []domain.ComplianceCheck {
	return []domain.ComplianceCheck{
		{ID: "1", Name: "HIPAA Privacy Review", Category: "Privacy", LastCheck: "2024-01-15", Status: domain.CheckStatusPassed, NextDue: "2024-04-15"},
		{ID: "2", Name: "Staff License Verification", Category: "Credentials", LastCheck: "2024-01-10", Status: domain.CheckStatusPending, NextDue: "2024-01-25"},
		{ID: "3", Name: "Fire Safety Inspection", Category: "Safety", LastCheck: "2023-12-01", Status: domain.CheckStatusPassed, NextDue: "2024-06-01"},
		{ID: "4", Name: "Data Backup Verification", Category: "IT Security", LastCheck: "2024-01-18", Status: domain.CheckStatusFailed, NextDue: "2024-01-21"},
		{ID: "5", Name: "Employee Training Records", Category: "Training", LastCheck: "2024-01-05", Status: domain.CheckStatusPending, NextDue: "2024-02-05"},
		{ID: "6", Name: "OSHA Workplace Safety", Category: "Safety", LastCheck: "2023-11-20", Status: domain.CheckStatusPassed, NextDue: "2024-05-20"},
	}
}
