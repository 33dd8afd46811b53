package service

import (
	"context"
	"time"

	"compliance-service/internal/domain"

	"github.com/google/uuid"
)

const serviceName = "compliance-service"

type AuditPublisher interface {
	Publish(ctx context.Context, event domain.AuditEvent) error
}

type AuditService struct {
	publisher AuditPublisher
}

func NewAuditService(publisher AuditPublisher) *AuditService {
	return &AuditService{publisher: publisher}
}

// RecordCheckRequested is the only record of a Run Check request, so unlike
// RecordExport it fails with ErrAuditUnavailable when nothing can publish.
func (s *AuditService) RecordCheckRequested(ctx context.Context, check *domain.ComplianceCheck, actor string) error {
	if s == nil || s.publisher == nil {
		return domain.ErrAuditUnavailable
	}
	if check == nil {
		return nil
	}

	event := domain.AuditEvent{
		ID:         uuid.NewString(),
		Service:    serviceName,
		EventType:  "compliance_check_requested",
		EntityID:   check.ID,
		Actor:      actor,
		OccurredAt: time.Now().UTC(),
		Payload: map[string]interface{}{
			"name":       check.Name,
			"category":   check.Category,
			"last_check": check.LastCheck,
			"next_due":   check.NextDue,
		},
	}

	return s.publisher.Publish(ctx, event)
}

func (s *AuditService) RecordExport(ctx context.Context, tab domain.Tab, rows int, actor string) error {
	if s == nil || s.publisher == nil {
		return nil
	}

	event := domain.AuditEvent{
		ID:         uuid.NewString(),
		Service:    serviceName,
		EventType:  "compliance_report_exported",
		EntityID:   string(tab),
		Actor:      actor,
		OccurredAt: time.Now().UTC(),
		Payload: map[string]interface{}{
			"rows": rows,
		},
	}

	return s.publisher.Publish(ctx, event)
}
