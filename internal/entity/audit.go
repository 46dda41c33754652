package entity

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

type Severity string

const (
	SeverityInfo    Severity = "INFO"
	SeverityWarning Severity = "WARNING"
	SeverityError   Severity = "ERROR"
)

const (
	AuditEventDraftCreated       = "invoice.draft_created"
	AuditEventSubmitted          = "invoice.submitted"
	AuditEventIssued             = "invoice.issued"
	AuditEventFailed             = "invoice.failed"
	AuditEventRetried            = "invoice.retried"
	AuditEventCancelled          = "invoice.cancelled"
	AuditEventRefunded           = "invoice.refunded"
	AuditEventTransitionRejected = "invoice.transition_rejected"
	AuditEventDuplicateRejected  = "invoice.duplicate_rejected"
	AuditEventBatchCompleted     = "batch.completed"
)

// AuditEntry is an append-only record. It is never updated or deleted.
type AuditEntry struct {
	ID        uuid.UUID      `json:"id"`
	TenantID  uuid.UUID      `json:"tenantId"`
	InvoiceID uuid.UUID      `json:"invoiceId"`
	Actor     string         `json:"actor"`
	Event     string         `json:"event"`
	Severity  Severity       `json:"severity"`
	Metadata  map[string]any `json:"metadata"`
	CreatedAt time.Time      `json:"createdAt"`
}
