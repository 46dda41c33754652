package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/samandr77/microservices/fiscal/internal/entity"
)

type Repository interface {
	Invoice(ctx context.Context, tenantID, id uuid.UUID) (entity.Invoice, error)
	ActiveInvoiceByOrder(ctx context.Context, tenantID, orderID uuid.UUID) (entity.Invoice, error)
	Invoices(ctx context.Context, tenantID uuid.UUID, f entity.InvoiceFilter) ([]entity.Invoice, int, error)
	CreditNotes(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]entity.Invoice, error)
	RetryableInvoices(ctx context.Context, maxAttempts, limit int) ([]entity.Invoice, error)
	StalePendingInvoices(ctx context.Context, before time.Time, limit int) ([]entity.Invoice, error)
}

type Auditor interface {
	Record(ctx context.Context, e entity.AuditEntry) error
	Log(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]entity.AuditEntry, error)
}

type Metrics interface {
	InvoiceProcessed(outcome string)
	BatchProcessed(mode string, items int)
}

const (
	outcomeIssued    = "issued"
	outcomeFailed    = "failed"
	outcomePending   = "pending"
	outcomeDuplicate = "duplicate"
	outcomeCancelled = "cancelled"
	outcomeRefunded  = "refunded"
)

type nopMetrics struct{}

func (nopMetrics) InvoiceProcessed(string)    {}
func (nopMetrics) BatchProcessed(string, int) {}
