package entity

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// InvoiceOptions tune a single invoicing run.
type InvoiceOptions struct {
	DocumentType DocumentType
	Currency     string
	ExchangeRate *decimal.Decimal
	Series       string
	AutoSend     bool
	Automatic    bool
}

func (o InvoiceOptions) Validate() error {
	if o.DocumentType != "" && o.DocumentType != DocumentTypeIncome {
		return fmt.Errorf("%w: orders can only be invoiced with %s documents", ErrBatchInput, DocumentTypeIncome)
	}

	if o.Currency != "" && len(o.Currency) != 3 {
		return fmt.Errorf("%w: invalid currency %q", ErrBatchInput, o.Currency)
	}

	if o.ExchangeRate != nil && !o.ExchangeRate.IsPositive() {
		return fmt.Errorf("%w: exchange rate must be positive", ErrBatchInput)
	}

	return nil
}

// ItemResult is the outcome of invoicing one order. Index is the position in the request.
type ItemResult struct {
	Index     int             `json:"index"`
	OrderID   uuid.UUID       `json:"orderId"`
	InvoiceID uuid.UUID       `json:"invoiceId,omitempty"`
	Success   bool            `json:"success"`
	Status    InvoiceStatus   `json:"status,omitempty"`
	Folio     string          `json:"folio,omitempty"`
	Total     decimal.Decimal `json:"total"`
	ErrorCode string          `json:"errorCode,omitempty"`
	Message   string          `json:"message"`
}

func FailedItem(index int, orderID uuid.UUID, err error) ItemResult {
	return ItemResult{
		Index:     index,
		OrderID:   orderID,
		ErrorCode: Classify(err),
		Message:   ErrorMessage(err),
	}
}

func SkippedItem(index int, orderID uuid.UUID, reason string) ItemResult {
	return ItemResult{
		Index:     index,
		OrderID:   orderID,
		ErrorCode: ErrorCodeSkipped,
		Message:   reason,
	}
}

func IssuedItem(index int, inv Invoice) ItemResult {
	return ItemResult{
		Index:     index,
		OrderID:   inv.OrderID,
		InvoiceID: inv.ID,
		Success:   true,
		Status:    inv.Status,
		Folio:     inv.Series + "-" + inv.Folio,
		Total:     inv.Total,
		Message:   "invoice issued",
	}
}

// BatchResult aggregates item outcomes in request order.
type BatchResult struct {
	Processed   int             `json:"processed"`
	Succeeded   int             `json:"succeeded"`
	Failed      int             `json:"failed"`
	Skipped     int             `json:"skipped"`
	Items       []ItemResult    `json:"items"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Elapsed     time.Duration   `json:"elapsed"`
	NextCursor  string          `json:"nextCursor,omitempty"`
}

// NewBatchResult counts items. Skipped items were never started and are not processed.
func NewBatchResult(items []ItemResult, elapsed time.Duration) BatchResult {
	r := BatchResult{
		Items:       items,
		TotalAmount: decimal.Zero,
		Elapsed:     elapsed,
	}

	for _, it := range items {
		switch {
		case it.Success:
			r.Processed++
			r.Succeeded++
			r.TotalAmount = r.TotalAmount.Add(it.Total)
		case it.ErrorCode == ErrorCodeSkipped:
			r.Skipped++
		default:
			r.Processed++
			r.Failed++
		}
	}

	return r
}

// ScheduledFilter selects completed, not invoiced orders for a sweep.
type ScheduledFilter struct {
	From   time.Time
	To     time.Time
	Limit  int
	Cursor string
}

// Normalize applies the page size default and rejects invalid filters.
func (f ScheduledFilter) Normalize(pageSize int) (ScheduledFilter, error) {
	if f.From.IsZero() || f.To.IsZero() {
		return f, fmt.Errorf("%w: date range is required", ErrBatchInput)
	}

	if !f.From.Before(f.To) {
		return f, fmt.Errorf("%w: from %s must be before to %s", ErrBatchInput,
			f.From.Format(time.RFC3339), f.To.Format(time.RFC3339))
	}

	if f.Limit < 0 || f.Limit > pageSize {
		return f, fmt.Errorf("%w: limit must be between 1 and %d", ErrBatchInput, pageSize)
	}

	if f.Limit == 0 {
		f.Limit = pageSize
	}

	return f, nil
}

// InvoiceNotification is handed off to the notification service for delivery.
type InvoiceNotification struct {
	TenantID   uuid.UUID
	InvoiceID  uuid.UUID
	Recipients []string
	Subject    string
	Message    string
	Artifacts  ArtifactKeys
}
