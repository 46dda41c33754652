package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/samandr77/microservices/fiscal/internal/entity"
	"github.com/samandr77/microservices/fiscal/internal/tax"
	"github.com/samandr77/microservices/fiscal/pkg/logger"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// RetryInvoice drives an Error invoice through certification again. Transition
// failures fail the call; gateway failures are reported in the item.
func (s *Service) RetryInvoice(ctx context.Context, tenantID, id uuid.UUID) (entity.ItemResult, error) {
	inv, err := s.repo.Invoice(ctx, tenantID, id)
	if err != nil {
		return entity.ItemResult{}, err
	}

	err = s.machine.Guard(ctx, inv, "retry", entity.InvoiceStatusPending)
	if err != nil {
		return entity.ItemResult{}, err
	}

	tenant, err := s.tenant(ctx, tenantID)
	if err != nil {
		return entity.ItemResult{}, err
	}

	ctx = logger.WithTenantID(ctx, tenantID)

	pending, err := s.machine.Retry(ctx, inv, s.cfg.MaxAttempts)
	if err != nil {
		return entity.ItemResult{}, err
	}

	inv, err = s.certify(ctx, tenant, pending, tenant.Schedule.AutoSend)

	return s.itemFor(0, inv, err), nil
}

// CancelInvoice cancels an Issued invoice at the gateway and records it. The order
// becomes invoiceable again.
func (s *Service) CancelInvoice(
	ctx context.Context,
	tenantID, id uuid.UUID,
	req entity.CancelRequest,
) (entity.Invoice, error) {
	err := req.Validate()
	if err != nil {
		return entity.Invoice{}, err
	}

	inv, err := s.repo.Invoice(ctx, tenantID, id)
	if err != nil {
		return entity.Invoice{}, err
	}

	err = s.machine.Guard(ctx, inv, "cancel", entity.InvoiceStatusCancelled)
	if err != nil {
		return inv, err
	}

	tenant, err := s.tenant(ctx, tenantID)
	if err != nil {
		return inv, err
	}

	ctx = logger.WithTenantID(ctx, tenantID)

	res, err := s.gateway.Cancel(ctx, tenant.Credentials, inv.Certification.ExternalID, req)
	if err != nil {
		return inv, fmt.Errorf("cancel at provider: %w", err)
	}

	if !res.Success {
		return inv, fmt.Errorf("%w: cancellation of %s is %s at the provider",
			entity.ErrGatewayTransient, inv.Certification.ExternalID, res.Status)
	}

	cancelled, err := s.machine.Cancel(ctx, inv, req)
	if err != nil {
		return inv, err
	}

	if cancelled.DocumentType == entity.DocumentTypeIncome {
		err = s.orders.MarkInvoiced(ctx, tenantID, cancelled.OrderID, false)
		if err != nil {
			slog.WarnContext(ctx, "reset order invoiced flag", "order_id", cancelled.OrderID, "error", err)
		}
	}

	s.metrics.InvoiceProcessed(outcomeCancelled)

	return cancelled, nil
}

// RefundInvoice issues a credit note for an Issued income invoice. The invoice
// becomes Refunded once the credit note is issued, here or by the retry and
// reconcile jobs. The credit note is returned.
func (s *Service) RefundInvoice(ctx context.Context, tenantID, id uuid.UUID) (entity.Invoice, error) {
	inv, err := s.repo.Invoice(ctx, tenantID, id)
	if err != nil {
		return entity.Invoice{}, err
	}

	err = s.machine.Guard(ctx, inv, "refund", entity.InvoiceStatusRefunded)
	if err != nil {
		return entity.Invoice{}, err
	}

	if inv.DocumentType != entity.DocumentTypeIncome {
		return entity.Invoice{}, fmt.Errorf("%w: only %s invoices can be refunded", entity.ErrValidation, entity.DocumentTypeIncome)
	}

	tenant, err := s.tenant(ctx, tenantID)
	if err != nil {
		return entity.Invoice{}, err
	}

	ctx = logger.WithTenantID(ctx, tenantID)

	notes, err := s.repo.CreditNotes(ctx, tenantID, inv.ID)
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("find credit notes: %w", err)
	}

	for _, note := range notes {
		switch {
		case note.Status == entity.InvoiceStatusDraft:
			note, err = s.submitDraft(ctx, tenant, note, false)
			if err != nil {
				return note, fmt.Errorf("certify credit note: %w", err)
			}

			return note, nil
		case note.Status == entity.InvoiceStatusIssued:
			// Issued earlier but the invoice was not marked.
			err = s.refundRelated(ctx, note)
			return note, err
		case s.inFlight(note):
			return note, fmt.Errorf("%w: credit note %s for invoice %s is %s",
				entity.ErrDuplicate, note.ID, inv.ID, note.Status)
		}
	}

	note, err := creditNote(tenant, inv)
	if err != nil {
		return entity.Invoice{}, err
	}

	note, err = s.open(ctx, tenant, note)
	if err != nil {
		return note, fmt.Errorf("create credit note: %w", err)
	}

	note, err = s.certify(ctx, tenant, note, false)
	if err != nil {
		return note, fmt.Errorf("certify credit note: %w", err)
	}

	return note, nil
}

// inFlight reports whether a credit note may still be issued without a new request.
func (s *Service) inFlight(note entity.Invoice) bool {
	switch note.Status {
	case entity.InvoiceStatusPending:
		return true
	case entity.InvoiceStatusError:
		return note.Retryable && note.Attempts < s.cfg.MaxAttempts
	default:
		return false
	}
}

// creditNote reverses inv in full. Amounts are positive; the document type gives
// the direction.
func creditNote(tenant entity.TenantConfig, inv entity.Invoice) (entity.Invoice, error) {
	concepts := make([]entity.Concept, len(inv.Concepts))

	for i, c := range inv.Concepts {
		c.Amount = decimal.Zero
		c.TaxLines = nil
		concepts[i] = c
	}

	res, err := tax.Compute(concepts, decimal.Zero, tax.Precision(inv.Currency))
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("compute credit note: %w", err)
	}

	note := entity.Invoice{
		ID:                uuid.Must(uuid.NewV4()),
		TenantID:          inv.TenantID,
		OrderID:           inv.OrderID,
		RelatedInvoiceID:  inv.ID,
		RelatedExternalID: inv.Certification.ExternalID,
		Series:            tenant.SeriesFor(entity.DocumentTypeCreditNote),
		DocumentType:      entity.DocumentTypeCreditNote,
		Status:            entity.InvoiceStatusDraft,
		Currency:          inv.Currency,
		ExchangeRate:      inv.ExchangeRate,
		Issuer:            inv.Issuer,
		Recipient:         inv.Recipient,
	}

	res.ApplyTo(&note)
	note.TotalInTenantCurrency = note.Total.Mul(note.ExchangeRate).Round(tax.Precision(tenant.DefaultCurrency))

	return note, nil
}

func (s *Service) Invoice(ctx context.Context, tenantID, id uuid.UUID) (entity.Invoice, error) {
	return s.repo.Invoice(ctx, tenantID, id)
}

func (s *Service) Invoices(ctx context.Context, tenantID uuid.UUID, f entity.InvoiceFilter) ([]entity.Invoice, int, error) {
	if f.Status != nil && !f.Status.Valid() {
		return nil, 0, fmt.Errorf("%w: unknown status %q", entity.ErrValidation, *f.Status)
	}

	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return nil, 0, fmt.Errorf("%w: from must not be after to", entity.ErrValidation)
	}

	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit == 0 {
		f.Limit = defaultPageLimit
	}

	if f.Limit > maxPageLimit {
		return nil, 0, fmt.Errorf("%w: limit must not exceed %d", entity.ErrValidation, maxPageLimit)
	}

	return s.repo.Invoices(ctx, tenantID, f)
}

// AuditLog returns the entries of an invoice in the order they were written.
func (s *Service) AuditLog(ctx context.Context, tenantID, id uuid.UUID) ([]entity.AuditEntry, error) {
	_, err := s.repo.Invoice(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	return s.audit.Log(ctx, tenantID, id)
}

// Artifacts returns download links of the certified documents of an invoice.
func (s *Service) Artifacts(ctx context.Context, tenantID, id uuid.UUID) (entity.ArtifactLinks, error) {
	inv, err := s.repo.Invoice(ctx, tenantID, id)
	if err != nil {
		return entity.ArtifactLinks{}, err
	}

	keys := inv.Certification.Artifacts
	if keys.SignedDocument == "" && keys.Rendering == "" {
		return entity.ArtifactLinks{}, fmt.Errorf("%w: invoice %s has no stored artifacts", entity.ErrNotFound, id)
	}

	var links entity.ArtifactLinks

	if keys.SignedDocument != "" {
		links.SignedDocument, err = s.storage.ArtifactURL(ctx, keys.SignedDocument)
		if err != nil {
			return entity.ArtifactLinks{}, err
		}
	}

	if keys.Rendering != "" {
		links.Rendering, err = s.storage.ArtifactURL(ctx, keys.Rendering)
		if err != nil {
			return entity.ArtifactLinks{}, err
		}
	}

	return links, nil
}

// OrderCompleted invoices an order right after completion when the tenant asks for
// it. Failures are logged; the scheduled sweep and the retry job pick them up.
func (s *Service) OrderCompleted(ctx context.Context, tenantID, orderID uuid.UUID) error {
	tenant, err := s.tenant(ctx, tenantID)
	if err != nil {
		return err
	}

	if !tenant.Schedule.InvoiceOnCompletion {
		return nil
	}

	ctx = logger.WithTenantID(entity.CtxWithActor(ctx, entity.ActorSystem), tenantID)

	item := s.safeProcess(ctx, tenant, 0, orderID, entity.InvoiceOptions{
		AutoSend:  tenant.Schedule.AutoSend,
		Automatic: true,
	})

	switch {
	case item.Success:
		slog.InfoContext(ctx, "order invoiced on completion", "order_id", orderID, "invoice_id", item.InvoiceID)
	case item.ErrorCode == entity.ErrorCodeDuplicate:
		slog.DebugContext(ctx, "order already invoiced", "order_id", orderID)
	default:
		slog.WarnContext(ctx, "invoice on completion failed",
			"order_id", orderID,
			"error_code", item.ErrorCode,
			"error", item.Message,
		)
	}

	if item.ErrorCode == entity.ErrorCodeStorage {
		return fmt.Errorf("%w: %s", entity.ErrStorage, item.Message)
	}

	return nil
}
