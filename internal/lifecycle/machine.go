// Package lifecycle moves invoices through their states. Every change is a
// compare-and-swap on the stored status plus one audit entry, in one transaction.
package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/samandr77/microservices/fiscal/internal/audit"
	"github.com/samandr77/microservices/fiscal/internal/entity"
	"github.com/samandr77/microservices/fiscal/internal/folio"
)

var transitions = map[entity.InvoiceStatus][]entity.InvoiceStatus{
	entity.InvoiceStatusDraft:   {entity.InvoiceStatusPending},
	entity.InvoiceStatusPending: {entity.InvoiceStatusIssued, entity.InvoiceStatusError},
	entity.InvoiceStatusError:   {entity.InvoiceStatusPending},
	entity.InvoiceStatusIssued:  {entity.InvoiceStatusCancelled, entity.InvoiceStatusRefunded},
}

// Allowed reports whether from -> to is in the transition table.
func Allowed(from, to entity.InvoiceStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}

	return false
}

type Repository interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	CreateInvoice(ctx context.Context, inv entity.Invoice) error
	// UpdateInvoiceState stores inv only if the stored status is still prev.
	UpdateInvoiceState(ctx context.Context, inv entity.Invoice, prev entity.InvoiceStatus) error
}

type AuditRecorder interface {
	Record(ctx context.Context, e entity.AuditEntry) error
}

type FolioAllocator interface {
	Next(ctx context.Context, tenantID uuid.UUID, series string, width int) (folio.Folio, error)
}

type Machine struct {
	repo   Repository
	audit  AuditRecorder
	folios FolioAllocator
	now    func() time.Time
}

func New(repo Repository, recorder AuditRecorder, folios FolioAllocator) *Machine {
	return &Machine{
		repo:   repo,
		audit:  recorder,
		folios: folios,
		now:    time.Now,
	}
}

// Create stores a new Draft invoice.
func (m *Machine) Create(ctx context.Context, inv entity.Invoice) (entity.Invoice, error) {
	if inv.Status != entity.InvoiceStatusDraft {
		return inv, &entity.StateError{Op: "create", From: inv.Status, To: entity.InvoiceStatusDraft}
	}

	now := m.now()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	inv.CreatedBy = entity.ActorFromCtx(ctx)

	ctx, publish := audit.Hold(ctx)

	err := m.repo.RunInTx(ctx, func(ctx context.Context) error {
		err := m.repo.CreateInvoice(ctx, inv)
		if err != nil {
			return fmt.Errorf("create invoice: %w", err)
		}

		return m.audit.Record(ctx, entry(inv, entity.AuditEventDraftCreated, entity.SeverityInfo, map[string]any{
			"order_id":      inv.OrderID,
			"document_type": inv.DocumentType,
			"total":         inv.Total,
			"currency":      inv.Currency,
			"folio":         inv.Folio,
		}))
	})
	if err != nil {
		return inv, err
	}

	publish()

	return inv, nil
}

// Open creates a Draft and submits it in one transaction, so a failed submit
// leaves nothing stored.
func (m *Machine) Open(ctx context.Context, inv entity.Invoice) (entity.Invoice, error) {
	var pending entity.Invoice

	ctx, publish := audit.Hold(ctx)

	err := m.repo.RunInTx(ctx, func(ctx context.Context) error {
		draft, err := m.Create(ctx, inv)
		if err != nil {
			return err
		}

		pending, err = m.Submit(ctx, draft)

		return err
	})
	if err != nil {
		return inv, err
	}

	publish()

	return pending, nil
}

// Submit moves a Draft that passes structural validation to Pending.
func (m *Machine) Submit(ctx context.Context, inv entity.Invoice) (entity.Invoice, error) {
	if inv.Status != entity.InvoiceStatusDraft {
		return inv, m.reject(ctx, inv, "submit", entity.InvoiceStatusPending)
	}

	err := inv.Validate()
	if err != nil {
		return inv, err
	}

	return m.transition(ctx, inv, entity.InvoiceStatusPending, entity.AuditEventSubmitted, entity.SeverityInfo, nil, nil)
}

type IssueRequest struct {
	Result     entity.CertificationResult
	Artifacts  entity.ArtifactKeys
	FolioWidth int
}

// Issue stores a successful certification. A missing folio is allocated inside
// the same transaction, so a rollback releases it.
func (m *Machine) Issue(ctx context.Context, inv entity.Invoice, req IssueRequest) (entity.Invoice, error) {
	if inv.Status != entity.InvoiceStatusPending {
		return inv, m.reject(ctx, inv, "issue", entity.InvoiceStatusIssued)
	}

	res := req.Result
	if !res.Success || res.ExternalID == "" {
		return inv, fmt.Errorf("%w: certification result without external id", entity.ErrValidation)
	}

	if inv.Certification.ExternalID != "" && inv.Certification.ExternalID != res.ExternalID {
		return inv, fmt.Errorf("%w: certification id %s is already set", entity.ErrState, inv.Certification.ExternalID)
	}

	mutate := func(ctx context.Context, next *entity.Invoice) error {
		if next.FolioNumber == 0 {
			f, err := m.folios.Next(ctx, next.TenantID, next.Series, req.FolioWidth)
			if err != nil {
				return err
			}

			next.FolioNumber = f.Number
			next.Folio = f.String()
		}

		next.Certification = entity.Certification{
			ExternalID:         res.ExternalID,
			IssuerSignature:    res.IssuerSignature,
			AuthoritySignature: res.AuthoritySignature,
			VerificationCode:   res.VerificationCode,
			CertifiedAt:        res.CertifiedAt,
			Metadata:           res.Metadata,
			Artifacts:          req.Artifacts,
		}

		next.IssuedAt = next.UpdatedAt
		next.ErrorCode = ""
		next.ErrorDetail = ""
		next.Retryable = false

		return nil
	}

	meta := map[string]any{"external_id": res.ExternalID}

	return m.transition(ctx, inv, entity.InvoiceStatusIssued, entity.AuditEventIssued, entity.SeverityInfo, meta, mutate)
}

// Fail moves a Pending invoice to Error. attempts is the number of gateway calls
// made by the failed run.
func (m *Machine) Fail(ctx context.Context, inv entity.Invoice, cause error, attempts int) (entity.Invoice, error) {
	if inv.Status != entity.InvoiceStatusPending {
		return inv, m.reject(ctx, inv, "fail", entity.InvoiceStatusError)
	}

	mutate := func(_ context.Context, next *entity.Invoice) error {
		next.Attempts += attempts
		next.ErrorCode = entity.Classify(cause)
		next.ErrorDetail = entity.ErrorMessage(cause)
		next.Retryable = entity.Retryable(cause)

		return nil
	}

	meta := map[string]any{
		"error_code": entity.Classify(cause),
		"error":      cause.Error(),
		"attempts":   inv.Attempts + attempts,
	}

	return m.transition(ctx, inv, entity.InvoiceStatusError, entity.AuditEventFailed, entity.SeverityError, meta, mutate)
}

// Retry moves an Error invoice back to Pending while attempts remain.
func (m *Machine) Retry(ctx context.Context, inv entity.Invoice, maxAttempts int) (entity.Invoice, error) {
	if inv.Status != entity.InvoiceStatusError {
		return inv, m.reject(ctx, inv, "retry", entity.InvoiceStatusPending)
	}

	if inv.Attempts >= maxAttempts {
		return inv, fmt.Errorf("%w: invoice %s made %d of %d attempts",
			entity.ErrAttemptsExhausted, inv.ID, inv.Attempts, maxAttempts)
	}

	meta := map[string]any{"attempts": inv.Attempts, "previous_error": inv.ErrorCode}

	return m.transition(ctx, inv, entity.InvoiceStatusPending, entity.AuditEventRetried, entity.SeverityInfo, meta, nil)
}

// Cancel records a cancellation already accepted by the gateway.
func (m *Machine) Cancel(ctx context.Context, inv entity.Invoice, req entity.CancelRequest) (entity.Invoice, error) {
	if inv.Status != entity.InvoiceStatusIssued {
		return inv, m.reject(ctx, inv, "cancel", entity.InvoiceStatusCancelled)
	}

	err := req.Validate()
	if err != nil {
		return inv, err
	}

	mutate := func(_ context.Context, next *entity.Invoice) error {
		next.CancelReason = string(req.Reason)
		next.CancelledAt = next.UpdatedAt

		return nil
	}

	meta := map[string]any{"reason": req.Reason, "replacement_id": req.ReplacementID}

	return m.transition(ctx, inv, entity.InvoiceStatusCancelled, entity.AuditEventCancelled, entity.SeverityInfo, meta, mutate)
}

// Refund marks an invoice Refunded by an issued credit note that references it.
func (m *Machine) Refund(ctx context.Context, inv, creditNote entity.Invoice) (entity.Invoice, error) {
	if inv.Status != entity.InvoiceStatusIssued {
		return inv, m.reject(ctx, inv, "refund", entity.InvoiceStatusRefunded)
	}

	if creditNote.DocumentType != entity.DocumentTypeCreditNote ||
		creditNote.RelatedInvoiceID != inv.ID ||
		creditNote.Status != entity.InvoiceStatusIssued {
		return inv, fmt.Errorf("%w: refund requires an issued credit note for invoice %s", entity.ErrValidation, inv.ID)
	}

	mutate := func(_ context.Context, next *entity.Invoice) error {
		next.RefundedAt = next.UpdatedAt
		return nil
	}

	meta := map[string]any{"credit_note_id": creditNote.ID, "credit_note_total": creditNote.SignedTotal()}

	return m.transition(ctx, inv, entity.InvoiceStatusRefunded, entity.AuditEventRefunded, entity.SeverityInfo, meta, mutate)
}

// Guard returns a StateError, audited, when to is not reachable from the invoice status.
func (m *Machine) Guard(ctx context.Context, inv entity.Invoice, op string, to entity.InvoiceStatus) error {
	if Allowed(inv.Status, to) {
		return nil
	}

	return m.reject(ctx, inv, op, to)
}

func (m *Machine) transition(
	ctx context.Context,
	inv entity.Invoice,
	to entity.InvoiceStatus,
	event string,
	severity entity.Severity,
	meta map[string]any,
	mutate func(ctx context.Context, next *entity.Invoice) error,
) (entity.Invoice, error) {
	from := inv.Status
	if !Allowed(from, to) {
		return inv, m.reject(ctx, inv, event, to)
	}

	if meta == nil {
		meta = make(map[string]any)
	}

	meta["from"] = from
	meta["to"] = to

	var next entity.Invoice

	ctx, publish := audit.Hold(ctx)

	err := m.repo.RunInTx(ctx, func(ctx context.Context) error {
		next = inv
		next.Status = to
		next.UpdatedAt = m.now()

		if mutate != nil {
			err := mutate(ctx, &next)
			if err != nil {
				return err
			}
		}

		err := m.repo.UpdateInvoiceState(ctx, next, from)
		if err != nil {
			return fmt.Errorf("update invoice %s %s -> %s: %w", inv.ID, from, to, err)
		}

		if next.Folio != inv.Folio {
			meta["folio"] = next.Folio
		}

		return m.audit.Record(ctx, entry(next, event, severity, meta))
	})
	if err != nil {
		return inv, err
	}

	publish()

	return next, nil
}

func (m *Machine) reject(ctx context.Context, inv entity.Invoice, op string, to entity.InvoiceStatus) error {
	stateErr := &entity.StateError{Op: op, From: inv.Status, To: to}

	err := m.audit.Record(ctx, entry(inv, entity.AuditEventTransitionRejected, entity.SeverityWarning, map[string]any{
		"op":   op,
		"from": inv.Status,
		"to":   to,
	}))
	if err != nil {
		slog.ErrorContext(ctx, "record rejected transition", "invoice_id", inv.ID, "error", err)
	}

	return stateErr
}

func entry(inv entity.Invoice, event string, severity entity.Severity, meta map[string]any) entity.AuditEntry {
	return entity.AuditEntry{
		TenantID:  inv.TenantID,
		InvoiceID: inv.ID,
		Event:     event,
		Severity:  severity,
		Metadata:  meta,
	}
}

