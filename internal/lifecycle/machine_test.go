package lifecycle_test

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/samandr77/microservices/fiscal/internal/entity"
	"github.com/samandr77/microservices/fiscal/internal/folio"
	"github.com/samandr77/microservices/fiscal/internal/lifecycle"
)

type memRepo struct {
	mu       sync.Mutex
	invoices map[uuid.UUID]entity.Invoice
	audit    []entity.AuditEntry
}

func newMemRepo() *memRepo {
	return &memRepo{invoices: make(map[uuid.UUID]entity.Invoice)}
}

func (r *memRepo) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	r.mu.Lock()
	snapshot := maps.Clone(r.invoices)
	auditLen := len(r.audit)
	r.mu.Unlock()

	err := fn(ctx)
	if err != nil {
		r.mu.Lock()
		r.invoices = snapshot
		r.audit = r.audit[:auditLen]
		r.mu.Unlock()
	}

	return err
}

func (r *memRepo) CreateInvoice(_ context.Context, inv entity.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.invoices[inv.ID] = inv

	return nil
}

func (r *memRepo) UpdateInvoiceState(_ context.Context, inv entity.Invoice, prev entity.InvoiceStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.invoices[inv.ID]
	if !ok {
		return entity.ErrNotFound
	}

	if stored.Status != prev {
		return entity.ErrStateConflict
	}

	r.invoices[inv.ID] = inv

	return nil
}

func (r *memRepo) Record(_ context.Context, e entity.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.audit = append(r.audit, e)

	return nil
}

func (r *memRepo) stored(id uuid.UUID) entity.Invoice {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.invoices[id]
}

func (r *memRepo) events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.audit))
	for _, e := range r.audit {
		out = append(out, e.Event)
	}

	return out
}

type failingAllocator struct{}

func (failingAllocator) Next(context.Context, uuid.UUID, string, int) (folio.Folio, error) {
	return folio.Folio{}, fmt.Errorf("%w: counter unavailable", entity.ErrStorage)
}

func newMachine(t *testing.T) (*lifecycle.Machine, *memRepo) {
	t.Helper()

	repo := newMemRepo()
	alloc := folio.NewAllocator(folio.NewMemoryStore(), folio.PolicyReserveOnCommit)

	return lifecycle.New(repo, repo, alloc), repo
}

func draft() entity.Invoice {
	return entity.Invoice{
		ID:           uuid.Must(uuid.NewV4()),
		TenantID:     uuid.Must(uuid.NewV4()),
		OrderID:      uuid.Must(uuid.NewV4()),
		Series:       "A",
		DocumentType: entity.DocumentTypeIncome,
		Status:       entity.InvoiceStatusDraft,
		Currency:     "MXN",
		ExchangeRate: decimal.NewFromInt(1),
		Subtotal:     decimal.NewFromInt(1000),
		Total:        decimal.NewFromInt(1160),
		Issuer:       entity.Party{TaxID: "EKU9003173C9", Name: "ESCUELA KEMPER URGATE", PostalCode: "42501"},
		Recipient:    entity.Party{TaxID: "XAXX010101000", Name: "PUBLICO EN GENERAL", PostalCode: "42501"},
		Concepts:     []entity.Concept{{Quantity: decimal.NewFromInt(1), UnitValue: decimal.NewFromInt(1000)}},
	}
}

func certified(id string) lifecycle.IssueRequest {
	return lifecycle.IssueRequest{
		Result: entity.CertificationResult{
			Success:          true,
			ExternalID:       id,
			VerificationCode: "ABCD1234",
			CertifiedAt:      time.Now(),
		},
		FolioWidth: 6,
	}
}

func issued(t *testing.T, m *lifecycle.Machine) entity.Invoice {
	t.Helper()

	ctx := context.Background()

	inv, err := m.Create(ctx, draft())
	require.NoError(t, err)

	inv, err = m.Submit(ctx, inv)
	require.NoError(t, err)

	inv, err = m.Issue(ctx, inv, certified(uuid.Must(uuid.NewV4()).String()))
	require.NoError(t, err)

	return inv
}

func TestAllowed_Table(t *testing.T) {
	t.Parallel()

	statuses := []entity.InvoiceStatus{
		entity.InvoiceStatusDraft,
		entity.InvoiceStatusPending,
		entity.InvoiceStatusIssued,
		entity.InvoiceStatusError,
		entity.InvoiceStatusCancelled,
		entity.InvoiceStatusRefunded,
	}

	legal := map[[2]entity.InvoiceStatus]bool{
		{entity.InvoiceStatusDraft, entity.InvoiceStatusPending}:    true,
		{entity.InvoiceStatusPending, entity.InvoiceStatusIssued}:   true,
		{entity.InvoiceStatusPending, entity.InvoiceStatusError}:    true,
		{entity.InvoiceStatusError, entity.InvoiceStatusPending}:    true,
		{entity.InvoiceStatusIssued, entity.InvoiceStatusCancelled}: true,
		{entity.InvoiceStatusIssued, entity.InvoiceStatusRefunded}:  true,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			require.Equal(t, legal[[2]entity.InvoiceStatus{from, to}], lifecycle.Allowed(from, to), "%s -> %s", from, to)
		}
	}
}

func TestMachine_IssueAllocatesFolio(t *testing.T) {
	t.Parallel()

	m, repo := newMachine(t)

	inv := issued(t, m)
	require.Equal(t, entity.InvoiceStatusIssued, inv.Status)
	require.Equal(t, int64(1), inv.FolioNumber)
	require.Equal(t, "000001", inv.Folio)
	require.False(t, inv.IssuedAt.IsZero())
	require.Equal(t, inv, repo.stored(inv.ID))
	require.Equal(t, []string{
		entity.AuditEventDraftCreated,
		entity.AuditEventSubmitted,
		entity.AuditEventIssued,
	}, repo.events())
}

func TestMachine_IssueRollsBackOnFolioFailure(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	m := lifecycle.New(repo, repo, failingAllocator{})
	ctx := context.Background()

	inv, err := m.Create(ctx, draft())
	require.NoError(t, err)

	inv, err = m.Submit(ctx, inv)
	require.NoError(t, err)

	_, err = m.Issue(ctx, inv, certified("ext-1"))
	require.ErrorIs(t, err, entity.ErrStorage)
	require.Equal(t, entity.InvoiceStatusPending, repo.stored(inv.ID).Status)
	require.Empty(t, repo.stored(inv.ID).Certification.ExternalID)
}

func TestMachine_SubmitValidation(t *testing.T) {
	t.Parallel()

	m, repo := newMachine(t)
	ctx := context.Background()

	d := draft()
	d.Recipient.TaxID = ""

	inv, err := m.Create(ctx, d)
	require.NoError(t, err)

	_, err = m.Submit(ctx, inv)
	require.ErrorIs(t, err, entity.ErrValidation)
	require.Equal(t, entity.InvoiceStatusDraft, repo.stored(inv.ID).Status)
}

func TestMachine_Open(t *testing.T) {
	t.Parallel()

	m, repo := newMachine(t)
	ctx := context.Background()

	inv, err := m.Open(ctx, draft())
	require.NoError(t, err)
	require.Equal(t, entity.InvoiceStatusPending, inv.Status)
	require.Equal(t, inv, repo.stored(inv.ID))
	require.Equal(t, []string{entity.AuditEventDraftCreated, entity.AuditEventSubmitted}, repo.events())
}

func TestMachine_OpenRollsBackOnFailedSubmit(t *testing.T) {
	t.Parallel()

	m, repo := newMachine(t)
	ctx := context.Background()

	d := draft()
	d.Recipient.TaxID = ""

	inv, err := m.Open(ctx, d)
	require.ErrorIs(t, err, entity.ErrValidation)
	require.Equal(t, entity.InvoiceStatusDraft, inv.Status)
	require.Empty(t, repo.stored(d.ID).ID)
	require.Empty(t, repo.events())
}

func TestMachine_FailAndRetry(t *testing.T) {
	t.Parallel()

	m, repo := newMachine(t)
	ctx := context.Background()

	inv, err := m.Create(ctx, draft())
	require.NoError(t, err)

	inv, err = m.Submit(ctx, inv)
	require.NoError(t, err)

	cause := &entity.GatewayError{Kind: entity.ErrGatewayTransient, StatusCode: 503, Message: "unavailable"}

	inv, err = m.Fail(ctx, inv, cause, 3)
	require.NoError(t, err)
	require.Equal(t, entity.InvoiceStatusError, inv.Status)
	require.Equal(t, 3, inv.Attempts)
	require.True(t, inv.Retryable)
	require.Equal(t, entity.ErrorCodeGatewayTransient, inv.ErrorCode)

	inv, err = m.Retry(ctx, inv, 6)
	require.NoError(t, err)
	require.Equal(t, entity.InvoiceStatusPending, inv.Status)

	inv, err = m.Fail(ctx, inv, cause, 3)
	require.NoError(t, err)

	_, err = m.Retry(ctx, inv, 6)
	require.ErrorIs(t, err, entity.ErrAttemptsExhausted)
	require.Equal(t, entity.InvoiceStatusError, repo.stored(inv.ID).Status)
}

func TestMachine_IllegalTransitionIsAuditedAndHarmless(t *testing.T) {
	t.Parallel()

	m, repo := newMachine(t)
	ctx := context.Background()

	inv, err := m.Create(ctx, draft())
	require.NoError(t, err)

	_, err = m.Issue(ctx, inv, certified("ext-1"))

	var stateErr *entity.StateError
	require.True(t, errors.As(err, &stateErr))
	require.Equal(t, entity.InvoiceStatusDraft, stateErr.From)
	require.Equal(t, entity.InvoiceStatusIssued, stateErr.To)

	require.Equal(t, inv, repo.stored(inv.ID))
	require.Equal(t, entity.AuditEventTransitionRejected, repo.events()[len(repo.events())-1])

	_, err = m.Cancel(ctx, inv, entity.CancelRequest{Reason: entity.CancelReasonNotCarriedOut})
	require.ErrorIs(t, err, entity.ErrState)
}

func TestMachine_CancelTwice(t *testing.T) {
	t.Parallel()

	m, repo := newMachine(t)
	ctx := context.Background()

	inv := issued(t, m)

	cancelled, err := m.Cancel(ctx, inv, entity.CancelRequest{Reason: entity.CancelReasonNotCarriedOut})
	require.NoError(t, err)
	require.Equal(t, entity.InvoiceStatusCancelled, cancelled.Status)
	require.Equal(t, "03", cancelled.CancelReason)
	require.False(t, cancelled.CancelledAt.IsZero())

	_, err = m.Cancel(ctx, cancelled, entity.CancelRequest{Reason: entity.CancelReasonNotCarriedOut})
	require.ErrorIs(t, err, entity.ErrState)
	require.Equal(t, cancelled, repo.stored(inv.ID))
}

func TestMachine_StaleCopyConflicts(t *testing.T) {
	t.Parallel()

	m, repo := newMachine(t)
	ctx := context.Background()

	inv := issued(t, m)

	_, err := m.Cancel(ctx, inv, entity.CancelRequest{Reason: entity.CancelReasonNotCarriedOut})
	require.NoError(t, err)

	// inv still says Issued; the store says Cancelled.
	_, err = m.Refund(ctx, inv, entity.Invoice{
		ID:               uuid.Must(uuid.NewV4()),
		DocumentType:     entity.DocumentTypeCreditNote,
		RelatedInvoiceID: inv.ID,
		Status:           entity.InvoiceStatusIssued,
	})
	require.ErrorIs(t, err, entity.ErrStateConflict)
	require.Equal(t, entity.InvoiceStatusCancelled, repo.stored(inv.ID).Status)
}

func TestMachine_Refund(t *testing.T) {
	t.Parallel()

	m, _ := newMachine(t)
	ctx := context.Background()

	inv := issued(t, m)

	_, err := m.Refund(ctx, inv, entity.Invoice{ID: uuid.Must(uuid.NewV4()), DocumentType: entity.DocumentTypeIncome})
	require.ErrorIs(t, err, entity.ErrValidation)

	refunded, err := m.Refund(ctx, inv, entity.Invoice{
		ID:               uuid.Must(uuid.NewV4()),
		DocumentType:     entity.DocumentTypeCreditNote,
		RelatedInvoiceID: inv.ID,
		Status:           entity.InvoiceStatusIssued,
		Total:            inv.Total,
	})
	require.NoError(t, err)
	require.Equal(t, entity.InvoiceStatusRefunded, refunded.Status)
	require.False(t, refunded.RefundedAt.IsZero())
}

func TestMachine_ExternalIDIsWriteOnce(t *testing.T) {
	t.Parallel()

	m, _ := newMachine(t)
	ctx := context.Background()

	inv, err := m.Create(ctx, draft())
	require.NoError(t, err)

	inv, err = m.Submit(ctx, inv)
	require.NoError(t, err)

	inv.Certification.ExternalID = "ext-1"

	_, err = m.Issue(ctx, inv, certified("ext-2"))
	require.ErrorIs(t, err, entity.ErrState)
}
