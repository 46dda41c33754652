// Package audit records invoice lifecycle events in an append-only log.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/samandr77/microservices/fiscal/internal/entity"
)

type Store interface {
	AppendAudit(ctx context.Context, e entity.AuditEntry) error
	AuditLog(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]entity.AuditEntry, error)
}

// Publisher streams entries to other services. Delivery is best effort.
type Publisher interface {
	SendAuditEvent(ctx context.Context, e entity.AuditEntry)
}

type Recorder struct {
	store     Store
	publisher Publisher
	now       func() time.Time
}

func NewRecorder(store Store, publisher Publisher) *Recorder {
	return &Recorder{
		store:     store,
		publisher: publisher,
		now:       time.Now,
	}
}

// Record appends an entry. ID, actor and timestamp are filled in when empty.
func (r *Recorder) Record(ctx context.Context, e entity.AuditEntry) error {
	if e.ID.IsNil() {
		e.ID = uuid.Must(uuid.NewV4())
	}

	if e.Actor == "" {
		e.Actor = entity.ActorFromCtx(ctx)
	}

	if e.Severity == "" {
		e.Severity = entity.SeverityInfo
	}

	if e.CreatedAt.IsZero() {
		e.CreatedAt = r.now()
	}

	err := r.store.AppendAudit(ctx, e)
	if err != nil {
		return fmt.Errorf("%w: append audit entry %s: %w", entity.ErrStorage, e.Event, err)
	}

	slog.InfoContext(ctx, "audit", "event", e.Event, "severity", e.Severity, "invoice_id", e.InvoiceID)

	if r.publisher == nil {
		return nil
	}

	if box, ok := ctx.Value(outboxKey{}).(*outbox); ok {
		box.add(func() { r.publisher.SendAuditEvent(ctx, e) })
		return nil
	}

	r.publisher.SendAuditEvent(ctx, e)

	return nil
}

type outboxKey struct{}

type outbox struct {
	mu      sync.Mutex
	pending []func()
}

func (b *outbox) add(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.pending = append(b.pending, fn)
}

func (b *outbox) flush() {
	b.mu.Lock()
	pending := b.pending
	b.pending = nil
	b.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
}

// Hold makes Record keep entries back from the publisher until publish is called.
// Call publish once the surrounding transaction has committed; entries of a
// rolled back transaction are dropped with the returned context. Under an
// enclosing Hold, publish is a no-op and the outer call publishes.
func Hold(ctx context.Context) (context.Context, func()) {
	if _, ok := ctx.Value(outboxKey{}).(*outbox); ok {
		return ctx, func() {}
	}

	box := &outbox{}

	return context.WithValue(ctx, outboxKey{}, box), box.flush
}

func (r *Recorder) Log(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]entity.AuditEntry, error) {
	entries, err := r.store.AuditLog(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("get audit log: %w", err)
	}

	return entries, nil
}
