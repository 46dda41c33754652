package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/samandr77/microservices/fiscal/internal/entity"
)

// AppendAudit inserts an entry. The table has no update or delete path.
func (r *Repository) AppendAudit(ctx context.Context, e entity.AuditEntry) error {
	const q = `
	INSERT INTO audit_log (id, tenant_id, invoice_id, actor, event, severity, metadata, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	meta := e.Metadata
	if meta == nil {
		meta = map[string]any{}
	}

	_, err := r.q(ctx).Exec(ctx, q,
		e.ID,
		e.TenantID,
		nullUUID(e.InvoiceID),
		e.Actor,
		e.Event,
		e.Severity,
		meta,
		e.CreatedAt,
	)
	if err != nil {
		return storageErr("insert audit entry", err)
	}

	return nil
}

// AuditLog returns the history of an invoice in insertion order.
func (r *Repository) AuditLog(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]entity.AuditEntry, error) {
	const q = `
	SELECT id, tenant_id, invoice_id, actor, event, severity, metadata, created_at
	FROM audit_log
	WHERE tenant_id = $1 AND invoice_id = $2
	ORDER BY seq
	`

	rows, err := r.q(ctx).Query(ctx, q, tenantID, invoiceID)
	if err != nil {
		return nil, storageErr("select audit log", err)
	}
	defer rows.Close()

	entries := make([]entity.AuditEntry, 0)

	for rows.Next() {
		var (
			e   entity.AuditEntry
			inv uuid.NullUUID
		)

		err = rows.Scan(&e.ID, &e.TenantID, &inv, &e.Actor, &e.Event, &e.Severity, &e.Metadata, &e.CreatedAt)
		if err != nil {
			return nil, storageErr("scan audit entry", err)
		}

		e.InvoiceID = inv.UUID

		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, storageErr("select audit log", err)
	}

	return entries, nil
}
