package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype/zeronull"

	"github.com/samandr77/microservices/fiscal/internal/entity"
)

var invoiceColumns = []string{
	"id",
	"tenant_id",
	"order_id",
	"related_invoice_id",
	"related_external_id",
	"series",
	"folio_number",
	"folio",
	"document_type",
	"status",
	"currency",
	"exchange_rate",
	"subtotal",
	"discount",
	"taxes_transferred",
	"taxes_withheld",
	"total",
	"total_in_tenant_currency",
	"issuer",
	"recipient",
	"concepts",
	"certification",
	"automatic",
	"attempts",
	"retryable",
	"error_code",
	"error_detail",
	"cancel_reason",
	"created_by",
	"created_at",
	"updated_at",
	"issued_at",
	"cancelled_at",
	"refunded_at",
}

var selectInvoice = sq.Select(invoiceColumns...).From("invoices").PlaceholderFormat(sq.Dollar)

func (r *Repository) CreateInvoice(ctx context.Context, inv entity.Invoice) error {
	const q = `
	INSERT INTO invoices (
		id,
		tenant_id,
		order_id,
		related_invoice_id,
		related_external_id,
		series,
		folio_number,
		folio,
		document_type,
		status,
		currency,
		exchange_rate,
		subtotal,
		discount,
		taxes_transferred,
		taxes_withheld,
		total,
		total_in_tenant_currency,
		issuer,
		recipient,
		concepts,
		certification,
		external_id,
		automatic,
		attempts,
		retryable,
		error_code,
		error_detail,
		created_by,
		created_at,
		updated_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
		$21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31)
	`

	_, err := r.q(ctx).Exec(
		ctx,
		q,
		inv.ID,
		inv.TenantID,
		inv.OrderID,
		nullUUID(inv.RelatedInvoiceID),
		zeronull.Text(inv.RelatedExternalID),
		inv.Series,
		inv.FolioNumber,
		inv.Folio,
		inv.DocumentType,
		inv.Status,
		inv.Currency,
		inv.ExchangeRate,
		inv.Subtotal,
		inv.Discount,
		inv.TaxesTransferred,
		inv.TaxesWithheld,
		inv.Total,
		inv.TotalInTenantCurrency,
		inv.Issuer,
		inv.Recipient,
		inv.Concepts,
		inv.Certification,
		zeronull.Text(inv.Certification.ExternalID),
		inv.Automatic,
		inv.Attempts,
		inv.Retryable,
		zeronull.Text(inv.ErrorCode),
		zeronull.Text(inv.ErrorDetail),
		inv.CreatedBy,
		inv.CreatedAt,
		inv.UpdatedAt,
	)
	if err != nil {
		return storageErr("insert invoice", err)
	}

	return nil
}

// UpdateInvoiceState writes the mutable part of inv when the stored status is still
// prev. Exchange rate, folio and external id are write-once.
func (r *Repository) UpdateInvoiceState(ctx context.Context, inv entity.Invoice, prev entity.InvoiceStatus) error {
	const q = `
	UPDATE invoices SET
		status = $3,
		folio_number = $4,
		folio = $5,
		certification = $6,
		external_id = $7,
		attempts = $8,
		retryable = $9,
		error_code = $10,
		error_detail = $11,
		cancel_reason = $12,
		updated_at = $13,
		issued_at = $14,
		cancelled_at = $15,
		refunded_at = $16
	WHERE id = $1
		AND status = $2
		AND exchange_rate = $17
		AND (folio_number = 0 OR folio_number = $4)
		AND (external_id IS NULL OR external_id = $7)
	`

	result, err := r.q(ctx).Exec(
		ctx,
		q,
		inv.ID,
		prev,
		inv.Status,
		inv.FolioNumber,
		inv.Folio,
		inv.Certification,
		zeronull.Text(inv.Certification.ExternalID),
		inv.Attempts,
		inv.Retryable,
		zeronull.Text(inv.ErrorCode),
		zeronull.Text(inv.ErrorDetail),
		zeronull.Text(inv.CancelReason),
		inv.UpdatedAt,
		zeronull.Timestamptz(inv.IssuedAt),
		zeronull.Timestamptz(inv.CancelledAt),
		zeronull.Timestamptz(inv.RefundedAt),
		inv.ExchangeRate,
	)
	if err != nil {
		return storageErr("update invoice", err)
	}

	if result.RowsAffected() == 0 {
		return entity.ErrStateConflict
	}

	return nil
}

func (r *Repository) Invoice(ctx context.Context, tenantID, id uuid.UUID) (entity.Invoice, error) {
	return r.invoiceWhere(ctx, sq.Eq{"tenant_id": tenantID, "id": id})
}

// ActiveInvoiceByOrder returns the income invoice of an order that is not cancelled.
func (r *Repository) ActiveInvoiceByOrder(ctx context.Context, tenantID, orderID uuid.UUID) (entity.Invoice, error) {
	return r.invoiceWhere(ctx, sq.And{
		sq.Eq{"tenant_id": tenantID, "order_id": orderID, "document_type": entity.DocumentTypeIncome},
		sq.NotEq{"status": entity.InvoiceStatusCancelled},
	})
}

// CreditNotes returns the credit notes that reference an invoice, oldest first.
func (r *Repository) CreditNotes(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]entity.Invoice, error) {
	stmt := selectInvoice.
		Where(sq.Eq{
			"tenant_id":          tenantID,
			"related_invoice_id": invoiceID,
			"document_type":      entity.DocumentTypeCreditNote,
		}).
		OrderBy("created_at")

	return r.listInvoices(ctx, stmt)
}

func (r *Repository) invoiceWhere(ctx context.Context, pred sq.Sqlizer) (entity.Invoice, error) {
	sql, args, err := selectInvoice.Where(pred).ToSql()
	if err != nil {
		return entity.Invoice{}, err
	}

	inv, err := scanInvoice(r.q(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		return entity.Invoice{}, storageErr("select invoice", err)
	}

	return inv, nil
}

// Invoices lists tenant invoices, newest first, with the total count of the filter.
func (r *Repository) Invoices(
	ctx context.Context,
	tenantID uuid.UUID,
	f entity.InvoiceFilter,
) ([]entity.Invoice, int, error) {
	stmt := sq.Select(append(invoiceColumns, "COUNT(*) OVER() AS total_count")...).
		From("invoices").
		Where(sq.Eq{"tenant_id": tenantID}).
		PlaceholderFormat(sq.Dollar)

	stmt = applyInvoiceFilter(stmt, f).
		OrderBy("created_at DESC", "id").
		Limit(f.Limit).
		Offset(f.Page*f.Limit - f.Limit)

	sql, args, err := stmt.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.q(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, storageErr("select invoices", err)
	}
	defer rows.Close()

	invoices := make([]entity.Invoice, 0, f.Limit)

	var totalCount int

	for rows.Next() {
		var count int

		inv, err := scanInvoice(rows, &count)
		if err != nil {
			return nil, 0, storageErr("scan invoice", err)
		}

		totalCount = count

		invoices = append(invoices, inv)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, storageErr("select invoices", err)
	}

	return invoices, totalCount, nil
}

func applyInvoiceFilter(stmt sq.SelectBuilder, f entity.InvoiceFilter) sq.SelectBuilder {
	if f.Status != nil {
		stmt = stmt.Where(sq.Eq{"status": *f.Status})
	}

	if f.From != nil {
		stmt = stmt.Where(sq.GtOrEq{"created_at": *f.From})
	}

	if f.To != nil {
		stmt = stmt.Where(sq.Lt{"created_at": *f.To})
	}

	return stmt
}

// RetryableInvoices returns failed invoices that may be driven again, oldest first.
func (r *Repository) RetryableInvoices(ctx context.Context, maxAttempts, limit int) ([]entity.Invoice, error) {
	stmt := selectInvoice.
		Where(sq.Eq{"status": entity.InvoiceStatusError, "retryable": true}).
		Where(sq.Lt{"attempts": maxAttempts}).
		OrderBy("updated_at").
		Limit(uint64(limit))

	return r.listInvoices(ctx, stmt)
}

// StalePendingInvoices returns invoices left Pending since before.
func (r *Repository) StalePendingInvoices(ctx context.Context, before time.Time, limit int) ([]entity.Invoice, error) {
	stmt := selectInvoice.
		Where(sq.Eq{"status": entity.InvoiceStatusPending}).
		Where(sq.Lt{"updated_at": before}).
		OrderBy("updated_at").
		Limit(uint64(limit))

	return r.listInvoices(ctx, stmt)
}

func (r *Repository) listInvoices(ctx context.Context, stmt sq.SelectBuilder) ([]entity.Invoice, error) {
	sql, args, err := stmt.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.q(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, storageErr("select invoices", err)
	}
	defer rows.Close()

	var invoices []entity.Invoice

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, storageErr("scan invoice", err)
		}

		invoices = append(invoices, inv)
	}

	if err = rows.Err(); err != nil {
		return nil, storageErr("select invoices", err)
	}

	return invoices, nil
}

func scanInvoice(row pgx.Row, extra ...any) (inv entity.Invoice, err error) {
	var related uuid.NullUUID

	dest := []any{
		&inv.ID,
		&inv.TenantID,
		&inv.OrderID,
		&related,
		(*zeronull.Text)(&inv.RelatedExternalID),
		&inv.Series,
		&inv.FolioNumber,
		&inv.Folio,
		&inv.DocumentType,
		&inv.Status,
		&inv.Currency,
		&inv.ExchangeRate,
		&inv.Subtotal,
		&inv.Discount,
		&inv.TaxesTransferred,
		&inv.TaxesWithheld,
		&inv.Total,
		&inv.TotalInTenantCurrency,
		&inv.Issuer,
		&inv.Recipient,
		&inv.Concepts,
		&inv.Certification,
		&inv.Automatic,
		&inv.Attempts,
		&inv.Retryable,
		(*zeronull.Text)(&inv.ErrorCode),
		(*zeronull.Text)(&inv.ErrorDetail),
		(*zeronull.Text)(&inv.CancelReason),
		&inv.CreatedBy,
		&inv.CreatedAt,
		&inv.UpdatedAt,
		(*zeronull.Timestamptz)(&inv.IssuedAt),
		(*zeronull.Timestamptz)(&inv.CancelledAt),
		(*zeronull.Timestamptz)(&inv.RefundedAt),
	}

	err = row.Scan(append(dest, extra...)...)
	if err != nil {
		return entity.Invoice{}, err
	}

	inv.RelatedInvoiceID = related.UUID

	return inv, nil
}
