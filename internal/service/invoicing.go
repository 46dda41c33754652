package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/samandr77/microservices/fiscal/internal/entity"
	"github.com/samandr77/microservices/fiscal/internal/folio"
	"github.com/samandr77/microservices/fiscal/internal/tax"
	"github.com/samandr77/microservices/fiscal/pkg/logger"
)

const (
	modeSingle    = "single"
	modeBatch     = "batch"
	modeScheduled = "scheduled"
)

// InvoiceSingleOrder issues the income invoice of one completed order.
func (s *Service) InvoiceSingleOrder(
	ctx context.Context,
	tenantID, orderID uuid.UUID,
	opts entity.InvoiceOptions,
) (entity.ItemResult, error) {
	err := opts.Validate()
	if err != nil {
		return entity.ItemResult{}, err
	}

	tenant, err := s.tenant(ctx, tenantID)
	if err != nil {
		return entity.ItemResult{}, err
	}

	ctx = logger.WithTenantID(ctx, tenantID)

	item := s.safeProcess(ctx, tenant, 0, orderID, opts)
	s.metrics.BatchProcessed(modeSingle, 1)

	return item, nil
}

// InvoiceBatch invoices up to MaxBatchSize orders. Item failures are reported in
// the result; only invalid input fails the call.
func (s *Service) InvoiceBatch(
	ctx context.Context,
	tenantID uuid.UUID,
	orderIDs []uuid.UUID,
	opts entity.InvoiceOptions,
) (entity.BatchResult, error) {
	if len(orderIDs) == 0 {
		return entity.BatchResult{}, fmt.Errorf("%w: no orders given", entity.ErrBatchInput)
	}

	if len(orderIDs) > s.cfg.MaxBatchSize {
		return entity.BatchResult{}, fmt.Errorf("%w: %d orders exceed the batch limit of %d",
			entity.ErrBatchInput, len(orderIDs), s.cfg.MaxBatchSize)
	}

	err := opts.Validate()
	if err != nil {
		return entity.BatchResult{}, err
	}

	tenant, err := s.tenant(ctx, tenantID)
	if err != nil {
		return entity.BatchResult{}, err
	}

	ctx = logger.WithTenantID(ctx, tenantID)
	started := s.now()

	items := s.runBatch(ctx, tenant, orderIDs, opts)
	res := entity.NewBatchResult(items, s.now().Sub(started))

	s.batchCompleted(ctx, tenant.ID, modeBatch, res)

	return res, nil
}

// InvoiceScheduled invoices one page of completed, not invoiced orders in a date
// range. NextCursor continues the sweep.
func (s *Service) InvoiceScheduled(
	ctx context.Context,
	tenantID uuid.UUID,
	filter entity.ScheduledFilter,
	opts entity.InvoiceOptions,
) (entity.BatchResult, error) {
	f, err := filter.Normalize(s.scheduledPageSize())
	if err != nil {
		return entity.BatchResult{}, err
	}

	err = opts.Validate()
	if err != nil {
		return entity.BatchResult{}, err
	}

	tenant, err := s.tenant(ctx, tenantID)
	if err != nil {
		return entity.BatchResult{}, err
	}

	return s.invoiceScheduled(logger.WithTenantID(ctx, tenantID), tenant, f, opts)
}

func (s *Service) invoiceScheduled(
	ctx context.Context,
	tenant entity.TenantConfig,
	f entity.ScheduledFilter,
	opts entity.InvoiceOptions,
) (entity.BatchResult, error) {
	started := s.now()

	page, err := s.orders.Orders(ctx, tenant.ID, entity.OrderFilter{
		From:        f.From,
		To:          f.To,
		Status:      entity.OrderCompletionStatusCompleted,
		NotInvoiced: true,
		Limit:       f.Limit,
		Cursor:      f.Cursor,
	})
	if err != nil {
		return entity.BatchResult{}, fmt.Errorf("list orders: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(page.Orders))
	for _, o := range page.Orders {
		ids = append(ids, o.ID)
	}

	items := s.runBatch(ctx, tenant, ids, opts)
	res := entity.NewBatchResult(items, s.now().Sub(started))
	res.NextCursor = page.NextCursor

	// Skipped orders were never attempted, so the page has to be read again.
	if res.Skipped > 0 {
		res.NextCursor = f.Cursor
	}

	s.batchCompleted(ctx, tenant.ID, modeScheduled, res)

	return res, nil
}

// runBatch processes orders chunk by chunk. Within a chunk up to Workers items
// run concurrently; the pacer spaces chunks out. No chunk starts after the batch
// deadline and the items left are reported as skipped.
func (s *Service) runBatch(
	ctx context.Context,
	tenant entity.TenantConfig,
	orderIDs []uuid.UUID,
	opts entity.InvoiceOptions,
) []entity.ItemResult {
	items := make([]entity.ItemResult, len(orderIDs))
	deadline := s.now().Add(s.cfg.BatchDeadline)
	seen := make(map[uuid.UUID]int, len(orderIDs))

	chunk := max(s.cfg.ChunkSize, 1)
	workers := max(s.cfg.Workers, 1)

	for start := 0; start < len(orderIDs); start += chunk {
		end := min(start+chunk, len(orderIDs))

		if start > 0 {
			err := s.pacer.Wait(ctx)
			if err != nil {
				skip(items, orderIDs, start, "batch interrupted: "+err.Error())
				break
			}
		}

		if ctx.Err() != nil {
			skip(items, orderIDs, start, "batch interrupted: "+ctx.Err().Error())
			break
		}

		if s.cfg.BatchDeadline > 0 && !s.now().Before(deadline) {
			skip(items, orderIDs, start, "batch deadline exceeded")
			break
		}

		var g errgroup.Group

		g.SetLimit(workers)

		for i := start; i < end; i++ {
			id := orderIDs[i]

			if first, ok := seen[id]; ok {
				items[i] = entity.FailedItem(i, id,
					fmt.Errorf("%w: order %s repeats item %d of the request", entity.ErrDuplicate, id, first))

				continue
			}

			seen[id] = i

			g.Go(func() error {
				items[i] = s.safeProcess(ctx, tenant, i, id, opts)
				return nil
			})
		}

		_ = g.Wait()
	}

	return items
}

func skip(items []entity.ItemResult, orderIDs []uuid.UUID, from int, reason string) {
	for i := from; i < len(orderIDs); i++ {
		items[i] = entity.SkippedItem(i, orderIDs[i], reason)
	}
}

func (s *Service) safeProcess(
	ctx context.Context,
	tenant entity.TenantConfig,
	index int,
	orderID uuid.UUID,
	opts entity.InvoiceOptions,
) (item entity.ItemResult) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "panic while invoicing order",
				"order_id", orderID,
				"panic", r,
				"stack", string(debug.Stack()),
			)

			item = entity.FailedItem(index, orderID, fmt.Errorf("internal error: %v", r))
			s.metrics.InvoiceProcessed(outcomeFailed)
		}
	}()

	return s.processItem(ctx, tenant, index, orderID, opts)
}

func (s *Service) processItem(
	ctx context.Context,
	tenant entity.TenantConfig,
	index int,
	orderID uuid.UUID,
	opts entity.InvoiceOptions,
) entity.ItemResult {
	order, err := s.orders.Order(ctx, tenant.ID, orderID)
	if err != nil {
		return s.failed(index, orderID, fmt.Errorf("load order: %w", err))
	}

	if order.CompletionStatus != entity.OrderCompletionStatusCompleted {
		return s.failed(index, orderID, fmt.Errorf("%w: order %s is %s, only completed orders are invoiced",
			entity.ErrValidation, order.ID, order.CompletionStatus))
	}

	existing, err := s.repo.ActiveInvoiceByOrder(ctx, tenant.ID, order.ID)

	switch {
	case err == nil && existing.Status == entity.InvoiceStatusDraft:
		inv, err := s.submitDraft(ctx, tenant, existing, opts.AutoSend)
		return s.itemFor(index, inv, err)
	case err == nil && existing.Status == entity.InvoiceStatusError && existing.Retryable:
		inv, err := s.redrive(ctx, tenant, existing, opts.AutoSend)
		return s.itemFor(index, inv, err)
	case err == nil && existing.Status == entity.InvoiceStatusError:
		return s.rejected(index, existing)
	case err == nil:
		return s.duplicate(ctx, index, existing)
	case !errors.Is(err, entity.ErrNotFound):
		return s.failed(index, orderID, fmt.Errorf("find invoice of order: %w", err))
	}

	if order.Invoiced {
		s.metrics.InvoiceProcessed(outcomeDuplicate)
		return entity.FailedItem(index, orderID, fmt.Errorf("%w: order %s is already invoiced", entity.ErrDuplicate, order.ID))
	}

	inv, err := s.buildInvoice(ctx, tenant, order, opts)
	if err != nil {
		return s.failed(index, orderID, err)
	}

	inv, err = s.open(ctx, tenant, inv)
	if err != nil {
		return s.failed(index, orderID, err)
	}

	inv, err = s.certify(ctx, tenant, inv, opts.AutoSend)

	return s.itemFor(index, inv, err)
}

// submitDraft resumes a Draft left behind by an interrupted run.
func (s *Service) submitDraft(
	ctx context.Context,
	tenant entity.TenantConfig,
	inv entity.Invoice,
	autoSend bool,
) (entity.Invoice, error) {
	slog.InfoContext(ctx, "resuming draft invoice", "invoice_id", inv.ID, "order_id", inv.OrderID)

	pending, err := s.machine.Submit(ctx, inv)
	if err != nil {
		s.metrics.InvoiceProcessed(outcomeFailed)
		return inv, err
	}

	return s.certify(ctx, tenant, pending, autoSend)
}

// rejected reports an invoice the provider refused for good. It is sent again
// only through RetryInvoice.
func (s *Service) rejected(index int, inv entity.Invoice) entity.ItemResult {
	s.metrics.InvoiceProcessed(outcomeFailed)

	item := entity.FailedItem(index, inv.OrderID, fmt.Errorf("%w: invoice %s was rejected by the provider",
		entity.ErrGatewayPermanent, inv.ID))
	item.InvoiceID = inv.ID
	item.Status = inv.Status
	item.Total = inv.Total

	if inv.ErrorCode != "" {
		item.ErrorCode = inv.ErrorCode
	}

	if inv.ErrorDetail != "" {
		item.Message = inv.ErrorDetail
	}

	return item
}

// open validates inv and stores it as Pending. Under the reserve-early policy the
// folio is assigned here and a failure stops the item before anything is sent.
func (s *Service) open(ctx context.Context, tenant entity.TenantConfig, inv entity.Invoice) (entity.Invoice, error) {
	err := inv.Validate()
	if err != nil {
		return inv, err
	}

	if s.folios.Policy() == folio.PolicyReserveEarly {
		f, err := s.folios.Next(ctx, tenant.ID, inv.Series, tenant.Padding())
		if err != nil {
			return inv, err
		}

		inv.FolioNumber = f.Number
		inv.Folio = f.String()
	}

	return s.machine.Open(ctx, inv)
}

func (s *Service) buildInvoice(
	ctx context.Context,
	tenant entity.TenantConfig,
	order entity.Order,
	opts entity.InvoiceOptions,
) (entity.Invoice, error) {
	currency := firstNonEmpty(opts.Currency, order.Currency, tenant.DefaultCurrency)

	res, err := tax.Compute(order.Concepts(tenant.DefaultTaxes), decimal.Zero, tax.Precision(currency))
	if err != nil {
		return entity.Invoice{}, err
	}

	rate, err := s.exchangeRate(ctx, tenant, currency, opts)
	if err != nil {
		return entity.Invoice{}, err
	}

	issuer := tenant.Issuer
	if issuer.TaxRegime == "" {
		issuer.TaxRegime = tenant.TaxRegime
	}

	inv := entity.Invoice{
		ID:           uuid.Must(uuid.NewV4()),
		TenantID:     tenant.ID,
		OrderID:      order.ID,
		Series:       firstNonEmpty(opts.Series, tenant.SeriesFor(entity.DocumentTypeIncome)),
		DocumentType: entity.DocumentTypeIncome,
		Status:       entity.InvoiceStatusDraft,
		Currency:     currency,
		ExchangeRate: rate,
		Issuer:       issuer,
		Recipient:    order.Customer,
		Automatic:    opts.Automatic,
	}

	res.ApplyTo(&inv)
	inv.TotalInTenantCurrency = inv.Total.Mul(rate).Round(tax.Precision(tenant.DefaultCurrency))

	return inv, nil
}

func (s *Service) exchangeRate(
	ctx context.Context,
	tenant entity.TenantConfig,
	currency string,
	opts entity.InvoiceOptions,
) (decimal.Decimal, error) {
	if opts.ExchangeRate != nil {
		return opts.ExchangeRate.Round(ratePrecision), nil
	}

	if tenant.DefaultCurrency == "" || currency == tenant.DefaultCurrency {
		return decimal.NewFromInt(1), nil
	}

	rate, err := s.rates.Rate(ctx, currency, tenant.DefaultCurrency)
	if err != nil {
		return decimal.Zero, err
	}

	return rate.Round(ratePrecision), nil
}

func (s *Service) duplicate(ctx context.Context, index int, existing entity.Invoice) entity.ItemResult {
	err := s.audit.Record(ctx, entity.AuditEntry{
		TenantID:  existing.TenantID,
		InvoiceID: existing.ID,
		Event:     entity.AuditEventDuplicateRejected,
		Severity:  entity.SeverityWarning,
		Metadata: map[string]any{
			"order_id": existing.OrderID,
			"status":   existing.Status,
		},
	})
	if err != nil {
		slog.ErrorContext(ctx, "record duplicate rejection", "invoice_id", existing.ID, "error", err)
	}

	s.metrics.InvoiceProcessed(outcomeDuplicate)

	item := entity.FailedItem(index, existing.OrderID, fmt.Errorf("%w: order %s already has invoice %s in status %s",
		entity.ErrDuplicate, existing.OrderID, existing.ID, existing.Status))
	item.InvoiceID = existing.ID
	item.Status = existing.Status

	return item
}

func (s *Service) failed(index int, orderID uuid.UUID, err error) entity.ItemResult {
	s.metrics.InvoiceProcessed(outcomeFailed)
	return entity.FailedItem(index, orderID, err)
}

func (s *Service) batchCompleted(ctx context.Context, tenantID uuid.UUID, mode string, res entity.BatchResult) {
	s.metrics.BatchProcessed(mode, res.Processed)

	slog.InfoContext(ctx, "batch completed",
		"mode", mode,
		"processed", res.Processed,
		"succeeded", res.Succeeded,
		"failed", res.Failed,
		"skipped", res.Skipped,
		"elapsed_ms", res.Elapsed.Milliseconds(),
	)

	err := s.audit.Record(ctx, entity.AuditEntry{
		TenantID: tenantID,
		Event:    entity.AuditEventBatchCompleted,
		Severity: entity.SeverityInfo,
		Metadata: map[string]any{
			"mode":         mode,
			"processed":    res.Processed,
			"succeeded":    res.Succeeded,
			"failed":       res.Failed,
			"skipped":      res.Skipped,
			"total_amount": res.TotalAmount,
		},
	})
	if err != nil {
		slog.ErrorContext(ctx, "record batch completion", "error", err)
	}
}

func (s *Service) tenant(ctx context.Context, tenantID uuid.UUID) (entity.TenantConfig, error) {
	tenant, err := s.settings.TenantConfig(ctx, tenantID)
	if err != nil {
		return entity.TenantConfig{}, fmt.Errorf("get tenant config: %w", err)
	}

	return tenant, nil
}

func (s *Service) scheduledPageSize() int {
	if s.cfg.ScheduledPageSize <= 0 {
		return s.cfg.MaxBatchSize
	}

	return s.cfg.ScheduledPageSize
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
