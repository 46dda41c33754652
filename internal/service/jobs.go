package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/samandr77/microservices/fiscal/internal/entity"
	"github.com/samandr77/microservices/fiscal/pkg/logger"
)

const defaultLookbackDays = 1

// SweepScheduled invoices completed orders of every tenant with automatic
// invoicing, up to ScheduledMaxPages pages per tenant and run.
func (s *Service) SweepScheduled(ctx context.Context) error {
	tenantIDs, err := s.settings.AutoInvoicingTenants(ctx)
	if err != nil {
		return fmt.Errorf("get auto invoicing tenants: %w", err)
	}

	ctx = entity.CtxWithActor(ctx, entity.ActorSystem)
	to := s.now()

	for _, tenantID := range tenantIDs {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		tenant, err := s.tenant(ctx, tenantID)
		if err != nil {
			slog.ErrorContext(ctx, "sweep tenant", "tenant_id", tenantID, "error", err)
			continue
		}

		if !tenant.Schedule.Enabled {
			continue
		}

		s.sweepTenant(logger.WithTenantID(ctx, tenantID), tenant, to)
	}

	return nil
}

func (s *Service) sweepTenant(ctx context.Context, tenant entity.TenantConfig, to time.Time) {
	lookback := tenant.Schedule.LookbackDays
	if lookback <= 0 {
		lookback = defaultLookbackDays
	}

	limit := s.scheduledPageSize()
	if tenant.Schedule.PageSize > 0 && tenant.Schedule.PageSize < limit {
		limit = tenant.Schedule.PageSize
	}

	f := entity.ScheduledFilter{
		From:  to.AddDate(0, 0, -lookback),
		To:    to,
		Limit: limit,
	}

	opts := entity.InvoiceOptions{
		AutoSend:  tenant.Schedule.AutoSend,
		Automatic: true,
	}

	for page := 0; page < max(s.cfg.ScheduledMaxPages, 1); page++ {
		res, err := s.invoiceScheduled(ctx, tenant, f, opts)
		if err != nil {
			slog.ErrorContext(ctx, "scheduled invoicing", "page", page, "error", err)
			return
		}

		if res.NextCursor == "" || res.NextCursor == f.Cursor || ctx.Err() != nil {
			return
		}

		f.Cursor = res.NextCursor
	}
}

// RetryFailedInvoices drives retryable Error invoices that still have attempts left.
func (s *Service) RetryFailedInvoices(ctx context.Context) error {
	invoices, err := s.repo.RetryableInvoices(ctx, s.cfg.MaxAttempts, s.cfg.JobBatchLimit)
	if err != nil {
		return fmt.Errorf("get retryable invoices: %w", err)
	}

	ctx = entity.CtxWithActor(ctx, entity.ActorSystem)
	tenants := newTenantCache(s)

	for i, inv := range invoices {
		if i > 0 {
			err = s.pacer.Wait(ctx)
			if err != nil {
				return err
			}
		}

		tenant, err := tenants.get(ctx, inv.TenantID)
		if err != nil {
			slog.ErrorContext(ctx, "retry invoice", "invoice_id", inv.ID, "error", err)
			continue
		}

		tctx := logger.WithTenantID(ctx, inv.TenantID)

		_, err = s.redrive(tctx, tenant, inv, tenant.Schedule.AutoSend)
		if err != nil {
			slog.WarnContext(tctx, "retry invoice", "invoice_id", inv.ID, "error", err)
		}
	}

	return nil
}

// ReconcilePendingInvoices asks the provider about invoices left Pending longer
// than ReconcileAfter and records what it reports.
func (s *Service) ReconcilePendingInvoices(ctx context.Context) error {
	invoices, err := s.repo.StalePendingInvoices(ctx, s.now().Add(-s.cfg.ReconcileAfter), s.cfg.JobBatchLimit)
	if err != nil {
		return fmt.Errorf("get stale pending invoices: %w", err)
	}

	ctx = entity.CtxWithActor(ctx, entity.ActorSystem)
	tenants := newTenantCache(s)

	for _, inv := range invoices {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		tenant, err := tenants.get(ctx, inv.TenantID)
		if err != nil {
			slog.ErrorContext(ctx, "reconcile invoice", "invoice_id", inv.ID, "error", err)
			continue
		}

		tctx := logger.WithTenantID(ctx, inv.TenantID)

		err = s.reconcile(tctx, tenant, inv)
		if err != nil {
			slog.WarnContext(tctx, "reconcile invoice", "invoice_id", inv.ID, "error", err)
		}
	}

	return nil
}

func (s *Service) reconcile(ctx context.Context, tenant entity.TenantConfig, inv entity.Invoice) error {
	ref := inv.Certification.ExternalID
	if ref == "" {
		ref = inv.ID.String()
	}

	res, err := s.gateway.QueryStatus(ctx, tenant.Credentials, ref)

	var ge *entity.GatewayError

	switch {
	case errors.As(err, &ge) && ge.StatusCode == http.StatusNotFound:
		// The submission never reached the provider.
		cause := fmt.Errorf("%w: certification %s not found at the provider", entity.ErrGatewayTransient, ref)
		_, err = s.machine.Fail(ctx, inv, cause, 1)

		return err
	case errors.Is(err, entity.ErrGatewayPermanent):
		_, ferr := s.machine.Fail(ctx, inv, err, 1)
		return ferr
	case err != nil:
		return err
	case !res.Success:
		slog.InfoContext(ctx, "certification still pending", "invoice_id", inv.ID, "status", res.Status)
		return nil
	}

	_, err = s.complete(ctx, tenant, inv, res, tenant.Schedule.AutoSend && inv.DocumentType == entity.DocumentTypeIncome)

	return err
}

type tenantCache struct {
	s       *Service
	tenants map[uuid.UUID]entity.TenantConfig
}

func newTenantCache(s *Service) *tenantCache {
	return &tenantCache{
		s:       s,
		tenants: make(map[uuid.UUID]entity.TenantConfig),
	}
}

func (c *tenantCache) get(ctx context.Context, tenantID uuid.UUID) (entity.TenantConfig, error) {
	if t, ok := c.tenants[tenantID]; ok {
		return t, nil
	}

	t, err := c.s.tenant(ctx, tenantID)
	if err != nil {
		return entity.TenantConfig{}, err
	}

	c.tenants[tenantID] = t

	return t, nil
}
