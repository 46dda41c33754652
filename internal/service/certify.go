package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/samandr77/microservices/fiscal/internal/entity"
	"github.com/samandr77/microservices/fiscal/internal/lifecycle"
)

const backoffJitterPercent = 20

var errCertificationPending = fmt.Errorf("%w: certification is still pending at the provider", entity.ErrGatewayTransient)

// certify submits a Pending invoice and records the outcome. Transient gateway
// errors are retried with backoff up to SubmitAttempts calls before the invoice
// moves to Error.
func (s *Service) certify(
	ctx context.Context,
	tenant entity.TenantConfig,
	inv entity.Invoice,
	autoSend bool,
) (entity.Invoice, error) {
	res, attempts, err := s.submit(ctx, tenant.Credentials, inv)
	if err != nil {
		if ctx.Err() != nil {
			err = fmt.Errorf("%w: %w", entity.ErrGatewayTransient, err)
		}

		failed, ferr := s.machine.Fail(context.WithoutCancel(ctx), inv, err, attempts)
		if ferr != nil {
			slog.ErrorContext(ctx, "record certification failure", "invoice_id", inv.ID, "error", ferr)
		}

		s.metrics.InvoiceProcessed(outcomeFailed)

		if ferr != nil {
			return inv, err
		}

		return failed, err
	}

	if !res.Success {
		slog.WarnContext(ctx, "certification pending",
			"invoice_id", inv.ID,
			"external_id", res.ExternalID,
			"status", res.Status,
		)

		s.metrics.InvoiceProcessed(outcomePending)

		return inv, errCertificationPending
	}

	return s.complete(ctx, tenant, inv, res, autoSend)
}

func (s *Service) submit(
	ctx context.Context,
	creds entity.PACCredentials,
	inv entity.Invoice,
) (entity.CertificationResult, int, error) {
	var (
		res      entity.CertificationResult
		attempts int
	)

	err := retry.Do(ctx, s.backoff(), func(ctx context.Context) error {
		attempts++

		r, err := s.gateway.Submit(ctx, creds, inv)
		res = r

		if errors.Is(err, entity.ErrGatewayTransient) {
			slog.WarnContext(ctx, "certification attempt failed",
				"invoice_id", inv.ID,
				"attempt", attempts,
				"error", err,
			)

			return retry.RetryableError(err)
		}

		return err
	})

	return res, attempts, err
}

func (s *Service) backoff() retry.Backoff {
	base := s.cfg.BackoffBase
	if base <= 0 {
		base = time.Millisecond
	}

	b := retry.NewExponential(base)
	b = retry.WithJitterPercent(backoffJitterPercent, b)

	if s.cfg.BackoffMax > 0 {
		b = retry.WithCappedDuration(s.cfg.BackoffMax, b)
	}

	return retry.WithMaxRetries(uint64(max(s.cfg.SubmitAttempts, 1)-1), b)
}

// complete stores a successful certification. When the invoice cannot be moved to
// Issued it stays Pending and the reconcile job records it later.
func (s *Service) complete(
	ctx context.Context,
	tenant entity.TenantConfig,
	inv entity.Invoice,
	res entity.CertificationResult,
	autoSend bool,
) (entity.Invoice, error) {
	keys, err := s.storage.SaveArtifacts(ctx, inv, res)
	if err != nil {
		slog.ErrorContext(ctx, "save artifacts", "invoice_id", inv.ID, "external_id", res.ExternalID, "error", err)
	}

	issued, err := s.machine.Issue(ctx, inv, lifecycle.IssueRequest{
		Result:     res,
		Artifacts:  keys,
		FolioWidth: tenant.Padding(),
	})
	if err != nil {
		slog.ErrorContext(ctx, "record certification",
			"invoice_id", inv.ID,
			"external_id", res.ExternalID,
			"error", err,
		)

		s.metrics.InvoiceProcessed(outcomePending)

		return inv, fmt.Errorf("record certification %s: %w", res.ExternalID, err)
	}

	if issued.DocumentType == entity.DocumentTypeIncome {
		err = s.orders.MarkInvoiced(ctx, issued.TenantID, issued.OrderID, true)
		if err != nil {
			slog.WarnContext(ctx, "mark order invoiced", "order_id", issued.OrderID, "error", err)
		}
	}

	s.metrics.InvoiceProcessed(outcomeIssued)

	if issued.DocumentType == entity.DocumentTypeCreditNote {
		err = s.refundRelated(ctx, issued)
		if err != nil {
			slog.ErrorContext(ctx, "refund related invoice",
				"invoice_id", issued.ID,
				"related_invoice_id", issued.RelatedInvoiceID,
				"error", err,
			)

			return issued, err
		}
	}

	if autoSend {
		s.notify(ctx, issued)
	}

	return issued, nil
}

// refundRelated marks the invoice reversed by an issued credit note Refunded.
func (s *Service) refundRelated(ctx context.Context, note entity.Invoice) error {
	inv, err := s.repo.Invoice(ctx, note.TenantID, note.RelatedInvoiceID)
	if err != nil {
		return fmt.Errorf("load refunded invoice %s: %w", note.RelatedInvoiceID, err)
	}

	_, err = s.machine.Refund(ctx, inv, note)
	if err != nil {
		return fmt.Errorf("mark invoice %s refunded: %w", inv.ID, err)
	}

	s.metrics.InvoiceProcessed(outcomeRefunded)

	return nil
}

func (s *Service) notify(ctx context.Context, inv entity.Invoice) {
	if s.notifier == nil {
		return
	}

	if inv.Recipient.Email == "" {
		slog.InfoContext(ctx, "recipient has no email, invoice not sent", "invoice_id", inv.ID)
		return
	}

	s.notifier.SendInvoiceNotification(ctx, entity.InvoiceNotification{
		TenantID:   inv.TenantID,
		InvoiceID:  inv.ID,
		Recipients: []string{inv.Recipient.Email},
		Subject:    fmt.Sprintf("%s %s-%s", inv.Issuer.Name, inv.Series, inv.Folio),
		Message: fmt.Sprintf("Invoice %s-%s for %s %s issued by %s.",
			inv.Series, inv.Folio, inv.Total.String(), inv.Currency, inv.Issuer.Name),
		Artifacts: inv.Certification.Artifacts,
	})
}

// redrive moves an Error invoice back to Pending and certifies it again.
func (s *Service) redrive(
	ctx context.Context,
	tenant entity.TenantConfig,
	inv entity.Invoice,
	autoSend bool,
) (entity.Invoice, error) {
	pending, err := s.machine.Retry(ctx, inv, s.cfg.MaxAttempts)
	if err != nil {
		s.metrics.InvoiceProcessed(outcomeFailed)
		return inv, err
	}

	return s.certify(ctx, tenant, pending, autoSend)
}

func (s *Service) itemFor(index int, inv entity.Invoice, err error) entity.ItemResult {
	if err == nil {
		return entity.IssuedItem(index, inv)
	}

	item := entity.FailedItem(index, inv.OrderID, err)
	item.InvoiceID = inv.ID
	item.Status = inv.Status
	item.Total = inv.Total

	return item
}
