package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/samandr77/microservices/fiscal/internal/entity"
)

// @title Fiscal API
// @version 1.0
// @description Issues, certifies and tracks fiscal invoices for completed orders
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-Api-Key

//go:generate go run go.uber.org/mock/mockgen@latest -source=handler.go -destination=../mocks/handler.go -package=mocks -typed

type Service interface {
	InvoiceSingleOrder(
		ctx context.Context,
		tenantID, orderID uuid.UUID,
		opts entity.InvoiceOptions,
	) (entity.ItemResult, error)
	InvoiceBatch(
		ctx context.Context,
		tenantID uuid.UUID,
		orderIDs []uuid.UUID,
		opts entity.InvoiceOptions,
	) (entity.BatchResult, error)
	InvoiceScheduled(
		ctx context.Context,
		tenantID uuid.UUID,
		filter entity.ScheduledFilter,
		opts entity.InvoiceOptions,
	) (entity.BatchResult, error)
	Invoices(ctx context.Context, tenantID uuid.UUID, f entity.InvoiceFilter) ([]entity.Invoice, int, error)
	Invoice(ctx context.Context, tenantID, id uuid.UUID) (entity.Invoice, error)
	AuditLog(ctx context.Context, tenantID, id uuid.UUID) ([]entity.AuditEntry, error)
	RetryInvoice(ctx context.Context, tenantID, id uuid.UUID) (entity.ItemResult, error)
	CancelInvoice(ctx context.Context, tenantID, id uuid.UUID, req entity.CancelRequest) (entity.Invoice, error)
	RefundInvoice(ctx context.Context, tenantID, id uuid.UUID) (entity.Invoice, error)
	Artifacts(ctx context.Context, tenantID, id uuid.UUID) (entity.ArtifactLinks, error)
}

type Handler struct {
	s Service
}

func NewHandler(s Service) *Handler {
	return &Handler{s: s}
}

type InvoiceOptionsRequest struct {
	DocumentType string           `json:"documentType,omitempty"`
	Currency     string           `json:"currency,omitempty"`
	ExchangeRate *decimal.Decimal `json:"exchangeRate,omitempty"`
	Series       string           `json:"series,omitempty"`
	AutoSend     bool             `json:"autoSend"`
}

func (r InvoiceOptionsRequest) toEntity() entity.InvoiceOptions {
	return entity.InvoiceOptions{
		DocumentType: entity.DocumentType(r.DocumentType),
		Currency:     r.Currency,
		ExchangeRate: r.ExchangeRate,
		Series:       r.Series,
		AutoSend:     r.AutoSend,
	}
}

type InvoiceBatchRequest struct {
	OrderIDs []uuid.UUID `json:"orderIds"`
	InvoiceOptionsRequest
}

type InvoiceScheduledRequest struct {
	From   time.Time `json:"from"`
	To     time.Time `json:"to"`
	Limit  int       `json:"limit,omitempty"`
	Cursor string    `json:"cursor,omitempty"`
	InvoiceOptionsRequest
}

type CancelInvoiceRequest struct {
	Reason        string `json:"reason"`
	ReplacementID string `json:"replacementId,omitempty"`
}

type BatchResponse struct {
	Processed   int                 `json:"processed"`
	Succeeded   int                 `json:"succeeded"`
	Failed      int                 `json:"failed"`
	Skipped     int                 `json:"skipped"`
	TotalAmount string              `json:"totalAmount"`
	ElapsedMs   int64               `json:"elapsedMs"`
	NextCursor  string              `json:"nextCursor,omitempty"`
	Items       []entity.ItemResult `json:"items"`
}

type InvoiceResponse struct {
	ID                    uuid.UUID            `json:"id"`
	TenantID              uuid.UUID            `json:"tenantId"`
	OrderID               uuid.UUID            `json:"orderId"`
	RelatedInvoiceID      *uuid.UUID           `json:"relatedInvoiceId,omitempty"`
	Series                string               `json:"series"`
	Folio                 string               `json:"folio,omitempty"`
	DocumentType          string               `json:"documentType"`
	Status                string               `json:"status"`
	Currency              string               `json:"currency"`
	ExchangeRate          string               `json:"exchangeRate"`
	Subtotal              string               `json:"subtotal"`
	Discount              string               `json:"discount"`
	TaxesTransferred      string               `json:"taxesTransferred"`
	TaxesWithheld         string               `json:"taxesWithheld"`
	Total                 string               `json:"total"`
	TotalInTenantCurrency string               `json:"totalInTenantCurrency"`
	Issuer                entity.Party         `json:"issuer"`
	Recipient             entity.Party         `json:"recipient"`
	Concepts              []entity.Concept     `json:"concepts"`
	Certification         entity.Certification `json:"certification"`
	Automatic             bool                 `json:"automatic"`
	Attempts              int                  `json:"attempts"`
	Retryable             bool                 `json:"retryable"`
	ErrorCode             string               `json:"errorCode,omitempty"`
	ErrorDetail           string               `json:"errorDetail,omitempty"`
	CancelReason          string               `json:"cancelReason,omitempty"`
	CreatedBy             string               `json:"createdBy"`
	CreatedAt             time.Time            `json:"createdAt"`
	UpdatedAt             time.Time            `json:"updatedAt"`
	IssuedAt              *time.Time           `json:"issuedAt,omitempty"`
	CancelledAt           *time.Time           `json:"cancelledAt,omitempty"`
	RefundedAt            *time.Time           `json:"refundedAt,omitempty"`
}

type InvoicesResponse struct {
	Invoices   []InvoiceResponse `json:"invoices"`
	TotalCount int               `json:"totalCount"`
}

type AuditLogResponse struct {
	Entries []entity.AuditEntry `json:"entries"`
}

// InvoiceOrder issues the invoice of one completed order
// @Summary Invoice order
// @Description Builds, certifies and stores the income invoice of a completed order
// @Tags invoices
// @Accept json
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param orderId path string true "Order ID"
// @Param InvoiceOptionsRequest body InvoiceOptionsRequest false "Invoicing options"
// @Success 201 {object} entity.ItemResult
// @Failure 409 {object} entity.ItemResult "Order already invoiced"
// @Failure 422 {object} entity.ItemResult "Invalid order or rejected by the provider"
// @Failure 502 {object} entity.ItemResult "Provider unavailable"
// @Router /v1/tenants/{tenantId}/invoices/orders/{orderId} [post]
// @Security ApiKeyAuth
func (h *Handler) InvoiceOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenantID, err := uuidParam(r, "tenantId")
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid tenantId")
		return
	}

	orderID, err := uuidParam(r, "orderId")
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid orderId")
		return
	}

	var req InvoiceOptionsRequest

	err = decodeOptional(r, &req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid JSON")
		return
	}

	item, err := h.s.InvoiceSingleOrder(ctx, tenantID, orderID, req.toEntity())
	if err != nil {
		sendServiceErr(ctx, w, err, "Failed to invoice order")
		return
	}

	SendJSON(ctx, w, itemStatus(item), item)
}

// InvoiceBatch invoices a list of orders
// @Summary Invoice orders in batch
// @Description Invoices up to the configured number of orders; item failures are reported per order
// @Tags invoices
// @Accept json
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param InvoiceBatchRequest body InvoiceBatchRequest true "Orders and options"
// @Success 200 {object} BatchResponse
// @Failure 400 {object} ErrorResponse "Invalid JSON"
// @Failure 422 {object} ErrorResponse "Empty or oversized batch"
// @Router /v1/tenants/{tenantId}/invoices/batch [post]
// @Security ApiKeyAuth
func (h *Handler) InvoiceBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenantID, err := uuidParam(r, "tenantId")
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid tenantId")
		return
	}

	var req InvoiceBatchRequest

	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid JSON")
		return
	}

	res, err := h.s.InvoiceBatch(ctx, tenantID, req.OrderIDs, req.toEntity())
	if err != nil {
		sendServiceErr(ctx, w, err, "Failed to invoice orders")
		return
	}

	SendJSON(ctx, w, http.StatusOK, batchToAPI(res))
}

// InvoiceScheduled invoices one page of completed orders in a date range
// @Summary Invoice completed orders in a range
// @Description Invoices completed, not invoiced orders of the range; nextCursor continues the sweep
// @Tags invoices
// @Accept json
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param InvoiceScheduledRequest body InvoiceScheduledRequest true "Range and options"
// @Success 200 {object} BatchResponse
// @Failure 400 {object} ErrorResponse "Invalid JSON"
// @Failure 422 {object} ErrorResponse "Invalid range or limit"
// @Router /v1/tenants/{tenantId}/invoices/scheduled [post]
// @Security ApiKeyAuth
func (h *Handler) InvoiceScheduled(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenantID, err := uuidParam(r, "tenantId")
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid tenantId")
		return
	}

	var req InvoiceScheduledRequest

	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid JSON")
		return
	}

	filter := entity.ScheduledFilter{
		From:   req.From,
		To:     req.To,
		Limit:  req.Limit,
		Cursor: req.Cursor,
	}

	res, err := h.s.InvoiceScheduled(ctx, tenantID, filter, req.toEntity())
	if err != nil {
		sendServiceErr(ctx, w, err, "Failed to invoice orders")
		return
	}

	SendJSON(ctx, w, http.StatusOK, batchToAPI(res))
}

// Invoices lists invoices of a tenant
// @Summary List invoices
// @Tags invoices
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param status query string false "Invoice status"
// @Param from query string false "Created from (RFC3339)"
// @Param to query string false "Created to (RFC3339)"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} InvoicesResponse
// @Failure 400 {object} ErrorResponse "Invalid query"
// @Router /v1/tenants/{tenantId}/invoices [get]
// @Security ApiKeyAuth
func (h *Handler) Invoices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenantID, err := uuidParam(r, "tenantId")
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid tenantId")
		return
	}

	filter, err := parseInvoiceFilter(r.URL.Query())
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid query")
		return
	}

	invoices, totalCount, err := h.s.Invoices(ctx, tenantID, filter)
	if err != nil {
		sendServiceErr(ctx, w, err, "Failed to get invoices")
		return
	}

	resp := InvoicesResponse{
		Invoices:   make([]InvoiceResponse, 0, len(invoices)),
		TotalCount: totalCount,
	}

	for _, inv := range invoices {
		resp.Invoices = append(resp.Invoices, invoiceToAPI(inv))
	}

	SendJSON(ctx, w, http.StatusOK, resp)
}

func parseInvoiceFilter(q url.Values) (entity.InvoiceFilter, error) {
	var f entity.InvoiceFilter

	if s := q.Get("status"); s != "" {
		status := entity.InvoiceStatus(s)
		f.Status = &status
	}

	for _, p := range []struct {
		name string
		dst  **time.Time
	}{
		{name: "from", dst: &f.From},
		{name: "to", dst: &f.To},
	} {
		s := q.Get(p.name)
		if s == "" {
			continue
		}

		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return f, fmt.Errorf("%w: %s: %s", entity.ErrValidation, p.name, err)
		}

		*p.dst = &t
	}

	var err error

	if s := q.Get("page"); s != "" {
		f.Page, err = strconv.ParseUint(s, 10, 64)
		if err != nil {
			return f, fmt.Errorf("%w: page: %s", entity.ErrValidation, err)
		}
	}

	if s := q.Get("limit"); s != "" {
		f.Limit, err = strconv.ParseUint(s, 10, 64)
		if err != nil {
			return f, fmt.Errorf("%w: limit: %s", entity.ErrValidation, err)
		}
	}

	return f, nil
}

// Invoice returns one invoice
// @Summary Get invoice
// @Tags invoices
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param id path string true "Invoice ID"
// @Success 200 {object} InvoiceResponse
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Router /v1/tenants/{tenantId}/invoices/{id} [get]
// @Security ApiKeyAuth
func (h *Handler) Invoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenantID, id, ok := invoiceParams(w, r)
	if !ok {
		return
	}

	inv, err := h.s.Invoice(ctx, tenantID, id)
	if err != nil {
		sendServiceErr(ctx, w, err, "Failed to get invoice")
		return
	}

	SendJSON(ctx, w, http.StatusOK, invoiceToAPI(inv))
}

// AuditLog returns the audit history of an invoice
// @Summary Invoice audit history
// @Tags invoices
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param id path string true "Invoice ID"
// @Success 200 {object} AuditLogResponse
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Router /v1/tenants/{tenantId}/invoices/{id}/audit [get]
// @Security ApiKeyAuth
func (h *Handler) AuditLog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenantID, id, ok := invoiceParams(w, r)
	if !ok {
		return
	}

	entries, err := h.s.AuditLog(ctx, tenantID, id)
	if err != nil {
		sendServiceErr(ctx, w, err, "Failed to get audit log")
		return
	}

	if entries == nil {
		entries = []entity.AuditEntry{}
	}

	SendJSON(ctx, w, http.StatusOK, AuditLogResponse{Entries: entries})
}

// RetryInvoice certifies a failed invoice again
// @Summary Retry invoice
// @Tags invoices
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param id path string true "Invoice ID"
// @Success 201 {object} entity.ItemResult
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Failure 409 {object} ErrorResponse "Invoice is not in error or attempts are exhausted"
// @Failure 502 {object} entity.ItemResult "Provider unavailable"
// @Router /v1/tenants/{tenantId}/invoices/{id}/retry [post]
// @Security ApiKeyAuth
func (h *Handler) RetryInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenantID, id, ok := invoiceParams(w, r)
	if !ok {
		return
	}

	item, err := h.s.RetryInvoice(ctx, tenantID, id)
	if err != nil {
		sendServiceErr(ctx, w, err, "Failed to retry invoice")
		return
	}

	SendJSON(ctx, w, itemStatus(item), item)
}

// CancelInvoice cancels an issued invoice
// @Summary Cancel invoice
// @Tags invoices
// @Accept json
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param id path string true "Invoice ID"
// @Param CancelInvoiceRequest body CancelInvoiceRequest true "Cancellation reason"
// @Success 200 {object} InvoiceResponse
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Failure 409 {object} ErrorResponse "Invoice is not issued"
// @Failure 422 {object} ErrorResponse "Invalid reason"
// @Router /v1/tenants/{tenantId}/invoices/{id}/cancel [post]
// @Security ApiKeyAuth
func (h *Handler) CancelInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenantID, id, ok := invoiceParams(w, r)
	if !ok {
		return
	}

	var req CancelInvoiceRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid JSON")
		return
	}

	inv, err := h.s.CancelInvoice(ctx, tenantID, id, entity.CancelRequest{
		Reason:        entity.CancelReason(req.Reason),
		ReplacementID: req.ReplacementID,
	})
	if err != nil {
		sendServiceErr(ctx, w, err, "Failed to cancel invoice")
		return
	}

	SendJSON(ctx, w, http.StatusOK, invoiceToAPI(inv))
}

// RefundInvoice issues a credit note for an invoice
// @Summary Refund invoice
// @Description Issues a credit note that reverses the invoice and marks it refunded
// @Tags invoices
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param id path string true "Invoice ID"
// @Success 201 {object} InvoiceResponse "Credit note"
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Failure 409 {object} ErrorResponse "Invoice is not issued or a credit note is in flight"
// @Router /v1/tenants/{tenantId}/invoices/{id}/refund [post]
// @Security ApiKeyAuth
func (h *Handler) RefundInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenantID, id, ok := invoiceParams(w, r)
	if !ok {
		return
	}

	note, err := h.s.RefundInvoice(ctx, tenantID, id)
	if err != nil {
		sendServiceErr(ctx, w, err, "Failed to refund invoice")
		return
	}

	SendJSON(ctx, w, http.StatusCreated, invoiceToAPI(note))
}

// Artifacts returns download links of the certified documents
// @Summary Invoice artifacts
// @Tags invoices
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param id path string true "Invoice ID"
// @Success 200 {object} entity.ArtifactLinks
// @Failure 404 {object} ErrorResponse "Invoice or artifacts not found"
// @Router /v1/tenants/{tenantId}/invoices/{id}/artifacts [get]
// @Security ApiKeyAuth
func (h *Handler) Artifacts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenantID, id, ok := invoiceParams(w, r)
	if !ok {
		return
	}

	links, err := h.s.Artifacts(ctx, tenantID, id)
	if err != nil {
		sendServiceErr(ctx, w, err, "Failed to get artifacts")
		return
	}

	SendJSON(ctx, w, http.StatusOK, links)
}

// HealthHandler - returns service health status.
// @Summary Health check
// @Description Health check
// @Tags health
// @Accept text/plain
// @Produce text/plain
// @Success 200 {string} string "OK"
// @Router /health [get]
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	_, err := w.Write([]byte("OK\n"))
	if err != nil {
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Service is unhealthy")
		return
	}
}

func invoiceParams(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	ctx := r.Context()

	tenantID, err := uuidParam(r, "tenantId")
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid tenantId")
		return uuid.Nil, uuid.Nil, false
	}

	id, err := uuidParam(r, "id")
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid invoice id")
		return uuid.Nil, uuid.Nil, false
	}

	return tenantID, id, true
}

// decodeOptional decodes a JSON body that may be empty.
func decodeOptional(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}

	return err
}

func batchToAPI(res entity.BatchResult) BatchResponse {
	items := res.Items
	if items == nil {
		items = []entity.ItemResult{}
	}

	return BatchResponse{
		Processed:   res.Processed,
		Succeeded:   res.Succeeded,
		Failed:      res.Failed,
		Skipped:     res.Skipped,
		TotalAmount: res.TotalAmount.String(),
		ElapsedMs:   res.Elapsed.Milliseconds(),
		NextCursor:  res.NextCursor,
		Items:       items,
	}
}

func invoiceToAPI(inv entity.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		ID:                    inv.ID,
		TenantID:              inv.TenantID,
		OrderID:               inv.OrderID,
		Series:                inv.Series,
		Folio:                 inv.Folio,
		DocumentType:          string(inv.DocumentType),
		Status:                string(inv.Status),
		Currency:              inv.Currency,
		ExchangeRate:          inv.ExchangeRate.String(),
		Subtotal:              inv.Subtotal.String(),
		Discount:              inv.Discount.String(),
		TaxesTransferred:      inv.TaxesTransferred.String(),
		TaxesWithheld:         inv.TaxesWithheld.String(),
		Total:                 inv.Total.String(),
		TotalInTenantCurrency: inv.TotalInTenantCurrency.String(),
		Issuer:                inv.Issuer,
		Recipient:             inv.Recipient,
		Concepts:              inv.Concepts,
		Certification:         inv.Certification,
		Automatic:             inv.Automatic,
		Attempts:              inv.Attempts,
		Retryable:             inv.Retryable,
		ErrorCode:             inv.ErrorCode,
		ErrorDetail:           inv.ErrorDetail,
		CancelReason:          inv.CancelReason,
		CreatedBy:             inv.CreatedBy,
		CreatedAt:             inv.CreatedAt,
		UpdatedAt:             inv.UpdatedAt,
		IssuedAt:              timePtr(inv.IssuedAt),
		CancelledAt:           timePtr(inv.CancelledAt),
		RefundedAt:            timePtr(inv.RefundedAt),
	}

	if !inv.RelatedInvoiceID.IsNil() {
		id := inv.RelatedInvoiceID
		resp.RelatedInvoiceID = &id
	}

	if resp.Concepts == nil {
		resp.Concepts = []entity.Concept{}
	}

	return resp
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}

	return &t
}
