package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/samandr77/microservices/fiscal/internal/entity"
	"github.com/samandr77/microservices/fiscal/pkg/config"
	"github.com/samandr77/microservices/fiscal/pkg/transport"
)

type Client struct {
	client *http.Client
	url    string
}

func NewClient(cfg config.Collaborator) *Client {
	const timeout = time.Second * 10

	return &Client{
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport.NewRoundTripper(http.DefaultTransport, map[string]string{"X-Api-Key": cfg.APIKey}),
		},
		url: cfg.URL,
	}
}

type Customer struct {
	TaxID      string `json:"taxId"`
	Name       string `json:"name"`
	TaxRegime  string `json:"taxRegime"`
	PostalCode string `json:"postalCode"`
	Email      string `json:"email"`
}

type Line struct {
	ProductCode string          `json:"productCode"`
	Description string          `json:"description"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitValue   decimal.Decimal `json:"unitValue"`
	Discount    decimal.Decimal `json:"discount"`
}

type OrderResponse struct {
	ID               uuid.UUID       `json:"id"`
	TenantID         uuid.UUID       `json:"tenantId"`
	Number           string          `json:"number"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	CompletionStatus string          `json:"completionStatus"`
	CompletionDate   time.Time       `json:"completionDate"`
	Invoiced         bool            `json:"invoiced"`
	Customer         Customer        `json:"customer"`
	Lines            []Line          `json:"lines"`
}

type ListResponse struct {
	Orders     []OrderResponse `json:"orders"`
	NextCursor string          `json:"nextCursor"`
}

func (c *Client) Order(ctx context.Context, tenantID, orderID uuid.UUID) (entity.Order, error) {
	u := fmt.Sprintf("%s/api/internal/v1/tenants/%s/orders/%s", c.url, tenantID, orderID)

	var data OrderResponse

	err := c.do(ctx, http.MethodGet, u, nil, &data)
	if err != nil {
		return entity.Order{}, fmt.Errorf("get order %s: %w", orderID, err)
	}

	return orderFromAPI(data), nil
}

func (c *Client) Orders(ctx context.Context, tenantID uuid.UUID, f entity.OrderFilter) (entity.OrderPage, error) {
	q := url.Values{}

	if f.Status != "" {
		q.Set("status", string(f.Status))
	}

	if f.NotInvoiced {
		q.Set("invoiced", "false")
	}

	if !f.From.IsZero() {
		q.Set("from", f.From.UTC().Format(time.RFC3339))
	}

	if !f.To.IsZero() {
		q.Set("to", f.To.UTC().Format(time.RFC3339))
	}

	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}

	if f.Cursor != "" {
		q.Set("cursor", f.Cursor)
	}

	u := fmt.Sprintf("%s/api/internal/v1/tenants/%s/orders?%s", c.url, tenantID, q.Encode())

	var data ListResponse

	err := c.do(ctx, http.MethodGet, u, nil, &data)
	if err != nil {
		return entity.OrderPage{}, fmt.Errorf("list orders: %w", err)
	}

	page := entity.OrderPage{
		Orders:     make([]entity.Order, 0, len(data.Orders)),
		NextCursor: data.NextCursor,
	}

	for _, o := range data.Orders {
		page.Orders = append(page.Orders, orderFromAPI(o))
	}

	return page, nil
}

type MarkInvoicedRequest struct {
	Invoiced bool `json:"invoiced"`
}

func (c *Client) MarkInvoiced(ctx context.Context, tenantID, orderID uuid.UUID, invoiced bool) error {
	u := fmt.Sprintf("%s/api/internal/v1/tenants/%s/orders/%s/invoiced", c.url, tenantID, orderID)

	body, err := json.Marshal(MarkInvoicedRequest{Invoiced: invoiced})
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}

	err = c.do(ctx, http.MethodPut, u, body, nil)
	if err != nil {
		return fmt.Errorf("mark order %s invoiced=%t: %w", orderID, invoiced, err)
	}

	return nil
}

func (c *Client) do(ctx context.Context, method, u string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return entity.ErrNotFound
	case resp.StatusCode == http.StatusNoContent:
		return nil
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("unexpected code %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}

	err = json.NewDecoder(resp.Body).Decode(out)
	if err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func orderFromAPI(o OrderResponse) entity.Order {
	lines := make([]entity.OrderLine, 0, len(o.Lines))

	for _, l := range o.Lines {
		lines = append(lines, entity.OrderLine{
			ProductCode: l.ProductCode,
			Description: l.Description,
			Unit:        l.Unit,
			Quantity:    l.Quantity,
			UnitValue:   l.UnitValue,
			Discount:    l.Discount,
		})
	}

	return entity.Order{
		ID:               o.ID,
		TenantID:         o.TenantID,
		Number:           o.Number,
		Amount:           o.Amount,
		Currency:         o.Currency,
		CompletionStatus: entity.OrderCompletionStatus(o.CompletionStatus),
		CompletionDate:   o.CompletionDate,
		Invoiced:         o.Invoiced,
		Customer: entity.Party{
			TaxID:      o.Customer.TaxID,
			Name:       o.Customer.Name,
			TaxRegime:  o.Customer.TaxRegime,
			PostalCode: o.Customer.PostalCode,
			Email:      o.Customer.Email,
		},
		Lines: lines,
	}
}
