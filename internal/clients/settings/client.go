package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
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
	const timeout = time.Second * 5

	return &Client{
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport.NewRoundTripper(http.DefaultTransport, map[string]string{"X-Api-Key": cfg.APIKey}),
		},
		url: cfg.URL,
	}
}

type TaxResponse struct {
	Code string          `json:"code"`
	Rate decimal.Decimal `json:"rate"`
	Kind string          `json:"kind"`
}

type ScheduleResponse struct {
	Enabled             bool `json:"enabled"`
	InvoiceOnCompletion bool `json:"invoiceOnCompletion"`
	LookbackDays        int  `json:"lookbackDays"`
	PageSize            int  `json:"pageSize"`
	AutoSend            bool `json:"autoSend"`
}

type FiscalSettingsResponse struct {
	TenantID         uuid.UUID        `json:"tenantId"`
	TaxID            string           `json:"taxId"`
	LegalName        string           `json:"legalName"`
	TaxRegime        string           `json:"taxRegime"`
	PostalCode       string           `json:"postalCode"`
	DefaultCurrency  string           `json:"defaultCurrency"`
	Series           string           `json:"series"`
	CreditNoteSeries string           `json:"creditNoteSeries"`
	FolioPadding     int              `json:"folioPadding"`
	DefaultTaxes     []TaxResponse    `json:"defaultTaxes"`
	PACClientID      string           `json:"pacClientId"`
	PACClientSecret  string           `json:"pacClientSecret"`
	Schedule         ScheduleResponse `json:"schedule"`
}

func (c *Client) TenantConfig(ctx context.Context, tenantID uuid.UUID) (entity.TenantConfig, error) {
	u := fmt.Sprintf("%s/api/internal/v1/tenants/%s/fiscal-settings", c.url, tenantID)

	var data FiscalSettingsResponse

	err := c.get(ctx, u, &data)
	if err != nil {
		return entity.TenantConfig{}, fmt.Errorf("get fiscal settings of tenant %s: %w", tenantID, err)
	}

	return tenantConfigFromAPI(tenantID, data), nil
}

type TenantsResponse struct {
	TenantIDs []uuid.UUID `json:"tenantIds"`
}

// AutoInvoicingTenants lists tenants with scheduled invoicing enabled.
func (c *Client) AutoInvoicingTenants(ctx context.Context) ([]uuid.UUID, error) {
	var data TenantsResponse

	err := c.get(ctx, c.url+"/api/internal/v1/fiscal-settings/auto-invoicing", &data)
	if err != nil {
		return nil, fmt.Errorf("list auto invoicing tenants: %w", err)
	}

	return data.TenantIDs, nil
}

func (c *Client) get(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return entity.ErrNotFound
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected code %d", resp.StatusCode)
	}

	err = json.NewDecoder(resp.Body).Decode(out)
	if err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func tenantConfigFromAPI(tenantID uuid.UUID, s FiscalSettingsResponse) entity.TenantConfig {
	taxes := make([]entity.TaxRule, 0, len(s.DefaultTaxes))
	for _, t := range s.DefaultTaxes {
		taxes = append(taxes, entity.TaxRule{Code: t.Code, Rate: t.Rate, Kind: entity.TaxKind(t.Kind)})
	}

	return entity.TenantConfig{
		ID: tenantID,
		Issuer: entity.Party{
			TaxID:      s.TaxID,
			Name:       s.LegalName,
			TaxRegime:  s.TaxRegime,
			PostalCode: s.PostalCode,
		},
		TaxRegime:        s.TaxRegime,
		DefaultCurrency:  s.DefaultCurrency,
		Series:           s.Series,
		CreditNoteSeries: s.CreditNoteSeries,
		FolioPadding:     s.FolioPadding,
		DefaultTaxes:     taxes,
		Credentials: entity.PACCredentials{
			ClientID:     s.PACClientID,
			ClientSecret: s.PACClientSecret,
		},
		Schedule: entity.Schedule{
			Enabled:             s.Schedule.Enabled,
			InvoiceOnCompletion: s.Schedule.InvoiceOnCompletion,
			LookbackDays:        s.Schedule.LookbackDays,
			PageSize:            s.Schedule.PageSize,
			AutoSend:            s.Schedule.AutoSend,
		},
	}
}
