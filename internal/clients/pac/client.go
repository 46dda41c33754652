// Package pac is the adapter to the certification provider (PAC) that signs and
// registers fiscal documents with the tax authority.
package pac

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"

	"github.com/samandr77/microservices/fiscal/internal/entity"
	"github.com/samandr77/microservices/fiscal/pkg/config"
	"github.com/samandr77/microservices/fiscal/pkg/transport"
)

// Provider statuses of a stamp.
const (
	StatusStamped   = "STAMPED"
	StatusPending   = "PENDING"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

const (
	opAuth   = "auth"
	opSubmit = "submit"
	opCancel = "cancel"
	opQuery  = "query"
)

// Observer receives call outcomes of the adapter.
type Observer interface {
	GatewayCall(operation, outcome string, elapsed time.Duration)
	BreakerStateChanged(to string)
}

type Client struct {
	cfg    config.PAC
	c      *http.Client // submit and cancel, never retried here
	rc     *http.Client // auth and status reads
	tokens *TokenCache
	cb     *gobreaker.CircuitBreaker
	obs    Observer
	now    func() time.Time
}

func NewClient(cfg config.PAC, obs Observer) *Client {
	rt := transport.NewRoundTripper(http.DefaultTransport, nil)

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryMax
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.HTTPClient.Transport = rt
	retryClient.Logger = nil
	retryClient.CheckRetry = retryablehttp.DefaultRetryPolicy
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	c := &Client{
		cfg: cfg,
		c: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: rt,
		},
		rc:     retryClient.StandardClient(),
		tokens: NewTokenCache(cfg.TokenRefreshBefore),
		obs:    obs,
		now:    time.Now,
	}

	c.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "pac",
		Timeout: cfg.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		IsSuccessful: func(err error) bool {
			return !errors.Is(err, entity.ErrGatewayTransient)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())

			if c.obs != nil {
				c.obs.BreakerStateChanged(to.String())
			}
		},
	})

	return c
}

type tokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	GrantType    string `json:"grant_type"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// Authenticate exchanges tenant credentials for an access token.
func (c *Client) Authenticate(ctx context.Context, creds entity.PACCredentials) (entity.AccessToken, error) {
	started := c.now()

	tok, err := c.authenticate(ctx, creds)
	c.observe(opAuth, err, started)

	return tok, err
}

func (c *Client) authenticate(ctx context.Context, creds entity.PACCredentials) (entity.AccessToken, error) {
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return entity.AccessToken{}, &entity.GatewayError{Kind: entity.ErrAuth, Message: "tenant has no gateway credentials"}
	}

	body, err := json.Marshal(tokenRequest{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		GrantType:    "client_credentials",
	})
	if err != nil {
		return entity.AccessToken{}, fmt.Errorf("marshal request: %w", err)
	}

	status, respBody, err := c.do(ctx, c.rc, http.MethodPost, "/v1/auth/token", "", "", body)
	if err != nil {
		return entity.AccessToken{}, err
	}

	if status != http.StatusOK {
		ge := classify(status, respBody)
		if status >= http.StatusBadRequest && status < http.StatusInternalServerError {
			ge.Kind = entity.ErrAuth
		}

		return entity.AccessToken{}, ge
	}

	var tr tokenResponse

	err = json.Unmarshal(respBody, &tr)
	if err != nil || tr.AccessToken == "" {
		return entity.AccessToken{}, &entity.GatewayError{
			Kind:    entity.ErrAuth,
			Message: "token response without access token",
			Raw:     respBody,
		}
	}

	return entity.AccessToken{
		Value:     tr.AccessToken,
		ExpiresAt: tokenExpiry(c.now(), tr.AccessToken, tr.ExpiresIn, c.cfg.DefaultTokenTTL),
	}, nil
}

type stampParty struct {
	TaxID      string `json:"taxId"`
	Name       string `json:"name"`
	TaxRegime  string `json:"taxRegime,omitempty"`
	PostalCode string `json:"postalCode"`
}

type stampTax struct {
	Code   string          `json:"code"`
	Kind   string          `json:"kind"`
	Rate   decimal.Decimal `json:"rate"`
	Base   decimal.Decimal `json:"base"`
	Amount decimal.Decimal `json:"amount"`
}

type stampConcept struct {
	ProductCode string          `json:"productCode"`
	Description string          `json:"description"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitValue   decimal.Decimal `json:"unitValue"`
	Discount    decimal.Decimal `json:"discount"`
	Amount      decimal.Decimal `json:"amount"`
	Taxes       []stampTax      `json:"taxes"`
}

type stampRequest struct {
	Reference        string          `json:"reference"`
	DocumentType     string          `json:"documentType"`
	Series           string          `json:"series"`
	Folio            string          `json:"folio,omitempty"`
	Currency         string          `json:"currency"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	Discount         decimal.Decimal `json:"discount"`
	TaxesTransferred decimal.Decimal `json:"taxesTransferred"`
	TaxesWithheld    decimal.Decimal `json:"taxesWithheld"`
	Total            decimal.Decimal `json:"total"`
	RelatedUUID      string          `json:"relatedUuid,omitempty"`
	Issuer           stampParty      `json:"issuer"`
	Recipient        stampParty      `json:"recipient"`
	Concepts         []stampConcept  `json:"concepts"`
}

type stampResponse struct {
	UUID                       string            `json:"uuid"`
	Status                     string            `json:"status"`
	XML                        string            `json:"xml"`
	PDF                        string            `json:"pdf"`
	VerificationCode           string            `json:"verificationCode"`
	IssuerSignature            string            `json:"issuerSignature"`
	AuthoritySignature         string            `json:"authoritySignature"`
	CertifiedAt                time.Time         `json:"certifiedAt"`
	CertificateNumber          string            `json:"certificateNumber"`
	AuthorityCertificateNumber string            `json:"authorityCertificateNumber"`
	StampVersion               string            `json:"stampVersion"`
	Extensions                 map[string]string `json:"extensions"`
	ErrorCode                  string            `json:"errorCode"`
	ErrorMessage               string            `json:"errorMessage"`
}

// Submit sends a document for certification. The invoice id is the idempotency
// key, so a repeated submit of the same invoice yields the same stamp.
func (c *Client) Submit(
	ctx context.Context,
	creds entity.PACCredentials,
	inv entity.Invoice,
) (entity.CertificationResult, error) {
	body, err := json.Marshal(stampRequestFromInvoice(inv))
	if err != nil {
		return entity.CertificationResult{}, fmt.Errorf("marshal request: %w", err)
	}

	return c.stampCall(ctx, opSubmit, creds, c.c, http.MethodPost, "/v1/stamps", inv.ID.String(), body)
}

type cancelRequest struct {
	Reason          string `json:"reason"`
	ReplacementUUID string `json:"replacementUuid,omitempty"`
}

// Cancel asks the authority to cancel a certified document.
func (c *Client) Cancel(
	ctx context.Context,
	creds entity.PACCredentials,
	externalID string,
	req entity.CancelRequest,
) (entity.CertificationResult, error) {
	body, err := json.Marshal(cancelRequest{
		Reason:          string(req.Reason),
		ReplacementUUID: req.ReplacementID,
	})
	if err != nil {
		return entity.CertificationResult{}, fmt.Errorf("marshal request: %w", err)
	}

	path := fmt.Sprintf("/v1/stamps/%s/cancel", url.PathEscape(externalID))

	return c.stampCall(ctx, opCancel, creds, c.c, http.MethodPost, path, externalID, body)
}

// QueryStatus reads a stamp by external id or by the reference sent on submit.
func (c *Client) QueryStatus(
	ctx context.Context,
	creds entity.PACCredentials,
	id string,
) (entity.CertificationResult, error) {
	path := "/v1/stamps/" + url.PathEscape(id)

	return c.stampCall(ctx, opQuery, creds, c.rc, http.MethodGet, path, "", nil)
}

func (c *Client) stampCall(
	ctx context.Context,
	op string,
	creds entity.PACCredentials,
	hc *http.Client,
	method, path, idempotencyKey string,
	body []byte,
) (entity.CertificationResult, error) {
	started := c.now()

	v, err := c.cb.Execute(func() (any, error) {
		return c.withAuth(ctx, creds, func(token string) (entity.CertificationResult, error) {
			status, respBody, err := c.do(ctx, hc, method, path, token, idempotencyKey, body)
			if err != nil {
				return entity.CertificationResult{}, err
			}

			if status != http.StatusOK && status != http.StatusCreated && status != http.StatusAccepted {
				ge := classify(status, respBody)
				if ge.Kind != entity.ErrAuth {
					slog.WarnContext(ctx, "certification gateway error",
						"operation", op,
						"status", status,
						"code", ge.Code,
						"payload", string(respBody),
					)
				}

				return entity.CertificationResult{}, ge
			}

			return c.decodeStamp(respBody)
		})
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		err = &entity.GatewayError{Kind: entity.ErrGatewayTransient, Message: err.Error()}
	}

	if err != nil {
		c.observe(op, err, started)
		return entity.CertificationResult{}, err
	}

	res, ok := v.(entity.CertificationResult)
	if !ok {
		return entity.CertificationResult{}, fmt.Errorf("unexpected result type %T", v)
	}

	if !res.Success && res.Status == StatusRejected {
		err = rejection(res)
		c.observe(op, err, started)

		return res, err
	}

	c.observe(op, nil, started)

	return res, nil
}

// withAuth runs call with a cached token. An authentication failure drops the
// token and repeats the call once with a new one.
func (c *Client) withAuth(
	ctx context.Context,
	creds entity.PACCredentials,
	call func(token string) (entity.CertificationResult, error),
) (entity.CertificationResult, error) {
	fetch := func(ctx context.Context) (entity.AccessToken, error) {
		return c.Authenticate(ctx, creds)
	}

	token, err := c.tokens.Get(ctx, creds.ClientID, fetch)
	if err != nil {
		return entity.CertificationResult{}, err
	}

	res, err := call(token)
	if !errors.Is(err, entity.ErrAuth) {
		return res, err
	}

	slog.InfoContext(ctx, "access token rejected, authenticating again", "client_id", creds.ClientID)

	c.tokens.Invalidate(creds.ClientID, token)

	token, err = c.tokens.Get(ctx, creds.ClientID, fetch)
	if err != nil {
		return entity.CertificationResult{}, err
	}

	return call(token)
}

func (c *Client) do(
	ctx context.Context,
	hc *http.Client,
	method, path, token, idempotencyKey string,
	body []byte,
) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, nil, ctx.Err()
		}

		return 0, nil, &entity.GatewayError{Kind: entity.ErrGatewayTransient, Message: fmt.Sprintf("do request: %s", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &entity.GatewayError{Kind: entity.ErrGatewayTransient, Message: fmt.Sprintf("read body: %s", err)}
	}

	return resp.StatusCode, respBody, nil
}

func (c *Client) decodeStamp(body []byte) (entity.CertificationResult, error) {
	var sr stampResponse

	err := json.Unmarshal(body, &sr)
	if err != nil {
		return entity.CertificationResult{}, &entity.GatewayError{
			Kind:    entity.ErrGatewayTransient,
			Message: fmt.Sprintf("decode response: %s", err),
			Raw:     body,
		}
	}

	xml, err := decodeArtifact(sr.XML)
	if err != nil {
		return entity.CertificationResult{}, &entity.GatewayError{Kind: entity.ErrGatewayTransient, Message: "decode xml: " + err.Error()}
	}

	pdf, err := decodeArtifact(sr.PDF)
	if err != nil {
		return entity.CertificationResult{}, &entity.GatewayError{Kind: entity.ErrGatewayTransient, Message: "decode pdf: " + err.Error()}
	}

	return entity.CertificationResult{
		Success:            sr.Status == StatusStamped || sr.Status == StatusCancelled,
		ExternalID:         sr.UUID,
		Status:             sr.Status,
		SignedDocument:     xml,
		Rendering:          pdf,
		VerificationCode:   sr.VerificationCode,
		IssuerSignature:    sr.IssuerSignature,
		AuthoritySignature: sr.AuthoritySignature,
		CertifiedAt:        sr.CertifiedAt,
		Metadata: entity.ProviderMetadata{
			Provider:                   c.cfg.Provider,
			CertificateNumber:          sr.CertificateNumber,
			AuthorityCertificateNumber: sr.AuthorityCertificateNumber,
			StampVersion:               sr.StampVersion,
			Extensions:                 sr.Extensions,
		},
		ErrorCode:    sr.ErrorCode,
		ErrorMessage: sr.ErrorMessage,
	}, nil
}

func (c *Client) observe(op string, err error, started time.Time) {
	if c.obs == nil {
		return
	}

	outcome := "ok"
	if err != nil {
		outcome = entity.Classify(err)
	}

	c.obs.GatewayCall(op, outcome, c.now().Sub(started))
}

func decodeArtifact(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}

	return base64.StdEncoding.DecodeString(s)
}

func stampRequestFromInvoice(inv entity.Invoice) stampRequest {
	concepts := make([]stampConcept, 0, len(inv.Concepts))

	for _, cn := range inv.Concepts {
		taxes := make([]stampTax, 0, len(cn.TaxLines))
		for _, t := range cn.TaxLines {
			taxes = append(taxes, stampTax{
				Code:   t.Code,
				Kind:   string(t.Kind),
				Rate:   t.Rate,
				Base:   t.Base,
				Amount: t.Amount,
			})
		}

		concepts = append(concepts, stampConcept{
			ProductCode: cn.ProductCode,
			Description: cn.Description,
			Unit:        cn.Unit,
			Quantity:    cn.Quantity,
			UnitValue:   cn.UnitValue,
			Discount:    cn.Discount,
			Amount:      cn.Amount,
			Taxes:       taxes,
		})
	}

	return stampRequest{
		Reference:        inv.ID.String(),
		DocumentType:     string(inv.DocumentType),
		Series:           inv.Series,
		Folio:            inv.Folio,
		Currency:         inv.Currency,
		ExchangeRate:     inv.ExchangeRate,
		Subtotal:         inv.Subtotal,
		Discount:         inv.Discount,
		TaxesTransferred: inv.TaxesTransferred,
		TaxesWithheld:    inv.TaxesWithheld,
		Total:            inv.Total,
		RelatedUUID:      inv.RelatedExternalID,
		Issuer:           partyToStamp(inv.Issuer),
		Recipient:        partyToStamp(inv.Recipient),
		Concepts:         concepts,
	}
}

func partyToStamp(p entity.Party) stampParty {
	return stampParty{
		TaxID:      p.TaxID,
		Name:       p.Name,
		TaxRegime:  p.TaxRegime,
		PostalCode: p.PostalCode,
	}
}
