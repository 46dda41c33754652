package pac

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/samandr77/microservices/fiscal/internal/entity"
	"github.com/samandr77/microservices/fiscal/pkg/config"
)

var testCreds = entity.PACCredentials{ClientID: "tenant-client", ClientSecret: "secret"}

func newTestConfig(baseURL string) config.PAC {
	return config.PAC{
		BaseURL:            baseURL,
		Provider:           "test",
		Timeout:            2 * time.Second,
		TokenRefreshBefore: time.Minute,
		DefaultTokenTTL:    30 * time.Minute,
		RetryMax:           0,
		RetryWaitMin:       time.Millisecond,
		RetryWaitMax:       time.Millisecond,
		BreakerFailures:    2,
		BreakerOpenTimeout: time.Minute,
	}
}

type recordingObserver struct {
	mu       sync.Mutex
	calls    []string
	breakers []string
}

func (o *recordingObserver) GatewayCall(operation, outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.calls = append(o.calls, operation+":"+outcome)
}

func (o *recordingObserver) BreakerStateChanged(to string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.breakers = append(o.breakers, to)
}

func testInvoice() entity.Invoice {
	return entity.Invoice{
		ID:           uuid.Must(uuid.NewV4()),
		DocumentType: entity.DocumentTypeIncome,
		Series:       "A",
		Folio:        "000001",
		Currency:     "MXN",
		ExchangeRate: decimal.NewFromInt(1),
		Subtotal:     decimal.NewFromInt(1000),
		Total:        decimal.NewFromInt(1160),
		Issuer:       entity.Party{TaxID: "AAA010101AAA", Name: "Issuer", PostalCode: "01000"},
		Recipient:    entity.Party{TaxID: "XAXX010101000", Name: "Recipient", PostalCode: "02000"},
		Concepts: []entity.Concept{{
			ProductCode: entity.DefaultProductCode,
			Description: "Order 1",
			Unit:        entity.DefaultUnit,
			Quantity:    decimal.NewFromInt(1),
			UnitValue:   decimal.NewFromInt(1000),
			Amount:      decimal.NewFromInt(1000),
			TaxLines: []entity.TaxLine{{
				Code:   "002",
				Kind:   entity.TaxKindTransferred,
				Rate:   decimal.RequireFromString("0.16"),
				Base:   decimal.NewFromInt(1000),
				Amount: decimal.NewFromInt(160),
			}},
		}},
	}
}

func writeToken(w http.ResponseWriter, token string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(tokenResponse{AccessToken: token, ExpiresIn: 3600, TokenType: "bearer"})
}

func writeStamp(w http.ResponseWriter, status string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(stampResponse{
		UUID:               "5FB2822E-396D-4725-8521-CDC4BDD20CCF",
		Status:             status,
		XML:                base64.StdEncoding.EncodeToString([]byte("<cfdi/>")),
		PDF:                base64.StdEncoding.EncodeToString([]byte("%PDF")),
		VerificationCode:   "ABC123",
		AuthoritySignature: "sig",
		CertifiedAt:        time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		CertificateNumber:  "30001000000400002434",
		StampVersion:       "1.1",
	})
}

func TestClient_SubmitCachesToken(t *testing.T) {
	t.Parallel()

	var authCalls atomic.Int32

	inv := testInvoice()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/auth/token":
			authCalls.Add(1)
			writeToken(w, "t1")
		case "/v1/stamps":
			if r.Header.Get("Authorization") != "Bearer t1" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			if r.Header.Get("Idempotency-Key") != inv.ID.String() {
				w.WriteHeader(http.StatusBadRequest)
				return
			}

			var req stampRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Concepts) != 1 {
				w.WriteHeader(http.StatusBadRequest)
				return
			}

			writeStamp(w, StatusStamped)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	c := NewClient(newTestConfig(srv.URL), obs)

	res, err := c.Submit(context.Background(), testCreds, inv)
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, "5FB2822E-396D-4725-8521-CDC4BDD20CCF", res.ExternalID)
	require.Equal(t, []byte("<cfdi/>"), res.SignedDocument)
	require.Equal(t, []byte("%PDF"), res.Rendering)
	require.Equal(t, "test", res.Metadata.Provider)
	require.Equal(t, "1.1", res.Metadata.StampVersion)

	_, err = c.Submit(context.Background(), testCreds, inv)
	require.NoError(t, err)

	require.Equal(t, int32(1), authCalls.Load())
	require.Contains(t, obs.calls, "submit:ok")
	require.Contains(t, obs.calls, "auth:ok")
}

func TestClient_ReauthenticatesOnceOnUnauthorized(t *testing.T) {
	t.Parallel()

	var (
		authCalls  atomic.Int32
		stampCalls atomic.Int32
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/auth/token":
			n := authCalls.Add(1)
			if n == 1 {
				writeToken(w, "stale")
				return
			}

			writeToken(w, "fresh")
		case "/v1/stamps":
			stampCalls.Add(1)

			if r.Header.Get("Authorization") != "Bearer fresh" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			writeStamp(w, StatusStamped)
		}
	}))
	defer srv.Close()

	c := NewClient(newTestConfig(srv.URL), nil)

	res, err := c.Submit(context.Background(), testCreds, testInvoice())
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, int32(2), authCalls.Load())
	require.Equal(t, int32(2), stampCalls.Load())
}

func TestClient_PersistentUnauthorizedEscalates(t *testing.T) {
	t.Parallel()

	var authCalls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/auth/token" {
			authCalls.Add(1)
			writeToken(w, "t")

			return
		}

		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(newTestConfig(srv.URL), nil)

	_, err := c.Submit(context.Background(), testCreds, testInvoice())
	require.ErrorIs(t, err, entity.ErrAuth)
	require.Equal(t, int32(2), authCalls.Load())
}

func TestClient_ErrorClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    int
		body      string
		wantErr   error
		wantField string
	}{
		{
			name:    "server error is transient",
			status:  http.StatusBadGateway,
			wantErr: entity.ErrGatewayTransient,
		},
		{
			name:    "rate limit is transient",
			status:  http.StatusTooManyRequests,
			wantErr: entity.ErrGatewayTransient,
		},
		{
			name:      "provider code is mapped to field",
			status:    http.StatusUnprocessableEntity,
			body:      `{"code":"CFDI40145","message":"rfc no registrado"}`,
			wantErr:   entity.ErrGatewayPermanent,
			wantField: "recipient.taxId",
		},
		{
			name:      "provider field wins",
			status:    http.StatusBadRequest,
			body:      `{"code":"CFDI40145","message":"bad","field":"recipient.rfc"}`,
			wantErr:   entity.ErrGatewayPermanent,
			wantField: "recipient.rfc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path == "/v1/auth/token" {
					writeToken(w, "t")
					return
				}

				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			cfg := newTestConfig(srv.URL)
			cfg.BreakerFailures = 100

			_, err := NewClient(cfg, nil).Submit(context.Background(), testCreds, testInvoice())
			require.ErrorIs(t, err, tt.wantErr)

			var ge *entity.GatewayError
			require.True(t, errors.As(err, &ge))
			require.Equal(t, tt.status, ge.StatusCode)
			require.Equal(t, tt.wantField, ge.Field)
		})
	}
}

func TestClient_RejectedStampIsPermanent(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/auth/token" {
			writeToken(w, "t")
			return
		}

		_ = json.NewEncoder(w).Encode(stampResponse{Status: StatusRejected, ErrorCode: "CFDI40161"})
	}))
	defer srv.Close()

	res, err := NewClient(newTestConfig(srv.URL), nil).Submit(context.Background(), testCreds, testInvoice())
	require.ErrorIs(t, err, entity.ErrGatewayPermanent)
	require.False(t, res.Success)
	require.Equal(t, "concepts.productCode: product code is not in the catalog", entity.ErrorMessage(err))
}

func TestClient_BreakerOpensOnTransientFailures(t *testing.T) {
	t.Parallel()

	var stampCalls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/auth/token" {
			writeToken(w, "t")
			return
		}

		stampCalls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	c := NewClient(newTestConfig(srv.URL), obs)

	for range 2 {
		_, err := c.Submit(context.Background(), testCreds, testInvoice())
		require.ErrorIs(t, err, entity.ErrGatewayTransient)
	}

	_, err := c.Submit(context.Background(), testCreds, testInvoice())
	require.ErrorIs(t, err, entity.ErrGatewayTransient)
	require.Equal(t, int32(2), stampCalls.Load())
	require.Equal(t, []string{"open"}, obs.breakers)
}

func TestClient_PermanentFailuresDoNotTripBreaker(t *testing.T) {
	t.Parallel()

	var stampCalls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/auth/token" {
			writeToken(w, "t")
			return
		}

		stampCalls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(newTestConfig(srv.URL), nil)

	for range 4 {
		_, err := c.Submit(context.Background(), testCreds, testInvoice())
		require.ErrorIs(t, err, entity.ErrGatewayPermanent)
	}

	require.Equal(t, int32(4), stampCalls.Load())
}

func TestClient_CancelAndQuery(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/v1/auth/token":
			writeToken(w, "t")
		case r.URL.Path == "/v1/stamps/ext-1/cancel" && r.Method == http.MethodPost:
			var req cancelRequest
			_ = json.NewDecoder(r.Body).Decode(&req)

			if req.Reason != "01" || req.ReplacementUUID != "ext-2" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}

			writeStamp(w, StatusCancelled)
		case r.URL.Path == "/v1/stamps/ext-1" && r.Method == http.MethodGet:
			writeStamp(w, StatusPending)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(newTestConfig(srv.URL), nil)

	res, err := c.Cancel(context.Background(), testCreds, "ext-1", entity.CancelRequest{
		Reason:        entity.CancelReasonErrorsWithRelation,
		ReplacementID: "ext-2",
	})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, StatusCancelled, res.Status)

	res, err = c.QueryStatus(context.Background(), testCreds, "ext-1")
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Equal(t, StatusPending, res.Status)

	_, err = c.QueryStatus(context.Background(), testCreds, "missing")
	require.ErrorIs(t, err, entity.ErrGatewayPermanent)
}

func TestClient_MissingCredentials(t *testing.T) {
	t.Parallel()

	c := NewClient(newTestConfig("http://127.0.0.1:1"), nil)

	_, err := c.Submit(context.Background(), entity.PACCredentials{}, testInvoice())
	require.ErrorIs(t, err, entity.ErrAuth)
}
