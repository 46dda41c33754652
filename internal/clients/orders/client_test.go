package orders_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/samandr77/microservices/fiscal/internal/clients/orders"
	"github.com/samandr77/microservices/fiscal/internal/entity"
	"github.com/samandr77/microservices/fiscal/pkg/config"
)

func TestClient_Order(t *testing.T) {
	t.Parallel()

	tenantID := uuid.Must(uuid.NewV4())
	orderID := uuid.Must(uuid.NewV4())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		if r.URL.Path != "/api/internal/v1/tenants/"+tenantID.String()+"/orders/"+orderID.String() {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		_ = json.NewEncoder(w).Encode(orders.OrderResponse{
			ID:               orderID,
			TenantID:         tenantID,
			Number:           "SO-1",
			Amount:           decimal.NewFromInt(1000),
			Currency:         "MXN",
			CompletionStatus: "COMPLETED",
			Customer:         orders.Customer{TaxID: "XAXX010101000", Name: "Public", PostalCode: "01000"},
			Lines: []orders.Line{{
				Description: "Widget",
				Quantity:    decimal.NewFromInt(2),
				UnitValue:   decimal.NewFromInt(500),
			}},
		})
	}))
	defer srv.Close()

	c := orders.NewClient(config.Collaborator{URL: srv.URL, APIKey: "key"})

	o, err := c.Order(context.Background(), tenantID, orderID)
	require.NoError(t, err)
	require.Equal(t, orderID, o.ID)
	require.Equal(t, entity.OrderCompletionStatusCompleted, o.CompletionStatus)
	require.Equal(t, "XAXX010101000", o.Customer.TaxID)
	require.Len(t, o.Lines, 1)
	require.True(t, decimal.NewFromInt(500).Equal(o.Lines[0].UnitValue))

	_, err = c.Order(context.Background(), tenantID, uuid.Must(uuid.NewV4()))
	require.ErrorIs(t, err, entity.ErrNotFound)
}

func TestClient_OrdersQuery(t *testing.T) {
	t.Parallel()

	tenantID := uuid.Must(uuid.NewV4())
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("status") != "COMPLETED" || q.Get("invoiced") != "false" ||
			q.Get("from") != "2024-05-01T00:00:00Z" || q.Get("to") != "2024-05-02T00:00:00Z" ||
			q.Get("limit") != "20" || q.Get("cursor") != "c1" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		_ = json.NewEncoder(w).Encode(orders.ListResponse{
			Orders:     []orders.OrderResponse{{ID: uuid.Must(uuid.NewV4()), Number: "SO-2"}},
			NextCursor: "c2",
		})
	}))
	defer srv.Close()

	c := orders.NewClient(config.Collaborator{URL: srv.URL})

	page, err := c.Orders(context.Background(), tenantID, entity.OrderFilter{
		From:        from,
		To:          to,
		Status:      entity.OrderCompletionStatusCompleted,
		NotInvoiced: true,
		Limit:       20,
		Cursor:      "c1",
	})
	require.NoError(t, err)
	require.Len(t, page.Orders, 1)
	require.Equal(t, "c2", page.NextCursor)
}

func TestClient_MarkInvoiced(t *testing.T) {
	t.Parallel()

	var got orders.MarkInvoicedRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := orders.NewClient(config.Collaborator{URL: srv.URL})

	err := c.MarkInvoiced(context.Background(), uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()), true)
	require.NoError(t, err)
	require.True(t, got.Invoiced)
}

func TestClient_UnexpectedStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := orders.NewClient(config.Collaborator{URL: srv.URL})

	_, err := c.Order(context.Background(), uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()))
	require.Error(t, err)
	require.NotErrorIs(t, err, entity.ErrNotFound)
}
