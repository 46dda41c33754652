package events_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/samandr77/microservices/fiscal/internal/api/events"
	"github.com/samandr77/microservices/fiscal/internal/entity"
	"github.com/samandr77/microservices/fiscal/internal/mocks"
)

func TestEventHandler_OnOrderCompleted(t *testing.T) {
	t.Parallel()

	tenantID := uuid.Must(uuid.NewV4())
	orderID := uuid.Must(uuid.NewV4())
	value := fmt.Sprintf(`{"tenant_id":"%s","order_id":"%s","status":"COMPLETED"}`, tenantID, orderID)

	tests := []struct {
		name    string
		value   string
		setup   func(m *mocks.MockInvoicingService)
		wantErr error
	}{
		{
			name:  "invoices completed order",
			value: value,
			setup: func(m *mocks.MockInvoicingService) {
				m.EXPECT().OrderCompleted(gomock.Any(), tenantID, orderID).Return(nil)
			},
		},
		{
			name:  "status is optional",
			value: fmt.Sprintf(`{"tenant_id":"%s","order_id":"%s"}`, tenantID, orderID),
			setup: func(m *mocks.MockInvoicingService) {
				m.EXPECT().OrderCompleted(gomock.Any(), tenantID, orderID).Return(nil)
			},
		},
		{
			name:  "ignores other statuses",
			value: fmt.Sprintf(`{"tenant_id":"%s","order_id":"%s","status":"CANCELLED"}`, tenantID, orderID),
			setup: func(*mocks.MockInvoicingService) {},
		},
		{
			name:    "missing ids",
			value:   `{"status":"COMPLETED"}`,
			setup:   func(*mocks.MockInvoicingService) {},
			wantErr: entity.ErrValidation,
		},
		{
			name:  "service error",
			value: value,
			setup: func(m *mocks.MockInvoicingService) {
				m.EXPECT().OrderCompleted(gomock.Any(), tenantID, orderID).Return(entity.ErrStorage)
			},
			wantErr: entity.ErrStorage,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			m := mocks.NewMockInvoicingService(ctrl)
			tc.setup(m)

			h := events.NewEventHandler(m)

			err := h.OnOrderCompleted(context.Background(), kafka.Message{Value: []byte(tc.value)})
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestEventHandler_InvalidJSON(t *testing.T) {
	t.Parallel()

	h := events.NewEventHandler(mocks.NewMockInvoicingService(gomock.NewController(t)))

	err := h.OnOrderCompleted(context.Background(), kafka.Message{Value: []byte("{")})
	require.Error(t, err)
	require.False(t, errors.Is(err, entity.ErrValidation))
}
