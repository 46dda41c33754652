package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/segmentio/kafka-go"

	"github.com/samandr77/microservices/fiscal/internal/entity"
	"github.com/samandr77/microservices/fiscal/pkg/logger"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=event_handler.go -destination=../../mocks/events.go -package=mocks -typed

type InvoicingService interface {
	OrderCompleted(ctx context.Context, tenantID, orderID uuid.UUID) error
}

type EventHandler struct {
	s InvoicingService
}

func NewEventHandler(s InvoicingService) *EventHandler {
	return &EventHandler{s: s}
}

type OnOrderCompletedEvent struct {
	TenantID uuid.UUID `json:"tenant_id"`
	OrderID  uuid.UUID `json:"order_id"`
	Status   string    `json:"status"`
}

func (h *EventHandler) OnOrderCompleted(ctx context.Context, msg kafka.Message) error {
	var event OnOrderCompletedEvent

	err := json.Unmarshal(msg.Value, &event)
	if err != nil {
		return fmt.Errorf("unmarshal event: %w", err)
	}

	if event.TenantID.IsNil() || event.OrderID.IsNil() {
		return fmt.Errorf("%w: tenant_id and order_id are required", entity.ErrValidation)
	}

	if event.Status != "" && event.Status != string(entity.OrderCompletionStatusCompleted) {
		return nil
	}

	err = h.s.OrderCompleted(logger.WithTenantID(ctx, event.TenantID), event.TenantID, event.OrderID)
	if err != nil {
		return fmt.Errorf("invoice completed order %s: %w", event.OrderID, err)
	}

	return nil
}
