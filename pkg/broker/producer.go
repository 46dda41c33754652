package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/segmentio/kafka-go"

	"github.com/samandr77/microservices/fiscal/internal/entity"
)

type Producer struct {
	l                 *slog.Logger
	w                 *kafka.Writer
	auditTopic        string
	notificationTopic string
}

func NewProducer(brokers []string, auditTopic, notificationTopic string) *Producer {
	l := slog.Default().WithGroup("kafka")

	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.LeastBytes{},
		Async:                  true,
		Logger:                 &infoLogger{l: l},
		ErrorLogger:            &errorLogger{l: l},
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		l:                 l,
		w:                 w,
		auditTopic:        auditTopic,
		notificationTopic: notificationTopic,
	}
}

type AuditEvent struct {
	ID        uuid.UUID      `json:"id"`
	TenantID  uuid.UUID      `json:"tenant_id"`
	InvoiceID uuid.UUID      `json:"invoice_id"`
	Actor     string         `json:"actor"`
	Event     string         `json:"event"`
	Severity  string         `json:"severity"`
	Metadata  map[string]any `json:"metadata"`
	CreatedAt time.Time      `json:"created_at"`
}

func (p *Producer) SendAuditEvent(ctx context.Context, e entity.AuditEntry) {
	p.send(ctx, p.auditTopic, e.InvoiceID.String(), AuditEvent{
		ID:        e.ID,
		TenantID:  e.TenantID,
		InvoiceID: e.InvoiceID,
		Actor:     e.Actor,
		Event:     e.Event,
		Severity:  string(e.Severity),
		Metadata:  e.Metadata,
		CreatedAt: e.CreatedAt,
	})
}

// NotificationEvent is the email event consumed by the notification service.
type NotificationEvent struct {
	Type        string            `json:"type"`
	Subject     string            `json:"subject"`
	Message     string            `json:"message"`
	Recipients  []string          `json:"recipients"`
	ContentType string            `json:"contentType"`
	Attachments map[string]string `json:"attachments,omitempty"`
}

func (p *Producer) SendInvoiceNotification(ctx context.Context, n entity.InvoiceNotification) {
	attachments := make(map[string]string)

	if n.Artifacts.SignedDocument != "" {
		attachments["xml"] = n.Artifacts.SignedDocument
	}

	if n.Artifacts.Rendering != "" {
		attachments["pdf"] = n.Artifacts.Rendering
	}

	p.send(ctx, p.notificationTopic, n.InvoiceID.String(), NotificationEvent{
		Type:        "email",
		Subject:     n.Subject,
		Message:     n.Message,
		Recipients:  n.Recipients,
		ContentType: "text/plain",
		Attachments: attachments,
	})
}

func (p *Producer) send(ctx context.Context, topic, key string, event any) {
	b, err := json.Marshal(event)
	if err != nil {
		p.l.ErrorContext(ctx, fmt.Sprintf("marshal event: %s", err), "topic", topic)
		return
	}

	err = p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: b,
		Topic: topic,
	})
	if err != nil {
		p.l.ErrorContext(ctx, fmt.Sprintf("write kafka message: %s", err), "topic", topic)
	}
}

func (p *Producer) Close() {
	err := p.w.Close()
	if err != nil {
		p.l.Error(fmt.Sprintf("close kafka writer: %s", err))
	}
}
