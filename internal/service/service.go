package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/samandr77/microservices/fiscal/internal/entity"
	"github.com/samandr77/microservices/fiscal/internal/folio"
	"github.com/samandr77/microservices/fiscal/internal/lifecycle"
	"github.com/samandr77/microservices/fiscal/pkg/config"
	"github.com/samandr77/microservices/fiscal/pkg/pacer"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=service.go -destination=../mocks/service.go -package=mocks -typed

type OrderService interface {
	Order(ctx context.Context, tenantID, orderID uuid.UUID) (entity.Order, error)
	Orders(ctx context.Context, tenantID uuid.UUID, f entity.OrderFilter) (entity.OrderPage, error)
	MarkInvoiced(ctx context.Context, tenantID, orderID uuid.UUID, invoiced bool) error
}

type SettingsService interface {
	TenantConfig(ctx context.Context, tenantID uuid.UUID) (entity.TenantConfig, error)
	AutoInvoicingTenants(ctx context.Context) ([]uuid.UUID, error)
}

type Gateway interface {
	Submit(ctx context.Context, creds entity.PACCredentials, inv entity.Invoice) (entity.CertificationResult, error)
	Cancel(
		ctx context.Context,
		creds entity.PACCredentials,
		externalID string,
		req entity.CancelRequest,
	) (entity.CertificationResult, error)
	QueryStatus(ctx context.Context, creds entity.PACCredentials, id string) (entity.CertificationResult, error)
}

type ArtifactStorage interface {
	SaveArtifacts(ctx context.Context, inv entity.Invoice, res entity.CertificationResult) (entity.ArtifactKeys, error)
	ArtifactURL(ctx context.Context, key string) (string, error)
}

type Notifier interface {
	SendInvoiceNotification(ctx context.Context, n entity.InvoiceNotification)
}

type RateProvider interface {
	Rate(ctx context.Context, from, to string) (decimal.Decimal, error)
}

type Deps struct {
	Repo     Repository
	Machine  *lifecycle.Machine
	Folios   *folio.Allocator
	Audit    Auditor
	Orders   OrderService
	Settings SettingsService
	Gateway  Gateway
	Storage  ArtifactStorage
	Notifier Notifier
	Rates    RateProvider
	Metrics  Metrics
	Pacer    pacer.Pacer
}

type Service struct {
	repo     Repository
	machine  *lifecycle.Machine
	folios   *folio.Allocator
	audit    Auditor
	orders   OrderService
	settings SettingsService
	gateway  Gateway
	storage  ArtifactStorage
	notifier Notifier
	rates    RateProvider
	metrics  Metrics
	pacer    pacer.Pacer
	cfg      config.Invoicing
	now      func() time.Time
}

func New(cfg config.Invoicing, d Deps) *Service {
	p := d.Pacer
	if p == nil {
		p = pacer.Nop{}
	}

	m := d.Metrics
	if m == nil {
		m = nopMetrics{}
	}

	return &Service{
		repo:     d.Repo,
		machine:  d.Machine,
		folios:   d.Folios,
		audit:    d.Audit,
		orders:   d.Orders,
		settings: d.Settings,
		gateway:  d.Gateway,
		storage:  d.Storage,
		notifier: d.Notifier,
		rates:    d.Rates,
		metrics:  m,
		pacer:    p,
		cfg:      cfg,
		now:      time.Now,
	}
}
