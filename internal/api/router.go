package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/samandr77/microservices/fiscal/docs" // swagger docs
)

func NewRouter(h *Handler, mw *Middleware, metrics http.Handler) http.Handler {
	mux := chi.NewRouter()
	mux.Use(mw.Log, mw.Recover)

	mux.Route("/api", func(r chi.Router) {
		r.HandleFunc("/health", h.HealthHandler)
		r.Handle("/metrics", metrics)
		r.HandleFunc("/swagger/*", httpSwagger.Handler())

		r.Route("/v1/tenants/{tenantId}/invoices", func(r chi.Router) {
			r.Use(mw.APIKeyAuth, mw.Actor)

			r.Get("/", h.Invoices)
			r.Post("/orders/{orderId}", h.InvoiceOrder)
			r.Post("/batch", h.InvoiceBatch)
			r.Post("/scheduled", h.InvoiceScheduled)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Invoice)
				r.Get("/audit", h.AuditLog)
				r.Get("/artifacts", h.Artifacts)
				r.Post("/retry", h.RetryInvoice)
				r.Post("/cancel", h.CancelInvoice)
				r.Post("/refund", h.RefundInvoice)
			})
		})
	})

	return mux
}
