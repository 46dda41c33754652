package transport

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/samandr77/microservices/fiscal/pkg/logger"
)

// RoundTripper logs outgoing requests, propagates X-Request-Id and sets static headers.
type RoundTripper struct {
	Transport http.RoundTripper
	Headers   map[string]string
}

func NewRoundTripper(transport http.RoundTripper, headers map[string]string) *RoundTripper {
	if transport == nil {
		transport = http.DefaultTransport
	}

	return &RoundTripper{
		Transport: transport,
		Headers:   headers,
	}
}

func (rt *RoundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	ctx := r.Context()

	reqID := logger.RequestIDFromCtx(ctx)
	if reqID != "" {
		r.Header.Set("X-Request-Id", reqID)
	}

	for k, v := range rt.Headers {
		if v != "" {
			r.Header.Set(k, v)
		}
	}

	slog.InfoContext(ctx, "outgoing request", "request", fmt.Sprintf("%s %s", r.Method, r.URL.Redacted()))

	started := time.Now()

	resp, err := rt.Transport.RoundTrip(r)
	if err != nil {
		return nil, fmt.Errorf("round trip: %w", err)
	}

	slog.InfoContext(ctx, "incoming response",
		"response", fmt.Sprintf("%s %s", r.Method, r.URL.Redacted()),
		"status", resp.StatusCode,
		"elapsed_ms", time.Since(started).Milliseconds(),
	)

	return resp, nil
}
