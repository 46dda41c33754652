package api

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gofrs/uuid/v5"

	"github.com/samandr77/microservices/fiscal/internal/entity"
	"github.com/samandr77/microservices/fiscal/pkg/logger"
)

const (
	defaultActor    = "api"
	requestIDHeader = "X-Request-Id"
)

var skipLogging = map[string]struct{}{
	"/api/health":  {},
	"/api/metrics": {},
}

type Middleware struct {
	apiKeyEnabled bool
	apiKey        string
}

func NewMiddleware(apiKeyEnabled bool, apiKey string) *Middleware {
	return &Middleware{
		apiKeyEnabled: apiKeyEnabled,
		apiKey:        apiKey,
	}
}

// Log tags the request context with a request id and logs the request once it
// has been served. Bodies are not logged.
func (m *Middleware) Log(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.Must(uuid.NewV4()).String()
		}

		ctx := logger.WithRequestID(r.Context(), requestID)
		w.Header().Set(requestIDHeader, requestID)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		started := time.Now()

		next.ServeHTTP(ww, r.WithContext(ctx))

		if _, ok := skipLogging[r.URL.Path]; ok {
			return
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}

		var route string
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			route = rctx.RoutePattern()
		}

		slog.Log(ctx, level, "request served",
			"method", r.Method,
			"route", route,
			"url", r.URL.Redacted(),
			"status", status,
			"bytes", ww.BytesWritten(),
			"elapsed", time.Since(started).String(),
		)
	})
}

// Recover answers 500 when a handler panics.
func (m *Middleware) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			if rec == http.ErrAbortHandler { //nolint:errorlint
				panic(rec)
			}

			ctx := r.Context()

			slog.ErrorContext(ctx, "recovered from panic", "error", rec, "stack", string(debug.Stack()))
			SendJSON(ctx, w, http.StatusInternalServerError, ErrorResponse{
				Message: "Internal error",
				Code:    entity.ErrorCodeInternal,
			})
		}()

		next.ServeHTTP(w, r)
	})
}

// APIKeyAuth verifies incoming API key.
func (m *Middleware) APIKeyAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if !m.apiKeyEnabled {
			next.ServeHTTP(w, r)
			return
		}

		apiKey := r.Header.Get("X-Api-Key")
		if apiKey == "" {
			SendJSONErr(ctx, w, http.StatusUnauthorized, entity.ErrUnauthenticated, "API key is missing")
			return
		}

		if apiKey != m.apiKey {
			SendJSONErr(ctx, w, http.StatusUnauthorized, entity.ErrUnauthenticated, "API key is invalid")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Actor stores the caller named in X-Actor for audit entries.
func (m *Middleware) Actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := strings.TrimSpace(r.Header.Get("X-Actor"))
		if actor == "" {
			actor = defaultActor
		}

		ctx := entity.CtxWithActor(r.Context(), actor)
		ctx = logger.WithActor(ctx, actor)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
