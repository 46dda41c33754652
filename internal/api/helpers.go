package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid/v5"

	"github.com/samandr77/microservices/fiscal/internal/entity"
)

type ErrorResponse struct {
	Message     string `json:"message"`
	Description string `json:"description,omitempty"`
	Code        string `json:"code,omitempty"`
}

func SendJSONErr(ctx context.Context, w http.ResponseWriter, code int, originErr error, msgToSend string) {
	resp := ErrorResponse{Message: msgToSend}

	if originErr != nil {
		slog.ErrorContext(ctx, "api error", "error", originErr.Error())

		resp.Description = entity.ErrorMessage(originErr)
		resp.Code = entity.Classify(originErr)
	} else {
		slog.ErrorContext(ctx, "api error", "error", msgToSend)
	}

	SendJSON(ctx, w, code, resp)
}

func SendJSON(ctx context.Context, w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		code = http.StatusInternalServerError
		http.Error(w, http.StatusText(code), code)

		slog.ErrorContext(ctx, "encode response", "error", err)
	}
}

// sendServiceErr answers with the status matching the error class.
func sendServiceErr(ctx context.Context, w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, entity.ErrNotFound):
		SendJSONErr(ctx, w, http.StatusNotFound, err, "Not found")
	case errors.Is(err, entity.ErrValidation), errors.Is(err, entity.ErrBatchInput):
		SendJSONErr(ctx, w, http.StatusUnprocessableEntity, err, "Invalid request")
	case errors.Is(err, entity.ErrDuplicate):
		SendJSONErr(ctx, w, http.StatusConflict, err, "Already invoiced")
	case errors.Is(err, entity.ErrState), errors.Is(err, entity.ErrStateConflict),
		errors.Is(err, entity.ErrAttemptsExhausted):
		SendJSONErr(ctx, w, http.StatusConflict, err, "Operation not allowed in the current invoice state")
	case errors.Is(err, entity.ErrGatewayPermanent):
		SendJSONErr(ctx, w, http.StatusUnprocessableEntity, err, "Rejected by the certification provider")
	case errors.Is(err, entity.ErrGatewayTransient), errors.Is(err, entity.ErrAuth):
		SendJSONErr(ctx, w, http.StatusBadGateway, err, "Certification provider unavailable")
	default:
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, msg)
	}
}

var itemStatuses = map[string]int{
	entity.ErrorCodeValidation:       http.StatusUnprocessableEntity,
	entity.ErrorCodeDuplicate:        http.StatusConflict,
	entity.ErrorCodeState:            http.StatusConflict,
	entity.ErrorCodeNotFound:         http.StatusNotFound,
	entity.ErrorCodeGatewayPermanent: http.StatusUnprocessableEntity,
	entity.ErrorCodeGatewayTransient: http.StatusBadGateway,
	entity.ErrorCodeAuth:             http.StatusBadGateway,
}

// itemStatus is the response status of a single item result.
func itemStatus(item entity.ItemResult) int {
	if item.Success {
		return http.StatusCreated
	}

	if code, ok := itemStatuses[item.ErrorCode]; ok {
		return code
	}

	return http.StatusInternalServerError
}

func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.FromString(chi.URLParam(r, name))
}
