package pac

import (
	"encoding/json"
	"net/http"

	"github.com/samandr77/microservices/fiscal/internal/entity"
)

type providerCode struct {
	field   string
	message string
}

// providerCodes maps rejection codes of the certification authority to the
// document field they refer to.
var providerCodes = map[string]providerCode{
	"CFDI40102": {field: "issuer.taxId", message: "issuer tax id is not registered"},
	"CFDI40108": {field: "total", message: "total does not match concept amounts"},
	"CFDI40124": {field: "currency", message: "currency is not in the catalog"},
	"CFDI40125": {field: "exchangeRate", message: "exchange rate is required for foreign currency"},
	"CFDI40138": {field: "issuer.taxRegime", message: "issuer tax regime does not match the tax id"},
	"CFDI40143": {field: "recipient.taxId", message: "recipient tax id is malformed"},
	"CFDI40145": {field: "recipient.taxId", message: "recipient tax id is not registered"},
	"CFDI40147": {field: "recipient.postalCode", message: "recipient postal code does not match the tax id"},
	"CFDI40157": {field: "recipient.taxRegime", message: "recipient tax regime is not valid for the tax id"},
	"CFDI40161": {field: "concepts.productCode", message: "product code is not in the catalog"},
	"CFDI40169": {field: "concepts.unit", message: "unit code is not in the catalog"},
	"CFDI40201": {field: "concepts.taxes", message: "tax rate is not valid for the tax code"},
	"CANC101":   {field: "externalId", message: "document is not known to the authority"},
	"CANC104":   {field: "reason", message: "cancellation reason is not valid"},
	"CANC202":   {field: "externalId", message: "document is already cancelled"},
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field"`
}

// classify turns a non 2xx response into a GatewayError.
func classify(status int, body []byte) *entity.GatewayError {
	var er errorResponse
	_ = json.Unmarshal(body, &er)

	ge := &entity.GatewayError{
		StatusCode: status,
		Code:       er.Code,
		Field:      er.Field,
		Message:    er.Message,
		Raw:        body,
	}

	switch {
	case status == http.StatusUnauthorized:
		ge.Kind = entity.ErrAuth
	case status == http.StatusRequestTimeout, status == http.StatusTooManyRequests, status >= http.StatusInternalServerError:
		ge.Kind = entity.ErrGatewayTransient
	default:
		ge.Kind = entity.ErrGatewayPermanent
	}

	if pc, ok := providerCodes[er.Code]; ok {
		if ge.Field == "" {
			ge.Field = pc.field
		}

		if ge.Message == "" {
			ge.Message = pc.message
		}
	}

	if ge.Message == "" {
		ge.Message = http.StatusText(status)
	}

	return ge
}

// rejection builds a permanent error from a result the provider answered with 2xx.
func rejection(res entity.CertificationResult) *entity.GatewayError {
	ge := &entity.GatewayError{
		Kind:    entity.ErrGatewayPermanent,
		Code:    res.ErrorCode,
		Message: res.ErrorMessage,
	}

	if pc, ok := providerCodes[res.ErrorCode]; ok {
		ge.Field = pc.field

		if ge.Message == "" {
			ge.Message = pc.message
		}
	}

	if ge.Message == "" {
		ge.Message = "document rejected with status " + res.Status
	}

	return ge
}
