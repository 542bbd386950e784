package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fadhlan/shoply/internal/apperr"
	catalogapp "github.com/fadhlan/shoply/internal/catalog/app"
	checkoutapp "github.com/fadhlan/shoply/internal/checkout/app"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusFromError maps the service failure taxonomy onto HTTP. Every
// classified failure keeps its class in the response code field so the
// caller can message the user.
func statusFromError(err error) (int, string) {
	switch {
	case errors.Is(err, apperr.ErrUnauthenticated):
		return http.StatusUnauthorized, "UNAUTHENTICATED"
	case errors.Is(err, apperr.ErrInvalidOrder):
		return http.StatusBadRequest, "INVALID_ORDER"
	case errors.Is(err, checkoutapp.ErrFormInvalid):
		return http.StatusBadRequest, "INVALID_ORDER"
	case errors.Is(err, checkoutapp.ErrSubmitInFlight):
		return http.StatusConflict, "SUBMIT_IN_FLIGHT"
	case errors.Is(err, catalogapp.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, catalogapp.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_ARGUMENT"
	case errors.Is(err, apperr.ErrRemoteWrite):
		return http.StatusBadGateway, "REMOTE_WRITE_FAILURE"
	case errors.Is(err, apperr.ErrStorage):
		return http.StatusInternalServerError, "STORAGE_FAILURE"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}

func writeError(w http.ResponseWriter, err error) {
	status, code := statusFromError(err)
	writeJSON(w, status, errorBody{Code: code, Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
