// Package respond writes JSON responses and classified error bodies.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Hanahafi/redux-stack-ecommerce/internal/apperr"
)

type ErrorBody struct {
	Code    apperr.Code `json:"code"`
	Message string      `json:"message"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// Message writes {"message": msg}.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"message": msg})
}

// Error classifies err, logs it and writes the client-safe body.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	e := apperr.From(err)
	attrs := []any{"method", r.Method, "path", r.URL.Path, "code", e.Code, "status", e.HTTPStatus, "error", err}
	switch {
	case e.HTTPStatus >= http.StatusInternalServerError:
		slog.Error("Request failed", attrs...)
	case e.HTTPStatus == http.StatusUnauthorized:
		slog.Warn("Request rejected", attrs...)
	default:
		slog.Info("Request rejected", attrs...)
	}
	JSON(w, e.HTTPStatus, ErrorBody{Code: e.Code, Message: e.Message})
}
