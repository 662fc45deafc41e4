package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"sqlast/internal/sqlparse"
)

type errorResponse struct {
	Code       int                  `json:"code"`
	Message    string               `json:"message"`
	Kind       string               `json:"kind,omitempty"`
	Diagnostic *sqlparse.Diagnostic `json:"diagnostic,omitempty"`
}

// httpStatusFromParseError maps parse failures to HTTP status codes.
func httpStatusFromParseError(err error) int {
	switch {
	case errors.Is(err, sqlparse.ErrNotImplemented):
		return http.StatusNotImplemented
	default:
		return http.StatusUnprocessableEntity
	}
}

func writeParseError(w http.ResponseWriter, err error) {
	status := httpStatusFromParseError(err)
	resp := errorResponse{Code: status, Message: err.Error()}
	if perr, ok := sqlparse.AsError(err); ok {
		resp.Message = perr.Message
		resp.Kind = perr.Kind.String()
		resp.Diagnostic = &perr.Diagnostic
	}
	writeJSON(w, status, resp)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Code: status, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
