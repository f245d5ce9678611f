package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/transitnet/network-monitor/internal/logging"
	"github.com/transitnet/network-monitor/network"
)

// ErrorResponse is the JSON body written for any non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logging.LogError(s.logger, "request failed", err)
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

// statusFor maps a network package sentinel error to an HTTP status,
// per the error handling table.
func statusFor(err error) int {
	switch {
	case errors.Is(err, network.ErrUnknownStation),
		errors.Is(err, network.ErrUnknownLine),
		errors.Is(err, network.ErrUnknownRoute):
		return http.StatusNotFound
	case errors.Is(err, network.ErrAlreadyExists),
		errors.Is(err, network.ErrDuplicateRouteID):
		return http.StatusConflict
	case errors.Is(err, network.ErrNotAdjacent),
		errors.Is(err, network.ErrInvalidRoute),
		errors.Is(err, network.ErrUnknownStopReference):
		return http.StatusUnprocessableEntity
	case errors.Is(err, network.ErrBadEventKind):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
