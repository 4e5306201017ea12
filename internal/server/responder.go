package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

type errorBody struct {
	Error     string `json:"error"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Error("failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.writeJSON(w, status, errorBody{Error: message, RequestID: RequestIDFromContext(r.Context())})
}

func (s *Server) writeFieldError(w http.ResponseWriter, r *http.Request, field, message string) {
	s.writeJSON(w, http.StatusBadRequest, errorBody{
		Error:     message,
		Field:     field,
		RequestID: RequestIDFromContext(r.Context()),
	})
}

// errEmptyBody is returned by decodeJSON for a request without a body
var errEmptyBody = errors.New("request body is empty")

// decodeJSON reads one JSON object from the request body into dst, rejecting unknown fields
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}
