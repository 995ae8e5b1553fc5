// Package handler exposes the REST API. Handlers decode input, call the
// services and translate service errors to status codes; they hold no
// business rules of their own.
package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shoppinh/jp-order-BE/internal/http/response"
	"github.com/shoppinh/jp-order-BE/internal/repository"
	"github.com/shoppinh/jp-order-BE/internal/security"
	"github.com/shoppinh/jp-order-BE/internal/service"
)

// decodeJSON reads a request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed request body", service.ErrValidation)
	}
	return nil
}

// idParam parses a positive integer URL parameter.
func idParam(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: invalid %s", service.ErrValidation, name)
	}
	return uint(id), nil
}

// listRequest decodes the query specification posted to a list endpoint:
// { skip?, limit?, sort?: {field: 1|-1}, search? }, where sort key order is
// tie-break priority. An empty body is a valid, unconstrained query. The raw
// body is returned so endpoints with extra filter fields can decode it again.
func listRequest(r *http.Request) (repository.Query, []byte, error) {
	var q repository.Query
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return q, nil, fmt.Errorf("%w: unreadable request body", service.ErrValidation)
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return q, nil, nil
	}
	if err := json.Unmarshal(body, &q); err != nil {
		return q, nil, fmt.Errorf("%w: malformed query specification", service.ErrValidation)
	}
	return q, body, nil
}

// writeError maps service and repository errors to the wire envelope. The
// fallback is a bare 500 so internal details never leak.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, repository.ErrInvalidQuery),
		errors.Is(err, service.ErrFileTooBig),
		errors.Is(err, service.ErrInvalidFileType):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAuthentication),
		errors.Is(err, security.ErrInvalidToken):
		response.Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrForbidden):
		response.Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		response.Error(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, service.ErrConflict):
		response.Error(w, http.StatusConflict, err.Error())
	default:
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
