package handler

import (
	"errors"
	"net/http"
)

var ErrNilResponse = errors.New("handler.errors.nil_response")

// HTTPError carries a status code and a stable machine-readable key.
type HTTPError struct {
	Code    int
	Key     string
	Message string
}

func (e HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Key
}

// WithMessage returns a copy of e with a human-readable message.
func (e HTTPError) WithMessage(msg string) HTTPError {
	e.Message = msg
	return e
}

var (
	ErrBadRequest          = HTTPError{Code: http.StatusBadRequest, Key: "bad_request"}
	ErrUnauthorized        = HTTPError{Code: http.StatusUnauthorized, Key: "unauthorized"}
	ErrNotFound            = HTTPError{Code: http.StatusNotFound, Key: "not_found"}
	ErrConflict            = HTTPError{Code: http.StatusConflict, Key: "conflict"}
	ErrUnprocessableEntity = HTTPError{Code: http.StatusUnprocessableEntity, Key: "unprocessable_entity"}
	ErrInternalServerError = HTTPError{Code: http.StatusInternalServerError, Key: "internal_server_error"}
	ErrBadGateway          = HTTPError{Code: http.StatusBadGateway, Key: "bad_gateway"}
	ErrServiceUnavailable  = HTTPError{Code: http.StatusServiceUnavailable, Key: "service_unavailable"}
)
