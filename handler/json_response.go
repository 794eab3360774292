package handler

import (
	"encoding/json"
	"errors"
	"net/http"
)

// JSONResponse is the envelope of every API response.
type JSONResponse struct {
	Data  any          `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail describes a failed request.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

type jsonResponse struct {
	status int
	body   JSONResponse
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSONOption customizes a JSON response.
type JSONOption func(*jsonResponse)

// WithJSONStatus overrides the status code.
func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) { r.status = status }
}

// JSON wraps v as {"data": v} with status 200.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK, body: JSONResponse{Data: v}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// JSONError renders err as {"error": {...}}. HTTPError values keep their code
// and key; anything else becomes a 500 without leaking the message.
func JSONError(err error, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusInternalServerError}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		r.status = httpErr.Code
		r.body.Error = &ErrorDetail{Code: httpErr.Key, Message: httpErr.Message}
	} else {
		r.body.Error = &ErrorDetail{Code: ErrInternalServerError.Key, Message: http.StatusText(http.StatusInternalServerError)}
	}

	for _, opt := range opts {
		opt(r)
	}
	return r
}
