package handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ledgerly/ledgerly/handler"
	"github.com/ledgerly/ledgerly/pkg/binder"
)

type echoRequest struct {
	Name string `json:"name"`
}

func TestWrap(t *testing.T) {
	t.Parallel()

	echo := func(ctx handler.Context, req echoRequest) handler.Response {
		if req.Name == "" {
			return handler.JSONError(handler.ErrUnprocessableEntity.WithMessage("name is required"))
		}
		return handler.JSON(map[string]string{"hello": req.Name}, handler.WithJSONStatus(http.StatusCreated))
	}
	h := handler.Wrap(echo, handler.WithBinders[echoRequest](binder.JSON()))

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantBody string
	}{
		{
			name:     "ok",
			body:     `{"name":"ada"}`,
			wantCode: http.StatusCreated,
			wantBody: `{"data":{"hello":"ada"}}`,
		},
		{
			name:     "handler error",
			body:     `{}`,
			wantCode: http.StatusUnprocessableEntity,
			wantBody: `{"error":{"code":"unprocessable_entity","message":"name is required"}}`,
		},
		{
			name:     "bind error",
			body:     `{"name":`,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			r.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			h(rec, r)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestWrap_DecoratorsAndNilResponse(t *testing.T) {
	t.Parallel()

	var order []string
	trace := func(name string) handler.Decorator[struct{}] {
		return func(next handler.HandlerFunc[struct{}]) handler.HandlerFunc[struct{}] {
			return func(ctx handler.Context, req struct{}) handler.Response {
				order = append(order, name)
				return next(ctx, req)
			}
		}
	}
	h := handler.Wrap(func(handler.Context, struct{}) handler.Response { return nil },
		handler.WithDecorators(trace("outer"), trace("inner")),
	)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"outer", "inner"}, order)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"internal_server_error"}}`, rec.Body.String())
}

func TestJSONError_HidesInternalErrors(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	err := handler.JSONError(errors.New("pq: password authentication failed")).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
}
