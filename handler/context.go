package handler

import (
	"context"
	"net/http"
	"time"
)

// Context is the request context handed to a HandlerFunc.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
}

// NewContext binds w and r into a Context.
func NewContext(w http.ResponseWriter, r *http.Request) Context {
	return &httpContext{w: w, r: r}
}

type httpContext struct {
	w http.ResponseWriter
	r *http.Request
}

func (c *httpContext) Request() *http.Request              { return c.r }
func (c *httpContext) ResponseWriter() http.ResponseWriter { return c.w }

func (c *httpContext) Deadline() (deadline time.Time, ok bool) { return c.r.Context().Deadline() }
func (c *httpContext) Done() <-chan struct{}                   { return c.r.Context().Done() }
func (c *httpContext) Err() error                              { return c.r.Context().Err() }
func (c *httpContext) Value(key any) any                       { return c.r.Context().Value(key) }
