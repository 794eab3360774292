package binder

import "net/http"

// Query fills fields tagged `query:"name"` from the URL query string.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return bindToStruct(v, "query", r.URL.Query(), ErrFailedToParseQuery)
	}
}
