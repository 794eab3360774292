package binder

import (
	"net/http"
	"reflect"

	"github.com/go-chi/chi/v5"
)

// Path fills fields tagged `path:"name"` from chi URL parameters.
func Path() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		rctx := chi.RouteContext(r.Context())
		if rctx == nil {
			return nil
		}
		values := make(map[string][]string, len(rctx.URLParams.Keys))
		for i, key := range rctx.URLParams.Keys {
			if i < len(rctx.URLParams.Values) {
				values[key] = []string{rctx.URLParams.Values[i]}
			}
		}
		return bindToStruct(v, "path", values, ErrFailedToParsePath)
	}
}

// hasTag reports whether t, a struct type, has any field tagged with tagName.
func hasTag(t reflect.Type, tagName string) bool {
	for i := range t.NumField() {
		if _, ok := t.Field(i).Tag.Lookup(tagName); ok {
			return true
		}
	}
	return false
}
