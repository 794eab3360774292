package binder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// MaxJSONSize caps request bodies read by JSON.
const MaxJSONSize = 64 << 10

// JSON decodes an application/json body into v. Unknown fields and trailing
// data are rejected. An empty body leaves v untouched.
func JSON() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if r.Body == nil || r.ContentLength == 0 {
			return nil
		}
		if ct := r.Header.Get("Content-Type"); ct != "" {
			mediaType, _, err := mime.ParseMediaType(ct)
			if err != nil || mediaType != "application/json" {
				return fmt.Errorf("%w: %q", ErrUnsupportedMediaType, ct)
			}
		}

		dec := json.NewDecoder(io.LimitReader(r.Body, MaxJSONSize))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return errors.Join(ErrFailedToParseJSON, err)
		}
		if dec.More() {
			return fmt.Errorf("%w: unexpected data after JSON object", ErrFailedToParseJSON)
		}
		return nil
	}
}
