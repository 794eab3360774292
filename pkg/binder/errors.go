package binder

import "errors"

var (
	ErrUnsupportedMediaType = errors.New("binder.errors.unsupported_media_type")
	ErrFailedToParseJSON    = errors.New("binder.errors.invalid_json")
	ErrFailedToParseQuery   = errors.New("binder.errors.invalid_query")
	ErrFailedToParsePath    = errors.New("binder.errors.invalid_path")
)
