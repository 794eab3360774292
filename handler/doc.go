// Package handler turns typed request handlers into http.HandlerFunc values.
//
// A HandlerFunc receives a Context and a request struct filled by binders
// (see package binder) and returns a Response. JSON wraps payloads in a
// {"data": ...} envelope; JSONError and the default ErrorHandler produce
// {"error": {"code": ..., "message": ...}} with the status taken from
// HTTPError.
package handler
