// Package binder fills request structs from JSON bodies, query strings and
// chi path parameters.
//
//	type checkRequest struct {
//		LimitType string `path:"limitType"`
//		Current   string `query:"current"`
//	}
//
// Binders only touch fields carrying their own tag (`path`, `query`) or, for
// JSON, the body's keys. String-kinded named types such as limits.LimitType
// bind like plain strings.
package binder
