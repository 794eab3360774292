// Package billing assembles the per-request billing state of a user: the plan
// they are on, what that plan allows, and how much of it they have used.
//
// Nothing is cached. Every Resolve call recomputes usage from the record store,
// so the Info it returns is only valid for the request that asked for it.
//
// A user without a usable plan assignment is not an error: the resolver logs a
// warning and falls back to the catalog's free plan so the app stays usable.
// Usage failures are errors, and callers that gate writes on Info must fail
// closed when they see ErrUsageUnavailable.
package billing
