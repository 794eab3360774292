// Package api exposes the billing core over HTTP.
//
// Routes:
//
//	GET  /healthz                         backend probes
//	GET  /v1/plans                        active catalog, ?current=<plan id> adds comparisons
//	POST /v1/billing/webhook              provider webhook, Paddle-Signature header
//	GET  /v1/billing                      plan, limits, usage and percentages
//	POST /v1/billing/check/{limitType}    limit decision, with the upgrade prompt on denial
//	POST /v1/billing/checkout             hosted checkout link
//	GET  /v1/billing/portal               customer portal link
//
// Routes under /v1/billing other than the webhook need an X-User-ID header
// holding the caller's uuid; it is set by the identity provider in front of
// the service.
package api
