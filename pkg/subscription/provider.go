package subscription

import (
	"context"
	"time"
)

// BillingProvider is the payment provider integration.
// Payment is handled by hosted checkouts and customer portals, so card data never
// reaches this service. Implementations validate webhook signatures.
type BillingProvider interface {
	// CreateCheckoutLink creates a hosted checkout session.
	CreateCheckoutLink(ctx context.Context, req CheckoutRequest) (*CheckoutLink, error)

	// GetCustomerPortalLink returns a temporary link to the customer portal
	// where users can update payment methods, cancel, or change plans.
	GetCustomerPortalLink(ctx context.Context, a *Assignment) (*PortalLink, error)

	// ParseWebhook validates and parses incoming webhook data.
	ParseWebhook(ctx context.Context, payload []byte, signature string) (*WebhookEvent, error)
}

// CheckoutRequest contains data needed to create a checkout session.
type CheckoutRequest struct {
	PlanID     string // Catalog plan id, echoed back in webhooks
	UserID     string // Internal user id, echoed back in webhooks
	Email      string // Optional billing email
	SuccessURL string // Redirect after successful payment
	CancelURL  string // Redirect if customer cancels
}

// CheckoutLink represents a hosted checkout session.
type CheckoutLink struct {
	URL       string    `json:"url"`
	SessionID string    `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PortalLink represents a customer portal session.
type PortalLink struct {
	URL              string    `json:"url"`
	CancelURL        string    `json:"cancel_url,omitempty"`
	UpdatePaymentURL string    `json:"update_payment_url,omitempty"`
	ExpiresAt        time.Time `json:"expires_at"`
}

// WebhookEvent is a provider event normalized for the service.
type WebhookEvent struct {
	Type           EventType      // Normalized event type
	ProviderEvent  string         // Original provider event name
	SubscriptionID string         // Provider's subscription ID
	CustomerID     string         // Provider's customer ID
	UserID         string         // Internal user id from custom data
	Status         Status         // Normalized subscription status
	PlanID         string         // Catalog plan id
	Raw            map[string]any // Full webhook data
}

// EventType represents the normalized billing event type.
type EventType string

const (
	EventSubscriptionCreated   EventType = "subscription_created"
	EventSubscriptionUpdated   EventType = "subscription_updated"
	EventSubscriptionCancelled EventType = "subscription_cancelled"
	EventSubscriptionResumed   EventType = "subscription_resumed"

	EventPaymentSucceeded EventType = "payment_succeeded"
	EventPaymentFailed    EventType = "payment_failed"
)
