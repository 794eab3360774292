package subscription

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	paddle "github.com/PaddleHQ/paddle-go-sdk/v4"
)

// PaddleConfig holds configuration for the Paddle billing provider.
type PaddleConfig struct {
	APIKey        string `env:"PADDLE_API_KEY"`
	WebhookSecret string `env:"PADDLE_WEBHOOK_SECRET"`
	Environment   string `env:"PADDLE_ENVIRONMENT" envDefault:"production"`
	// PriceIDs maps catalog plan ids to Paddle price ids, e.g. "plus:pri_01h...,premium:pri_01j...".
	PriceIDs map[string]string `env:"PADDLE_PRICE_IDS" envKeyValSeparator:":"`
}

// PaddleProvider implements BillingProvider for Paddle.
type PaddleProvider struct {
	client   *paddle.SDK
	verifier *paddle.WebhookVerifier
	config   PaddleConfig
}

// NewPaddleProvider creates a new Paddle billing provider.
func NewPaddleProvider(config PaddleConfig) (*PaddleProvider, error) {
	if config.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if config.WebhookSecret == "" {
		return nil, ErrMissingWebhookSecret
	}

	var client *paddle.SDK
	var err error

	switch strings.ToLower(config.Environment) {
	case "sandbox":
		client, err = paddle.NewSandbox(config.APIKey)
	case "production", "":
		client, err = paddle.New(config.APIKey)
	default:
		return nil, errors.Join(ErrInvalidProviderEnvironment, fmt.Errorf("got %q", config.Environment))
	}
	if err != nil {
		return nil, errors.Join(ErrProviderError, err)
	}

	return &PaddleProvider{
		client:   client,
		verifier: paddle.NewWebhookVerifier(config.WebhookSecret),
		config:   config,
	}, nil
}

// CreateCheckoutLink creates a Paddle transaction and returns its hosted checkout URL.
// The plan and user ids travel in custom data so webhooks can be matched back.
func (p *PaddleProvider) CreateCheckoutLink(ctx context.Context, req CheckoutRequest) (*CheckoutLink, error) {
	priceID := p.priceID(req.PlanID)
	if priceID == "" {
		return nil, ErrMissingPriceID
	}
	if req.UserID == "" {
		return nil, ErrInvalidUserID
	}

	item := paddle.NewCreateTransactionItemsTransactionItemFromCatalog(&paddle.TransactionItemFromCatalog{
		PriceID:  priceID,
		Quantity: 1,
	})

	transactionReq := &paddle.CreateTransactionRequest{
		Items: []paddle.CreateTransactionItems{*item},
		CustomData: paddle.CustomData{
			"user_id": req.UserID,
			"plan_id": req.PlanID,
		},
	}
	if req.Email != "" {
		transactionReq.CustomData["email"] = req.Email
	}
	if req.SuccessURL != "" {
		transactionReq.Checkout = &paddle.TransactionCheckout{
			URL: paddle.PtrTo(req.SuccessURL),
		}
	}

	transaction, err := p.client.TransactionsClient.CreateTransaction(ctx, transactionReq)
	if err != nil {
		return nil, errors.Join(ErrProviderError, err)
	}
	if transaction.Checkout == nil || transaction.Checkout.URL == nil {
		return nil, ErrNoCheckoutURL
	}

	return &CheckoutLink{
		URL:       *transaction.Checkout.URL,
		SessionID: transaction.ID,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}, nil
}

// GetCustomerPortalLink returns a link to Paddle's customer portal.
func (p *PaddleProvider) GetCustomerPortalLink(ctx context.Context, a *Assignment) (*PortalLink, error) {
	if a == nil || a.ProviderCustomerID == "" {
		return nil, ErrMissingProviderCustomerID
	}

	req := &paddle.CreateCustomerPortalSessionRequest{
		CustomerID: a.ProviderCustomerID,
	}
	if a.ProviderSubID != "" {
		req.SubscriptionIDs = []string{a.ProviderSubID}
	}

	session, err := p.client.CustomerPortalSessionsClient.CreateCustomerPortalSession(ctx, req)
	if err != nil {
		return nil, errors.Join(ErrProviderError, err)
	}

	link := &PortalLink{
		URL:       session.URLs.General.Overview,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
	for _, sub := range session.URLs.Subscriptions {
		if sub.ID == a.ProviderSubID {
			link.CancelURL = sub.CancelSubscription
			link.UpdatePaymentURL = sub.UpdateSubscriptionPaymentMethod
			break
		}
	}
	if link.URL == "" {
		return nil, ErrNoPortalURL
	}

	return link, nil
}

// ParseWebhook verifies the Paddle-Signature header and normalizes the payload.
func (p *PaddleProvider) ParseWebhook(ctx context.Context, payload []byte, signature string) (*WebhookEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "/webhook", bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Join(ErrWebhookVerificationFailed, err)
	}
	req.Header.Set("Paddle-Signature", signature)

	valid, err := p.verifier.Verify(req)
	if err != nil {
		return nil, errors.Join(ErrWebhookVerificationFailed, err)
	}
	if !valid {
		return nil, ErrWebhookVerificationFailed
	}

	return parsePaddleEvent(payload, p.config.PriceIDs)
}

func (p *PaddleProvider) priceID(planID string) string {
	if id, ok := p.config.PriceIDs[planID]; ok {
		return id
	}
	return planID
}

// parsePaddleEvent extracts the fields the service needs from a verified payload.
// prices maps plan ids to price ids and is used to recover the plan when custom
// data does not carry it.
func parsePaddleEvent(payload []byte, prices map[string]string) (*WebhookEvent, error) {
	var raw struct {
		EventID   string         `json:"event_id"`
		EventType string         `json:"event_type"`
		Data      map[string]any `json:"data"`
	}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, errors.Join(ErrInvalidWebhookPayload, err)
	}

	event := &WebhookEvent{
		Type:          mapPaddleEventType(raw.EventType),
		ProviderEvent: raw.EventType,
		Raw:           raw.Data,
	}

	data := raw.Data
	switch {
	case strings.HasPrefix(raw.EventType, "subscription."):
		event.SubscriptionID, _ = data["id"].(string)
	case strings.HasPrefix(raw.EventType, "transaction."):
		event.SubscriptionID, _ = data["subscription_id"].(string)
	}

	if status, ok := data["status"].(string); ok {
		event.Status = mapPaddleStatus(status)
	}
	event.CustomerID, _ = data["customer_id"].(string)

	if custom, ok := data["custom_data"].(map[string]any); ok {
		event.UserID, _ = custom["user_id"].(string)
		event.PlanID, _ = custom["plan_id"].(string)
	}

	if event.PlanID == "" {
		event.PlanID = planForPrice(firstPriceID(data), prices)
	}

	return event, nil
}

// firstPriceID reads the price of the first line item. Subscription events nest
// it under items[].price.id, transaction events use items[].price_id.
func firstPriceID(data map[string]any) string {
	items, ok := data["items"].([]any)
	if !ok || len(items) == 0 {
		return ""
	}
	item, ok := items[0].(map[string]any)
	if !ok {
		return ""
	}
	if price, ok := item["price"].(map[string]any); ok {
		if id, ok := price["id"].(string); ok {
			return id
		}
	}
	id, _ := item["price_id"].(string)
	return id
}

func planForPrice(priceID string, prices map[string]string) string {
	for planID, id := range prices {
		if id == priceID {
			return planID
		}
	}
	return priceID
}

// mapPaddleEventType maps Paddle event types to internal EventType.
func mapPaddleEventType(paddleEvent string) EventType {
	switch paddleEvent {
	case "transaction.completed", "subscription.created", "subscription.activated":
		return EventSubscriptionCreated
	case "subscription.updated", "subscription.past_due", "subscription.trialing":
		return EventSubscriptionUpdated
	case "subscription.canceled":
		return EventSubscriptionCancelled
	case "subscription.resumed":
		return EventSubscriptionResumed
	case "transaction.paid":
		return EventPaymentSucceeded
	case "transaction.payment_failed":
		return EventPaymentFailed
	default:
		return EventType(paddleEvent)
	}
}

// mapPaddleStatus maps Paddle subscription status to internal Status.
func mapPaddleStatus(paddleStatus string) Status {
	switch strings.ToLower(paddleStatus) {
	case "trialing":
		return StatusTrialing
	case "active", "completed", "paid":
		return StatusActive
	case "past_due":
		return StatusPastDue
	case "canceled", "cancelled":
		return StatusCancelled
	case "expired", "paused":
		return StatusExpired
	default:
		return Status(paddleStatus)
	}
}
