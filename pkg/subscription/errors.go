package subscription

import "errors"

var (
	ErrSubscriptionNotFound = errors.New("subscription.errors.not_found")
	ErrNoActivePlan         = errors.New("subscription.errors.no_active_plan")
	ErrCheckoutNotRequired  = errors.New("subscription.errors.checkout_not_required")
	ErrPlanNotFound         = errors.New("subscription.errors.plan_not_found")
	ErrInvalidUserID        = errors.New("subscription.errors.invalid_user_id")
	ErrStoreFailed          = errors.New("subscription.errors.store_failed")

	// Provider-specific errors
	ErrMissingAPIKey              = errors.New("subscription.errors.missing_api_key")
	ErrMissingWebhookSecret       = errors.New("subscription.errors.missing_webhook_secret")
	ErrInvalidProviderEnvironment = errors.New("subscription.errors.invalid_provider_environment")
	ErrWebhookVerificationFailed  = errors.New("subscription.errors.webhook_verification_failed")
	ErrInvalidWebhookPayload      = errors.New("subscription.errors.invalid_webhook_payload")
	ErrNoCheckoutURL              = errors.New("subscription.errors.no_checkout_url")
	ErrNoPortalURL                = errors.New("subscription.errors.no_portal_url")
	ErrMissingProviderCustomerID  = errors.New("subscription.errors.missing_provider_customer_id")
	ErrMissingPriceID             = errors.New("subscription.errors.missing_price_id")
	ErrProviderError              = errors.New("subscription.errors.provider_error")
	ErrProviderUnavailable        = errors.New("subscription.errors.provider_unavailable")
)
