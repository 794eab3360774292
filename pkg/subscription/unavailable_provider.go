package subscription

import "context"

type unavailableProvider struct{}

// UnavailableProvider returns a BillingProvider that fails every call with
// ErrProviderUnavailable. It lets plan lookups run where no payment provider
// is configured, e.g. CLI tools and local servers.
func UnavailableProvider() BillingProvider {
	return unavailableProvider{}
}

func (unavailableProvider) CreateCheckoutLink(context.Context, CheckoutRequest) (*CheckoutLink, error) {
	return nil, ErrProviderUnavailable
}

func (unavailableProvider) GetCustomerPortalLink(context.Context, *Assignment) (*PortalLink, error) {
	return nil, ErrProviderUnavailable
}

func (unavailableProvider) ParseWebhook(context.Context, []byte, string) (*WebhookEvent, error) {
	return nil, ErrProviderUnavailable
}
