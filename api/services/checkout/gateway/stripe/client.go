package stripegw

import (
	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/customer"

	gw "github.com/cramerservices/plans-api/api/services/checkout/gateway"
)

// SetKey configures the Stripe SDK key once during bootstrap.
func SetKey(key string) { stripe.Key = key }

// client is the Stripe SDK-backed implementation of the gateway.
type client struct{}

// New returns a BillingGateway backed by the official Stripe SDK.
func New() gw.BillingGateway { return client{} }

func (client) CreateCustomer(c gw.BillingCustomer) (string, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(c.Email),
		Name:  stripe.String(c.Name),
	}
	if c.Phone != "" {
		params.Phone = stripe.String(c.Phone)
	}
	if c.AddressLine1 != "" {
		params.Address = &stripe.AddressParams{
			Line1:      stripe.String(c.AddressLine1),
			City:       stripe.String(c.City),
			State:      stripe.String(c.State),
			PostalCode: stripe.String(c.PostalCode),
			Country:    stripe.String(c.Country),
		}
	}
	cust, err := customer.New(params)
	if err != nil {
		return "", err
	}
	return cust.ID, nil
}

func (client) CreateSubscriptionCheckoutSession(spec gw.CheckoutSessionSpec) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		Customer:   stripe.String(spec.CustomerID),
		SuccessURL: stripe.String(spec.SuccessURL),
		CancelURL:  stripe.String(spec.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(spec.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		// The subscription outlives the session; carry the same metadata on both.
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: spec.Metadata,
		},
	}
	for k, v := range spec.Metadata {
		params.AddMetadata(k, v)
	}

	s, err := session.New(params)
	if err != nil {
		return "", err
	}
	return s.URL, nil
}
