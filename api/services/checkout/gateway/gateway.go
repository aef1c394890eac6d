package gateway

// Identity is the authenticated caller as resolved from a bearer token by the
// external identity provider.
type Identity struct {
	UserID string
	Email  string
}

// BillingCustomer carries the contact and address fields sent to the billing
// provider when a customer record is first created.
type BillingCustomer struct {
	Email        string
	Name         string
	Phone        string
	AddressLine1 string
	City         string
	State        string
	PostalCode   string
	Country      string
}

// CheckoutSessionSpec describes a recurring-subscription checkout session.
// Metadata is attached to both the session and the subscription it creates;
// the session is ephemeral but the subscription persists for the term.
type CheckoutSessionSpec struct {
	CustomerID string
	PriceID    string
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

// BillingGateway abstracts the billing-provider SDK operations needed by the
// app layer. Methods return values (not pointers) to respect the project's
// preference to avoid pointer types in public interfaces.
type BillingGateway interface {
	CreateCustomer(c BillingCustomer) (string, error)
	CreateSubscriptionCheckoutSession(spec CheckoutSessionSpec) (string, error)
}

// IdentityGateway verifies a bearer token and yields the caller's identity.
// Credential verification is never re-implemented locally.
type IdentityGateway interface {
	Authenticate(bearerToken string) (Identity, error)
}
