package app

import "errors"

// Typed errors for the checkout app layer. These enable HTTP status mapping
// without leaking SDK-specific error types into the transport layer.
var (
	// ErrAuthentication indicates a missing or invalid caller credential.
	ErrAuthentication = errors.New("authentication required")
	// ErrValidation indicates a malformed request; its message is safe to show to the end user.
	ErrValidation = errors.New("invalid request")
	// ErrNotFound indicates the requested plan is absent or inactive.
	ErrNotFound = errors.New("not found")
	// ErrConfiguration indicates the catalog is misconfigured (e.g., a fixed-price plan without a usable price reference).
	ErrConfiguration = errors.New("configuration error")
	// ErrProvisioning indicates a datastore or billing-provider failure during customer setup.
	ErrProvisioning = errors.New("provisioning error")
	// ErrSessionCreation indicates the billing provider rejected the checkout session request.
	ErrSessionCreation = errors.New("session creation error")
)
