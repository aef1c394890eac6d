package app

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	checkoutdb "github.com/cramerservices/plans-api/api/services/checkout/db"
	gw "github.com/cramerservices/plans-api/api/services/checkout/gateway"
)

// Service defines the business operations for the checkout domain.
type Service interface {
	StartCheckout(bearerToken string, req CheckoutRequest) (CheckoutResponse, error)
	MembershipOverview(bearerToken string) (MembershipOverview, error)
}

type serviceImpl struct {
	billing    gw.BillingGateway
	identity   gw.IdentityGateway
	resolver   PriceResolver
	successURL string
	cancelURL  string
}

func NewService(billing gw.BillingGateway, identity gw.IdentityGateway, tiers checkoutdb.TierTable, successURL, cancelURL string) Service {
	return serviceImpl{
		billing:    billing,
		identity:   identity,
		resolver:   NewPriceResolver(tiers),
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

// StartCheckout runs the single-pass checkout flow: authenticate, load plan,
// resolve price, provision the billing customer, create the session. Any step
// failing aborts the whole request; nothing is retried internally.
func (s serviceImpl) StartCheckout(bearerToken string, req CheckoutRequest) (CheckoutResponse, error) {
	ident, err := s.identity.Authenticate(bearerToken)
	if err != nil {
		return CheckoutResponse{}, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}

	signedAt, err := validateCheckoutRequest(req)
	if err != nil {
		return CheckoutResponse{}, err
	}

	plan, found, err := checkoutdb.GetActivePlan(req.PlanID)
	if err != nil {
		return CheckoutResponse{}, fmt.Errorf("error loading plan: %w", err)
	}
	if !found {
		return CheckoutResponse{}, fmt.Errorf("%w: plan not found or inactive", ErrNotFound)
	}

	heads, headsSet := 0, false
	if req.MiniSplitHeads != nil {
		heads, headsSet = *req.MiniSplitHeads, true
	}
	price, err := s.resolver.Resolve(plan, heads, headsSet)
	if err != nil {
		return CheckoutResponse{}, err
	}

	// Provisioning is always keyed by the token's subject; a client-supplied
	// identity hint never reaches the customer row.
	billingCustomerID, err := s.provisionCustomer(ident, req)
	if err != nil {
		return CheckoutResponse{}, err
	}

	url, err := s.billing.CreateSubscriptionCheckoutSession(gw.CheckoutSessionSpec{
		CustomerID: billingCustomerID,
		PriceID:    price.StripePriceID,
		SuccessURL: s.successURL,
		CancelURL:  s.cancelURL,
		Metadata:   buildSessionMetadata(plan, ident.UserID, price, req, signedAt),
	})
	if err != nil {
		return CheckoutResponse{}, fmt.Errorf("%w: %v", ErrSessionCreation, err)
	}

	slog.Info("checkout session created",
		"plan_id", plan.ID, "plan_name", plan.Name, "customer_id", ident.UserID, "tiered", price.Tiered)
	return CheckoutResponse{URL: url}, nil
}

func (s serviceImpl) provisionCustomer(ident gw.Identity, req CheckoutRequest) (string, error) {
	email := req.Email
	if email == "" {
		email = ident.Email
	}
	cust := checkoutdb.Customer{
		ID:             ident.UserID,
		Email:          email,
		FullName:       req.FullName,
		Phone:          req.Phone,
		ServiceAddress: req.ServiceAddress,
		City:           req.City,
		State:          req.State,
		ZipCode:        req.ZipCode,
	}
	billingID, err := checkoutdb.ProvisionCustomer(cust, func(c checkoutdb.Customer) (string, error) {
		return s.billing.CreateCustomer(gw.BillingCustomer{
			Email:        c.Email,
			Name:         c.FullName,
			Phone:        c.Phone,
			AddressLine1: c.ServiceAddress,
			City:         c.City,
			State:        c.State,
			PostalCode:   c.ZipCode,
			Country:      "US",
		})
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvisioning, err)
	}
	return billingID, nil
}

// validateCheckoutRequest checks required fields and returns the agreement
// timestamp, defaulted to now when the caller omits it.
func validateCheckoutRequest(req CheckoutRequest) (time.Time, error) {
	if strings.TrimSpace(req.PlanID) == "" {
		return time.Time{}, fmt.Errorf("%w: planId is required", ErrValidation)
	}
	if _, err := uuid.Parse(req.PlanID); err != nil {
		return time.Time{}, fmt.Errorf("%w: planId must be a valid uuid", ErrValidation)
	}
	required := []struct {
		value string
		field string
	}{
		{req.FullName, "fullName"},
		{req.Email, "email"},
		{req.Phone, "phone"},
		{req.ServiceAddress, "serviceAddress"},
		{req.City, "city"},
		{req.State, "state"},
		{req.ZipCode, "zipCode"},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return time.Time{}, fmt.Errorf("%w: %s is required", ErrValidation, f.field)
		}
	}
	if req.AgreementSignedAt == "" {
		return time.Now().UTC(), nil
	}
	signedAt, err := time.Parse(time.RFC3339, req.AgreementSignedAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: agreementSignedAt must be RFC 3339", ErrValidation)
	}
	return signedAt.UTC(), nil
}

// buildSessionMetadata assembles the flat key-value bag carried on the session
// and subscription. Tier keys are present if and only if the plan is tiered.
func buildSessionMetadata(plan checkoutdb.Plan, customerID string, price ResolvedPrice, req CheckoutRequest, signedAt time.Time) map[string]string {
	meta := map[string]string{
		MetaPlanID:            plan.ID,
		MetaPlanName:          plan.Name,
		MetaCustomerID:        customerID,
		MetaAgreementSignedAt: signedAt.Format(time.RFC3339),
		MetaCustomerName:      req.FullName,
		MetaCustomerPhone:     req.Phone,
		MetaServiceAddress:    req.ServiceAddress,
		MetaServiceCity:       req.City,
		MetaServiceState:      req.State,
		MetaServiceZip:        req.ZipCode,
	}
	if price.Tiered {
		meta[MetaMiniSplitHeads] = strconv.Itoa(price.TierHeads)
		meta[MetaMiniSplitAmount] = strconv.Itoa(price.TierAmount)
	}
	return meta
}
