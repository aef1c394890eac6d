package app

import "time"

// Plan types stored in maintenance_plans.plan_type.
const (
	PlanTypeFixed     = "fixed"
	PlanTypeMiniSplit = "mini_split"
)

type MembershipStatus string

const (
	MembershipStatusActive    MembershipStatus = "active"
	MembershipStatusExpired   MembershipStatus = "expired"
	MembershipStatusCancelled MembershipStatus = "cancelled"
)

// Metadata keys attached to the checkout session and its subscription. The
// metadata bag is the only handoff channel to post-checkout fulfillment, so it
// must carry everything needed to create a membership row.
const (
	MetaPlanID            = "plan_id"
	MetaPlanName          = "plan_name"
	MetaCustomerID        = "customer_id"
	MetaMiniSplitHeads    = "mini_split_heads"
	MetaMiniSplitAmount   = "mini_split_amount"
	MetaAgreementSignedAt = "agreement_signed_at"
	MetaCustomerName      = "customer_name"
	MetaCustomerPhone     = "customer_phone"
	MetaServiceAddress    = "service_address"
	MetaServiceCity       = "service_city"
	MetaServiceState      = "service_state"
	MetaServiceZip        = "service_zip"
)

// CheckoutRequest is the JSON body of a checkout intent submitted by the
// storefront. The caller's identity comes from the bearer token, never from
// the body.
type CheckoutRequest struct {
	PlanID            string `json:"planId"`
	MiniSplitHeads    *int   `json:"miniSplitHeads,omitempty"`
	FullName          string `json:"fullName"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	ServiceAddress    string `json:"serviceAddress"`
	City              string `json:"city"`
	State             string `json:"state"`
	ZipCode           string `json:"zipCode"`
	AgreementSignedAt string `json:"agreementSignedAt,omitempty"`
}

// CheckoutResponse carries the billing provider's hosted redirect URL.
type CheckoutResponse struct {
	URL string `json:"url"`
}

// ResolvedPrice is the outcome of pricing resolution for one plan purchase.
type ResolvedPrice struct {
	StripePriceID string
	Tiered        bool
	TierHeads     int
	TierAmount    int
}

// Membership is the read-side view of one membership term. Status is derived:
// an active row whose end date has passed reads as expired even if fulfillment
// never flipped the stored value.
type Membership struct {
	ID                   string           `json:"id"`
	CustomerID           string           `json:"customer_id"`
	PlanID               string           `json:"plan_id"`
	PlanName             string           `json:"plan_name"`
	StartDate            time.Time        `json:"start_date"`
	EndDate              time.Time        `json:"end_date"`
	Status               MembershipStatus `json:"status"`
	TuneUpsRemaining     int              `json:"tune_ups_remaining"`
	StripeSubscriptionID string           `json:"stripe_subscription_id,omitempty"`
	AgreementSignedAt    time.Time        `json:"agreement_signed_at"`
	CreatedAt            time.Time        `json:"created_at"`
}

// MembershipOverview is what the customer dashboard consumes: the single
// authoritative active membership (or null) plus full history, newest first.
type MembershipOverview struct {
	Membership *Membership  `json:"membership"`
	History    []Membership `json:"history"`
}
