package app

import (
	"fmt"
	"strings"

	checkoutdb "github.com/cramerservices/plans-api/api/services/checkout/db"
)

const stripePriceIDPrefix = "price_"

// PriceResolver maps a plan (and, for tiered plans, a head count) to the
// Stripe price to charge. The tier table is captured at construction, so
// resolution is a pure lookup.
type PriceResolver struct {
	tiers checkoutdb.TierTable
}

func NewPriceResolver(tiers checkoutdb.TierTable) PriceResolver {
	return PriceResolver{tiers: tiers}
}

// Resolve returns the price reference for the plan. For mini split plans the
// head count must match a populated tier exactly; there is no nearest-tier
// fallback. For fixed-price plans any supplied head count is ignored.
func (r PriceResolver) Resolve(plan checkoutdb.Plan, heads int, headsSet bool) (ResolvedPrice, error) {
	switch plan.Type {
	case PlanTypeFixed:
		if !strings.HasPrefix(plan.StripePriceID, stripePriceIDPrefix) {
			return ResolvedPrice{}, fmt.Errorf("%w: plan %q has no usable stripe_price_id", ErrConfiguration, plan.Name)
		}
		return ResolvedPrice{StripePriceID: plan.StripePriceID}, nil

	case PlanTypeMiniSplit:
		if !headsSet {
			return ResolvedPrice{}, fmt.Errorf("%w: miniSplitHeads is required for Mini Split plans (1-9)", ErrValidation)
		}
		tier, ok := r.tiers[PlanTypeMiniSplit][heads]
		if !ok {
			return ResolvedPrice{}, fmt.Errorf("%w: no price configured for miniSplitHeads=%d; select a valid head count", ErrValidation, heads)
		}
		if !strings.HasPrefix(tier.StripePriceID, stripePriceIDPrefix) {
			return ResolvedPrice{}, fmt.Errorf("%w: tier heads=%d has no usable stripe_price_id", ErrConfiguration, heads)
		}
		return ResolvedPrice{
			StripePriceID: tier.StripePriceID,
			Tiered:        true,
			TierHeads:     heads,
			TierAmount:    tier.Amount,
		}, nil

	default:
		return ResolvedPrice{}, fmt.Errorf("%w: plan %q has unknown plan type %q", ErrConfiguration, plan.Name, plan.Type)
	}
}
