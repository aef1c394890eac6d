package app

import (
	"fmt"
	"time"

	checkoutdb "github.com/cramerservices/plans-api/api/services/checkout/db"
)

// MembershipOverview returns the caller's authoritative active membership and
// full history, newest first. Rows are never mutated here; status is derived
// on read.
func (s serviceImpl) MembershipOverview(bearerToken string) (MembershipOverview, error) {
	ident, err := s.identity.Authenticate(bearerToken)
	if err != nil {
		return MembershipOverview{}, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}

	rows, err := checkoutdb.ListMemberships(ident.UserID)
	if err != nil {
		return MembershipOverview{}, fmt.Errorf("error loading memberships: %w", err)
	}

	now := time.Now()
	history := make([]Membership, 0, len(rows))
	for _, r := range rows {
		history = append(history, membershipFromRow(r, now))
	}

	overview := MembershipOverview{History: history}
	// Rows come back newest first, so the first active one wins the tie-break
	// when fulfillment ever leaves more than one active.
	for i := range history {
		if history[i].Status == MembershipStatusActive {
			overview.Membership = &history[i]
			break
		}
	}
	return overview, nil
}

func membershipFromRow(r checkoutdb.Membership, now time.Time) Membership {
	return Membership{
		ID:                   r.ID,
		CustomerID:           r.CustomerID,
		PlanID:               r.PlanID,
		PlanName:             r.PlanName,
		StartDate:            r.StartDate,
		EndDate:              r.EndDate,
		Status:               deriveStatus(MembershipStatus(r.Status), r.EndDate, now),
		TuneUpsRemaining:     r.TuneUpsRemaining,
		StripeSubscriptionID: r.StripeSubscriptionID,
		AgreementSignedAt:    r.AgreementSignedAt,
		CreatedAt:            r.CreatedAt,
	}
}

// deriveStatus reports an active membership whose term has ended as expired.
// The stored row is left for the external expiry job to flip; both expired and
// cancelled are terminal.
func deriveStatus(status MembershipStatus, endDate time.Time, now time.Time) MembershipStatus {
	if status != MembershipStatusActive || endDate.IsZero() {
		return status
	}
	// end_date is a date column; the membership covers the whole final day.
	endOfTerm := time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 23, 59, 59, 0, endDate.Location())
	if now.After(endOfTerm) {
		return MembershipStatusExpired
	}
	return status
}
