package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	database "github.com/cramerservices/plans-api/api/database"
)

// miniSplitMarker is the legacy name heuristic used before plan_type existed.
// Rows migrated without an explicit type still match on it.
const miniSplitMarker = "mini split"

// Plan is a purchasable maintenance plan, read-only to this service.
type Plan struct {
	ID             string
	Name           string
	Type           string
	Price          float64
	TuneUpsPerYear int
	StripePriceID  string
}

// Tier is one populated entry of a variable-priced plan's head-count table.
type Tier struct {
	PlanType      string
	Heads         int
	Amount        int
	StripePriceID string
}

// TierTable maps plan type -> head count -> tier.
type TierTable map[string]map[int]Tier

// Customer is the application-side customer row, keyed by application user id.
type Customer struct {
	ID             string
	Email          string
	FullName       string
	Phone          string
	ServiceAddress string
	City           string
	State          string
	ZipCode        string
}

// Membership links a customer to a plan for one billing term.
type Membership struct {
	ID                   string
	CustomerID           string
	PlanID               string
	PlanName             string
	StartDate            time.Time
	EndDate              time.Time
	Status               string
	TuneUpsRemaining     int
	StripeSubscriptionID string
	AgreementSignedAt    time.Time
	CreatedAt            time.Time
}

// GetActivePlan returns the active plan with the given id. The second return
// value is false when no active plan matches.
func GetActivePlan(id string) (Plan, bool, error) {
	var p Plan
	var planType, priceID sql.NullString
	err := database.GetDB().QueryRow(
		`SELECT id, name, plan_type, price, tune_ups_per_year, stripe_price_id
		 FROM maintenance_plans
		 WHERE id = $1 AND is_active = TRUE`, id,
	).Scan(&p.ID, &p.Name, &planType, &p.Price, &p.TuneUpsPerYear, &priceID)
	if err == sql.ErrNoRows {
		return Plan{}, false, nil
	}
	if err != nil {
		return Plan{}, false, fmt.Errorf("error querying maintenance_plans: %w", err)
	}
	p.StripePriceID = priceID.String
	p.Type = planType.String
	if p.Type == "" {
		// Legacy rows predate the plan_type column.
		if strings.Contains(strings.ToLower(p.Name), miniSplitMarker) {
			p.Type = "mini_split"
		} else {
			p.Type = "fixed"
		}
	}
	return p, true, nil
}

// LoadTierTable reads all populated pricing tiers grouped by plan type.
func LoadTierTable() (TierTable, error) {
	rows, err := database.GetDB().Query(
		`SELECT plan_type, heads, amount, stripe_price_id FROM pricing_tiers ORDER BY plan_type, heads`)
	if err != nil {
		return nil, fmt.Errorf("error querying pricing_tiers: %w", err)
	}
	defer rows.Close()

	table := TierTable{}
	for rows.Next() {
		var t Tier
		if err := rows.Scan(&t.PlanType, &t.Heads, &t.Amount, &t.StripePriceID); err != nil {
			return nil, fmt.Errorf("error scanning pricing tier: %w", err)
		}
		if table[t.PlanType] == nil {
			table[t.PlanType] = map[int]Tier{}
		}
		table[t.PlanType][t.Heads] = t
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pricing_tiers: %w", err)
	}
	return table, nil
}

// ProvisionCustomer upserts the customer row and returns its billing customer
// reference, invoking createBilling to mint one the first time only. The whole
// check-then-create runs inside a transaction holding a per-user advisory lock,
// so concurrent checkouts by the same user cannot mint two billing customers.
// The unique index on stripe_customer_id is the schema-level backstop.
func ProvisionCustomer(c Customer, createBilling func(Customer) (string, error)) (string, error) {
	tx, err := database.GetDB().Begin()
	if err != nil {
		return "", fmt.Errorf("error starting provisioning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`SELECT pg_advisory_xact_lock(hashtext($1))`, c.ID); err != nil {
		return "", fmt.Errorf("error acquiring provisioning lock: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO customers (id, email, full_name, phone, service_address, city, state, zip_code)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO UPDATE SET
		   email = EXCLUDED.email,
		   full_name = EXCLUDED.full_name,
		   phone = EXCLUDED.phone,
		   service_address = EXCLUDED.service_address,
		   city = EXCLUDED.city,
		   state = EXCLUDED.state,
		   zip_code = EXCLUDED.zip_code,
		   updated_at = now()`,
		c.ID, c.Email, c.FullName, c.Phone, c.ServiceAddress, c.City, c.State, c.ZipCode)
	if err != nil {
		return "", fmt.Errorf("error upserting customer: %w", err)
	}

	var ref sql.NullString
	if err := tx.QueryRow(`SELECT stripe_customer_id FROM customers WHERE id = $1`, c.ID).Scan(&ref); err != nil {
		return "", fmt.Errorf("error reading billing reference: %w", err)
	}
	if ref.Valid && ref.String != "" {
		if err := tx.Commit(); err != nil {
			return "", fmt.Errorf("error committing provisioning transaction: %w", err)
		}
		return ref.String, nil
	}

	billingID, err := createBilling(c)
	if err != nil {
		return "", fmt.Errorf("error creating billing customer: %w", err)
	}

	_, err = tx.Exec(
		`UPDATE customers SET stripe_customer_id = $2, updated_at = now()
		 WHERE id = $1 AND stripe_customer_id IS NULL`, c.ID, billingID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return "", fmt.Errorf("billing customer %s already linked to another user", billingID)
		}
		return "", fmt.Errorf("error persisting billing reference: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("error committing provisioning transaction: %w", err)
	}
	return billingID, nil
}

// ListMemberships returns all memberships for a customer, newest first.
func ListMemberships(customerID string) ([]Membership, error) {
	rows, err := database.GetDB().Query(
		`SELECT m.id, m.customer_id, m.plan_id, COALESCE(p.name, ''), m.start_date, m.end_date,
		        m.status, m.tune_ups_remaining, COALESCE(m.stripe_subscription_id, ''),
		        m.agreement_signed_at, m.created_at
		 FROM customer_memberships m
		 LEFT JOIN maintenance_plans p ON p.id = m.plan_id
		 WHERE m.customer_id = $1
		 ORDER BY m.created_at DESC`, customerID)
	if err != nil {
		return nil, fmt.Errorf("error querying customer_memberships: %w", err)
	}
	defer rows.Close()

	var memberships []Membership
	for rows.Next() {
		var m Membership
		if err := rows.Scan(&m.ID, &m.CustomerID, &m.PlanID, &m.PlanName, &m.StartDate, &m.EndDate,
			&m.Status, &m.TuneUpsRemaining, &m.StripeSubscriptionID, &m.AgreementSignedAt, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning membership: %w", err)
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customer_memberships: %w", err)
	}
	return memberships, nil
}
