package app

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	database "github.com/cramerservices/plans-api/api/database"
	gw "github.com/cramerservices/plans-api/api/services/checkout/gateway"
	"github.com/cramerservices/plans-api/api/services/checkout/gateway/mocks"
)

const (
	goldPlanID      = "0b4f1f3e-9a6d-4c0e-b8f1-2d3a4e5f6a7b"
	miniSplitPlanID = "1c5a2b4d-8e7f-4a1b-9c0d-3e4f5a6b7c8d"
	tokenUserID     = "auth-user-1"
)

type checkoutFixture struct {
	mock     sqlmock.Sqlmock
	billing  *mocks.MockBillingGateway
	identity *mocks.MockIdentityGateway
	svc      Service
}

func newCheckoutFixture(t *testing.T) checkoutFixture {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	database.SetDB(conn)
	t.Cleanup(func() {
		database.SetDB(nil)
		conn.Close()
	})

	ctrl := gomock.NewController(t)
	billing := mocks.NewMockBillingGateway(ctrl)
	identity := mocks.NewMockIdentityGateway(ctrl)
	svc := NewService(billing, identity, testTierTable(),
		"https://store.example/#/success?session_id={CHECKOUT_SESSION_ID}",
		"https://store.example/#/plans")
	return checkoutFixture{mock: mock, billing: billing, identity: identity, svc: svc}
}

func validRequest(planID string) CheckoutRequest {
	return CheckoutRequest{
		PlanID:         planID,
		FullName:       "Jo Smith",
		Email:          "jo@example.com",
		Phone:          "555-0100",
		ServiceAddress: "12 Main St",
		City:           "Springfield",
		State:          "OH",
		ZipCode:        "45501",
	}
}

func (f checkoutFixture) expectAuthenticated() {
	f.identity.EXPECT().Authenticate("tok").Return(gw.Identity{UserID: tokenUserID, Email: "jo@example.com"}, nil)
}

func (f checkoutFixture) expectPlanRow(id, name, planType, priceID string) {
	rows := sqlmock.NewRows([]string{"id", "name", "plan_type", "price", "tune_ups_per_year", "stripe_price_id"})
	if priceID == "" {
		rows.AddRow(id, name, planType, 0.0, 1, nil)
	} else {
		rows.AddRow(id, name, planType, 249.0, 2, priceID)
	}
	f.mock.ExpectQuery(`SELECT id, name, plan_type`).WithArgs(id).WillReturnRows(rows)
}

// expectProvisioning sets up the transaction for a customer that already has a
// billing reference.
func (f checkoutFixture) expectProvisioning(existingRef string) {
	f.mock.ExpectBegin()
	f.mock.ExpectExec(regexp.QuoteMeta(`SELECT pg_advisory_xact_lock(hashtext($1))`)).
		WithArgs(tokenUserID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	f.mock.ExpectExec(`INSERT INTO customers`).
		WithArgs(tokenUserID, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectQuery(regexp.QuoteMeta(`SELECT stripe_customer_id FROM customers WHERE id = $1`)).
		WithArgs(tokenUserID).
		WillReturnRows(sqlmock.NewRows([]string{"stripe_customer_id"}).AddRow(existingRef))
	f.mock.ExpectCommit()
}

func Test_StartCheckout_FixedPlan(t *testing.T) {
	f := newCheckoutFixture(t)
	f.expectAuthenticated()
	f.expectPlanRow(goldPlanID, "Gold", "fixed", "price_A")
	f.expectProvisioning("cus_1")

	var captured gw.CheckoutSessionSpec
	f.billing.EXPECT().CreateSubscriptionCheckoutSession(gomock.Any()).
		DoAndReturn(func(spec gw.CheckoutSessionSpec) (string, error) {
			captured = spec
			return "https://checkout.stripe.com/c/pay/cs_test_1", nil
		})

	resp, err := f.svc.StartCheckout("tok", validRequest(goldPlanID))
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_1", resp.URL)

	assert.Equal(t, "cus_1", captured.CustomerID)
	assert.Equal(t, "price_A", captured.PriceID)
	assert.Contains(t, captured.SuccessURL, "{CHECKOUT_SESSION_ID}")
	assert.Equal(t, goldPlanID, captured.Metadata[MetaPlanID])
	assert.Equal(t, "Gold", captured.Metadata[MetaPlanName])
	assert.Equal(t, tokenUserID, captured.Metadata[MetaCustomerID])
	assert.NotEmpty(t, captured.Metadata[MetaAgreementSignedAt])
	assert.NotContains(t, captured.Metadata, MetaMiniSplitHeads)
	assert.NotContains(t, captured.Metadata, MetaMiniSplitAmount)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func Test_StartCheckout_MiniSplitValidHeads(t *testing.T) {
	f := newCheckoutFixture(t)
	f.expectAuthenticated()
	f.expectPlanRow(miniSplitPlanID, "Mini Split Maintenance", "mini_split", "")
	f.expectProvisioning("cus_1")

	var captured gw.CheckoutSessionSpec
	f.billing.EXPECT().CreateSubscriptionCheckoutSession(gomock.Any()).
		DoAndReturn(func(spec gw.CheckoutSessionSpec) (string, error) {
			captured = spec
			return "https://checkout.stripe.com/c/pay/cs_test_2", nil
		})

	heads := 5
	req := validRequest(miniSplitPlanID)
	req.MiniSplitHeads = &heads

	resp, err := f.svc.StartCheckout("tok", req)
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_2", resp.URL)

	assert.Equal(t, "price_ms5", captured.PriceID)
	assert.Equal(t, "5", captured.Metadata[MetaMiniSplitHeads])
	assert.Equal(t, "400", captured.Metadata[MetaMiniSplitAmount])
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func Test_StartCheckout_MiniSplitInvalidHeads(t *testing.T) {
	f := newCheckoutFixture(t)
	f.expectAuthenticated()
	f.expectPlanRow(miniSplitPlanID, "Mini Split Maintenance", "mini_split", "")

	heads := 12
	req := validRequest(miniSplitPlanID)
	req.MiniSplitHeads = &heads

	_, err := f.svc.StartCheckout("tok", req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	// No provisioning transaction and no billing-provider call happened.
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func Test_StartCheckout_MissingBearerToken(t *testing.T) {
	f := newCheckoutFixture(t)
	f.identity.EXPECT().Authenticate("").Return(gw.Identity{}, errors.New("missing bearer token"))

	_, err := f.svc.StartCheckout("", validRequest(goldPlanID))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAuthentication))
	// No datastore reads were performed.
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func Test_StartCheckout_InactivePlan(t *testing.T) {
	f := newCheckoutFixture(t)
	f.expectAuthenticated()
	f.mock.ExpectQuery(`SELECT id, name, plan_type`).
		WithArgs(goldPlanID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "plan_type", "price", "tune_ups_per_year", "stripe_price_id"}))

	_, err := f.svc.StartCheckout("tok", validRequest(goldPlanID))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func Test_StartCheckout_ProvisionsUnderTokenSubject(t *testing.T) {
	// The INSERT is keyed by the token's user id even though the body carries
	// someone else's contact details; expectProvisioning pins the args.
	f := newCheckoutFixture(t)
	f.expectAuthenticated()
	f.expectPlanRow(goldPlanID, "Gold", "fixed", "price_A")
	f.expectProvisioning("cus_1")
	f.billing.EXPECT().CreateSubscriptionCheckoutSession(gomock.Any()).Return("https://checkout.stripe.com/c/pay/cs", nil)

	req := validRequest(goldPlanID)
	req.FullName = "Someone Else"
	req.Email = "someone.else@example.com"

	_, err := f.svc.StartCheckout("tok", req)
	require.NoError(t, err)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func Test_StartCheckout_FirstCheckoutCreatesBillingCustomer(t *testing.T) {
	f := newCheckoutFixture(t)
	f.expectAuthenticated()
	f.expectPlanRow(goldPlanID, "Gold", "fixed", "price_A")

	f.mock.ExpectBegin()
	f.mock.ExpectExec(regexp.QuoteMeta(`SELECT pg_advisory_xact_lock(hashtext($1))`)).
		WithArgs(tokenUserID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	f.mock.ExpectExec(`INSERT INTO customers`).
		WithArgs(tokenUserID, "jo@example.com", "Jo Smith", "555-0100", "12 Main St", "Springfield", "OH", "45501").
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectQuery(regexp.QuoteMeta(`SELECT stripe_customer_id FROM customers WHERE id = $1`)).
		WithArgs(tokenUserID).
		WillReturnRows(sqlmock.NewRows([]string{"stripe_customer_id"}).AddRow(nil))
	f.mock.ExpectExec(`UPDATE customers SET stripe_customer_id`).
		WithArgs(tokenUserID, "cus_new").
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectCommit()

	f.billing.EXPECT().CreateCustomer(gomock.Any()).
		DoAndReturn(func(c gw.BillingCustomer) (string, error) {
			assert.Equal(t, "jo@example.com", c.Email)
			assert.Equal(t, "Jo Smith", c.Name)
			assert.Equal(t, "US", c.Country)
			return "cus_new", nil
		})
	f.billing.EXPECT().CreateSubscriptionCheckoutSession(gomock.Any()).
		DoAndReturn(func(spec gw.CheckoutSessionSpec) (string, error) {
			assert.Equal(t, "cus_new", spec.CustomerID)
			return "https://checkout.stripe.com/c/pay/cs", nil
		})

	_, err := f.svc.StartCheckout("tok", validRequest(goldPlanID))
	require.NoError(t, err)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func Test_StartCheckout_SessionCreationFailure(t *testing.T) {
	f := newCheckoutFixture(t)
	f.expectAuthenticated()
	f.expectPlanRow(goldPlanID, "Gold", "fixed", "price_A")
	f.expectProvisioning("cus_1")
	f.billing.EXPECT().CreateSubscriptionCheckoutSession(gomock.Any()).
		Return("", errors.New("stripe: api unavailable"))

	_, err := f.svc.StartCheckout("tok", validRequest(goldPlanID))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSessionCreation))
}

func Test_ValidateCheckoutRequest(t *testing.T) {
	t.Run("missing required field", func(t *testing.T) {
		req := validRequest(goldPlanID)
		req.ZipCode = "  "
		_, err := validateCheckoutRequest(req)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrValidation))
		assert.Contains(t, err.Error(), "zipCode")
	})

	t.Run("malformed plan id", func(t *testing.T) {
		_, err := validateCheckoutRequest(validRequest("not-a-uuid"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrValidation))
	})

	t.Run("agreement timestamp defaults to now", func(t *testing.T) {
		signedAt, err := validateCheckoutRequest(validRequest(goldPlanID))
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().UTC(), signedAt, 5*time.Second)
	})

	t.Run("agreement timestamp parsed when supplied", func(t *testing.T) {
		req := validRequest(goldPlanID)
		req.AgreementSignedAt = "2026-08-01T10:30:00Z"
		signedAt, err := validateCheckoutRequest(req)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC), signedAt)
	})

	t.Run("agreement timestamp rejects junk", func(t *testing.T) {
		req := validRequest(goldPlanID)
		req.AgreementSignedAt = "yesterday"
		_, err := validateCheckoutRequest(req)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrValidation))
	})
}
