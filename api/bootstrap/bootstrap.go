package bootstrap

import (
	"fmt"
	"sync"

	"github.com/cramerservices/plans-api/api/config"
	"github.com/cramerservices/plans-api/api/database"
	checkoutapp "github.com/cramerservices/plans-api/api/services/checkout/app"
	checkoutdb "github.com/cramerservices/plans-api/api/services/checkout/db"
	identitygw "github.com/cramerservices/plans-api/api/services/checkout/gateway/identity"
	stripegw "github.com/cramerservices/plans-api/api/services/checkout/gateway/stripe"
)

var checkoutService checkoutapp.Service
var initOnce sync.Once
var initErr error

// Init initializes config, database, and third-party clients, and wires services.
func Init() error {
	// If a service has already been injected (e.g., tests), do not override or init heavy deps.
	if checkoutService != nil {
		return nil
	}
	var err error
	if config.AppConfig == nil {
		config.AppConfig, err = config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}

	if err := database.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	stripegw.SetKey(config.AppConfig.StripeSecretKey)

	// The tier table is read once and injected; price resolution stays a pure
	// lookup for the life of the process.
	tiers, err := checkoutdb.LoadTierTable()
	if err != nil {
		return fmt.Errorf("failed to load pricing tiers: %w", err)
	}

	checkoutService = checkoutapp.NewService(
		stripegw.New(),
		identitygw.New(config.AppConfig.IdentityBaseURL, config.AppConfig.IdentityAPIKey),
		tiers,
		config.AppConfig.CheckoutSuccessURL,
		config.AppConfig.CheckoutCancelURL,
	)
	return nil
}

func GetCheckoutService() checkoutapp.Service { return checkoutService }

// SetCheckoutService allows tests to inject a stub implementation.
func SetCheckoutService(s checkoutapp.Service) { checkoutService = s }

// Ensure runs Init() once per process and returns any initialization error.
func Ensure() error {
	initOnce.Do(func() {
		initErr = Init()
	})
	return initErr
}
