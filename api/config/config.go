package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds the global application configuration
var AppConfig *Config

// Config holds the application configuration
type Config struct {
	DatabaseURL     string
	StripeSecretKey string
	// Base URL and anon key of the identity provider that verifies bearer tokens.
	IdentityBaseURL string
	IdentityAPIKey  string
	// Comma-separated list of origins allowed to call the API from a browser.
	AllowedOrigins string
	// Redirect targets for the hosted checkout page.
	CheckoutSuccessURL string
	CheckoutCancelURL  string
	// Optional: base URL for running remote HTTP integration tests (e.g., https://api.example.com)
	IntegrationBaseURL string
	// Server port
	HTTPPort string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{}

	// Try to load .env file from current directory and parent directories
	currentDir, _ := os.Getwd()
	for currentDir != "/" {
		// Check if .env file exists in current directory
		envPath := filepath.Join(currentDir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			// Load .env file
			err = godotenv.Load(envPath)
			if err != nil {
				return nil, fmt.Errorf("failed to load .env file: %v", err)
			}
			break
		}
		// Move up one directory
		currentDir = filepath.Dir(currentDir)
	}

	// Get required environment variables
	requiredVars := []struct {
		name     string
		envVar   string
		display  string
		required bool
	}{
		{"DatabaseURL", "DATABASE_URL", "Database URL", true},
		{"StripeSecretKey", "STRIPE_SECRET_KEY", "Stripe Secret Key", true},
		{"IdentityBaseURL", "IDENTITY_BASE_URL", "Identity Base URL", true},
		{"IdentityAPIKey", "IDENTITY_API_KEY", "Identity API Key", true},
		// Optional browser origins and checkout redirect targets
		{"AllowedOrigins", "ALLOWED_ORIGINS", "Allowed Origins", false},
		{"CheckoutSuccessURL", "CHECKOUT_SUCCESS_URL", "Checkout Success URL", false},
		{"CheckoutCancelURL", "CHECKOUT_CANCEL_URL", "Checkout Cancel URL", false},
		// Optional integration base URL for remote tests
		{"IntegrationBaseURL", "INTEGRATION_BASE_URL", "Integration Base URL", false},
		// Optional server port
		{"HTTPPort", "PORT", "HTTP Port", false},
	}

	for _, v := range requiredVars {
		value := os.Getenv(v.envVar)
		if v.required && value == "" {
			return nil, fmt.Errorf("missing required environment variable: %s", v.display)
		}
		configField := reflect.ValueOf(config).Elem().FieldByName(v.name)
		configField.SetString(value)
	}

	// Defaults mirror the storefront deployment
	if config.AllowedOrigins == "" {
		config.AllowedOrigins = "https://cramerservices.github.io,http://localhost:5173,http://localhost:4173"
	}
	if config.CheckoutSuccessURL == "" {
		config.CheckoutSuccessURL = "https://cramerservices.github.io/Plans/#/success?session_id={CHECKOUT_SESSION_ID}"
	}
	if config.CheckoutCancelURL == "" {
		config.CheckoutCancelURL = "https://cramerservices.github.io/Plans/#/plans"
	}
	if config.HTTPPort == "" {
		config.HTTPPort = "8080"
	}

	return config, nil
}

// AllowedOriginList splits the configured origins into a trimmed slice.
func (c *Config) AllowedOriginList() []string {
	parts := strings.Split(c.AllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if o := strings.TrimSpace(p); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
