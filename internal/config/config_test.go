package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:              "8080",
		DatabaseURL:       DefaultDatabaseURL,
		DBMaxOpenConns:    10,
		DBMaxIdleConns:    2,
		DBConnectTimeout:  time.Second,
		JWTSecret:         "0123456789abcdef0123456789abcdef",
		JWTTTL:            time.Hour,
		RequestTimeout:    time.Second,
		ReadTimeout:       time.Second,
		WriteTimeout:      time.Second,
		IdleTimeout:       time.Second,
		ShutdownTimeout:   time.Second,
		MaxRequestSize:    1024,
		Timezone:          "UTC",
		JobsEnabled:       true,
		JobsSchedule:      "@every 1m",
		PendingBookingTTL: time.Minute,
	}
}

func TestLoad_DefaultsWithSecret(t *testing.T) {
	t.Setenv(EnvJWTSecret, "0123456789abcdef0123456789abcdef")
	t.Setenv(EnvPort, "9090")
	t.Setenv(EnvCORSAllowedOrigins, "http://a.test, http://b.test ,")
	t.Setenv(EnvCurrency, "USD")
	t.Setenv(EnvJobsEnabled, "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, DefaultJWTTTL, cfg.JWTTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "usd", cfg.Currency)
	assert.False(t, cfg.JobsEnabled)
	assert.False(t, cfg.PaymentsEnabled())
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv(EnvJWTSecret, "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidate_AggregatesProblems(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "0"
	cfg.DatabaseURL = "mysql://localhost/db"
	cfg.RequestTimeout = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), EnvRequestTimeout)
}

func TestValidate_StripeNeedsWebhookSecret(t *testing.T) {
	cfg := validConfig()
	cfg.StripeSecretKey = "sk_test_123"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STRIPE_WEBHOOK_SECRET")

	cfg.StripeWebhookSecret = "whsec_123"
	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.PaymentsEnabled())
}

func TestValidate_BadTimezone(t *testing.T) {
	cfg := validConfig()
	cfg.Timezone = "Mars/Olympus"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TIMEZONE")
}

func TestNotificationToggles(t *testing.T) {
	cfg := validConfig()
	assert.False(t, cfg.EmailEnabled())
	assert.False(t, cfg.SMSEnabled())

	cfg.SendGridAPIKey = "SG.key"
	cfg.SendGridFromEmail = "noreply@example.com"
	cfg.TwilioAccountSID = "AC123"
	cfg.TwilioAuthToken = "token"
	cfg.TwilioFromNumber = "+15550000000"
	assert.True(t, cfg.EmailEnabled())
	assert.True(t, cfg.SMSEnabled())
}

func TestRedactDatabaseURL(t *testing.T) {
	out := redactDatabaseURL("postgres://admin:s3cret@db:5432/coworking")
	assert.NotContains(t, out, "s3cret")
	assert.Contains(t, out, "admin")
}
