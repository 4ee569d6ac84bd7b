package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"coworking/internal/logger"
)

type Config struct {
	Port string
	Env  string

	DatabaseURL       string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBConnectTimeout  time.Duration

	JWTSecret string
	JWTTTL    time.Duration

	LogLevel  string
	LogFormat string

	RequestTimeout  time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	MaxRequestSize  int

	CORSAllowedOrigins []string

	Currency string
	Timezone string

	StripeSecretKey     string
	StripeWebhookSecret string
	StripeSuccessURL    string
	StripeCancelURL     string

	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	JobsEnabled       bool
	JobsSchedule      string
	PendingBookingTTL time.Duration
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port: getEnvStr(EnvPort, DefaultPort),
		Env:  getEnvStr(EnvEnv, DefaultEnv),

		DatabaseURL:       getEnvStr(EnvDatabaseURL, DefaultDatabaseURL),
		DBMaxOpenConns:    getEnvInt(EnvDBMaxOpenConns, DefaultDBMaxOpenConns),
		DBMaxIdleConns:    getEnvInt(EnvDBMaxIdleConns, DefaultDBMaxIdleConns),
		DBConnMaxLifetime: getEnvDuration(EnvDBConnMaxLifetime, DefaultDBConnMaxLifetime),
		DBConnectTimeout:  getEnvDuration(EnvDBConnectTimeout, DefaultDBConnectTimeout),

		JWTSecret: getEnvStr(EnvJWTSecret, ""),
		JWTTTL:    getEnvDuration(EnvJWTTTL, DefaultJWTTTL),

		LogLevel:  getEnvStr(EnvLogLevel, DefaultLogLevel),
		LogFormat: getEnvStr(EnvLogFormat, DefaultLogFormat),

		RequestTimeout:  getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),
		MaxRequestSize:  getEnvInt(EnvMaxRequestSize, DefaultMaxRequestSize),

		CORSAllowedOrigins: getEnvList(EnvCORSAllowedOrigins, DefaultCORSAllowedOrigins),

		Currency: strings.ToLower(getEnvStr(EnvCurrency, DefaultCurrency)),
		Timezone: getEnvStr(EnvTimezone, DefaultTimezone),

		StripeSecretKey:     getEnvStr(EnvStripeSecretKey, ""),
		StripeWebhookSecret: getEnvStr(EnvStripeWebhookSecret, ""),
		StripeSuccessURL:    getEnvStr(EnvStripeSuccessURL, DefaultStripeSuccessURL),
		StripeCancelURL:     getEnvStr(EnvStripeCancelURL, DefaultStripeCancelURL),

		SendGridAPIKey:    getEnvStr(EnvSendGridAPIKey, ""),
		SendGridFromEmail: getEnvStr(EnvSendGridFromEmail, ""),
		SendGridFromName:  getEnvStr(EnvSendGridFromName, DefaultSendGridFromName),

		TwilioAccountSID: getEnvStr(EnvTwilioAccountSID, ""),
		TwilioAuthToken:  getEnvStr(EnvTwilioAuthToken, ""),
		TwilioFromNumber: getEnvStr(EnvTwilioFromNumber, ""),

		JobsEnabled:       getEnvBool(EnvJobsEnabled, DefaultJobsEnabled),
		JobsSchedule:      getEnvStr(EnvJobsSchedule, DefaultJobsSchedule),
		PendingBookingTTL: getEnvDuration(EnvPendingBookingTTL, DefaultPendingBookingTTL),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("PORT must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.DatabaseURL == "" {
		problems = append(problems, "DATABASE_URL cannot be empty")
	} else if u, err := url.Parse(cfg.DatabaseURL); err != nil || (u.Scheme != "postgres" && u.Scheme != "postgresql") {
		problems = append(problems, "DATABASE_URL must be a postgres:// URL")
	}

	if len(cfg.JWTSecret) < MinJWTSecretLength {
		problems = append(problems, fmt.Sprintf("JWT_SECRET must be at least %d characters", MinJWTSecretLength))
	}
	if cfg.JWTTTL <= 0 {
		problems = append(problems, fmt.Sprintf("JWT_TTL must be positive, got: %s", cfg.JWTTTL))
	}

	if cfg.DBMaxOpenConns <= 0 {
		problems = append(problems, fmt.Sprintf("DB_MAX_OPEN_CONNS must be positive, got: %d", cfg.DBMaxOpenConns))
	}
	if cfg.DBMaxIdleConns < 0 || cfg.DBMaxIdleConns > cfg.DBMaxOpenConns {
		problems = append(problems, fmt.Sprintf("DB_MAX_IDLE_CONNS must be between 0 and DB_MAX_OPEN_CONNS (%d), got: %d", cfg.DBMaxOpenConns, cfg.DBMaxIdleConns))
	}

	for name, d := range map[string]time.Duration{
		EnvRequestTimeout:   cfg.RequestTimeout,
		EnvReadTimeout:      cfg.ReadTimeout,
		EnvWriteTimeout:     cfg.WriteTimeout,
		EnvIdleTimeout:      cfg.IdleTimeout,
		EnvShutdownTimeout:  cfg.ShutdownTimeout,
		EnvDBConnectTimeout: cfg.DBConnectTimeout,
	} {
		if d <= 0 {
			problems = append(problems, fmt.Sprintf("%s must be positive, got: %s", name, d))
		}
	}

	if cfg.MaxRequestSize <= 0 {
		problems = append(problems, fmt.Sprintf("MAX_REQUEST_SIZE must be positive, got: %d", cfg.MaxRequestSize))
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		problems = append(problems, fmt.Sprintf("TIMEZONE is not a valid IANA zone: %s", cfg.Timezone))
	}

	if cfg.StripeSecretKey != "" && cfg.StripeWebhookSecret == "" {
		problems = append(problems, "STRIPE_WEBHOOK_SECRET is required when STRIPE_SECRET_KEY is set")
	}

	if cfg.JobsEnabled && cfg.JobsSchedule == "" {
		problems = append(problems, "JOBS_SCHEDULE cannot be empty when jobs are enabled")
	}
	if cfg.PendingBookingTTL <= 0 {
		problems = append(problems, fmt.Sprintf("PENDING_BOOKING_TTL must be positive, got: %s", cfg.PendingBookingTTL))
	}

	if len(problems) > 0 {
		msg := "configuration validation failed:\n"
		for i, p := range problems {
			msg += fmt.Sprintf("  %d. %s\n", i+1, p)
		}
		return fmt.Errorf("%s", msg)
	}
	return nil
}

func (cfg *Config) PaymentsEnabled() bool {
	return cfg.StripeSecretKey != ""
}

func (cfg *Config) EmailEnabled() bool {
	return cfg.SendGridAPIKey != "" && cfg.SendGridFromEmail != ""
}

func (cfg *Config) SMSEnabled() bool {
	return cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" && cfg.TwilioFromNumber != ""
}

// Location returns the zone bookings are interpreted in. Validate guarantees it loads.
func (cfg *Config) Location() *time.Location {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (cfg *Config) NewLogger(service string) *logger.Logger {
	return logger.New(logger.Config{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		AddSource: cfg.Env != "production",
		Service:   service,
	})
}

func (cfg *Config) LogConfiguration(log *logger.Logger) {
	log.Info("Configuration loaded successfully",
		"env", cfg.Env,
		"port", cfg.Port,
		"database_url", redactDatabaseURL(cfg.DatabaseURL),
		"db_max_open_conns", cfg.DBMaxOpenConns,
		"db_max_idle_conns", cfg.DBMaxIdleConns,
		"db_conn_max_lifetime", cfg.DBConnMaxLifetime,
		"jwt_ttl", cfg.JWTTTL,
		"request_timeout", cfg.RequestTimeout,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"max_request_size", cfg.MaxRequestSize,
		"cors_allowed_origins", cfg.CORSAllowedOrigins,
		"currency", cfg.Currency,
		"timezone", cfg.Timezone,
		"payments_enabled", cfg.PaymentsEnabled(),
		"email_enabled", cfg.EmailEnabled(),
		"sms_enabled", cfg.SMSEnabled(),
		"jobs_enabled", cfg.JobsEnabled,
		"jobs_schedule", cfg.JobsSchedule,
		"pending_booking_ttl", cfg.PendingBookingTTL,
	)
}

func redactDatabaseURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "***"
	}
	if u.User != nil {
		u.User = url.UserPassword(u.User.Username(), "***")
	}
	return u.Redacted()
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvList(key, fallback string) []string {
	raw := getEnvStr(key, fallback)
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
