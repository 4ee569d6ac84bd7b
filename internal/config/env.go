package config

const (
	EnvPort = "PORT"
	EnvEnv  = "APP_ENV"

	EnvDatabaseURL       = "DATABASE_URL"
	EnvDBMaxOpenConns    = "DB_MAX_OPEN_CONNS"
	EnvDBMaxIdleConns    = "DB_MAX_IDLE_CONNS"
	EnvDBConnMaxLifetime = "DB_CONN_MAX_LIFETIME"
	EnvDBConnectTimeout  = "DB_CONNECT_TIMEOUT"

	EnvJWTSecret = "JWT_SECRET"
	EnvJWTTTL    = "JWT_TTL"

	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"

	EnvRequestTimeout  = "REQUEST_TIMEOUT"
	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
	EnvMaxRequestSize  = "MAX_REQUEST_SIZE"

	EnvCORSAllowedOrigins = "CORS_ALLOWED_ORIGINS"

	EnvCurrency = "CURRENCY"
	EnvTimezone = "TIMEZONE"

	EnvStripeSecretKey     = "STRIPE_SECRET_KEY"
	EnvStripeWebhookSecret = "STRIPE_WEBHOOK_SECRET"
	EnvStripeSuccessURL    = "STRIPE_SUCCESS_URL"
	EnvStripeCancelURL     = "STRIPE_CANCEL_URL"

	EnvSendGridAPIKey    = "SENDGRID_API_KEY"
	EnvSendGridFromEmail = "SENDGRID_FROM_EMAIL"
	EnvSendGridFromName  = "SENDGRID_FROM_NAME"

	EnvTwilioAccountSID = "TWILIO_ACCOUNT_SID"
	EnvTwilioAuthToken  = "TWILIO_AUTH_TOKEN"
	EnvTwilioFromNumber = "TWILIO_FROM_NUMBER"

	EnvJobsEnabled       = "JOBS_ENABLED"
	EnvJobsSchedule      = "JOBS_SCHEDULE"
	EnvPendingBookingTTL = "PENDING_BOOKING_TTL"
)
