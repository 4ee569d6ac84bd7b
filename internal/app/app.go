package app

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"coworking/internal/api"
	"coworking/internal/auth"
	"coworking/internal/config"
	"coworking/internal/db"
	"coworking/internal/logger"
	"coworking/internal/repository"
	"coworking/internal/service"
	"coworking/internal/validator"
)

// Components holds everything built on top of a database connection.
type Components struct {
	Tokens   *auth.TokenManager
	Services api.Services
	Jobs     *service.JobService
	Notifier *service.Notifier
}

// Build wires repositories and services. Optional integrations stay nil when
// their credentials are missing.
func Build(conn *sql.DB, cfg *config.Config, log *logger.Logger) *Components {
	v := validator.New()
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	users := repository.NewUserRepository(conn)
	locations := repository.NewLocationRepository(conn)
	spaceTypes := repository.NewSpaceTypeRepository(conn)
	extras := repository.NewAdditionalServiceRepository(conn)
	spaces := repository.NewSpaceRepository(conn)
	availability := repository.NewAvailabilityRepository(conn)
	bookings := repository.NewBookingRepository(conn)
	payments := repository.NewPaymentRepository(conn)

	var gateway service.PaymentGateway
	if cfg.PaymentsEnabled() {
		gateway = service.NewStripeService(cfg.StripeSecretKey, cfg.StripeWebhookSecret, cfg.StripeSuccessURL, cfg.StripeCancelURL)
		log.Info("Stripe payments enabled")
	}

	var email service.EmailSender
	if cfg.EmailEnabled() {
		email = service.NewSendGridSender(cfg.SendGridAPIKey, cfg.SendGridFromEmail, cfg.SendGridFromName, log)
	}
	var sms service.SMSSender
	if cfg.SMSEnabled() {
		sms = service.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, log)
	}
	notifier := service.NewNotifier(email, sms, cfg.Currency, log)

	return &Components{
		Tokens: tokens,
		Services: api.Services{
			Users:              service.NewUserService(users, tokens, v),
			Locations:          service.NewLocationService(locations, spaces, v),
			SpaceTypes:         service.NewSpaceTypeService(spaceTypes, v),
			Spaces:             service.NewSpaceService(spaces, locations, spaceTypes, extras, v),
			Availability:       service.NewAvailabilityService(availability, spaces, v),
			AdditionalServices: service.NewAdditionalServiceService(extras, v),
			Bookings: service.NewBookingService(service.BookingDeps{
				Spaces:       spaces,
				Availability: availability,
				Bookings:     bookings,
				Services:     extras,
				Users:        users,
				Payments:     payments,
				Gateway:      gateway,
				Notifier:     notifier,
				Validator:    v,
				Log:          log,
				Location:     cfg.Location(),
				Currency:     cfg.Currency,
			}),
			Payments: service.NewPaymentService(gateway, payments, bookings, users, notifier, log),
		},
		Jobs:     service.NewJobService(repository.NewJobRepository(conn), cfg.Location(), cfg.PendingBookingTTL, log),
		Notifier: notifier,
	}
}

// OpenDatabase connects with the configured pool settings and applies the schema.
func OpenDatabase(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	conn, err := db.Open(ctx, db.PoolConfig{
		URL:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		ConnectTimeout:  cfg.DBConnectTimeout,
	})
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx, conn); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

type Application struct {
	cfg        *config.Config
	log        *logger.Logger
	db         *sql.DB
	server     *http.Server
	scheduler  *cron.Cron
	components *Components
}

func New(conn *sql.DB, cfg *config.Config, log *logger.Logger) (*Application, error) {
	c := Build(conn, cfg, log)

	handler := api.NewRouter(c.Services, api.Options{
		Tokens:         c.Tokens,
		DB:             conn,
		Log:            log,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RequestTimeout: cfg.RequestTimeout,
		MaxRequestSize: int64(cfg.MaxRequestSize),
	})

	a := &Application{
		cfg:        cfg,
		log:        log,
		db:         conn,
		components: c,
		server: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
	}

	if cfg.JobsEnabled {
		s, err := service.NewScheduler(c.Jobs, cfg.JobsSchedule, log)
		if err != nil {
			return nil, err
		}
		a.scheduler = s
	}

	log.Info("HTTP server configured", "port", cfg.Port)
	return a, nil
}

// Run serves until the process receives SIGINT or SIGTERM.
func (a *Application) Run() {
	serverErrors := make(chan error, 1)

	go func() {
		a.log.Info("Starting HTTP server", "address", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	if a.scheduler != nil {
		a.scheduler.Start()
		a.log.Info("Booking jobs scheduled", "schedule", a.cfg.JobsSchedule)
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			a.log.Fatal("HTTP server failed", "error", err)
		}

	case sig := <-shutdown:
		a.log.Info("Shutdown signal received", "signal", sig)
		a.gracefulShutdown()
	}
}

func (a *Application) gracefulShutdown() {
	a.log.Info("Starting graceful shutdown...")

	if a.scheduler != nil {
		a.log.Info("Stopping booking jobs...")
		<-a.scheduler.Stop().Done()
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.log.Error("Server shutdown failed", "error", err)
		if err := a.server.Close(); err != nil {
			a.log.Fatal("Could not stop server gracefully", "error", err)
		}
	}

	a.components.Notifier.Wait()

	if err := a.db.Close(); err != nil {
		a.log.Error("Failed to close database", "error", err)
	}
	a.log.Info("Server stopped gracefully")
}
