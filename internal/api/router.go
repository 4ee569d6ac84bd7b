package api

import (
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"coworking/internal/auth"
	"coworking/internal/db"
	apperrors "coworking/internal/errors"
	"coworking/internal/logger"
	"coworking/internal/middleware"
	"coworking/internal/response"
	"coworking/internal/service"
)

const (
	defaultRequestTimeout = 30 * time.Second
	defaultMaxRequestSize = 1 << 20
)

type Services struct {
	Users              service.UserService
	Locations          service.LocationService
	SpaceTypes         service.SpaceTypeService
	Spaces             service.SpaceService
	Availability       service.AvailabilityService
	AdditionalServices service.AdditionalServiceService
	Bookings           service.BookingService
	Payments           service.PaymentService
}

type Options struct {
	Tokens         *auth.TokenManager
	DB             Pinger
	Log            *logger.Logger
	AllowedOrigins []string
	RequestTimeout time.Duration
	MaxRequestSize int64
}

// NewRouter wires every route and wraps the result in the shared middleware chain.
func NewRouter(svc Services, opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	if opts.MaxRequestSize <= 0 {
		opts.MaxRequestSize = defaultMaxRequestSize
	}

	authH := NewAuthHandler(svc.Users, log)
	userH := NewUserHandler(svc.Users, log)
	locationH := NewLocationHandler(svc.Locations, log)
	spaceTypeH := NewSpaceTypeHandler(svc.SpaceTypes, log)
	spaceH := NewSpaceHandler(svc.Spaces, log)
	availabilityH := NewAvailabilityHandler(svc.Availability, log)
	serviceH := NewAdditionalServiceHandler(svc.AdditionalServices, log)
	bookingH := NewBookingHandler(svc.Bookings, log)
	paymentH := NewPaymentHandler(svc.Payments, log)
	healthH := NewHealthHandler(opts.DB, log)

	authenticate := auth.Authenticate(opts.Tokens)
	requireAdmin := auth.RequireRole(db.RoleAdmin)
	authed := func(h http.HandlerFunc) http.Handler {
		return authenticate(h)
	}
	adminOnly := func(h http.HandlerFunc) http.Handler {
		return authenticate(requireAdmin(h))
	}

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, apperrors.NewHTTPError(http.StatusNotFound, "Route not found"))
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, apperrors.NewHTTPError(http.StatusMethodNotAllowed, "Method not allowed"))
	})

	r.HandleFunc("/health", healthH.Health).Methods(http.MethodGet)
	r.HandleFunc("/ready", healthH.Ready).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeValidation(log))

	// Auth
	api.HandleFunc("/auth/register", authH.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authH.Login).Methods(http.MethodPost)
	api.Handle("/auth/me", authed(authH.Me)).Methods(http.MethodGet)

	// Users
	api.Handle("/users", adminOnly(userH.List)).Methods(http.MethodGet)
	api.Handle("/users/{id:[0-9]+}", authed(userH.Get)).Methods(http.MethodGet)
	api.Handle("/users/{id:[0-9]+}", authed(userH.Update)).Methods(http.MethodPut)
	api.Handle("/users/{id:[0-9]+}", authed(userH.Delete)).Methods(http.MethodDelete)
	api.Handle("/users/{id:[0-9]+}/password", authed(userH.ChangePassword)).Methods(http.MethodPut)

	// Locations
	api.HandleFunc("/locations", locationH.List).Methods(http.MethodGet)
	api.Handle("/locations", adminOnly(locationH.Create)).Methods(http.MethodPost)
	api.HandleFunc("/locations/{id:[0-9]+}", locationH.Get).Methods(http.MethodGet)
	api.Handle("/locations/{id:[0-9]+}", adminOnly(locationH.Update)).Methods(http.MethodPut)
	api.Handle("/locations/{id:[0-9]+}", adminOnly(locationH.Delete)).Methods(http.MethodDelete)
	api.HandleFunc("/locations/{id:[0-9]+}/spaces", locationH.ListSpaces).Methods(http.MethodGet)

	// Space types
	api.HandleFunc("/space-types", spaceTypeH.List).Methods(http.MethodGet)
	api.Handle("/space-types", adminOnly(spaceTypeH.Create)).Methods(http.MethodPost)
	api.HandleFunc("/space-types/{id:[0-9]+}", spaceTypeH.Get).Methods(http.MethodGet)
	api.Handle("/space-types/{id:[0-9]+}", adminOnly(spaceTypeH.Update)).Methods(http.MethodPut)
	api.Handle("/space-types/{id:[0-9]+}", adminOnly(spaceTypeH.Delete)).Methods(http.MethodDelete)

	// Spaces
	api.HandleFunc("/spaces", spaceH.List).Methods(http.MethodGet)
	api.Handle("/spaces", adminOnly(spaceH.Create)).Methods(http.MethodPost)
	api.HandleFunc("/spaces/{id:[0-9]+}", spaceH.Get).Methods(http.MethodGet)
	api.Handle("/spaces/{id:[0-9]+}", adminOnly(spaceH.Update)).Methods(http.MethodPut)
	api.Handle("/spaces/{id:[0-9]+}", adminOnly(spaceH.Delete)).Methods(http.MethodDelete)
	api.HandleFunc("/spaces/{id:[0-9]+}/services", spaceH.ListServices).Methods(http.MethodGet)
	api.Handle("/spaces/{id:[0-9]+}/services", adminOnly(spaceH.AssociateServices)).Methods(http.MethodPost)
	api.Handle("/spaces/{id:[0-9]+}/services/{serviceId:[0-9]+}", adminOnly(spaceH.DissociateService)).Methods(http.MethodDelete)

	// Availability
	api.HandleFunc("/availability", availabilityH.List).Methods(http.MethodGet)
	api.Handle("/availability", adminOnly(availabilityH.Create)).Methods(http.MethodPost)
	api.HandleFunc("/availability/{id:[0-9]+}", availabilityH.Get).Methods(http.MethodGet)
	api.Handle("/availability/{id:[0-9]+}", adminOnly(availabilityH.Update)).Methods(http.MethodPut)
	api.Handle("/availability/{id:[0-9]+}", adminOnly(availabilityH.Delete)).Methods(http.MethodDelete)

	// Additional services
	api.HandleFunc("/services", serviceH.List).Methods(http.MethodGet)
	api.Handle("/services", adminOnly(serviceH.Create)).Methods(http.MethodPost)
	api.HandleFunc("/services/{id:[0-9]+}", serviceH.Get).Methods(http.MethodGet)
	api.Handle("/services/{id:[0-9]+}", adminOnly(serviceH.Update)).Methods(http.MethodPut)
	api.Handle("/services/{id:[0-9]+}", adminOnly(serviceH.Delete)).Methods(http.MethodDelete)

	// Bookings
	api.HandleFunc("/bookings/check", bookingH.Check).Methods(http.MethodPost)
	api.Handle("/bookings", authed(bookingH.Create)).Methods(http.MethodPost)
	api.Handle("/bookings", authed(bookingH.List)).Methods(http.MethodGet)
	api.Handle("/bookings/{id:[0-9]+}", authed(bookingH.Get)).Methods(http.MethodGet)
	api.Handle("/bookings/{id:[0-9]+}/cancel", authed(bookingH.Cancel)).Methods(http.MethodPatch)
	api.Handle("/bookings/{id:[0-9]+}/confirm", adminOnly(bookingH.Confirm)).Methods(http.MethodPatch)
	api.Handle("/bookings/{id:[0-9]+}", adminOnly(bookingH.Delete)).Methods(http.MethodDelete)

	// Payments
	api.HandleFunc("/payments/webhook", paymentH.Webhook).Methods(http.MethodPost)
	api.Handle("/payments/session", authed(paymentH.GetBySession)).Methods(http.MethodGet)

	var h http.Handler = r
	h = middleware.Recovery(log)(h)
	h = middleware.MaxBodySize(opts.MaxRequestSize)(h)
	h = middleware.RequestTimeout(opts.RequestTimeout)(h)
	h = middleware.RequestLogging(log)(h)
	h = handlers.CompressHandler(h)
	h = handlers.CORS(
		handlers.AllowedOrigins(opts.AllowedOrigins),
		handlers.AllowedMethods([]string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", middleware.RequestIDHeader}),
		handlers.ExposedHeaders([]string{middleware.RequestIDHeader}),
	)(h)
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(log), handlers.PrintRecoveryStack(true))(h)
	return h
}
