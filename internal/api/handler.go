package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"coworking/internal/auth"
	apperrors "coworking/internal/errors"
	"coworking/internal/logger"
	"coworking/internal/middleware"
	"coworking/internal/response"
)

// base carries what every handler needs to report failures.
type base struct {
	log *logger.Logger
}

// fail writes err as an envelope. Server-side failures are logged with their cause.
func (b base) fail(w http.ResponseWriter, r *http.Request, err error) {
	if code := apperrors.StatusCode(err); code >= http.StatusInternalServerError {
		b.log.Error("Request failed",
			"request_id", middleware.RequestID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", code,
			"error", err,
		)
	}
	response.Error(w, err)
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return apperrors.NewHTTPError(http.StatusRequestEntityTooLarge, "Request body too large")
		case errors.Is(err, io.EOF):
			return apperrors.BadRequest("Request body is required")
		default:
			return apperrors.BadRequest("Invalid request body")
		}
	}
	return nil
}

func pathID(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || id <= 0 {
		return 0, apperrors.BadRequest("Invalid %s", name)
	}
	return id, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apperrors.BadRequest("Query parameter %s must be a non-negative integer", name)
	}
	return n, nil
}

func queryBool(r *http.Request, name string) (*bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperrors.BadRequest("Query parameter %s must be true or false", name)
	}
	return &b, nil
}

// principal returns the caller set by auth.Authenticate.
func principal(r *http.Request) (auth.Principal, error) {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		return auth.Principal{}, apperrors.Unauthorized("Authentication required")
	}
	return p, nil
}
