package response

import (
	"encoding/json"
	"net/http"

	apperrors "coworking/internal/errors"
)

const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

type Envelope struct {
	Status  string                 `json:"status"`
	Results *int                   `json:"results,omitempty"`
	Data    any                    `json:"data,omitempty"`
	Message string                 `json:"message,omitempty"`
	Errors  []apperrors.FieldError `json:"errors,omitempty"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

func Success(w http.ResponseWriter, data any, message string) {
	WriteJSON(w, http.StatusOK, Envelope{Status: StatusSuccess, Data: data, Message: message})
}

func Created(w http.ResponseWriter, data any, message string) {
	WriteJSON(w, http.StatusCreated, Envelope{Status: StatusSuccess, Data: data, Message: message})
}

// Collection writes {"status":"success","results":N,"data":{key:items}}.
func Collection[T any](w http.ResponseWriter, key string, items []T) {
	if items == nil {
		items = []T{}
	}
	n := len(items)
	WriteJSON(w, http.StatusOK, Envelope{
		Status:  StatusSuccess,
		Results: &n,
		Data:    map[string]any{key: items},
	})
}

// Error writes the envelope for err. 4xx responses use status "fail", everything else "error".
// Internal causes never reach the client.
func Error(w http.ResponseWriter, err error) {
	httpErr := apperrors.As(err)
	if httpErr == nil {
		httpErr = apperrors.Internal(err)
	}

	env := Envelope{Status: StatusError, Message: httpErr.Message}
	if httpErr.Code >= 400 && httpErr.Code < 500 {
		env.Status = StatusFail
		env.Errors = httpErr.Fields
	}
	WriteJSON(w, httpErr.Code, env)
}
