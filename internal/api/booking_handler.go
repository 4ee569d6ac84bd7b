package api

import (
	"net/http"

	"coworking/internal/entities"
	"coworking/internal/logger"
	"coworking/internal/response"
	"coworking/internal/service"
)

type BookingHandler struct {
	base
	Service service.BookingService
}

func NewBookingHandler(svc service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{base: base{log: log}, Service: svc}
}

func (h *BookingHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req entities.BookingRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	res, err := h.Service.Check(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.Success(w, res, res.Message)
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req entities.BookingRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	res, err := h.Service.Create(r.Context(), p, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	msg := "Booking created successfully"
	if res.CheckoutURL != "" {
		msg = "Booking created, complete the payment to confirm it"
	}
	response.Created(w, res, msg)
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	filter, err := bookingFilter(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	bookings, err := h.Service.List(r.Context(), p, filter)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.Collection(w, "bookings", bookings)
}

func bookingFilter(r *http.Request) (entities.BookingFilter, error) {
	var (
		f   entities.BookingFilter
		err error
	)
	if f.SpaceID, err = queryInt(r, "space_id"); err != nil {
		return f, err
	}
	if f.UserID, err = queryInt(r, "user_id"); err != nil {
		return f, err
	}
	q := r.URL.Query()
	f.Status = q.Get("status")
	f.Date = q.Get("date")
	return f, nil
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	b, err := h.Service.Get(r.Context(), p, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.Success(w, b, "")
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	b, err := h.Service.Cancel(r.Context(), p, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.Success(w, b, "Booking cancelled successfully")
}

func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	b, err := h.Service.Confirm(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.Success(w, b, "Booking confirmed successfully")
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	response.Success(w, nil, "Booking deleted successfully")
}
