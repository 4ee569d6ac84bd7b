package api

import (
	"net/http"

	"coworking/internal/entities"
	"coworking/internal/logger"
	"coworking/internal/response"
	"coworking/internal/service"
)

type LocationHandler struct {
	base
	Service service.LocationService
}

func NewLocationHandler(svc service.LocationService, log *logger.Logger) *LocationHandler {
	return &LocationHandler{base: base{log: log}, Service: svc}
}

func (h *LocationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req entities.LocationRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	l, err := h.Service.Create(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.Created(w, l, "Location created successfully")
}

func (h *LocationHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := entities.LocationFilter{City: r.URL.Query().Get("city")}
	locations, err := h.Service.List(r.Context(), filter)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.Collection(w, "locations", locations)
}

func (h *LocationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	l, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.Success(w, l, "")
}

func (h *LocationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var upd entities.LocationUpdate
	if err := decodeJSON(r, &upd); err != nil {
		h.fail(w, r, err)
		return
	}
	l, err := h.Service.Update(r.Context(), id, upd)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.Success(w, l, "Location updated successfully")
}

func (h *LocationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	response.Success(w, nil, "Location deleted successfully")
}

func (h *LocationHandler) ListSpaces(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	spaces, err := h.Service.ListSpaces(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.Collection(w, "spaces", spaces)
}
