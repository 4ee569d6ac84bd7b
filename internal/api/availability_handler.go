package api

import (
	"net/http"

	"coworking/internal/entities"
	"coworking/internal/logger"
	"coworking/internal/response"
	"coworking/internal/service"
)

type AvailabilityHandler struct {
	base
	Service service.AvailabilityService
}

func NewAvailabilityHandler(svc service.AvailabilityService, log *logger.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{base: base{log: log}, Service: svc}
}

func (h *AvailabilityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req entities.AvailabilityRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	block, err := h.Service.Create(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.Created(w, block, "Availability created successfully")
}

func (h *AvailabilityHandler) List(w http.ResponseWriter, r *http.Request) {
	spaceID, err := queryInt(r, "space_id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	filter := entities.AvailabilityFilter{SpaceID: spaceID, Date: r.URL.Query().Get("date")}
	blocks, err := h.Service.List(r.Context(), filter)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.Collection(w, "availability", blocks)
}

func (h *AvailabilityHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	block, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.Success(w, block, "")
}

func (h *AvailabilityHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var upd entities.AvailabilityUpdate
	if err := decodeJSON(r, &upd); err != nil {
		h.fail(w, r, err)
		return
	}
	block, err := h.Service.Update(r.Context(), id, upd)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.Success(w, block, "Availability updated successfully")
}

func (h *AvailabilityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	response.Success(w, nil, "Availability deleted successfully")
}
