package api

import (
	"net/http"

	"coworking/internal/entities"
	"coworking/internal/logger"
	"coworking/internal/response"
	"coworking/internal/service"
)

// AdditionalServiceHandler serves the /api/services catalog.
type AdditionalServiceHandler struct {
	base
	Service service.AdditionalServiceService
}

func NewAdditionalServiceHandler(svc service.AdditionalServiceService, log *logger.Logger) *AdditionalServiceHandler {
	return &AdditionalServiceHandler{base: base{log: log}, Service: svc}
}

func (h *AdditionalServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req entities.ServiceRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	svc, err := h.Service.Create(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.Created(w, svc, "Service created successfully")
}

func (h *AdditionalServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	services, err := h.Service.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.Collection(w, "services", services)
}

func (h *AdditionalServiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	svc, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.Success(w, svc, "")
}

func (h *AdditionalServiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var upd entities.ServiceUpdate
	if err := decodeJSON(r, &upd); err != nil {
		h.fail(w, r, err)
		return
	}
	svc, err := h.Service.Update(r.Context(), id, upd)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.Success(w, svc, "Service updated successfully")
}

func (h *AdditionalServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	response.Success(w, nil, "Service deleted successfully")
}
