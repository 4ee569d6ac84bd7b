package api

import (
	"net/http"

	"coworking/internal/entities"
	"coworking/internal/logger"
	"coworking/internal/response"
	"coworking/internal/service"
)

type SpaceTypeHandler struct {
	base
	Service service.SpaceTypeService
}

func NewSpaceTypeHandler(svc service.SpaceTypeService, log *logger.Logger) *SpaceTypeHandler {
	return &SpaceTypeHandler{base: base{log: log}, Service: svc}
}

func (h *SpaceTypeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req entities.SpaceTypeRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	st, err := h.Service.Create(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.Created(w, st, "Space type created successfully")
}

func (h *SpaceTypeHandler) List(w http.ResponseWriter, r *http.Request) {
	types, err := h.Service.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.Collection(w, "space_types", types)
}

func (h *SpaceTypeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	st, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.Success(w, st, "")
}

func (h *SpaceTypeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var upd entities.SpaceTypeUpdate
	if err := decodeJSON(r, &upd); err != nil {
		h.fail(w, r, err)
		return
	}
	st, err := h.Service.Update(r.Context(), id, upd)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.Success(w, st, "Space type updated successfully")
}

func (h *SpaceTypeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	response.Success(w, nil, "Space type deleted successfully")
}
