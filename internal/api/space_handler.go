package api

import (
	"net/http"

	"coworking/internal/entities"
	"coworking/internal/logger"
	"coworking/internal/response"
	"coworking/internal/service"
)

type SpaceHandler struct {
	base
	Service service.SpaceService
}

func NewSpaceHandler(svc service.SpaceService, log *logger.Logger) *SpaceHandler {
	return &SpaceHandler{base: base{log: log}, Service: svc}
}

func (h *SpaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req entities.SpaceRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	space, err := h.Service.Create(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.Created(w, space, "Space created successfully")
}

func (h *SpaceHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := spaceFilter(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	spaces, err := h.Service.List(r.Context(), filter)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.Collection(w, "spaces", spaces)
}

func spaceFilter(r *http.Request) (entities.SpaceFilter, error) {
	var (
		f   entities.SpaceFilter
		err error
	)
	if f.LocationID, err = queryInt(r, "location_id"); err != nil {
		return f, err
	}
	if f.SpaceTypeID, err = queryInt(r, "space_type_id"); err != nil {
		return f, err
	}
	if f.MinCapacity, err = queryInt(r, "min_capacity"); err != nil {
		return f, err
	}
	if f.Active, err = queryBool(r, "active"); err != nil {
		return f, err
	}
	return f, nil
}

func (h *SpaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	space, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.Success(w, space, "")
}

func (h *SpaceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var upd entities.SpaceUpdate
	if err := decodeJSON(r, &upd); err != nil {
		h.fail(w, r, err)
		return
	}
	space, err := h.Service.Update(r.Context(), id, upd)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.Success(w, space, "Space updated successfully")
}

func (h *SpaceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	response.Success(w, nil, "Space deleted successfully")
}

func (h *SpaceHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	services, err := h.Service.ListServices(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.Collection(w, "services", services)
}

func (h *SpaceHandler) AssociateServices(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req entities.SpaceServicesRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	services, err := h.Service.AssociateServices(r.Context(), id, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.Created(w, services, "Services associated successfully")
}

func (h *SpaceHandler) DissociateService(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	serviceID, err := pathID(r, "serviceId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.Service.DissociateService(r.Context(), id, serviceID); err != nil {
		h.fail(w, r, err)
		return
	}
	response.Success(w, nil, "Service removed from space")
}
