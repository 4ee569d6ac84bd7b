package api

import (
	"net/http"

	"coworking/internal/entities"
	"coworking/internal/logger"
	"coworking/internal/response"
	"coworking/internal/service"
)

type UserHandler struct {
	base
	Service service.UserService
}

func NewUserHandler(svc service.UserService, log *logger.Logger) *UserHandler {
	return &UserHandler{base: base{log: log}, Service: svc}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.Collection(w, "users", users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
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
	u, err := h.Service.Get(r.Context(), p, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.Success(w, u, "")
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	var upd entities.UserUpdate
	if err := decodeJSON(r, &upd); err != nil {
		h.fail(w, r, err)
		return
	}
	u, err := h.Service.Update(r.Context(), p, id, upd)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.Success(w, u, "User updated successfully")
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
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
	var req entities.ChangePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.Service.ChangePassword(r.Context(), p, id, req); err != nil {
		h.fail(w, r, err)
		return
	}
	response.Success(w, nil, "Password changed successfully")
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
	if err := h.Service.Delete(r.Context(), p, id); err != nil {
		h.fail(w, r, err)
		return
	}
	response.Success(w, nil, "User deleted successfully")
}
