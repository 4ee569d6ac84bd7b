package api

import (
	"net/http"

	"coworking/internal/entities"
	"coworking/internal/logger"
	"coworking/internal/response"
	"coworking/internal/service"
)

type AuthHandler struct {
	base
	Service service.UserService
}

func NewAuthHandler(svc service.UserService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{base: base{log: log}, Service: svc}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req entities.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	res, err := h.Service.Register(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.Created(w, res, "User registered successfully")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req entities.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	res, err := h.Service.Login(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.Success(w, res, "Login successful")
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	u, err := h.Service.Get(r.Context(), p, p.UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.Success(w, u, "")
}
