package handlers

import (
	"net/http"

	"github.com/sakura-comic/backend/internal/api/response"
	"github.com/sakura-comic/backend/internal/auth"
)

type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// loginRequest has no required tags: empty credentials fail like wrong ones.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginData struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req, "username and password are required"); err != nil {
		response.Error(w, r, err)
		return
	}
	if err := h.svc.Register(r.Context(), req.Username, req.Password); err != nil {
		response.Error(w, r, err)
		return
	}
	response.Message(w, "registered successfully")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req, ""); err != nil {
		response.Error(w, r, err)
		return
	}
	token, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Envelope{
		Code:  http.StatusOK,
		Msg:   "login successful",
		Token: token,
		Data:  loginData{Token: token},
	})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	profile, err := h.svc.GetCurrentUser(r.Context(), id)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, profile)
}
