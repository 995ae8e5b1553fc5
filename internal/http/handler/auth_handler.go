package handler

import (
	"net/http"

	"github.com/shoppinh/jp-order-BE/internal/http/middleware"
	"github.com/shoppinh/jp-order-BE/internal/http/response"
	"github.com/shoppinh/jp-order-BE/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
	IsRemember bool   `json:"isRemember"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	result, err := h.auth.Login(r.Context(), req.Identifier, req.Password, req.IsRemember)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}

type refreshRequest struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	IsRemember   bool   `json:"isRemember"`
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	result, err := h.auth.Refresh(r.Context(), req.AccessToken, req.RefreshToken, req.IsRemember)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}

// Logout always succeeds, even for tokens without a session record.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.auth.Logout(r.Context(), middleware.BearerToken(r))
	response.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())
	response.JSON(w, http.StatusOK, user)
}
