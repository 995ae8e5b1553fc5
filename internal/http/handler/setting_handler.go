package handler

import (
	"net/http"

	"github.com/shoppinh/jp-order-BE/internal/http/middleware"
	"github.com/shoppinh/jp-order-BE/internal/http/response"
	"github.com/shoppinh/jp-order-BE/internal/service"
)

type SettingHandler struct {
	settings *service.SettingService
}

func NewSettingHandler(settings *service.SettingService) *SettingHandler {
	return &SettingHandler{settings: settings}
}

func (h *SettingHandler) Get(w http.ResponseWriter, r *http.Request) {
	setting, err := h.settings.Current(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, setting)
}

func (h *SettingHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req service.SettingInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	actor := middleware.CurrentUser(r.Context())
	setting, err := h.settings.Update(r.Context(), req, actor.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, setting)
}
