package handler

import (
	"net/http"

	"github.com/shoppinh/jp-order-BE/internal/http/middleware"
	"github.com/shoppinh/jp-order-BE/internal/http/response"
	"github.com/shoppinh/jp-order-BE/internal/service"
)

type AddressHandler struct {
	addresses *service.AddressService
}

func NewAddressHandler(addresses *service.AddressService) *AddressHandler {
	return &AddressHandler{addresses: addresses}
}

func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.AddressInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	user := middleware.CurrentUser(r.Context())
	address, err := h.addresses.Create(r.Context(), user.ID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, address)
}

func (h *AddressHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	user := middleware.CurrentUser(r.Context())
	address, err := h.addresses.Get(r.Context(), id, user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, address)
}

func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	q, _, err := listRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	user := middleware.CurrentUser(r.Context())
	page, err := h.addresses.List(r.Context(), q, user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	response.List(w, page)
}

func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req service.AddressInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	user := middleware.CurrentUser(r.Context())
	address, err := h.addresses.Update(r.Context(), id, user.ID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, address)
}

func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	user := middleware.CurrentUser(r.Context())
	if err := h.addresses.Delete(r.Context(), id, user.ID); err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]bool{"success": true})
}
