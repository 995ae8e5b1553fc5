package handler

import (
	"net/http"

	"github.com/shoppinh/jp-order-BE/internal/domain"
	"github.com/shoppinh/jp-order-BE/internal/http/middleware"
	"github.com/shoppinh/jp-order-BE/internal/http/response"
	"github.com/shoppinh/jp-order-BE/internal/service"
)

type OrderHandler struct {
	orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateOrderInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	user := middleware.CurrentUser(r.Context())
	order, err := h.orders.Create(r.Context(), user.ID, req, user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	order, err := h.orders.Get(r.Context(), id, scopeUserID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, order)
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	q, _, err := listRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	page, err := h.orders.List(r.Context(), q, scopeUserID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	response.List(w, page)
}

type orderStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req orderStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	actor := middleware.CurrentUser(r.Context())
	order, err := h.orders.UpdateStatus(r.Context(), id, req.Status, actor.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, order)
}

// scopeUserID returns the owner filter for order reads: zero (no filter)
// for admins, the caller's own id otherwise.
func scopeUserID(r *http.Request) uint {
	user := middleware.CurrentUser(r.Context())
	if user.Role == domain.RoleSuperUser {
		return 0
	}
	return user.ID
}
