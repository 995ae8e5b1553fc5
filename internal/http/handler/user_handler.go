package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shoppinh/jp-order-BE/internal/http/middleware"
	"github.com/shoppinh/jp-order-BE/internal/http/response"
	"github.com/shoppinh/jp-order-BE/internal/service"
)

type UserHandler struct {
	users *service.UserService
	roles *service.RoleService
}

func NewUserHandler(users *service.UserService, roles *service.RoleService) *UserHandler {
	return &UserHandler{users: users, roles: roles}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	var actorID uint
	if actor := middleware.CurrentUser(r.Context()); actor != nil {
		actorID = actor.ID
	}
	user, err := h.users.Register(r.Context(), req, actorID)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, user)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, user)
}

// List serves the admin user listing. Besides the query specification the
// body may carry a role filter: {"role": "ACCOUNTANT", ...}.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	q, body, err := listRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var filters struct {
		Role string `json:"role"`
	}
	if len(body) > 0 {
		_ = json.Unmarshal(body, &filters)
	}
	page, err := h.users.List(r.Context(), q, filters.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	response.List(w, page)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req service.UpdateUserInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	actor := middleware.CurrentUser(r.Context())
	user, err := h.users.Update(r.Context(), id, req, actor.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.users.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

// UpsertRoles bulk-creates or reactivates roles.
func (h *UserHandler) UpsertRoles(w http.ResponseWriter, r *http.Request) {
	var req []service.RoleInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	actor := middleware.CurrentUser(r.Context())
	roles, err := h.roles.Upsert(r.Context(), req, actor.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, roles)
}

func (h *UserHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roles.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, roles)
}
