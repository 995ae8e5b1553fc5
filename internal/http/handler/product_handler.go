package handler

import (
	"net/http"

	"github.com/shoppinh/jp-order-BE/internal/http/middleware"
	"github.com/shoppinh/jp-order-BE/internal/http/response"
	"github.com/shoppinh/jp-order-BE/internal/service"
)

type ProductHandler struct {
	products   *service.ProductService
	categories *service.CategoryService
}

func NewProductHandler(products *service.ProductService, categories *service.CategoryService) *ProductHandler {
	return &ProductHandler{products: products, categories: categories}
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateProductInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	actor := middleware.CurrentUser(r.Context())
	product, err := h.products.Create(r.Context(), req, actor.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	product, err := h.products.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, product)
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q, _, err := listRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	page, err := h.products.List(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	response.List(w, page)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req service.UpdateProductInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	actor := middleware.CurrentUser(r.Context())
	product, err := h.products.Update(r.Context(), id, req, actor.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.products.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *ProductHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req service.CategoryInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	actor := middleware.CurrentUser(r.Context())
	category, err := h.categories.Create(r.Context(), req, actor.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, category)
}

func (h *ProductHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	category, err := h.categories.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, category)
}

func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	q, _, err := listRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	page, err := h.categories.List(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	response.List(w, page)
}

func (h *ProductHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req service.CategoryInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	actor := middleware.CurrentUser(r.Context())
	category, err := h.categories.Update(r.Context(), id, req, actor.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, category)
}

func (h *ProductHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.categories.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]bool{"success": true})
}
