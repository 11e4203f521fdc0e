package handler

import (
	"net/http"

	"emedica-be/internal/product"
	"emedica-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	opts, err := product.ParseListOptions(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.ProductSvc.GetList(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, product.ToListResponse(res))
}

func (h *Handler) FeaturedProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.ProductSvc.GetFeatured(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, product.ToResponses(products))
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.ProductSvc.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, product.ToResponse(p))
}

func (h *Handler) GetProductBySlug(w http.ResponseWriter, r *http.Request) {
	p, err := h.ProductSvc.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, product.ToResponse(p))
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var input product.CreateProductInput
	if err := decode(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.ProductSvc.Create(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, product.ToResponse(p))
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var input product.UpdateProductInput
	if err := decode(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.ProductSvc.Update(r.Context(), id, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, product.ToResponse(p))
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.ProductSvc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
