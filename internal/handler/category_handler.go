package handler

import (
	"net/http"

	"emedica-be/internal/category"
	"emedica-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type categoryListResponse struct {
	Data       []category.Category `json:"data"`
	Total      int64               `json:"total"`
	TotalPages int                 `json:"totalPages"`
	Page       int                 `json:"page"`
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	page, limit := utils.ParsePagination(r)

	res, err := h.CategorySvc.List(r.Context(), r.URL.Query().Get("filter"), page, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, categoryListResponse{
		Data:       res.Items,
		Total:      res.Total,
		TotalPages: res.TotalPages,
		Page:       res.Page,
	})
}

func (h *Handler) ListCategoryBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.CategorySvc.ListBrands(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, brands)
}
