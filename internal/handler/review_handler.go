package handler

import (
	"net/http"

	"emedica-be/internal/review"
	"emedica-be/internal/utils"
)

func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var input review.CreateReviewInput
	if err := decode(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	rv, err := h.ReviewSvc.CreateOrUpdate(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, review.ToResponse(rv))
}

func (h *Handler) ListProductReviews(w http.ResponseWriter, r *http.Request) {
	productID, err := uuidParam(r, "productId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, limit := utils.ParsePagination(r)

	res, err := h.ReviewSvc.ListByProduct(r.Context(), productID, page, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, review.ToListResponse(res))
}

func (h *Handler) GetMyReview(w http.ResponseWriter, r *http.Request) {
	productID, err := uuidParam(r, "productId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	rv, err := h.ReviewSvc.GetMine(r.Context(), productID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, review.ToResponse(rv))
}
