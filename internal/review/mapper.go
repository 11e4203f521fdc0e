package review

import "time"

type ReviewResponse struct {
	ID          string `json:"id"`
	UserID      uint   `json:"userId"`
	UserName    string `json:"userName,omitempty"`
	ProductID   string `json:"productId"`
	Rating      int    `json:"rating"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
}

type ReviewListResponse struct {
	Data       []ReviewResponse `json:"data"`
	Total      int64            `json:"total"`
	TotalPages int              `json:"totalPages"`
}

func ToResponse(r *Review) ReviewResponse {
	return ReviewResponse{
		ID:          r.ID.String(),
		UserID:      r.UserID,
		UserName:    r.UserName,
		ProductID:   r.ProductID.String(),
		Rating:      r.Rating,
		Title:       r.Title,
		Description: r.Description,
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
	}
}

func ToListResponse(res *ListResult) ReviewListResponse {
	data := make([]ReviewResponse, 0, len(res.Items))
	for i := range res.Items {
		data = append(data, ToResponse(&res.Items[i]))
	}
	return ReviewListResponse{Data: data, Total: res.Total, TotalPages: res.TotalPages}
}
