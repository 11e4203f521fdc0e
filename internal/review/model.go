package review

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID          uuid.UUID
	UserID      uint
	UserName    string
	ProductID   uuid.UUID
	Rating      int
	Title       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateReviewInput struct {
	ProductID   uuid.UUID `json:"productId"`
	Rating      int       `json:"rating"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}

func (in CreateReviewInput) Validate() error {
	switch {
	case in.ProductID == uuid.Nil:
		return fmt.Errorf("%w: productId is required", ErrInvalidInput)
	case in.Rating < 1 || in.Rating > 5:
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	case len([]rune(strings.TrimSpace(in.Title))) < 3:
		return fmt.Errorf("%w: title must be at least 3 characters", ErrInvalidInput)
	case len([]rune(strings.TrimSpace(in.Description))) < 3:
		return fmt.Errorf("%w: description must be at least 3 characters", ErrInvalidInput)
	}
	return nil
}

type ListResult struct {
	Items      []Review
	Total      int64
	TotalPages int
}
