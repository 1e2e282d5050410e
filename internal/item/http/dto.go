package http

import (
	"time"

	"github.com/Kirillkgr/shareit/internal/item"
)

// CreateItemRequest defines the payload for listing a new item.
// Available is a pointer so that an absent flag fails binding instead of
// silently defaulting to false.
type CreateItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
}

// UpdateItemRequest defines fields allowed to be updated via PATCH /items/:id.
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// CreateCommentRequest defines the payload for commenting on an item.
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// ItemResponse is the shape of item data returned in API responses.
type ItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
}

// ItemDetailResponse extends ItemResponse with booking marks and comments.
type ItemDetailResponse struct {
	ItemResponse
	LastBooking *time.Time        `json:"lastBooking,omitempty"`
	NextBooking *time.Time        `json:"nextBooking,omitempty"`
	Comments    []CommentResponse `json:"comments"`
}

// CommentResponse is the shape of a comment in API responses.
type CommentResponse struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

func NewItemResponse(i *item.Item) ItemResponse {
	return ItemResponse{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Available:   i.Available,
		OwnerID:     i.OwnerID,
	}
}

func NewItemDetailResponse(d *item.Detail) ItemDetailResponse {
	comments := make([]CommentResponse, 0, len(d.Comments))
	for _, c := range d.Comments {
		comments = append(comments, NewCommentResponse(c))
	}

	return ItemDetailResponse{
		ItemResponse: NewItemResponse(&d.Item),
		LastBooking:  d.LastBooking,
		NextBooking:  d.NextBooking,
		Comments:     comments,
	}
}

func NewCommentResponse(c *item.Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		Text:       c.Text,
		AuthorName: c.AuthorName,
		Created:    c.CreatedAt,
	}
}
