package http

import (
	"time"

	"github.com/Kirillkgr/shareit/internal/booking"
)

// CreateBookingRequest defines the payload for requesting a booking.
type CreateBookingRequest struct {
	ItemID int64     `json:"itemId" binding:"required"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

// Validate performs custom validation for CreateBookingRequest.
func (r *CreateBookingRequest) Validate() error {
	if !r.End.After(r.Start) {
		return booking.ErrInvalidTimeRange
	}
	return nil
}

// ItemTag is a brief representation of the booked item.
type ItemTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BookerTag is a brief representation of the user who placed the booking.
type BookerTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BookingResponse is the shape of booking data returned in API responses.
type BookingResponse struct {
	ID     int64     `json:"id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status string    `json:"status"`
	Booker BookerTag `json:"booker"`
	Item   ItemTag   `json:"item"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: string(b.Status),
		Booker: BookerTag{ID: b.BookerID, Name: b.BookerName},
		Item:   ItemTag{ID: b.ItemID, Name: b.ItemName},
	}
}
