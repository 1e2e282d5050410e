package item

import (
	"context"
	"net/http"
	"time"

	"github.com/Kirillkgr/shareit/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "item not found")
	ErrOwnerNotFound     = apperror.New(http.StatusNotFound, "owner not found")
	ErrAccessDenied      = apperror.New(http.StatusForbidden, "only the owner can edit the item")
	ErrCommentNotAllowed = apperror.New(http.StatusBadRequest, "user has no completed booking for the item")
)

// Item is a thing listed for sharing. Available gates new bookings; the
// booking engine reads it but never mutates it.
type Item struct {
	ID          int64
	OwnerID     int64
	Name        string
	Description string
	Available   bool
	CreatedAt   time.Time
}

// Detail is the item projection served on the detail view: the item itself
// plus booking marks and comments.
type Detail struct {
	Item
	LastBooking *time.Time
	NextBooking *time.Time
	Comments    []*Comment
}

// Comment is feedback left by a user who completed a booking of the item.
type Comment struct {
	ID         int64
	ItemID     int64
	AuthorID   int64
	AuthorName string
	Text       string
	CreatedAt  time.Time
}

// Window is a booking interval as seen by this package. The item module only
// cares about when bookings happen, not who approved them.
type Window struct {
	Start time.Time
	End   time.Time
}

// BookingSource supplies booking intervals for annotation and for the comment
// eligibility check. Implemented by the booking module.
type BookingSource interface {
	WindowsByItem(ctx context.Context, itemID int64) ([]Window, error)
	WindowsByBookerAndItem(ctx context.Context, bookerID, itemID int64) ([]Window, error)
}
