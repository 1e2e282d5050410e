package booking

import (
	"net/http"
	"time"

	"github.com/Kirillkgr/shareit/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrUserNotFound     = apperror.New(http.StatusNotFound, "user not found")
	ErrAccessDenied     = apperror.New(http.StatusForbidden, "access to the booking is denied")
	ErrItemUnavailable  = apperror.New(http.StatusBadRequest, "item is not available for booking")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrUnknownState     = apperror.New(http.StatusBadRequest, "unknown search state")
)

type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	// StatusCanceled exists in stored data but no operation moves a booking
	// into it.
	StatusCanceled Status = "CANCELED"
)

// Booking is a time-bounded request by a booker for another user's item.
// ItemName, ItemOwnerID and BookerName are joined projections kept on the
// record so that access checks and responses need no extra lookups.
type Booking struct {
	ID          int64
	ItemID      int64
	ItemName    string
	ItemOwnerID int64
	BookerID    int64
	BookerName  string
	Start       time.Time
	End         time.Time
	Status      Status
	CreatedAt   time.Time
}

// Filter defines parameters for listing bookings. Zero values mean
// "no restriction"; at most one of the time predicates is set at a time.
type Filter struct {
	BookerID int64
	OwnerID  int64
	ItemID   int64
	Status   Status

	EndBefore  *time.Time
	StartAfter *time.Time
	// CurrentAt applies the legacy "current" window; see legacyCurrentWindow.
	CurrentAt *time.Time
}
