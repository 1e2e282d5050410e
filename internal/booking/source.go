package booking

import (
	"context"

	"github.com/Kirillkgr/shareit/internal/item"
)

// WindowSource exposes booking intervals to the item module, which consumes
// them for detail-view annotation and the comment eligibility check.
type WindowSource struct {
	repo Repository
}

func NewWindowSource(repo Repository) *WindowSource {
	return &WindowSource{repo: repo}
}

func (s *WindowSource) WindowsByItem(ctx context.Context, itemID int64) ([]item.Window, error) {
	bookings, err := s.repo.List(ctx, Filter{ItemID: itemID})
	if err != nil {
		return nil, err
	}
	return toWindows(bookings), nil
}

func (s *WindowSource) WindowsByBookerAndItem(ctx context.Context, bookerID, itemID int64) ([]item.Window, error) {
	bookings, err := s.repo.List(ctx, Filter{BookerID: bookerID, ItemID: itemID})
	if err != nil {
		return nil, err
	}
	return toWindows(bookings), nil
}

func toWindows(bookings []*Booking) []item.Window {
	windows := make([]item.Window, 0, len(bookings))
	for _, b := range bookings {
		windows = append(windows, item.Window{Start: b.Start, End: b.End})
	}
	return windows
}

var _ item.BookingSource = (*WindowSource)(nil)
