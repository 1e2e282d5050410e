package booking

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Kirillkgr/shareit/internal/event"
	"github.com/Kirillkgr/shareit/internal/item"
	"github.com/Kirillkgr/shareit/internal/user"
)

type CreateRequest struct {
	ItemID int64
	Start  time.Time
	End    time.Time
}

// Service defines the booking engine: creation, access-controlled retrieval,
// the approval decision, and temporally classified listings.
type Service interface {
	Create(ctx context.Context, bookerID int64, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, bookingID, requesterID int64) (*Booking, error)
	SetApproval(ctx context.Context, bookingID, ownerID int64, approved bool) (*Booking, error)
	ListForBooker(ctx context.Context, bookerID int64, state SearchState) ([]*Booking, error)
	ListForOwner(ctx context.Context, ownerID int64, state SearchState) ([]*Booking, error)
}

// UserDirectory is the slice of the user module this service needs.
type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// ItemDirectory is the slice of the item module this service needs.
type ItemDirectory interface {
	Find(ctx context.Context, id int64) (*item.Item, error)
}

// Producer publishes booking lifecycle events. A nil Producer disables
// publishing.
type Producer interface {
	Publish(ctx context.Context, key string, payload any) error
}

type service struct {
	repo     Repository
	users    UserDirectory
	items    ItemDirectory
	producer Producer
}

// NewService creates the booking engine. producer may be nil.
func NewService(repo Repository, users UserDirectory, items ItemDirectory, producer Producer) Service {
	return &service{
		repo:     repo,
		users:    users,
		items:    items,
		producer: producer,
	}
}

// Create validates and stores a new booking in WAITING status. The booker and
// the item must exist and the item must currently be available. No overlap
// check against other bookings of the same item is performed.
func (s *service) Create(ctx context.Context, bookerID int64, req CreateRequest) (*Booking, error) {
	if !req.End.After(req.Start) {
		return nil, ErrInvalidTimeRange
	}

	booker, err := s.users.GetByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	itm, err := s.items.Find(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if !itm.Available {
		return nil, ErrItemUnavailable
	}

	b := &Booking{
		ItemID:      itm.ID,
		ItemName:    itm.Name,
		ItemOwnerID: itm.OwnerID,
		BookerID:    booker.ID,
		BookerName:  booker.Name,
		Start:       req.Start,
		End:         req.End,
		Status:      StatusWaiting,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.publish(ctx, event.TypeBookingCreated, b)
	return b, nil
}

// GetByID returns the booking when the requester is its booker or the owner
// of the booked item; anyone else is denied regardless of status.
func (s *service) GetByID(ctx context.Context, bookingID, requesterID int64) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.BookerID != requesterID && b.ItemOwnerID != requesterID {
		return nil, ErrAccessDenied
	}
	return b, nil
}

// SetApproval lets the item's owner approve or reject the booking. The prior
// status is not checked: deciding again simply overwrites it.
func (s *service) SetApproval(ctx context.Context, bookingID, ownerID int64, approved bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.ItemOwnerID != ownerID {
		return nil, ErrAccessDenied
	}

	status := StatusRejected
	eventType := event.TypeBookingRejected
	if approved {
		status = StatusApproved
		eventType = event.TypeBookingApproved
	}

	if err := s.repo.UpdateStatus(ctx, bookingID, status); err != nil {
		return nil, err
	}
	b.Status = status

	s.publish(ctx, eventType, b)
	return b, nil
}

// ListForBooker returns the user's own bookings in the given temporal bucket,
// most recently starting first.
func (s *service) ListForBooker(ctx context.Context, bookerID int64, state SearchState) ([]*Booking, error) {
	if err := s.checkUserExists(ctx, bookerID); err != nil {
		return nil, err
	}

	filter := stateFilter(state, time.Now())
	filter.BookerID = bookerID
	return s.repo.List(ctx, filter)
}

// ListForOwner returns bookings of all items owned by the user in the given
// temporal bucket, most recently starting first.
func (s *service) ListForOwner(ctx context.Context, ownerID int64, state SearchState) ([]*Booking, error) {
	if err := s.checkUserExists(ctx, ownerID); err != nil {
		return nil, err
	}

	filter := stateFilter(state, time.Now())
	filter.OwnerID = ownerID
	return s.repo.List(ctx, filter)
}

func (s *service) checkUserExists(ctx context.Context, id int64) error {
	exists, err := s.users.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUserNotFound
	}
	return nil
}

// publish emits a lifecycle event. Failures are logged, never surfaced: the
// booking operation itself has already succeeded.
func (s *service) publish(ctx context.Context, eventType string, b *Booking) {
	if s.producer == nil {
		return
	}

	e := event.BookingEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		BookingID: b.ID,
		ItemID:    b.ItemID,
		BookerID:  b.BookerID,
		Status:    string(b.Status),
		Start:     b.Start,
		End:       b.End,
	}
	if err := s.producer.Publish(ctx, strconv.FormatInt(b.ID, 10), e); err != nil {
		log.Printf("failed to publish %s event for booking %d: %v", eventType, b.ID, err)
	}
}
