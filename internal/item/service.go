package item

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/Kirillkgr/shareit/internal/user"
)

type CreateRequest struct {
	Name        string
	Description string
	Available   bool
}

// UpdateRequest carries a partial update; nil fields are left untouched.
type UpdateRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

// Service defines business logic related to items and their comments.
type Service interface {
	Create(ctx context.Context, ownerID int64, req CreateRequest) (*Item, error)
	Update(ctx context.Context, itemID, callerID int64, req UpdateRequest) (*Item, error)
	GetByID(ctx context.Context, itemID int64) (*Detail, error)
	Find(ctx context.Context, itemID int64) (*Item, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*Item, error)
	Search(ctx context.Context, text string) ([]*Item, error)
	AddComment(ctx context.Context, authorID, itemID int64, text string) (*Comment, error)
}

// UserDirectory is the slice of the user module this service needs.
type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// Cache holds recent search results. A nil Cache disables caching.
type Cache interface {
	GetSearch(ctx context.Context, text string) ([]*Item, error)
	SetSearch(ctx context.Context, text string, items []*Item) error
}

type service struct {
	repo     Repository
	comments CommentRepository
	users    UserDirectory
	bookings BookingSource
	cache    Cache
}

// NewService creates a new item Service. cache may be nil.
func NewService(repo Repository, comments CommentRepository, users UserDirectory, bookings BookingSource, cache Cache) Service {
	return &service{
		repo:     repo,
		comments: comments,
		users:    users,
		bookings: bookings,
		cache:    cache,
	}
}

func (s *service) Create(ctx context.Context, ownerID int64, req CreateRequest) (*Item, error) {
	exists, err := s.users.ExistsByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrOwnerNotFound
	}

	i := &Item{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
	}

	if err := s.repo.Create(ctx, i); err != nil {
		return nil, err
	}

	return i, nil
}

func (s *service) Update(ctx context.Context, itemID, callerID int64, req UpdateRequest) (*Item, error) {
	i, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if i.OwnerID != callerID {
		return nil, ErrAccessDenied
	}

	// Blank name/description behave like absent fields.
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		i.Name = *req.Name
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) != "" {
		i.Description = *req.Description
	}
	if req.Available != nil {
		i.Available = *req.Available
	}

	if err := s.repo.Update(ctx, i); err != nil {
		return nil, err
	}

	return i, nil
}

// GetByID returns the item detail view: the item, its booking marks
// evaluated at the moment of the call, and its comments.
func (s *service) GetByID(ctx context.Context, itemID int64) (*Detail, error) {
	i, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	windows, err := s.bookings.WindowsByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	d := &Detail{Item: *i, Comments: comments}
	annotate(d, windows, time.Now())

	return d, nil
}

func (s *service) Find(ctx context.Context, itemID int64) (*Item, error) {
	return s.repo.GetByID(ctx, itemID)
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64) ([]*Item, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *service) Search(ctx context.Context, text string) ([]*Item, error) {
	if strings.TrimSpace(text) == "" {
		return []*Item{}, nil
	}

	if s.cache != nil {
		cached, err := s.cache.GetSearch(ctx, text)
		if err != nil {
			log.Printf("search cache lookup failed: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	items, err := s.repo.Search(ctx, text)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetSearch(ctx, text, items); err != nil {
			log.Printf("search cache store failed: %v", err)
		}
	}

	return items, nil
}

// AddComment stores a comment after checking the author has a booking of the
// item that already ended. The booking's status is not consulted.
// TODO: decide whether REJECTED bookings should keep granting comment rights;
// today a rejected past booking passes the check.
func (s *service) AddComment(ctx context.Context, authorID, itemID int64, text string) (*Comment, error) {
	windows, err := s.bookings.WindowsByBookerAndItem(ctx, authorID, itemID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	completed := false
	for _, w := range windows {
		if w.End.Before(now) {
			completed = true
			break
		}
	}
	if !completed {
		return nil, ErrCommentNotAllowed
	}

	if _, err := s.repo.GetByID(ctx, itemID); err != nil {
		return nil, err
	}
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	comment := &Comment{
		ItemID:     itemID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Text:       text,
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}
