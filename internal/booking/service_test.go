package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Kirillkgr/shareit/internal/item"
	"github.com/Kirillkgr/shareit/internal/user"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, b *Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filter Filter) ([]*Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Booking), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) GetByID(ctx context.Context, id int64) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserDirectory) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockItemDirectory struct {
	mock.Mock
}

func (m *MockItemDirectory) Find(ctx context.Context, id int64) (*item.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.Item), args.Error(1)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, key string, payload any) error {
	args := m.Called(ctx, key, payload)
	return args.Error(0)
}

func TestService_Create_Success(t *testing.T) {
	repo := &MockRepository{}
	users := &MockUserDirectory{}
	items := &MockItemDirectory{}
	producer := &MockProducer{}
	service := NewService(repo, users, items, producer)

	ctx := context.Background()
	start := time.Now().Add(time.Hour)
	end := start.Add(2 * time.Hour)

	users.On("GetByID", ctx, int64(7)).
		Return(&user.User{ID: 7, Name: "Alice"}, nil).Once()
	items.On("Find", ctx, int64(3)).
		Return(&item.Item{ID: 3, OwnerID: 2, Name: "Drill", Available: true}, nil).Once()
	repo.On("Create", ctx, mock.AnythingOfType("*booking.Booking")).Return(nil).Once()
	producer.On("Publish", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	b, err := service.Create(ctx, 7, CreateRequest{ItemID: 3, Start: start, End: end})

	assert.NoError(t, err)
	assert.NotNil(t, b)
	assert.Equal(t, StatusWaiting, b.Status)
	assert.Equal(t, int64(7), b.BookerID)
	assert.Equal(t, "Alice", b.BookerName)
	assert.Equal(t, int64(3), b.ItemID)
	assert.Equal(t, "Drill", b.ItemName)
	assert.Equal(t, int64(2), b.ItemOwnerID)

	repo.AssertExpectations(t)
	users.AssertExpectations(t)
	items.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestService_Create_InvalidTimeRange(t *testing.T) {
	repo := &MockRepository{}
	users := &MockUserDirectory{}
	items := &MockItemDirectory{}
	service := NewService(repo, users, items, nil)

	ctx := context.Background()
	start := time.Now().Add(time.Hour)

	cases := []struct {
		name string
		end  time.Time
	}{
		{name: "end before start", end: start.Add(-time.Minute)},
		{name: "end equals start", end: start},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := service.Create(ctx, 7, CreateRequest{ItemID: 3, Start: start, End: tc.end})
			assert.ErrorIs(t, err, ErrInvalidTimeRange)
			assert.Nil(t, b)
		})
	}

	users.AssertNotCalled(t, "GetByID")
	repo.AssertNotCalled(t, "Create")
}

func TestService_Create_BookerNotFound(t *testing.T) {
	repo := &MockRepository{}
	users := &MockUserDirectory{}
	items := &MockItemDirectory{}
	service := NewService(repo, users, items, nil)

	ctx := context.Background()
	start := time.Now().Add(time.Hour)

	users.On("GetByID", ctx, int64(99)).Return(nil, user.ErrNotFound).Once()

	b, err := service.Create(ctx, 99, CreateRequest{ItemID: 3, Start: start, End: start.Add(time.Hour)})

	assert.ErrorIs(t, err, user.ErrNotFound)
	assert.Nil(t, b)
	items.AssertNotCalled(t, "Find")
	repo.AssertNotCalled(t, "Create")
}

func TestService_Create_ItemNotFound(t *testing.T) {
	repo := &MockRepository{}
	users := &MockUserDirectory{}
	items := &MockItemDirectory{}
	service := NewService(repo, users, items, nil)

	ctx := context.Background()
	start := time.Now().Add(time.Hour)

	users.On("GetByID", ctx, int64(7)).
		Return(&user.User{ID: 7, Name: "Alice"}, nil).Once()
	items.On("Find", ctx, int64(404)).Return(nil, item.ErrNotFound).Once()

	b, err := service.Create(ctx, 7, CreateRequest{ItemID: 404, Start: start, End: start.Add(time.Hour)})

	assert.ErrorIs(t, err, item.ErrNotFound)
	assert.Nil(t, b)
	repo.AssertNotCalled(t, "Create")
}

func TestService_Create_ItemUnavailable(t *testing.T) {
	repo := &MockRepository{}
	users := &MockUserDirectory{}
	items := &MockItemDirectory{}
	service := NewService(repo, users, items, nil)

	ctx := context.Background()
	start := time.Now().Add(time.Hour)

	users.On("GetByID", ctx, int64(7)).
		Return(&user.User{ID: 7, Name: "Alice"}, nil).Once()
	items.On("Find", ctx, int64(3)).
		Return(&item.Item{ID: 3, OwnerID: 2, Name: "Drill", Available: false}, nil).Once()

	b, err := service.Create(ctx, 7, CreateRequest{ItemID: 3, Start: start, End: start.Add(time.Hour)})

	assert.ErrorIs(t, err, ErrItemUnavailable)
	assert.Nil(t, b)
	repo.AssertNotCalled(t, "Create")
}

// A nil producer disables publishing without affecting the booking itself.
func TestService_Create_NoProducer(t *testing.T) {
	repo := &MockRepository{}
	users := &MockUserDirectory{}
	items := &MockItemDirectory{}
	service := NewService(repo, users, items, nil)

	ctx := context.Background()
	start := time.Now().Add(time.Hour)

	users.On("GetByID", ctx, int64(7)).
		Return(&user.User{ID: 7, Name: "Alice"}, nil).Once()
	items.On("Find", ctx, int64(3)).
		Return(&item.Item{ID: 3, OwnerID: 2, Name: "Drill", Available: true}, nil).Once()
	repo.On("Create", ctx, mock.Anything).Return(nil).Once()

	b, err := service.Create(ctx, 7, CreateRequest{ItemID: 3, Start: start, End: start.Add(time.Hour)})

	assert.NoError(t, err)
	assert.NotNil(t, b)
	repo.AssertExpectations(t)
}

func TestService_GetByID_AccessControl(t *testing.T) {
	stored := &Booking{ID: 1, ItemID: 3, ItemOwnerID: 2, BookerID: 7, Status: StatusWaiting}

	cases := []struct {
		name        string
		requesterID int64
		wantErr     error
	}{
		{name: "booker can read", requesterID: 7},
		{name: "owner can read", requesterID: 2},
		{name: "stranger is denied", requesterID: 5, wantErr: ErrAccessDenied},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &MockRepository{}
			service := NewService(repo, &MockUserDirectory{}, &MockItemDirectory{}, nil)

			ctx := context.Background()
			repo.On("GetByID", ctx, int64(1)).Return(stored, nil).Once()

			b, err := service.GetByID(ctx, 1, tc.requesterID)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, b)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, stored, b)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_GetByID_NotFound(t *testing.T) {
	repo := &MockRepository{}
	service := NewService(repo, &MockUserDirectory{}, &MockItemDirectory{}, nil)

	ctx := context.Background()
	repo.On("GetByID", ctx, int64(404)).Return(nil, ErrNotFound).Once()

	b, err := service.GetByID(ctx, 404, 7)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, b)
}

func TestService_SetApproval(t *testing.T) {
	cases := []struct {
		name       string
		approved   bool
		wantStatus Status
	}{
		{name: "approve", approved: true, wantStatus: StatusApproved},
		{name: "reject", approved: false, wantStatus: StatusRejected},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &MockRepository{}
			producer := &MockProducer{}
			service := NewService(repo, &MockUserDirectory{}, &MockItemDirectory{}, producer)

			ctx := context.Background()
			stored := &Booking{ID: 1, ItemID: 3, ItemOwnerID: 2, BookerID: 7, Status: StatusWaiting}

			repo.On("GetByID", ctx, int64(1)).Return(stored, nil).Once()
			repo.On("UpdateStatus", ctx, int64(1), tc.wantStatus).Return(nil).Once()
			producer.On("Publish", ctx, "1", mock.Anything).Return(nil).Once()

			b, err := service.SetApproval(ctx, 1, 2, tc.approved)

			assert.NoError(t, err)
			assert.Equal(t, tc.wantStatus, b.Status)
			repo.AssertExpectations(t)
			producer.AssertExpectations(t)
		})
	}
}

func TestService_SetApproval_NotOwner(t *testing.T) {
	repo := &MockRepository{}
	service := NewService(repo, &MockUserDirectory{}, &MockItemDirectory{}, nil)

	ctx := context.Background()
	stored := &Booking{ID: 1, ItemID: 3, ItemOwnerID: 2, BookerID: 7, Status: StatusWaiting}

	repo.On("GetByID", ctx, int64(1)).Return(stored, nil).Once()

	// The booker cannot decide their own booking.
	b, err := service.SetApproval(ctx, 1, 7, true)

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, b)
	repo.AssertNotCalled(t, "UpdateStatus")
}

// Deciding again overwrites the previous decision; the prior status is never
// checked.
func TestService_SetApproval_OverwritesPriorDecision(t *testing.T) {
	repo := &MockRepository{}
	service := NewService(repo, &MockUserDirectory{}, &MockItemDirectory{}, nil)

	ctx := context.Background()
	stored := &Booking{ID: 1, ItemID: 3, ItemOwnerID: 2, BookerID: 7, Status: StatusApproved}

	repo.On("GetByID", ctx, int64(1)).Return(stored, nil).Once()
	repo.On("UpdateStatus", ctx, int64(1), StatusRejected).Return(nil).Once()

	b, err := service.SetApproval(ctx, 1, 2, false)

	assert.NoError(t, err)
	assert.Equal(t, StatusRejected, b.Status)
	repo.AssertExpectations(t)
}

func TestService_ListForBooker_UnknownUser(t *testing.T) {
	repo := &MockRepository{}
	users := &MockUserDirectory{}
	service := NewService(repo, users, &MockItemDirectory{}, nil)

	ctx := context.Background()
	users.On("ExistsByID", ctx, int64(99)).Return(false, nil).Once()

	bookings, err := service.ListForBooker(ctx, 99, StateAll)

	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Nil(t, bookings)
	repo.AssertNotCalled(t, "List")
}

func TestService_ListForBooker_FilterByState(t *testing.T) {
	cases := []struct {
		name  string
		state SearchState
		check func(t *testing.T, f Filter)
	}{
		{
			name:  "all",
			state: StateAll,
			check: func(t *testing.T, f Filter) {
				assert.Equal(t, Status(""), f.Status)
				assert.Nil(t, f.EndBefore)
				assert.Nil(t, f.StartAfter)
				assert.Nil(t, f.CurrentAt)
			},
		},
		{
			name:  "past",
			state: StatePast,
			check: func(t *testing.T, f Filter) {
				assert.NotNil(t, f.EndBefore)
			},
		},
		{
			name:  "future",
			state: StateFuture,
			check: func(t *testing.T, f Filter) {
				assert.NotNil(t, f.StartAfter)
			},
		},
		{
			name:  "current",
			state: StateCurrent,
			check: func(t *testing.T, f Filter) {
				assert.NotNil(t, f.CurrentAt)
			},
		},
		{
			name:  "waiting",
			state: StateWaiting,
			check: func(t *testing.T, f Filter) {
				assert.Equal(t, StatusWaiting, f.Status)
			},
		},
		{
			name:  "rejected",
			state: StateRejected,
			check: func(t *testing.T, f Filter) {
				assert.Equal(t, StatusRejected, f.Status)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &MockRepository{}
			users := &MockUserDirectory{}
			service := NewService(repo, users, &MockItemDirectory{}, nil)

			ctx := context.Background()
			users.On("ExistsByID", ctx, int64(7)).Return(true, nil).Once()

			var got Filter
			repo.On("List", ctx, mock.AnythingOfType("booking.Filter")).
				Run(func(args mock.Arguments) {
					got = args.Get(1).(Filter)
				}).
				Return([]*Booking{}, nil).Once()

			_, err := service.ListForBooker(ctx, 7, tc.state)

			assert.NoError(t, err)
			assert.Equal(t, int64(7), got.BookerID)
			assert.Equal(t, int64(0), got.OwnerID)
			tc.check(t, got)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_ListForOwner(t *testing.T) {
	repo := &MockRepository{}
	users := &MockUserDirectory{}
	service := NewService(repo, users, &MockItemDirectory{}, nil)

	ctx := context.Background()
	users.On("ExistsByID", ctx, int64(2)).Return(true, nil).Once()

	expected := []*Booking{{ID: 1, ItemOwnerID: 2}}
	var got Filter
	repo.On("List", ctx, mock.AnythingOfType("booking.Filter")).
		Run(func(args mock.Arguments) {
			got = args.Get(1).(Filter)
		}).
		Return(expected, nil).Once()

	bookings, err := service.ListForOwner(ctx, 2, StateAll)

	assert.NoError(t, err)
	assert.Equal(t, expected, bookings)
	assert.Equal(t, int64(2), got.OwnerID)
	assert.Equal(t, int64(0), got.BookerID)
}
