package user

import (
	"net/http"
	"time"

	"github.com/Kirillkgr/shareit/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailConflict = apperror.New(http.StatusConflict, "email already in use")
	ErrEmptyName     = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrEmptyEmail    = apperror.New(http.StatusBadRequest, "email cannot be empty")
)

// User is a participant of the sharing service. The same user may own items
// and book other users' items; the roles are evaluated per request.
type User struct {
	ID        int64
	Name      string
	Email     string
	CreatedAt time.Time
}
