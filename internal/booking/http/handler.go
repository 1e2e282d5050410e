package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Kirillkgr/shareit/internal/booking"
	"github.com/Kirillkgr/shareit/internal/identity"
	"github.com/Kirillkgr/shareit/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// Create handles POST /bookings. The acting user becomes the booker.
func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.service.Create(c.Request.Context(), identity.GetUserID(c), booking.CreateRequest{
		ItemID: req.ItemID,
		Start:  req.Start,
		End:    req.End,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

// Get handles GET /bookings/:id. Visible to the booker and the item owner only.
func (h *Handler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id, identity.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// SetApproval handles PATCH /bookings/:id?approved=true|false.
func (h *Handler) SetApproval(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "approved must be true or false"})
		return
	}

	b, err := h.service.SetApproval(c.Request.Context(), id, identity.GetUserID(c), approved)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// ListForBooker handles GET /bookings?state=.
func (h *Handler) ListForBooker(c *gin.Context) {
	state, err := booking.ParseSearchState(c.Query("state"))
	if err != nil {
		response.Error(c, err)
		return
	}

	bookings, err := h.service.ListForBooker(c.Request.Context(), identity.GetUserID(c), state)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponses(bookings))
}

// ListForOwner handles GET /bookings/owner?state=.
func (h *Handler) ListForOwner(c *gin.Context) {
	state, err := booking.ParseSearchState(c.Query("state"))
	if err != nil {
		response.Error(c, err)
		return
	}

	bookings, err := h.service.ListForOwner(c.Request.Context(), identity.GetUserID(c), state)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponses(bookings))
}

func toResponses(bookings []*booking.Booking) []BookingResponse {
	resp := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, NewBookingResponse(b))
	}
	return resp
}

func pathID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
