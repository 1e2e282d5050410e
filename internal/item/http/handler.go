package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Kirillkgr/shareit/internal/identity"
	"github.com/Kirillkgr/shareit/internal/item"
	"github.com/Kirillkgr/shareit/internal/pkg/response"
)

type Handler struct {
	service item.Service
}

func NewHandler(service item.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// Create handles POST /items. The acting user becomes the owner.
func (h *Handler) Create(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	ownerID := identity.GetUserID(c)

	i, err := h.service.Create(c.Request.Context(), ownerID, item.CreateRequest{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewItemResponse(i))
}

// Update handles PATCH /items/:id. Only the owner may edit.
func (h *Handler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	i, err := h.service.Update(c.Request.Context(), id, identity.GetUserID(c), item.UpdateRequest{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewItemResponse(i))
}

// Get handles GET /items/:id and returns the annotated detail view.
func (h *Handler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	d, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewItemDetailResponse(d))
}

// ListByOwner handles GET /items and returns the acting user's items.
func (h *Handler) ListByOwner(c *gin.Context) {
	items, err := h.service.ListByOwner(c.Request.Context(), identity.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := make([]ItemResponse, 0, len(items))
	for _, i := range items {
		resp = append(resp, NewItemResponse(i))
	}

	c.JSON(http.StatusOK, resp)
}

// Search handles GET /items/search?text=.
func (h *Handler) Search(c *gin.Context) {
	items, err := h.service.Search(c.Request.Context(), c.Query("text"))
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := make([]ItemResponse, 0, len(items))
	for _, i := range items {
		resp = append(resp, NewItemResponse(i))
	}

	c.JSON(http.StatusOK, resp)
}

// AddComment handles POST /items/:id/comment.
func (h *Handler) AddComment(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	comment, err := h.service.AddComment(c.Request.Context(), identity.GetUserID(c), id, req.Text)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewCommentResponse(comment))
}

func pathID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
