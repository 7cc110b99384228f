package handler

import (
	"net/http"
	"strconv"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	svc service.ReviewService
}

func NewReviewHandler(svc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

// RegisterRoutes registers review routes nested under /v1/titles
func (h *ReviewHandler) RegisterRoutes(titles *gin.RouterGroup) *gin.RouterGroup {
	reviews := titles.Group("/:title_id/reviews")
	{
		reviews.GET("", h.List)
		reviews.GET("/:review_id", h.Get)
		reviews.POST("", middleware.RequireAuth(), h.Create)
		reviews.PATCH("/:review_id", middleware.RequireAuth(), h.Update)
		reviews.DELETE("/:review_id", middleware.RequireAuth(), h.Delete)
	}
	return reviews
}

func reviewPath(c *gin.Context) (titleID, reviewID int64, ok bool) {
	var err error
	titleID, err = strconv.ParseInt(c.Param("title_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid title id"})
		return 0, 0, false
	}
	reviewID, err = strconv.ParseInt(c.Param("review_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return 0, 0, false
	}
	return titleID, reviewID, true
}

// GET /v1/titles/{title_id}/reviews/
func (h *ReviewHandler) List(c *gin.Context) {
	id, ok := titleID(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)

	resp, err := h.svc.ListByTitle(c.Request.Context(), id, page, pageSize)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /v1/titles/{title_id}/reviews/{id}/
func (h *ReviewHandler) Get(c *gin.Context) {
	tID, rID, ok := reviewPath(c)
	if !ok {
		return
	}

	resp, err := h.svc.GetByID(c.Request.Context(), tID, rID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create posts a review; the author is the authenticated identity, a
// client-supplied author field is rejected.
// POST /v1/titles/{title_id}/reviews/
func (h *ReviewHandler) Create(c *gin.Context) {
	id, ok := titleID(c)
	if !ok {
		return
	}

	var in dto.CreateReviewDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if in.Author != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "author cannot be set explicitly"})
		return
	}

	user := middleware.CurrentUser(c)
	resp, err := h.svc.Create(c.Request.Context(), user, id, in)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// PATCH /v1/titles/{title_id}/reviews/{id}/
func (h *ReviewHandler) Update(c *gin.Context) {
	tID, rID, ok := reviewPath(c)
	if !ok {
		return
	}

	var in dto.UpdateReviewDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	resp, err := h.svc.Update(c.Request.Context(), user, tID, rID, in)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DELETE /v1/titles/{title_id}/reviews/{id}/
func (h *ReviewHandler) Delete(c *gin.Context) {
	tID, rID, ok := reviewPath(c)
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.svc.Delete(c.Request.Context(), user, tID, rID); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
