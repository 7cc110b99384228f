package handler

import (
	"net/http"
	"strconv"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	svc service.CommentService
}

func NewCommentHandler(svc service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// RegisterRoutes registers comment routes nested under a title's reviews
func (h *CommentHandler) RegisterRoutes(reviews *gin.RouterGroup) {
	comments := reviews.Group("/:review_id/comments")
	{
		comments.GET("", h.List)
		comments.GET("/:comment_id", h.Get)
		comments.POST("", middleware.RequireAuth(), h.Create)
		comments.PATCH("/:comment_id", middleware.RequireAuth(), h.Update)
		comments.DELETE("/:comment_id", middleware.RequireAuth(), h.Delete)
	}
}

func commentPath(c *gin.Context) (titleID, reviewID, commentID int64, ok bool) {
	var err error
	titleID, err = strconv.ParseInt(c.Param("title_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid title id"})
		return 0, 0, 0, false
	}
	reviewID, err = strconv.ParseInt(c.Param("review_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return 0, 0, 0, false
	}
	commentID, err = strconv.ParseInt(c.Param("comment_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return 0, 0, 0, false
	}
	return titleID, reviewID, commentID, true
}

// GET /v1/titles/{title_id}/reviews/{review_id}/comments/
func (h *CommentHandler) List(c *gin.Context) {
	tID, rID, ok := reviewPath(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)

	resp, err := h.svc.ListByReview(c.Request.Context(), tID, rID, page, pageSize)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /v1/titles/{title_id}/reviews/{review_id}/comments/{id}/
func (h *CommentHandler) Get(c *gin.Context) {
	tID, rID, cID, ok := commentPath(c)
	if !ok {
		return
	}

	resp, err := h.svc.GetByID(c.Request.Context(), tID, rID, cID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create posts a comment under a review; the author always comes from
// the authenticated identity, an author field in the body is ignored.
// POST /v1/titles/{title_id}/reviews/{review_id}/comments/
func (h *CommentHandler) Create(c *gin.Context) {
	tID, rID, ok := reviewPath(c)
	if !ok {
		return
	}

	var in dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	resp, err := h.svc.Create(c.Request.Context(), user, tID, rID, in.Text)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// PATCH /v1/titles/{title_id}/reviews/{review_id}/comments/{id}/
func (h *CommentHandler) Update(c *gin.Context) {
	tID, rID, cID, ok := commentPath(c)
	if !ok {
		return
	}

	var in dto.UpdateCommentDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	resp, err := h.svc.Update(c.Request.Context(), user, tID, rID, cID, in.Text)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DELETE /v1/titles/{title_id}/reviews/{review_id}/comments/{id}/
func (h *CommentHandler) Delete(c *gin.Context) {
	tID, rID, cID, ok := commentPath(c)
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.svc.Delete(c.Request.Context(), user, tID, rID, cID); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
