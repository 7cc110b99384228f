package handler

import (
	"net/http"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/policy"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type GenreHandler struct {
	svc service.GenreService
}

func NewGenreHandler(svc service.GenreService) *GenreHandler {
	return &GenreHandler{svc: svc}
}

func (h *GenreHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", middleware.RequireAuth(), h.Create)
	rg.DELETE("/:slug", middleware.RequireAuth(), h.Delete)
}

// GET /v1/genres/?search=
func (h *GenreHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)

	list, total, err := h.svc.List(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp := make([]dto.GenreResponse, 0, len(list))
	for _, genre := range list {
		resp = append(resp, dto.GenreFromModel(genre))
	}

	c.JSON(http.StatusOK, gin.H{
		"data": resp,
		"pagination": gin.H{
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		},
	})
}

// POST /v1/genres/
func (h *GenreHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if !policy.CanManageCatalog(user.Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
		return
	}

	var in dto.CreateGenreDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	genre := models.Genre{Name: in.Name, Slug: in.Slug}
	if err := h.svc.Create(c.Request.Context(), &genre); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.GenreFromModel(genre))
}

// DELETE /v1/genres/{slug}/
func (h *GenreHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if !policy.CanManageCatalog(user.Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
