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

type CategoryHandler struct {
	svc service.CategoryService
}

func NewCategoryHandler(svc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", middleware.RequireAuth(), h.Create)
	rg.DELETE("/:slug", middleware.RequireAuth(), h.Delete)
}

// List returns categories, optionally filtered with ?search= by name.
// GET /v1/categories/
func (h *CategoryHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)

	list, total, err := h.svc.List(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp := make([]dto.CategoryResponse, 0, len(list))
	for _, category := range list {
		resp = append(resp, dto.CategoryFromModel(category))
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

// Create registers a new category, admin only.
// POST /v1/categories/
func (h *CategoryHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if !policy.CanManageCatalog(user.Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
		return
	}

	var in dto.CreateCategoryDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := models.Category{Name: in.Name, Slug: in.Slug}
	if err := h.svc.Create(c.Request.Context(), &category); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CategoryFromModel(category))
}

// Delete removes a category by slug, admin only.
// DELETE /v1/categories/{slug}/
func (h *CategoryHandler) Delete(c *gin.Context) {
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
