package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/policy"
	"reviewhub/internal/http-api/repository"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type TitleHandler struct {
	svc service.TitleService
}

func NewTitleHandler(svc service.TitleService) *TitleHandler {
	return &TitleHandler{svc: svc}
}

func (h *TitleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:title_id", h.Get)
	rg.POST("", middleware.RequireAuth(), h.Create)
	rg.PATCH("/:title_id", middleware.RequireAuth(), h.Update)
	rg.DELETE("/:title_id", middleware.RequireAuth(), h.Delete)
}

func titleID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("title_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid title id"})
		return 0, false
	}
	return id, true
}

// List returns titles with nested category/genres and the derived
// rating. Filters: ?category= ?genre= (slugs), ?name=, ?year=.
// GET /v1/titles/
func (h *TitleHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	page, pageSize := parsePagination(c)

	filter := repository.TitleFilter{
		CategorySlug: c.Query("category"),
		GenreSlug:    c.Query("genre"),
		Name:         c.Query("name"),
	}
	if y := c.Query("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year filter"})
			return
		}
		filter.Year = year
	}

	list, total, err := h.svc.List(ctx, filter, page, pageSize)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp := make([]dto.TitleResponse, 0, len(list))
	for _, t := range list {
		resp = append(resp, dto.FromModelToTitleResponse(t))
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

// GET /v1/titles/{id}/
func (h *TitleHandler) Get(c *gin.Context) {
	id, ok := titleID(c)
	if !ok {
		return
	}

	t, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToTitleResponse(*t))
}

// POST /v1/titles/
func (h *TitleHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if !policy.CanManageCatalog(user.Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
		return
	}

	var in dto.CreateTitleDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToTitleResponse(*t))
}

// PATCH /v1/titles/{id}/
func (h *TitleHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if !policy.CanManageCatalog(user.Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
		return
	}

	id, ok := titleID(c)
	if !ok {
		return
	}

	var in dto.UpdateTitleDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToTitleResponse(*t))
}

// DELETE /v1/titles/{id}/ — reviews and comments cascade with it
func (h *TitleHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if !policy.CanManageCatalog(user.Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
		return
	}

	id, ok := titleID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
