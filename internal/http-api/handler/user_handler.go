package handler

import (
	"net/http"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/policy"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// RegisterRoutes: /users/me is self-service, the rest is admin only.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", middleware.RequireAuth(), h.Me)
	rg.PATCH("/me", middleware.RequireAuth(), h.UpdateMe)

	rg.GET("", middleware.RequireAuth(), h.List)
	rg.POST("", middleware.RequireAuth(), h.Create)
	rg.GET("/:username", middleware.RequireAuth(), h.Get)
	rg.PATCH("/:username", middleware.RequireAuth(), h.Update)
	rg.DELETE("/:username", middleware.RequireAuth(), h.Delete)
}

// GET /v1/users/me/
func (h *UserHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}

// UpdateMe patches the caller's own profile; the role cannot be changed
// through this endpoint.
// PATCH /v1/users/me/
func (h *UserHandler) UpdateMe(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var in dto.UpdateProfileDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.svc.UpdateProfile(c.Request.Context(), user, in)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(updated))
}

// GET /v1/users/
func (h *UserHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if !policy.CanManageUsers(user.Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
		return
	}

	page, pageSize := parsePagination(c)
	list, total, err := h.svc.List(c.Request.Context(), page, pageSize)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp := make([]dto.UserResponse, 0, len(list))
	for i := range list {
		resp = append(resp, *dto.FromModelToUserResponse(&list[i]))
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

// POST /v1/users/
func (h *UserHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if !policy.CanManageUsers(user.Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
		return
	}

	var in dto.CreateUserDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToUserResponse(created))
}

// GET /v1/users/{username}/
func (h *UserHandler) Get(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if !policy.CanManageUsers(user.Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
		return
	}

	found, err := h.svc.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(found))
}

// PATCH /v1/users/{username}/
func (h *UserHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if !policy.CanManageUsers(user.Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
		return
	}

	var in dto.UpdateUserDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), c.Param("username"), in)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(updated))
}

// DELETE /v1/users/{username}/
func (h *UserHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if !policy.CanManageUsers(user.Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("username")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
