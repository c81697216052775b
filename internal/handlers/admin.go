// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/munidigital/habilitaciones-backend/internal/i18n"
	"github.com/munidigital/habilitaciones-backend/internal/models"
	"github.com/munidigital/habilitaciones-backend/internal/services"
	"github.com/munidigital/habilitaciones-backend/internal/utils"
)

type AdminHandler struct {
	stats *services.StatsService
	users *services.UserService
}

func NewAdminHandler(stats *services.StatsService, users *services.UserService) *AdminHandler {
	return &AdminHandler{
		stats: stats,
		users: users,
	}
}

// GET /stats/dashboard
func (h *AdminHandler) GetDashboardStats(c *gin.Context) {
	caller, ok := callerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	stats, err := h.stats.GetDashboardStats(caller)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(200, stats)
}

// GET /usuarios
func (h *AdminHandler) GetUsers(c *gin.Context) {
	caller, ok := callerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	users, total, err := h.users.ListUsers(caller, params)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	result := utils.CreatePaginationResult(users, total, params)
	utils.PaginatedResponse(c, result)
}

// PUT /usuarios/:id/rol
func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	caller, ok := callerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return
	}

	var req struct {
		Role models.UserRole `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid), err.Error())
		return
	}

	user, err := h.users.UpdateRole(caller, userID, req.Role)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUsuarioActualizado),
		"user":    user,
	})
}
