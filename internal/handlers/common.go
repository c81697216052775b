// internal/handlers/common.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/munidigital/habilitaciones-backend/internal/i18n"
	"github.com/munidigital/habilitaciones-backend/internal/models"
	"github.com/munidigital/habilitaciones-backend/internal/services"
	"github.com/munidigital/habilitaciones-backend/internal/utils"
)

// callerFromContext rebuilds the authenticated caller set by AuthRequired.
func callerFromContext(c *gin.Context) (services.Caller, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		return services.Caller{}, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return services.Caller{}, false
	}

	role, _ := utils.GetUserRoleFromContext(c)
	return services.Caller{
		ID:   userID,
		Role: models.UserRole(role),
	}, true
}

// handleServiceError translates the service error taxonomy to HTTP. The
// forbidden branch deliberately carries no resource detail.
func handleServiceError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, i18n.KeySolicitudNotFound)
	case errors.Is(err, services.ErrUnauthorized):
		utils.ForbiddenResponse(c, "")
	case errors.Is(err, services.ErrInvalidStatus):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeySolicitudEstadoInvalido), nil)
	case errors.Is(err, services.ErrInvalidTransition):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeySolicitudTransicion), nil)
	case errors.Is(err, services.ErrValidation):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid), err.Error())
	case errors.Is(err, services.ErrTransient):
		utils.ServiceUnavailableResponse(c, "")
	default:
		utils.InternalErrorResponse(c, "")
	}
}
