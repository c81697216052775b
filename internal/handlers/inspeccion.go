// internal/handlers/inspeccion.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/munidigital/habilitaciones-backend/internal/services"
	"github.com/munidigital/habilitaciones-backend/internal/utils"
)

type InspeccionHandler struct {
	inspecciones *services.InspeccionService
}

func NewInspeccionHandler(inspecciones *services.InspeccionService) *InspeccionHandler {
	return &InspeccionHandler{inspecciones: inspecciones}
}

// GET /inspecciones
func (h *InspeccionHandler) GetInspecciones(c *gin.Context) {
	caller, ok := callerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	inspecciones, err := h.inspecciones.ListInspecciones(caller)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"inspecciones": inspecciones})
}
