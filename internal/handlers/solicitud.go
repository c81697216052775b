// internal/handlers/solicitud.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/munidigital/habilitaciones-backend/internal/i18n"
	"github.com/munidigital/habilitaciones-backend/internal/models"
	"github.com/munidigital/habilitaciones-backend/internal/query"
	"github.com/munidigital/habilitaciones-backend/internal/services"
	"github.com/munidigital/habilitaciones-backend/internal/utils"
)

type SolicitudHandler struct {
	solicitudes *services.SolicitudService
}

func NewSolicitudHandler(solicitudes *services.SolicitudService) *SolicitudHandler {
	return &SolicitudHandler{solicitudes: solicitudes}
}

// POST /habilitacion_precaria
func (h *SolicitudHandler) CrearSolicitud(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	caller, ok := callerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CrearSolicitudRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	solicitud, err := h.solicitudes.CrearSolicitud(caller, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":   i18n.T(lang, i18n.KeySolicitudCreada),
		"solicitud": solicitud,
	})
}

// GET /solicitudes?filter=&search=&sort_by=&sort_order=
//
// Returns the caller-visible collection after the triage pipeline, plus the
// per-status counters over the full visible set.
func (h *SolicitudHandler) GetSolicitudes(c *gin.Context) {
	caller, ok := callerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	solicitudes, err := h.solicitudes.ListSolicitudes(caller)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	params := query.Params{
		StatusFilter: c.DefaultQuery("filter", query.FilterAll),
		SearchQuery:  c.Query("search"),
		SortBy:       c.DefaultQuery("sort_by", query.SortByFecha),
		SortOrder:    c.DefaultQuery("sort_order", query.OrderDesc),
	}

	result := query.Apply(solicitudes, params)

	utils.SuccessResponseWithMeta(c, gin.H{
		"solicitudes": result.Items,
	}, gin.H{
		"counts": result.Counts,
	})
}

// GET /afap/:id
func (h *SolicitudHandler) GetSolicitud(c *gin.Context) {
	caller, ok := callerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid solicitud ID", nil)
		return
	}

	solicitud, err := h.solicitudes.GetSolicitud(caller, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"solicitud": solicitud})
}

// PATCH /afap/:id/estado?estado=<nuevo>&observaciones=<texto>
func (h *SolicitudHandler) CambiarEstado(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	caller, ok := callerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid solicitud ID", nil)
		return
	}

	nuevoEstado := models.Estado(c.Query("estado"))
	observaciones := c.Query("observaciones")

	solicitud, err := h.solicitudes.CambiarEstado(caller, id, nuevoEstado, observaciones)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":   i18n.T(lang, i18n.KeySolicitudActualizada),
		"solicitud": solicitud,
	})
}
