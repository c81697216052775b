// internal/handlers/verificar.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/munidigital/habilitaciones-backend/internal/i18n"
	"github.com/munidigital/habilitaciones-backend/internal/services"
	"github.com/munidigital/habilitaciones-backend/internal/utils"
)

// VerificarHandler serves the anonymous certificate-validity surface.
type VerificarHandler struct {
	certificados *services.CertificadoService
}

func NewVerificarHandler(certificados *services.CertificadoService) *VerificarHandler {
	return &VerificarHandler{certificados: certificados}
}

// GET /verificar/:id (public, unauthenticated)
func (h *VerificarHandler) VerificarCertificado(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid certificate ID", nil)
		return
	}

	resultado, err := h.certificados.VerificarCertificado(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			lang := utils.GetLangFromContext(c)
			c.JSON(http.StatusNotFound, gin.H{
				"veredicto": services.VeredictoNoEncontrado,
				"detail":    i18n.T(lang, i18n.KeyCertificadoNoEncontrado),
			})
			return
		}
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resultado)
}
