// internal/services/certificado_service.go
package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/munidigital/habilitaciones-backend/internal/models"
)

// Veredicto is the outcome of a public certificate check.
type Veredicto string

const (
	VeredictoNoEncontrado Veredicto = "no_encontrado"
	VeredictoVencido      Veredicto = "vencido"
	VeredictoValido       Veredicto = "valido"
	VeredictoNoAprobado   Veredicto = "no_aprobado"
)

// ResultadoVerificacion is the full anonymous-verification contract: the
// verdict plus the reduced certificate projection when the record exists.
type ResultadoVerificacion struct {
	Veredicto   Veredicto                  `json:"veredicto"`
	Certificado *models.CertificadoPublico `json:"certificado,omitempty"`
}

type CertificadoService struct {
	db *gorm.DB
}

func NewCertificadoService(db *gorm.DB) *CertificadoService {
	return &CertificadoService{db: db}
}

// Evaluar computes validity from (estado, fecha_vencimiento, now) alone.
// Precedence: Expired before Valid before NotApproved; NotFound is decided
// by the caller that did the lookup.
func Evaluar(solicitud *models.Solicitud, ahora time.Time) Veredicto {
	if solicitud == nil {
		return VeredictoNoEncontrado
	}

	if solicitud.Estado == models.EstadoAprobado {
		if solicitud.FechaVencimiento != nil && solicitud.FechaVencimiento.Before(ahora) {
			return VeredictoVencido
		}
		return VeredictoValido
	}

	return VeredictoNoAprobado
}

// VerificarCertificado resolves a public id to its validity verdict. No
// authentication: the response carries only the certificate-facing fields.
func (s *CertificadoService) VerificarCertificado(id uuid.UUID) (*ResultadoVerificacion, error) {
	var solicitud models.Solicitud
	if err := s.db.First(&solicitud, "id = ?", id).Error; err != nil {
		if errors.Is(storeError(err), ErrNotFound) {
			return &ResultadoVerificacion{Veredicto: VeredictoNoEncontrado}, ErrNotFound
		}
		return nil, storeError(err)
	}

	return &ResultadoVerificacion{
		Veredicto:   Evaluar(&solicitud, time.Now()),
		Certificado: solicitud.Publico(),
	}, nil
}
