// internal/services/inspeccion_service.go
package services

import (
	"gorm.io/gorm"

	"github.com/munidigital/habilitaciones-backend/internal/models"
)

type InspeccionService struct {
	db *gorm.DB
}

func NewInspeccionService(db *gorm.DB) *InspeccionService {
	return &InspeccionService{db: db}
}

// ListInspecciones returns every inspection with its solicitud, newest first.
func (s *InspeccionService) ListInspecciones(caller Caller) ([]models.Inspeccion, error) {
	if !caller.Can(OpVerInspecciones) {
		return nil, ErrUnauthorized
	}

	var inspecciones []models.Inspeccion
	if err := s.db.Preload("Solicitud").Preload("Inspector").
		Order("fecha_programada DESC").
		Find(&inspecciones).Error; err != nil {
		return nil, storeError(err)
	}
	return inspecciones, nil
}

// CountPorEstado returns programadas/completadas totals for the dashboard.
func (s *InspeccionService) CountPorEstado() (programadas, completadas int64, err error) {
	if err = s.db.Model(&models.Inspeccion{}).
		Where("estado = ?", models.InspeccionProgramada).
		Count(&programadas).Error; err != nil {
		return 0, 0, storeError(err)
	}
	if err = s.db.Model(&models.Inspeccion{}).
		Where("estado = ?", models.InspeccionCompletada).
		Count(&completadas).Error; err != nil {
		return 0, 0, storeError(err)
	}
	return programadas, completadas, nil
}
