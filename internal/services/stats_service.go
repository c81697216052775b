// internal/services/stats_service.go
package services

import (
	"gorm.io/gorm"

	"github.com/munidigital/habilitaciones-backend/internal/models"
)

type StatsService struct {
	db           *gorm.DB
	inspecciones *InspeccionService
}

func NewStatsService(db *gorm.DB, inspecciones *InspeccionService) *StatsService {
	return &StatsService{
		db:           db,
		inspecciones: inspecciones,
	}
}

type SolicitudesStats struct {
	Total        int64 `json:"total"`
	Pendientes   int64 `json:"pendientes"`
	EnInspeccion int64 `json:"en_inspeccion"`
	Aprobados    int64 `json:"aprobados"`
	Rechazados   int64 `json:"rechazados"`
}

type InspeccionesStats struct {
	Programadas int64 `json:"programadas"`
	Completadas int64 `json:"completadas"`
}

type UsuariosStats struct {
	Total int64 `json:"total"`
}

type DashboardStats struct {
	Solicitudes  SolicitudesStats   `json:"afaps"`
	Inspecciones InspeccionesStats  `json:"inspecciones"`
	Usuarios     UsuariosStats      `json:"usuarios"`
	Recientes    []models.Solicitud `json:"recent_afaps"`
}

// GetDashboardStats aggregates the administrator dashboard figures.
func (s *StatsService) GetDashboardStats(caller Caller) (*DashboardStats, error) {
	if !caller.Can(OpVerEstadisticas) {
		return nil, ErrUnauthorized
	}

	stats := &DashboardStats{}

	porEstado := map[models.Estado]*int64{
		models.EstadoPendiente:  &stats.Solicitudes.Pendientes,
		models.EstadoInspeccion: &stats.Solicitudes.EnInspeccion,
		models.EstadoAprobado:   &stats.Solicitudes.Aprobados,
		models.EstadoRechazado:  &stats.Solicitudes.Rechazados,
	}

	if err := s.db.Model(&models.Solicitud{}).Count(&stats.Solicitudes.Total).Error; err != nil {
		return nil, storeError(err)
	}
	for estado, dest := range porEstado {
		if err := s.db.Model(&models.Solicitud{}).
			Where("estado = ?", estado).
			Count(dest).Error; err != nil {
			return nil, storeError(err)
		}
	}

	programadas, completadas, err := s.inspecciones.CountPorEstado()
	if err != nil {
		return nil, err
	}
	stats.Inspecciones.Programadas = programadas
	stats.Inspecciones.Completadas = completadas

	if err := s.db.Model(&models.User{}).Count(&stats.Usuarios.Total).Error; err != nil {
		return nil, storeError(err)
	}

	if err := s.db.Model(&models.Solicitud{}).
		Order("fecha_solicitud DESC").
		Limit(5).
		Find(&stats.Recientes).Error; err != nil {
		return nil, storeError(err)
	}

	return stats, nil
}
