// internal/models/inspeccion.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Inspeccion is scheduled automatically when a solicitud enters the
// "inspeccion" status and completed when it leaves it.
type Inspeccion struct {
	BaseModel
	SolicitudID     uuid.UUID        `json:"solicitud_id" gorm:"type:uuid;not null;index"`
	InspectorID     *uuid.UUID       `json:"inspector_id" gorm:"type:uuid;index"`
	Estado          InspeccionEstado `json:"estado" gorm:"type:varchar(20);not null;default:'programada';index"`
	FechaProgramada time.Time        `json:"fecha_programada" gorm:"not null"`
	CompletadaAt    *time.Time       `json:"completada_at"`
	Observaciones   string           `json:"observaciones" gorm:"type:text"`

	// Relationships
	Solicitud Solicitud `json:"solicitud,omitempty" gorm:"foreignKey:SolicitudID"`
	Inspector *User     `json:"inspector,omitempty" gorm:"foreignKey:InspectorID"`
}

func (Inspeccion) TableName() string {
	return "inspecciones"
}
