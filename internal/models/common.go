// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// BeforeCreate assigns the UUID in-process so every driver behaves the same.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	}
	return nil
}

// Enums
type UserRole string

const (
	RoleCiudadano     UserRole = "ciudadano"
	RoleInspector     UserRole = "inspector"
	RoleAdministrador UserRole = "administrador"
)

type Estado string

const (
	EstadoPendiente  Estado = "pendiente"
	EstadoInspeccion Estado = "inspeccion"
	EstadoAprobado   Estado = "aprobado"
	EstadoRechazado  Estado = "rechazado"
)

// Estados lists every storable solicitud status.
var Estados = []Estado{EstadoPendiente, EstadoInspeccion, EstadoAprobado, EstadoRechazado}

func (e Estado) Valid() bool {
	for _, known := range Estados {
		if e == known {
			return true
		}
	}
	return false
}

type TitularTipo string

const (
	TitularFisica   TitularTipo = "fisica"
	TitularJuridica TitularTipo = "juridica"
)

type InspeccionEstado string

const (
	InspeccionProgramada InspeccionEstado = "programada"
	InspeccionCompletada InspeccionEstado = "completada"
)
