// internal/services/authorization_service.go
package services

import (
	"github.com/google/uuid"

	"github.com/munidigital/habilitaciones-backend/internal/models"
)

// Operation is a capability the caller's role may or may not hold.
type Operation string

const (
	OpCrearSolicitud    Operation = "solicitudes.crear"
	OpVerPropias        Operation = "solicitudes.ver_propias"
	OpVerTodas          Operation = "solicitudes.ver_todas"
	OpCambiarEstado     Operation = "solicitudes.cambiar_estado"
	OpVerInspecciones   Operation = "inspecciones.ver"
	OpVerEstadisticas   Operation = "estadisticas.ver"
	OpGestionarUsuarios Operation = "usuarios.gestionar"
)

// capabilities is the role -> allowed operations table. The route table and
// the services both consult it; presentation never decides access on its own.
var capabilities = map[models.UserRole]map[Operation]bool{
	models.RoleCiudadano: {
		OpCrearSolicitud: true,
		OpVerPropias:     true,
	},
	models.RoleInspector: {
		OpVerPropias:      true,
		OpVerTodas:        true,
		OpCambiarEstado:   true,
		OpVerInspecciones: true,
	},
	models.RoleAdministrador: {
		OpVerPropias:        true,
		OpVerTodas:          true,
		OpCambiarEstado:     true,
		OpVerInspecciones:   true,
		OpVerEstadisticas:   true,
		OpGestionarUsuarios: true,
	},
}

// Can reports whether the role holds the operation. Unknown roles hold nothing.
func Can(role models.UserRole, op Operation) bool {
	return capabilities[role][op]
}

// Caller identifies the authenticated account performing an operation.
type Caller struct {
	ID   uuid.UUID
	Role models.UserRole
}

func (c Caller) Can(op Operation) bool {
	return Can(c.Role, op)
}

type AuthorizationService struct{}

func NewAuthorizationService() *AuthorizationService {
	return &AuthorizationService{}
}

func (s *AuthorizationService) Can(role models.UserRole, op Operation) bool {
	return Can(role, op)
}

// AllowedOperations returns the operations a role holds, for the profile
// endpoint so clients can build menus without hardcoding the table.
func (s *AuthorizationService) AllowedOperations(role models.UserRole) []Operation {
	ops := make([]Operation, 0, len(capabilities[role]))
	for op, ok := range capabilities[role] {
		if ok {
			ops = append(ops, op)
		}
	}
	return ops
}
