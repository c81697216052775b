// internal/services/authorization_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/munidigital/habilitaciones-backend/internal/models"
)

func TestCapabilitiesPorRol(t *testing.T) {
	cases := []struct {
		role models.UserRole
		op   Operation
		want bool
	}{
		{models.RoleCiudadano, OpCrearSolicitud, true},
		{models.RoleCiudadano, OpVerPropias, true},
		{models.RoleCiudadano, OpVerTodas, false},
		{models.RoleCiudadano, OpCambiarEstado, false},
		{models.RoleCiudadano, OpVerEstadisticas, false},

		{models.RoleInspector, OpCrearSolicitud, false},
		{models.RoleInspector, OpVerTodas, true},
		{models.RoleInspector, OpCambiarEstado, true},
		{models.RoleInspector, OpVerInspecciones, true},
		{models.RoleInspector, OpVerEstadisticas, false},
		{models.RoleInspector, OpGestionarUsuarios, false},

		{models.RoleAdministrador, OpVerTodas, true},
		{models.RoleAdministrador, OpCambiarEstado, true},
		{models.RoleAdministrador, OpVerEstadisticas, true},
		{models.RoleAdministrador, OpGestionarUsuarios, true},
		{models.RoleAdministrador, OpCrearSolicitud, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Can(tc.role, tc.op),
			"role=%s op=%s", tc.role, tc.op)
	}
}

func TestUnknownRoleHoldsNothing(t *testing.T) {
	for _, op := range []Operation{OpCrearSolicitud, OpVerPropias, OpVerTodas, OpCambiarEstado} {
		assert.False(t, Can(models.UserRole("superusuario"), op))
	}
}

func TestAllowedOperationsMatchesTable(t *testing.T) {
	svc := NewAuthorizationService()

	ops := svc.AllowedOperations(models.RoleCiudadano)
	assert.ElementsMatch(t, []Operation{OpCrearSolicitud, OpVerPropias}, ops)

	assert.Empty(t, svc.AllowedOperations(models.UserRole("desconocido")))
}
