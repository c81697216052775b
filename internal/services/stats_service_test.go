// internal/services/stats_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/munidigital/habilitaciones-backend/internal/models"
)

func TestGetDashboardStats(t *testing.T) {
	db := setupDB(t)
	solicitudes := NewSolicitudService(db, nil)
	svc := NewStatsService(db, NewInspeccionService(db))

	ciudadano := callerFor(createUser(t, db, "vecino@example.com", models.RoleCiudadano))
	inspector := callerFor(createUser(t, db, "inspector@example.com", models.RoleInspector))
	admin := callerFor(createUser(t, db, "admin@example.com", models.RoleAdministrador))

	a := createSolicitud(t, solicitudes, ciudadano)
	b := createSolicitud(t, solicitudes, ciudadano)
	createSolicitud(t, solicitudes, ciudadano)

	_, err := solicitudes.CambiarEstado(inspector, a.ID, models.EstadoInspeccion, "")
	require.NoError(t, err)
	_, err = solicitudes.CambiarEstado(inspector, b.ID, models.EstadoInspeccion, "")
	require.NoError(t, err)
	_, err = solicitudes.CambiarEstado(inspector, b.ID, models.EstadoAprobado, "")
	require.NoError(t, err)

	stats, err := svc.GetDashboardStats(admin)
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.Solicitudes.Total)
	assert.Equal(t, int64(1), stats.Solicitudes.Pendientes)
	assert.Equal(t, int64(1), stats.Solicitudes.EnInspeccion)
	assert.Equal(t, int64(1), stats.Solicitudes.Aprobados)
	assert.Equal(t, int64(0), stats.Solicitudes.Rechazados)

	assert.Equal(t, int64(1), stats.Inspecciones.Programadas)
	assert.Equal(t, int64(1), stats.Inspecciones.Completadas)

	assert.Equal(t, int64(3), stats.Usuarios.Total)
	assert.Len(t, stats.Recientes, 3)
}

func TestGetDashboardStatsRequiereAdministrador(t *testing.T) {
	db := setupDB(t)
	svc := NewStatsService(db, NewInspeccionService(db))

	inspector := callerFor(createUser(t, db, "inspector@example.com", models.RoleInspector))

	_, err := svc.GetDashboardStats(inspector)

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestListInspeccionesRequiereRolOperativo(t *testing.T) {
	db := setupDB(t)
	svc := NewInspeccionService(db)

	ciudadano := callerFor(createUser(t, db, "vecino@example.com", models.RoleCiudadano))
	inspector := callerFor(createUser(t, db, "inspector@example.com", models.RoleInspector))

	_, err := svc.ListInspecciones(ciudadano)
	assert.ErrorIs(t, err, ErrUnauthorized)

	inspecciones, err := svc.ListInspecciones(inspector)
	require.NoError(t, err)
	assert.Empty(t, inspecciones)
}

func TestListInspeccionesIncluyeSolicitud(t *testing.T) {
	db := setupDB(t)
	solicitudes := NewSolicitudService(db, nil)
	svc := NewInspeccionService(db)

	ciudadano := callerFor(createUser(t, db, "vecino@example.com", models.RoleCiudadano))
	inspector := callerFor(createUser(t, db, "inspector@example.com", models.RoleInspector))

	solicitud := createSolicitud(t, solicitudes, ciudadano)
	_, err := solicitudes.CambiarEstado(inspector, solicitud.ID, models.EstadoInspeccion, "")
	require.NoError(t, err)

	inspecciones, err := svc.ListInspecciones(inspector)
	require.NoError(t, err)
	require.Len(t, inspecciones, 1)
	assert.Equal(t, solicitud.ID, inspecciones[0].SolicitudID)
	assert.Equal(t, solicitud.Numero, inspecciones[0].Solicitud.Numero)
}
