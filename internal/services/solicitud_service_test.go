// internal/services/solicitud_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/munidigital/habilitaciones-backend/internal/models"
)

func TestCrearSolicitudAssignsSequentialNumero(t *testing.T) {
	db := setupDB(t)
	svc := NewSolicitudService(db, nil)
	ciudadano := callerFor(createUser(t, db, "vecino@example.com", models.RoleCiudadano))

	primera := createSolicitud(t, svc, ciudadano)
	segunda := createSolicitud(t, svc, ciudadano)

	assert.Equal(t, 1001, primera.Numero)
	assert.Equal(t, 1002, segunda.Numero)
	assert.Equal(t, models.EstadoPendiente, primera.Estado)
	assert.Nil(t, primera.FechaVencimiento)
	assert.Equal(t, ciudadano.ID, primera.SolicitanteID)
}

func TestCrearSolicitudRejectsNonCiudadano(t *testing.T) {
	db := setupDB(t)
	svc := NewSolicitudService(db, nil)
	inspector := callerFor(createUser(t, db, "inspector@example.com", models.RoleInspector))

	_, err := svc.CrearSolicitud(inspector, validRequest())

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCrearSolicitudRejectsInvalidCuit(t *testing.T) {
	db := setupDB(t)
	svc := NewSolicitudService(db, nil)
	ciudadano := callerFor(createUser(t, db, "vecino@example.com", models.RoleCiudadano))

	req := validRequest()
	req.TitularCuit = "20-12345678-5"

	_, err := svc.CrearSolicitud(ciudadano, req)

	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetSolicitudOwnerScoping(t *testing.T) {
	db := setupDB(t)
	svc := NewSolicitudService(db, nil)

	duenio := callerFor(createUser(t, db, "duenio@example.com", models.RoleCiudadano))
	otro := callerFor(createUser(t, db, "otro@example.com", models.RoleCiudadano))
	inspector := callerFor(createUser(t, db, "inspector@example.com", models.RoleInspector))

	solicitud := createSolicitud(t, svc, duenio)

	propia, err := svc.GetSolicitud(duenio, solicitud.ID)
	require.NoError(t, err)
	assert.Equal(t, solicitud.ID, propia.ID)

	// Another citizen gets the same answer as for a nonexistent record.
	_, err = svc.GetSolicitud(otro, solicitud.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	ajena, err := svc.GetSolicitud(inspector, solicitud.ID)
	require.NoError(t, err)
	assert.Equal(t, solicitud.ID, ajena.ID)
}

func TestGetSolicitudUnknownID(t *testing.T) {
	db := setupDB(t)
	svc := NewSolicitudService(db, nil)
	inspector := callerFor(createUser(t, db, "inspector@example.com", models.RoleInspector))

	_, err := svc.GetSolicitud(inspector, uuid.New())

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListSolicitudesScoping(t *testing.T) {
	db := setupDB(t)
	svc := NewSolicitudService(db, nil)

	uno := callerFor(createUser(t, db, "uno@example.com", models.RoleCiudadano))
	dos := callerFor(createUser(t, db, "dos@example.com", models.RoleCiudadano))
	admin := callerFor(createUser(t, db, "admin@example.com", models.RoleAdministrador))

	createSolicitud(t, svc, uno)
	createSolicitud(t, svc, uno)
	createSolicitud(t, svc, dos)

	propias, err := svc.ListSolicitudes(uno)
	require.NoError(t, err)
	assert.Len(t, propias, 2)

	todas, err := svc.ListSolicitudes(admin)
	require.NoError(t, err)
	assert.Len(t, todas, 3)
}

func TestCambiarEstadoPendienteAInspeccion(t *testing.T) {
	db := setupDB(t)
	svc := NewSolicitudService(db, nil)

	ciudadano := callerFor(createUser(t, db, "vecino@example.com", models.RoleCiudadano))
	inspector := callerFor(createUser(t, db, "inspector@example.com", models.RoleInspector))

	solicitud := createSolicitud(t, svc, ciudadano)

	actualizada, err := svc.CambiarEstado(inspector, solicitud.ID, models.EstadoInspeccion, "verificar salida de emergencia")
	require.NoError(t, err)
	assert.Equal(t, models.EstadoInspeccion, actualizada.Estado)
	assert.Equal(t, "verificar salida de emergencia", actualizada.Observaciones)

	// Entering inspeccion schedules an inspection.
	var inspecciones []models.Inspeccion
	require.NoError(t, db.Where("solicitud_id = ?", solicitud.ID).Find(&inspecciones).Error)
	require.Len(t, inspecciones, 1)
	assert.Equal(t, models.InspeccionProgramada, inspecciones[0].Estado)
	require.NotNil(t, inspecciones[0].InspectorID)
	assert.Equal(t, inspector.ID, *inspecciones[0].InspectorID)
}

func TestCambiarEstadoAprobacionFijaVencimiento(t *testing.T) {
	db := setupDB(t)
	svc := NewSolicitudService(db, nil)

	ciudadano := callerFor(createUser(t, db, "vecino@example.com", models.RoleCiudadano))
	admin := callerFor(createUser(t, db, "admin@example.com", models.RoleAdministrador))

	solicitud := createSolicitud(t, svc, ciudadano)

	antes := time.Now()
	aprobada, err := svc.CambiarEstado(admin, solicitud.ID, models.EstadoAprobado, "")
	require.NoError(t, err)

	require.NotNil(t, aprobada.FechaVencimiento)
	assert.WithinDuration(t, antes.Add(VigenciaCertificado), *aprobada.FechaVencimiento, 5*time.Second)
}

func TestCambiarEstadoMismoEstadoConservaVencimiento(t *testing.T) {
	db := setupDB(t)
	svc := NewSolicitudService(db, nil)

	ciudadano := callerFor(createUser(t, db, "vecino@example.com", models.RoleCiudadano))
	admin := callerFor(createUser(t, db, "admin@example.com", models.RoleAdministrador))

	solicitud := createSolicitud(t, svc, ciudadano)

	aprobada, err := svc.CambiarEstado(admin, solicitud.ID, models.EstadoAprobado, "")
	require.NoError(t, err)
	require.NotNil(t, aprobada.FechaVencimiento)
	original := *aprobada.FechaVencimiento

	// Re-applying the terminal status only touches observaciones.
	repetida, err := svc.CambiarEstado(admin, solicitud.ID, models.EstadoAprobado, "reimpresión de certificado")
	require.NoError(t, err)
	assert.Equal(t, "reimpresión de certificado", repetida.Observaciones)

	var persistida models.Solicitud
	require.NoError(t, db.First(&persistida, "id = ?", solicitud.ID).Error)
	require.NotNil(t, persistida.FechaVencimiento)
	assert.WithinDuration(t, original, *persistida.FechaVencimiento, time.Second)
}

func TestCambiarEstadoRechazoSinMotivoUsaLeyenda(t *testing.T) {
	db := setupDB(t)
	svc := NewSolicitudService(db, nil)

	ciudadano := callerFor(createUser(t, db, "vecino@example.com", models.RoleCiudadano))
	inspector := callerFor(createUser(t, db, "inspector@example.com", models.RoleInspector))

	solicitud := createSolicitud(t, svc, ciudadano)

	rechazada, err := svc.CambiarEstado(inspector, solicitud.ID, models.EstadoRechazado, "")
	require.NoError(t, err)

	assert.Equal(t, models.EstadoRechazado, rechazada.Estado)
	assert.Equal(t, ObservacionRechazoDefault, rechazada.Observaciones)
}

func TestCambiarEstadoDesdeTerminalFalla(t *testing.T) {
	db := setupDB(t)
	svc := NewSolicitudService(db, nil)

	ciudadano := callerFor(createUser(t, db, "vecino@example.com", models.RoleCiudadano))
	admin := callerFor(createUser(t, db, "admin@example.com", models.RoleAdministrador))

	solicitud := createSolicitud(t, svc, ciudadano)

	_, err := svc.CambiarEstado(admin, solicitud.ID, models.EstadoRechazado, "no cumple")
	require.NoError(t, err)

	_, err = svc.CambiarEstado(admin, solicitud.ID, models.EstadoAprobado, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	var persistida models.Solicitud
	require.NoError(t, db.First(&persistida, "id = ?", solicitud.ID).Error)
	assert.Equal(t, models.EstadoRechazado, persistida.Estado)
}

func TestCambiarEstadoDesconocidoNoMuta(t *testing.T) {
	db := setupDB(t)
	svc := NewSolicitudService(db, nil)

	ciudadano := callerFor(createUser(t, db, "vecino@example.com", models.RoleCiudadano))
	admin := callerFor(createUser(t, db, "admin@example.com", models.RoleAdministrador))

	solicitud := createSolicitud(t, svc, ciudadano)

	_, err := svc.CambiarEstado(admin, solicitud.ID, models.Estado("archivado"), "")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	var persistida models.Solicitud
	require.NoError(t, db.First(&persistida, "id = ?", solicitud.ID).Error)
	assert.Equal(t, models.EstadoPendiente, persistida.Estado)
}

func TestCambiarEstadoRequiereRolOperativo(t *testing.T) {
	db := setupDB(t)
	svc := NewSolicitudService(db, nil)

	ciudadano := callerFor(createUser(t, db, "vecino@example.com", models.RoleCiudadano))
	solicitud := createSolicitud(t, svc, ciudadano)

	// Not even over their own record.
	_, err := svc.CambiarEstado(ciudadano, solicitud.ID, models.EstadoAprobado, "")

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCambiarEstadoSalirDeInspeccionCompletaInspecciones(t *testing.T) {
	db := setupDB(t)
	svc := NewSolicitudService(db, nil)

	ciudadano := callerFor(createUser(t, db, "vecino@example.com", models.RoleCiudadano))
	inspector := callerFor(createUser(t, db, "inspector@example.com", models.RoleInspector))

	solicitud := createSolicitud(t, svc, ciudadano)

	_, err := svc.CambiarEstado(inspector, solicitud.ID, models.EstadoInspeccion, "")
	require.NoError(t, err)

	_, err = svc.CambiarEstado(inspector, solicitud.ID, models.EstadoAprobado, "local en condiciones")
	require.NoError(t, err)

	var inspeccion models.Inspeccion
	require.NoError(t, db.First(&inspeccion, "solicitud_id = ?", solicitud.ID).Error)
	assert.Equal(t, models.InspeccionCompletada, inspeccion.Estado)
	assert.NotNil(t, inspeccion.CompletadaAt)
}

func TestCambiarEstadoSolicitudInexistente(t *testing.T) {
	db := setupDB(t)
	svc := NewSolicitudService(db, nil)
	admin := callerFor(createUser(t, db, "admin@example.com", models.RoleAdministrador))

	_, err := svc.CambiarEstado(admin, uuid.New(), models.EstadoAprobado, "")

	assert.ErrorIs(t, err, ErrNotFound)
}
