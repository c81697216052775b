// internal/services/service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/munidigital/habilitaciones-backend/internal/models"
)

// Valid AFIP identifiers used across the suite.
const (
	cuitSolicitante = "20-12345678-6"
	cuitTitular     = "27-00000000-6"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps the in-memory database alive for the test.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Solicitud{},
		&models.Inspeccion{},
		&models.AuditLog{},
	))

	return db
}

func createUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{
		Email:    email,
		Role:     role,
		Nombre:   "Test",
		Apellido: "Usuario",
		CuitCuil: cuitSolicitante,
	}
	require.NoError(t, user.SetPassword("Password123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func callerFor(user *models.User) Caller {
	return Caller{ID: user.ID, Role: user.Role}
}

func validRequest() *CrearSolicitudRequest {
	return &CrearSolicitudRequest{
		SolicitanteNombre:   "Juan",
		SolicitanteApellido: "Pérez",
		SolicitanteCuitCuil: cuitSolicitante,
		SolicitanteEmail:    "juan.perez@example.com",

		TitularTipo:   models.TitularFisica,
		TitularNombre: "Juan Pérez",
		TitularCuit:   cuitTitular,

		DomicilioCalle:     "San Martín",
		DomicilioAltura:    "1250",
		DomicilioLocalidad: "Centro",

		RubroTipo:       "Comercio minorista",
		MetrosCuadrados: 45.5,

		TieneSanitarios:      true,
		CantidadTrabajadores: 2,
	}
}

func createSolicitud(t *testing.T, svc *SolicitudService, caller Caller) *models.Solicitud {
	t.Helper()

	solicitud, err := svc.CrearSolicitud(caller, validRequest())
	require.NoError(t, err)
	return solicitud
}
