// internal/services/user_service_test.go
package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/munidigital/habilitaciones-backend/internal/models"
	"github.com/munidigital/habilitaciones-backend/internal/utils"
)

func TestListUsersRequiereAdministrador(t *testing.T) {
	db := setupDB(t)
	svc := NewUserService(db)

	inspector := callerFor(createUser(t, db, "inspector@example.com", models.RoleInspector))
	admin := callerFor(createUser(t, db, "admin@example.com", models.RoleAdministrador))

	params := utils.PaginationParams{Page: 1, Limit: 20}

	_, _, err := svc.ListUsers(inspector, params)
	assert.ErrorIs(t, err, ErrUnauthorized)

	users, total, err := svc.ListUsers(admin, params)
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, int64(2), total)
}

func TestListUsersPagina(t *testing.T) {
	db := setupDB(t)
	svc := NewUserService(db)

	admin := callerFor(createUser(t, db, "admin@example.com", models.RoleAdministrador))
	for i := 0; i < 3; i++ {
		createUser(t, db, fmt.Sprintf("vecino%d@example.com", i), models.RoleCiudadano)
	}

	users, total, err := svc.ListUsers(admin, utils.PaginationParams{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, int64(4), total)

	resto, _, err := svc.ListUsers(admin, utils.PaginationParams{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, resto, 2)
}

func TestUpdateRolePromueveAInspector(t *testing.T) {
	db := setupDB(t)
	svc := NewUserService(db)

	vecino := createUser(t, db, "vecino@example.com", models.RoleCiudadano)
	admin := callerFor(createUser(t, db, "admin@example.com", models.RoleAdministrador))

	updated, err := svc.UpdateRole(admin, vecino.ID, models.RoleInspector)
	require.NoError(t, err)
	assert.Equal(t, models.RoleInspector, updated.Role)

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", vecino.ID).Error)
	assert.Equal(t, models.RoleInspector, stored.Role)
}

func TestUpdateRoleRejectsUnknownRole(t *testing.T) {
	db := setupDB(t)
	svc := NewUserService(db)

	vecino := createUser(t, db, "vecino@example.com", models.RoleCiudadano)
	admin := callerFor(createUser(t, db, "admin@example.com", models.RoleAdministrador))

	_, err := svc.UpdateRole(admin, vecino.ID, models.UserRole("superusuario"))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateRoleUnknownUser(t *testing.T) {
	db := setupDB(t)
	svc := NewUserService(db)
	admin := callerFor(createUser(t, db, "admin@example.com", models.RoleAdministrador))

	_, err := svc.UpdateRole(admin, uuid.New(), models.RoleInspector)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateRoleRequiereAdministrador(t *testing.T) {
	db := setupDB(t)
	svc := NewUserService(db)

	vecino := createUser(t, db, "vecino@example.com", models.RoleCiudadano)
	inspector := callerFor(createUser(t, db, "inspector@example.com", models.RoleInspector))

	_, err := svc.UpdateRole(inspector, vecino.ID, models.RoleAdministrador)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
