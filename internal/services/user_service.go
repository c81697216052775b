// internal/services/user_service.go
package services

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/munidigital/habilitaciones-backend/internal/models"
	"github.com/munidigital/habilitaciones-backend/internal/utils"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// ListUsers returns one page of accounts plus the total count.
// Administrator-only.
func (s *UserService) ListUsers(caller Caller, params utils.PaginationParams) ([]models.User, int64, error) {
	if !caller.Can(OpGestionarUsuarios) {
		return nil, 0, ErrUnauthorized
	}

	var total int64
	if err := s.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, storeError(err)
	}

	var users []models.User
	if err := utils.ApplyPagination(s.db.Order("created_at DESC"), params).
		Find(&users).Error; err != nil {
		return nil, 0, storeError(err)
	}
	return users, total, nil
}

// UpdateRole promotes or demotes an account. Administrator-only; this is the
// only path to inspector/administrador besides seeding.
func (s *UserService) UpdateRole(caller Caller, userID uuid.UUID, role models.UserRole) (*models.User, error) {
	if !caller.Can(OpGestionarUsuarios) {
		return nil, ErrUnauthorized
	}

	switch role {
	case models.RoleCiudadano, models.RoleInspector, models.RoleAdministrador:
	default:
		return nil, fmt.Errorf("%w: rol desconocido %q", ErrValidation, role)
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, storeError(err)
	}

	if err := s.db.Model(&user).Update("role", role).Error; err != nil {
		return nil, storeError(err)
	}
	user.Role = role

	return &user, nil
}
