// internal/models/user.go
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"`
	Role         UserRole   `json:"role" gorm:"type:varchar(20);not null;default:'ciudadano'"`
	Nombre       string     `json:"nombre" gorm:"size:100;not null"`
	Apellido     string     `json:"apellido" gorm:"size:100;not null"`
	CuitCuil     string     `json:"cuit_cuil" gorm:"size:13"`
	Telefono     string     `json:"telefono" gorm:"size:30"`
	LastLoginAt  *time.Time `json:"last_login_at"`

	// Relationships
	Solicitudes []Solicitud `json:"solicitudes,omitempty" gorm:"foreignKey:SolicitanteID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}
