// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/munidigital/habilitaciones-backend/internal/config"
	"github.com/munidigital/habilitaciones-backend/internal/models"
)

var DB *gorm.DB

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var err error
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		}
	}

	// Connect to database
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return DB, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Solicitud{},
		&models.Inspeccion{},
		&models.AuditLog{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_role ON users(role)",

		// Solicitud indexes
		"CREATE INDEX IF NOT EXISTS idx_solicitudes_estado_fecha ON solicitudes(estado, fecha_solicitud DESC)",
		"CREATE INDEX IF NOT EXISTS idx_solicitudes_solicitante ON solicitudes(solicitante_id, fecha_solicitud DESC)",
		"CREATE INDEX IF NOT EXISTS idx_solicitudes_titular_cuit ON solicitudes(titular_cuit)",
		"CREATE INDEX IF NOT EXISTS idx_solicitudes_vencimiento ON solicitudes(fecha_vencimiento)",

		// Inspeccion indexes
		"CREATE INDEX IF NOT EXISTS idx_inspecciones_solicitud ON inspecciones(solicitud_id)",
		"CREATE INDEX IF NOT EXISTS idx_inspecciones_estado ON inspecciones(estado, fecha_programada)",

		// Audit indexes
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_user_action ON audit_logs(user_id, action)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_resource ON audit_logs(resource_type, resource_id)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_created ON audit_logs(created_at DESC)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// Seed initial data
func SeedInitialData(db *gorm.DB) error {
	log.Println("Seeding initial data...")

	// Create default admin user
	var adminCount int64
	db.Model(&models.User{}).Where("role = ?", models.RoleAdministrador).Count(&adminCount)

	if adminCount == 0 {
		admin := &models.User{
			Email:    "admin@munidigital.gob.ar",
			Role:     models.RoleAdministrador,
			Nombre:   "Administrador",
			Apellido: "Municipal",
		}

		if err := admin.SetPassword("CambiarYa2024!"); err != nil {
			return fmt.Errorf("failed to set admin password: %w", err)
		}

		if err := db.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		log.Println("Default admin user created successfully")
	}

	var inspectorCount int64
	db.Model(&models.User{}).Where("role = ?", models.RoleInspector).Count(&inspectorCount)

	if inspectorCount == 0 {
		inspector := &models.User{
			Email:    "inspecciones@munidigital.gob.ar",
			Role:     models.RoleInspector,
			Nombre:   "Cuerpo",
			Apellido: "Inspectivo",
		}

		if err := inspector.SetPassword("CambiarYa2024!"); err != nil {
			return fmt.Errorf("failed to set inspector password: %w", err)
		}

		if err := db.Create(inspector).Error; err != nil {
			return fmt.Errorf("failed to create inspector user: %w", err)
		}

		log.Println("Default inspector user created successfully")
	}

	log.Println("Initial data seeding completed")
	return nil
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
