// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/munidigital/habilitaciones-backend/internal/config"
	"github.com/munidigital/habilitaciones-backend/internal/handlers"
	"github.com/munidigital/habilitaciones-backend/internal/middleware"
	"github.com/munidigital/habilitaciones-backend/internal/models"
	"github.com/munidigital/habilitaciones-backend/internal/services"
	"github.com/munidigital/habilitaciones-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	notificationService := services.NewNotificationService(db, cfg)
	authorizationService := services.NewAuthorizationService()

	authService := services.NewAuthService(db, cfg)
	solicitudService := services.NewSolicitudService(db, notificationService)
	certificadoService := services.NewCertificadoService(db)
	inspeccionService := services.NewInspeccionService(db)
	statsService := services.NewStatsService(db, inspeccionService)
	userService := services.NewUserService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, authorizationService)
	solicitudHandler := handlers.NewSolicitudHandler(solicitudService)
	verificarHandler := handlers.NewVerificarHandler(certificadoService)
	inspeccionHandler := handlers.NewInspeccionHandler(inspeccionService)
	adminHandler := handlers.NewAdminHandler(statsService, userService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	api := r.Group("/api")
	{
		// Authentication routes
		auth := api.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Public certificate verification, no authentication
		api.GET("/verificar/:id", middleware.VerifyRateLimit(), verificarHandler.VerificarCertificado)

		// Authenticated routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired())
		{
			// Citizens file requests; visibility scoping lives in the service
			protected.POST("/habilitacion_precaria",
				middleware.RoleRequired(models.RoleCiudadano),
				solicitudHandler.CrearSolicitud)

			protected.GET("/solicitudes", solicitudHandler.GetSolicitudes)
			protected.GET("/afap/:id", solicitudHandler.GetSolicitud)

			// Operator-only workflow mutation
			protected.PATCH("/afap/:id/estado",
				middleware.RoleRequired(models.RoleInspector, models.RoleAdministrador),
				solicitudHandler.CambiarEstado)

			protected.GET("/inspecciones",
				middleware.RoleRequired(models.RoleInspector, models.RoleAdministrador),
				inspeccionHandler.GetInspecciones)

			// Administrator-only routes
			admin := protected.Group("")
			admin.Use(middleware.AdminRequired())
			{
				admin.GET("/stats/dashboard", adminHandler.GetDashboardStats)
				admin.GET("/usuarios", adminHandler.GetUsers)
				admin.PUT("/usuarios/:id/rol", adminHandler.UpdateUserRole)
			}
		}
	}

	return r
}
