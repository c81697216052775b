// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthEmailTaken         = "auth.email_taken"
	KeyAuthRegisterSuccess    = "auth.register_success"
	KeyAuthLoginSuccess       = "auth.login_success"

	// Authorization
	KeyAccessDenied = "authz.access_denied"

	// Solicitudes
	KeySolicitudCreada         = "solicitud.creada"
	KeySolicitudNotFound       = "solicitud.not_found"
	KeySolicitudEstadoInvalido = "solicitud.estado_invalido"
	KeySolicitudTransicion     = "solicitud.transicion_invalida"
	KeySolicitudActualizada    = "solicitud.actualizada"

	// Certificados
	KeyCertificadoNoEncontrado = "certificado.no_encontrado"

	// Usuarios
	KeyUsuarioNotFound    = "usuario.not_found"
	KeyUsuarioActualizado = "usuario.actualizado"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// Infrastructure
	KeyTransientError = "infra.transient"
)
