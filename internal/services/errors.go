// internal/services/errors.go
package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error taxonomy shared by every service. Handlers map these with errors.Is;
// anything not in the list is treated as an internal error.
var (
	// ErrNotFound: no record with the given id visible to the caller.
	ErrNotFound = errors.New("registro no encontrado")

	// ErrUnauthorized: role/ownership check failed. Returned before any
	// lookup so it never reveals whether the resource exists.
	ErrUnauthorized = errors.New("operacion no autorizada")

	// ErrInvalidStatus: target status outside the known set.
	ErrInvalidStatus = errors.New("estado invalido")

	// ErrInvalidTransition: known status but no legal edge from the current one.
	ErrInvalidTransition = errors.New("transicion de estado invalida")

	// ErrValidation: malformed or missing required fields.
	ErrValidation = errors.New("datos de solicitud invalidos")

	// ErrTransient: store unavailable or timed out; safe to retry.
	ErrTransient = errors.New("almacenamiento no disponible")
)

// storeError normalizes gorm/driver failures into the taxonomy. Timeouts and
// cancellations are retryable, not business errors.
func storeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %v", ErrTransient, err)
	default:
		return fmt.Errorf("error de base de datos: %w", err)
	}
}
