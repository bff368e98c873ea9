package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrRequestNotFound      = errors.New("solicitud no encontrada")
	ErrProductNotFound      = errors.New("producto no encontrado")
	ErrMovementNotFound     = errors.New("movimiento no encontrado")
	ErrDraftNotFound        = errors.New("no hay borrador abierto")
	ErrLineItemNotFound     = errors.New("ítem no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrInvalidTransition    = errors.New("transición de estado no permitida")
	ErrConfirmationRequired = errors.New("la acción requiere confirmación")
	ErrLineItemsRequired    = errors.New("se requiere al menos un ítem")
)
