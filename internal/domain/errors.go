package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// La capa HTTP los traduce a códigos de estado; cualquier otro error es interno (500).
var (
	// Validación (400)
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrEmptyCart         = errors.New("el carrito está vacío")
	ErrMissingFullName   = errors.New("la dirección de envío requiere nombre completo")
	ErrWeakPassword      = errors.New("password debe tener al menos 6 caracteres")
	ErrInvalidTransition = errors.New("transición de estado no permitida")

	// Autenticación / autorización (401, 403)
	ErrUnauthorized       = errors.New("no autorizado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrForbidden          = errors.New("acceso denegado")
	ErrAccountDisabled    = errors.New("cuenta inactiva o suspendida")

	// Pago (402)
	ErrPaymentDeclined = errors.New("pago rechazado")

	// No encontrado (404)
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUserNotFound = errors.New("usuario no encontrado")

	// Conflictos de unicidad (409)
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrOrderNumberTaken   = errors.New("número de orden duplicado")
)
