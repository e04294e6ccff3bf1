package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")

	// Reglas de negocio del ledger de stock.
	ErrNegativeStock     = errors.New("stock negativo no permitido en esta ubicación")
	ErrInsufficientStock = errors.New("stock disponible insuficiente")
	ErrOverReservation   = errors.New("no se puede reservar más que la cantidad total")

	// ErrInvariantViolation: el guard del repositorio detectó un estado inconsistente
	// tras aplicar un delta. Es señal de bug, no error de usuario; se reporta como 500.
	ErrInvariantViolation = errors.New("invariante de stock violada")

	// ErrTxConflict: la transacción no pudo confirmarse por un escritor concurrente.
	// Reintentable; el ledger lo reintenta con backoff antes de propagarlo al caller.
	ErrTxConflict = errors.New("conflicto de concurrencia, reintentar")
)
