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
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")

	// Inventario y venta
	ErrInvalidTransition   = errors.New("transición de estado inválida")
	ErrItemUnavailable     = errors.New("la pieza ya no está disponible para venta")
	ErrInvalidCoupon       = errors.New("cupón inválido o inactivo")
	ErrInsufficientBalance = errors.New("saldo de la proveedora insuficiente")
	ErrInsufficientCredit  = errors.New("crédito del cliente insuficiente")

	// Acceso
	ErrInvalidCredentials = errors.New("email o contraseña incorrectos")
	ErrAccountDisabled    = errors.New("cuenta desactivada")
	ErrSessionRevoked     = errors.New("la sesión ya no es válida")
	ErrSelfProtection     = errors.New("no es posible desactivar o eliminar el propio perfil")
	ErrLastAdmin          = errors.New("debe existir al menos un administrador activo")

	// Almacenamiento de imágenes
	ErrBlobPolicy  = errors.New("almacenamiento: permiso o política denegada")
	ErrBlobStorage = errors.New("almacenamiento: error al guardar la imagen")
)
