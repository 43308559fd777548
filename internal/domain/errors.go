package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los cuatro primeros forman la taxonomía del libro de stock; el resto
// cubre autenticación y catálogo.
var (
	ErrProductNotFound   = errors.New("producto no encontrado")
	ErrInvalidQuantity   = errors.New("cantidad inválida")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrPersistence       = errors.New("fallo de persistencia")

	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrAlreadySetUp       = errors.New("la cuenta administradora ya existe")
)
