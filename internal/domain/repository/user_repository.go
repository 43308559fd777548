package repository

import "github.com/jhoicas/stock-ledger-api/internal/domain/entity"

// UserRepository puerto de persistencia para cuentas.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	// HasAdmin indica si ya existe al menos una cuenta admin (bootstrap explícito).
	HasAdmin() (bool, error)
}
