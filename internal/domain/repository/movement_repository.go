package repository

import (
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// MovementFilter filtros opcionales para listar movimientos.
type MovementFilter struct {
	From     *time.Time
	To       *time.Time
	Category string // categoría del producto referenciado
	Limit    int
	Offset   int
}

// MovementRepository puerto de persistencia para movimientos.
// El log es append-only: no hay Update ni Delete.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	ListByOwner(ownerID string, filter MovementFilter) ([]*entity.Movement, error)
}
