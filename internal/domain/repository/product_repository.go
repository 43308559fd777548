package repository

import (
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia para productos.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando su fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción del TxRunner.
	GetForUpdate(id string) (*entity.Product, error)
	ListByOwner(ownerID, category string, limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateQuantity actualiza existencia y updated_at (uso exclusivo del libro de stock).
	UpdateQuantity(id string, quantity int64, updatedAt time.Time) error
	Delete(id string) error
}
