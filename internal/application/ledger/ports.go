package ledger

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el alta del movimiento y la
// actualización de existencia del producto se observen juntas o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}
