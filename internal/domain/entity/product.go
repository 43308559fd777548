package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de una cuenta.
// Quantity es la existencia actual y nunca baja de cero; solo el libro de
// stock la modifica (vía movimientos). Cost es opcional y se usa únicamente
// para estimar la ganancia en la valoración.
type Product struct {
	ID          string
	OwnerID     string // cuenta propietaria; un producto no se comparte
	Name        string
	Description string
	Category    string
	Quantity    int64
	Price       decimal.Decimal  // precio de venta
	Cost        *decimal.Decimal // costo de adquisición (nil = desconocido)
	Supplier    string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
