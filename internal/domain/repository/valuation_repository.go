package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// InventoryTotals agregados sobre el catálogo actual de una cuenta.
type InventoryTotals struct {
	StockValue      decimal.Decimal // Σ(price × quantity)
	EstimatedProfit decimal.Decimal // Σ((price − cost) × quantity), solo con price y cost > 0
	ProductCount    int64
}

// MovementTotals agregados sobre el historial de movimientos de una cuenta.
type MovementTotals struct {
	EntryValue    decimal.Decimal // Σ(quantity × unit_price) de entradas
	ExitUnits     int64           // Σ(quantity) de salidas (unidades, no valor)
	MovementCount int64
}

// ValuationRepository consultas de solo lectura para la valoración del stock.
type ValuationRepository interface {
	GetInventoryTotals(ctx context.Context, ownerID string) (*InventoryTotals, error)
	GetMovementTotals(ctx context.Context, ownerID string, from, to *time.Time) (*MovementTotals, error)
}
