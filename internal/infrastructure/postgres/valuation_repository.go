package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.ValuationRepository = (*ValuationRepo)(nil)

// ValuationRepo consultas de solo lectura para la valoración del stock.
type ValuationRepo struct {
	pool *pgxpool.Pool
}

// NewValuationRepository construye el adaptador de valoración.
func NewValuationRepository(pool *pgxpool.Pool) *ValuationRepo {
	return &ValuationRepo{pool: pool}
}

// GetInventoryTotals agrega valor del stock y ganancia estimada del catálogo.
// Productos sin costo (cost NULL o <= 0) contribuyen 0 a la ganancia, no error.
// Usa COALESCE para devolver cero si la cuenta no tiene productos.
func (r *ValuationRepo) GetInventoryTotals(ctx context.Context, ownerID string) (*repository.InventoryTotals, error) {
	const query = `
	SELECT
	    COALESCE(SUM(price * quantity), 0)                             AS stock_value,
	    COALESCE(SUM(
	        CASE WHEN price > 0 AND cost IS NOT NULL AND cost > 0
	             THEN (price - cost) * quantity
	             ELSE 0
	        END), 0)                                                   AS estimated_profit,
	    COUNT(*)                                                       AS product_count
	FROM products
	WHERE owner_id = $1`

	var t repository.InventoryTotals
	err := r.pool.QueryRow(ctx, query, ownerID).
		Scan(&t.StockValue, &t.EstimatedProfit, &t.ProductCount)
	if err != nil {
		return nil, fmt.Errorf("valuation.GetInventoryTotals: %w", err)
	}
	return &t, nil
}

// GetMovementTotals agrega valor de entradas (cantidad × precio snapshot) y
// unidades de salidas en el rango dado; nil = sin límite.
func (r *ValuationRepo) GetMovementTotals(ctx context.Context, ownerID string, from, to *time.Time) (*repository.MovementTotals, error) {
	query := `
	SELECT
	    COALESCE(SUM(CASE WHEN type = $2 THEN quantity * unit_price ELSE 0 END), 0) AS entry_value,
	    COALESCE(SUM(CASE WHEN type = $3 THEN quantity ELSE 0 END), 0)              AS exit_units,
	    COUNT(*)                                                                    AS movement_count
	FROM movements
	WHERE owner_id = $1`
	args := []any{ownerID, entity.MovementTypeEntry, entity.MovementTypeExit}
	pos := 4
	if from != nil {
		query += fmt.Sprintf(" AND date >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND date <= $%d", pos)
		args = append(args, *to)
	}

	var t repository.MovementTotals
	err := r.pool.QueryRow(ctx, query, args...).
		Scan(&t.EntryValue, &t.ExitUnits, &t.MovementCount)
	if err != nil {
		return nil, fmt.Errorf("valuation.GetMovementTotals: %w", err)
	}
	return &t, nil
}
