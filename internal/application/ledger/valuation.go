package ledger

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// ValuationUseCase calcula la valoración del stock de una cuenta.
//
// Proyección pura sobre estado ya persistido; delega los agregados en
// ValuationRepository (consultas read-only) y no muta nada.
type ValuationUseCase struct {
	valuationRepo repository.ValuationRepository
}

// NewValuationUseCase construye el caso de uso.
func NewValuationUseCase(valuationRepo repository.ValuationRepository) *ValuationUseCase {
	return &ValuationUseCase{valuationRepo: valuationRepo}
}

// ComputeStockValuation devuelve, para la cuenta:
//   - valor del stock en mano: Σ(price × quantity)
//   - ganancia estimada: Σ((price − cost) × quantity), solo sobre productos
//     con price y cost positivos (sin costo contribuyen 0, no es error)
//   - valor de entradas: Σ(quantity × unit_price) de movimientos entry
//   - unidades salidas: Σ(quantity) de movimientos exit (unidades, no valor)
//
// from/to acotan los agregados de movimientos; nil = sin límite.
func (uc *ValuationUseCase) ComputeStockValuation(ctx context.Context, userID string, from, to *time.Time) (*dto.ValuationResponse, error) {
	inv, err := uc.valuationRepo.GetInventoryTotals(ctx, userID)
	if err != nil {
		return nil, persistErr("valoración de inventario", err)
	}
	mov, err := uc.valuationRepo.GetMovementTotals(ctx, userID, from, to)
	if err != nil {
		return nil, persistErr("totales de movimientos", err)
	}
	return &dto.ValuationResponse{
		StockValue:      inv.StockValue.Round(2),
		EstimatedProfit: inv.EstimatedProfit.Round(2),
		EntryValue:      mov.EntryValue.Round(2),
		ExitUnits:       mov.ExitUnits,
		ProductCount:    inv.ProductCount,
		MovementCount:   mov.MovementCount,
	}, nil
}
