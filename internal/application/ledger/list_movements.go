package ledger

import (
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// MovementQueryUseCase consultas de solo lectura sobre el historial de
// movimientos. No produce efectos: puede invocarse cualquier número de veces.
type MovementQueryUseCase struct {
	movementRepo repository.MovementRepository
}

// NewMovementQueryUseCase construye el caso de uso.
func NewMovementQueryUseCase(movementRepo repository.MovementRepository) *MovementQueryUseCase {
	return &MovementQueryUseCase{movementRepo: movementRepo}
}

// MovementListFilter filtros opcionales de la consulta.
type MovementListFilter struct {
	From     *time.Time
	To       *time.Time
	Category string
	Limit    int
	Offset   int
}

// ListMovements lista los movimientos de la cuenta, más reciente primero,
// con filtro opcional por rango de fechas y por categoría del producto.
func (uc *MovementQueryUseCase) ListMovements(userID string, f MovementListFilter) (*dto.MovementListResponse, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	list, err := uc.movementRepo.ListByOwner(userID, repository.MovementFilter{
		From:     f.From,
		To:       f.To,
		Category: f.Category,
		Limit:    f.Limit,
		Offset:   f.Offset,
	})
	if err != nil {
		return nil, persistErr("listar movimientos", err)
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}, nil
}
