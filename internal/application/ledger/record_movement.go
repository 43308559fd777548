package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// RecordMovementUseCase registra movimientos de stock de forma transaccional
// (entry/exit) con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
// Es la única vía por la que cambia Product.Quantity después de la creación.
type RecordMovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewRecordMovementUseCase construye el caso de uso.
func NewRecordMovementUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *RecordMovementUseCase {
	return &RecordMovementUseCase{txRunner: txRunner, productRepo: productRepo}
}

// RecordMovement valida en orden (producto → cantidad → stock), abre una
// transacción, bloquea la fila del producto y aplica el par de escrituras
// (insert del movimiento + nueva existencia) como unidad atómica.
// Devuelve el movimiento creado, con id y fecha asignados.
//
// Errores: ErrProductNotFound, ErrInvalidQuantity, ErrInsufficientStock,
// ErrPersistence. Ninguno deja escrituras parciales; ninguno se reintenta aquí.
func (uc *RecordMovementUseCase) RecordMovement(ctx context.Context, userID, userName string, in dto.RecordMovementRequest) (*dto.MovementResponse, error) {
	if in.Type != entity.MovementTypeEntry && in.Type != entity.MovementTypeExit {
		return nil, domain.ErrInvalidInput
	}

	// 1. El producto debe existir y pertenecer a la cuenta.
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, persistErr("consultar producto", err)
	}
	if product == nil || product.OwnerID != userID {
		return nil, domain.ErrProductNotFound
	}

	// 2. La cantidad debe ser un entero positivo.
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	// 3. Una salida no puede exceder la existencia actual. Se verifica aquí
	// para fallar rápido y de nuevo bajo el bloqueo de fila, donde cuenta.
	if in.Type == entity.MovementTypeExit && product.Quantity < in.Quantity {
		return nil, domain.ErrInsufficientStock
	}

	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}

	mov := &entity.Movement{
		ID:          uuid.New().String(),
		OwnerID:     userID,
		ProductID:   product.ID,
		ProductName: product.Name, // snapshot al momento del movimiento
		UnitPrice:   product.Price,
		Type:        in.Type,
		Quantity:    in.Quantity,
		Date:        date,

		Supplier:      in.Supplier,
		SupplierPhone: in.SupplierPhone,
		SupplierEmail: in.SupplierEmail,
		SupplierNotes: in.SupplierNotes,
		Customer:      in.Customer,
		CustomerPhone: in.CustomerPhone,
		CustomerEmail: in.CustomerEmail,
		CustomerNotes: in.CustomerNotes,
		Reason:        in.Reason,

		UserID:    userID,
		UserName:  userName,
		CreatedAt: now,
	}

	// Transacción: Commit si todo ok, Rollback si algo falla (TxRunner.Run lo hace).
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		// Bloquea la fila del producto para serializar movimientos concurrentes:
		// dos salidas simultáneas no pueden pasar ambas la verificación de stock
		// contra una existencia obsoleta.
		locked, err := productRepo.GetForUpdate(product.ID)
		if err != nil {
			return persistErr("bloquear producto", err)
		}
		if locked == nil || locked.OwnerID != userID {
			return domain.ErrProductNotFound
		}
		if in.Type == entity.MovementTypeExit && locked.Quantity < in.Quantity {
			return domain.ErrInsufficientStock
		}

		newQty := locked.Quantity + in.Quantity
		if in.Type == entity.MovementTypeExit {
			newQty = locked.Quantity - in.Quantity
		}
		// Piso defensivo: inalcanzable bajo el bloqueo, pero la existencia
		// jamás se persiste negativa.
		if newQty < 0 {
			newQty = 0
		}

		if err := movRepo.Create(mov); err != nil {
			return persistErr("insertar movimiento", err)
		}
		if err := productRepo.UpdateQuantity(locked.ID, newQty, now); err != nil {
			return persistErr("actualizar existencia", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toMovementResponse(mov), nil
}

// persistErr envuelve un error de infraestructura con el sentinel
// ErrPersistence para que los handlers lo distingan de errores de validación.
func persistErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrPersistence, op, err)
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		UnitPrice:   m.UnitPrice,
		Type:        m.Type,
		Quantity:    m.Quantity,
		Date:        m.Date,

		Supplier:      m.Supplier,
		SupplierPhone: m.SupplierPhone,
		SupplierEmail: m.SupplierEmail,
		SupplierNotes: m.SupplierNotes,
		Customer:      m.Customer,
		CustomerPhone: m.CustomerPhone,
		CustomerEmail: m.CustomerEmail,
		CustomerNotes: m.CustomerNotes,
		Reason:        m.Reason,

		UserID:   m.UserID,
		UserName: m.UserName,
	}
}
