package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products      map[string]*entity.Product
	failForUpdate error
	failUpdateQty error
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[string]*entity.Product{}}
	for _, p := range products {
		cp := *p
		r.products[p.ID] = &cp
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	if r.failForUpdate != nil {
		return nil, r.failForUpdate
	}
	return r.GetByID(id)
}

func (r *fakeProductRepo) ListByOwner(ownerID, category string, limit, offset int) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.products {
		if p.OwnerID == ownerID {
			cp := *p
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateQuantity(id string, quantity int64, updatedAt time.Time) error {
	if r.failUpdateQty != nil {
		return r.failUpdateQty
	}
	p, ok := r.products[id]
	if !ok {
		return errors.New("producto inexistente")
	}
	p.Quantity = quantity
	p.UpdatedAt = updatedAt
	return nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.products, id)
	return nil
}

type fakeMovementRepo struct {
	movements  []*entity.Movement
	failCreate error
}

func (r *fakeMovementRepo) Create(m *entity.Movement) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.Movement, error) {
	for _, m := range r.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) ListByOwner(ownerID string, f repository.MovementFilter) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for _, m := range r.movements {
		if m.OwnerID == ownerID {
			cp := *m
			list = append(list, &cp)
		}
	}
	return list, nil
}

// fakeTxRunner emula la atomicidad de la transacción: toma una copia del
// estado al entrar y lo restaura si fn falla (rollback).
type fakeTxRunner struct {
	products  *fakeProductRepo
	movements *fakeMovementRepo
}

func (t *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	snapshotProducts := map[string]*entity.Product{}
	for id, p := range t.products.products {
		cp := *p
		snapshotProducts[id] = &cp
	}
	snapshotMovs := append([]*entity.Movement(nil), t.movements.movements...)

	if err := fn(t.movements, t.products); err != nil {
		t.products.products = snapshotProducts
		t.movements.movements = snapshotMovs
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	ownerID  = "owner-1"
	userName = "Ana"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testProduct(id string, qty int64, price, cost string) *entity.Product {
	p := &entity.Product{
		ID:       id,
		OwnerID:  ownerID,
		Name:     "Café molido 500g",
		Category: "Bebidas",
		Quantity: qty,
		Price:    money(price),
	}
	if cost != "" {
		c := money(cost)
		p.Cost = &c
	}
	return p
}

func buildUseCase(products ...*entity.Product) (*ledger.RecordMovementUseCase, *fakeProductRepo, *fakeMovementRepo) {
	productRepo := newFakeProductRepo(products...)
	movementRepo := &fakeMovementRepo{}
	tx := &fakeTxRunner{products: productRepo, movements: movementRepo}
	return ledger.NewRecordMovementUseCase(tx, productRepo), productRepo, movementRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordMovement — camino feliz
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_EntradaAumentaExistencia(t *testing.T) {
	uc, products, movements := buildUseCase(testProduct("p1", 10, "20.00", "12.00"))

	out, err := uc.RecordMovement(context.Background(), ownerID, userName, dto.RecordMovementRequest{
		ProductID: "p1",
		Type:      entity.MovementTypeEntry,
		Quantity:  5,
		Supplier:  "Distribuidora Sol",
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.NotEmpty(t, out.ID, "el movimiento debe salir con id asignado")
	assert.Equal(t, entity.MovementTypeEntry, out.Type)
	assert.Equal(t, int64(5), out.Quantity)
	assert.Equal(t, "Café molido 500g", out.ProductName, "debe llevar snapshot del nombre")
	assert.True(t, money("20.00").Equal(out.UnitPrice), "debe llevar snapshot del precio")
	assert.Equal(t, userName, out.UserName, "el movimiento se atribuye al llamador")

	p, _ := products.GetByID("p1")
	assert.Equal(t, int64(15), p.Quantity, "la existencia debe subir 10 → 15")
	assert.Len(t, movements.movements, 1, "debe quedar exactamente un movimiento en el libro")
}

func TestRecordMovement_SalidaReduceExistencia(t *testing.T) {
	uc, products, movements := buildUseCase(testProduct("p1", 10, "20.00", ""))

	out, err := uc.RecordMovement(context.Background(), ownerID, userName, dto.RecordMovementRequest{
		ProductID: "p1",
		Type:      entity.MovementTypeExit,
		Quantity:  4,
		Customer:  "Tienda La Esquina",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeExit, out.Type)

	p, _ := products.GetByID("p1")
	assert.Equal(t, int64(6), p.Quantity, "la existencia debe bajar 10 → 6")
	require.Len(t, movements.movements, 1)
	assert.Equal(t, "Tienda La Esquina", movements.movements[0].Customer)
}

func TestRecordMovement_SalidaHastaCero(t *testing.T) {
	uc, products, _ := buildUseCase(testProduct("p1", 7, "5.50", ""))

	_, err := uc.RecordMovement(context.Background(), ownerID, userName, dto.RecordMovementRequest{
		ProductID: "p1",
		Type:      entity.MovementTypeExit,
		Quantity:  7,
	})
	require.NoError(t, err, "salida exacta de toda la existencia es válida")

	p, _ := products.GetByID("p1")
	assert.Equal(t, int64(0), p.Quantity)
}

func TestRecordMovement_FechaExplicitaSeRespeta(t *testing.T) {
	uc, _, movements := buildUseCase(testProduct("p1", 10, "20.00", ""))

	date := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	out, err := uc.RecordMovement(context.Background(), ownerID, userName, dto.RecordMovementRequest{
		ProductID: "p1",
		Type:      entity.MovementTypeEntry,
		Quantity:  1,
		Date:      &date,
	})
	require.NoError(t, err)
	assert.True(t, date.Equal(out.Date), "la fecha del body debe respetarse")
	assert.True(t, date.Equal(movements.movements[0].Date))
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordMovement — validaciones (orden: producto → cantidad → stock)
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_ProductoInexistente(t *testing.T) {
	uc, _, movements := buildUseCase()

	_, err := uc.RecordMovement(context.Background(), ownerID, userName, dto.RecordMovementRequest{
		ProductID: "no-existe",
		Type:      entity.MovementTypeEntry,
		Quantity:  1,
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Empty(t, movements.movements)
}

func TestRecordMovement_ProductoDeOtraCuenta(t *testing.T) {
	other := testProduct("p1", 10, "20.00", "")
	other.OwnerID = "otra-cuenta"
	uc, _, _ := buildUseCase(other)

	_, err := uc.RecordMovement(context.Background(), ownerID, userName, dto.RecordMovementRequest{
		ProductID: "p1",
		Type:      entity.MovementTypeEntry,
		Quantity:  1,
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound,
		"producto de otra cuenta debe verse como inexistente")
}

func TestRecordMovement_CantidadInvalida(t *testing.T) {
	uc, products, movements := buildUseCase(testProduct("p1", 10, "20.00", ""))

	for _, qty := range []int64{0, -3} {
		_, err := uc.RecordMovement(context.Background(), ownerID, userName, dto.RecordMovementRequest{
			ProductID: "p1",
			Type:      entity.MovementTypeEntry,
			Quantity:  qty,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "cantidad %d debe rechazarse", qty)
	}

	p, _ := products.GetByID("p1")
	assert.Equal(t, int64(10), p.Quantity, "la existencia no debe cambiar")
	assert.Empty(t, movements.movements)
}

func TestRecordMovement_CantidadInvalida_ConSalida(t *testing.T) {
	// La validación de cantidad va antes que la de stock: una salida con
	// cantidad -3 es INVALID_QUANTITY, no INSUFFICIENT_STOCK.
	uc, _, _ := buildUseCase(testProduct("p1", 0, "20.00", ""))

	_, err := uc.RecordMovement(context.Background(), ownerID, userName, dto.RecordMovementRequest{
		ProductID: "p1",
		Type:      entity.MovementTypeExit,
		Quantity:  -3,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestRecordMovement_StockInsuficiente(t *testing.T) {
	uc, products, movements := buildUseCase(testProduct("p1", 3, "20.00", ""))

	_, err := uc.RecordMovement(context.Background(), ownerID, userName, dto.RecordMovementRequest{
		ProductID: "p1",
		Type:      entity.MovementTypeExit,
		Quantity:  4,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	p, _ := products.GetByID("p1")
	assert.Equal(t, int64(3), p.Quantity, "la existencia debe quedar intacta tras el rechazo")
	assert.Empty(t, movements.movements, "no debe quedar movimiento alguno en el libro")
}

func TestRecordMovement_TipoInvalido(t *testing.T) {
	uc, _, _ := buildUseCase(testProduct("p1", 10, "20.00", ""))

	_, err := uc.RecordMovement(context.Background(), ownerID, userName, dto.RecordMovementRequest{
		ProductID: "p1",
		Type:      "transfer",
		Quantity:  1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordMovement — atomicidad y fallos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_FalloAlInsertar_NoDejaEscrituraParcial(t *testing.T) {
	productRepo := newFakeProductRepo(testProduct("p1", 10, "20.00", ""))
	movementRepo := &fakeMovementRepo{failCreate: errors.New("conexión perdida")}
	tx := &fakeTxRunner{products: productRepo, movements: movementRepo}
	uc := ledger.NewRecordMovementUseCase(tx, productRepo)

	_, err := uc.RecordMovement(context.Background(), ownerID, userName, dto.RecordMovementRequest{
		ProductID: "p1",
		Type:      entity.MovementTypeEntry,
		Quantity:  5,
	})
	assert.ErrorIs(t, err, domain.ErrPersistence)

	p, _ := productRepo.GetByID("p1")
	assert.Equal(t, int64(10), p.Quantity, "rollback: la existencia no debe cambiar")
	assert.Empty(t, movementRepo.movements)
}

func TestRecordMovement_FalloAlActualizarExistencia_NoDejaMovimientoHuerfano(t *testing.T) {
	productRepo := newFakeProductRepo(testProduct("p1", 10, "20.00", ""))
	productRepo.failUpdateQty = errors.New("conexión perdida")
	movementRepo := &fakeMovementRepo{}
	tx := &fakeTxRunner{products: productRepo, movements: movementRepo}
	uc := ledger.NewRecordMovementUseCase(tx, productRepo)

	_, err := uc.RecordMovement(context.Background(), ownerID, userName, dto.RecordMovementRequest{
		ProductID: "p1",
		Type:      entity.MovementTypeExit,
		Quantity:  2,
	})
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Empty(t, movementRepo.movements,
		"rollback: el movimiento insertado en la tx fallida no debe sobrevivir")

	p, _ := productRepo.GetByID("p1")
	assert.Equal(t, int64(10), p.Quantity)
}

func TestRecordMovement_FalloAlBloquearProducto(t *testing.T) {
	productRepo := newFakeProductRepo(testProduct("p1", 10, "20.00", ""))
	productRepo.failForUpdate = errors.New("timeout")
	movementRepo := &fakeMovementRepo{}
	tx := &fakeTxRunner{products: productRepo, movements: movementRepo}
	uc := ledger.NewRecordMovementUseCase(tx, productRepo)

	_, err := uc.RecordMovement(context.Background(), ownerID, userName, dto.RecordMovementRequest{
		ProductID: "p1",
		Type:      entity.MovementTypeEntry,
		Quantity:  1,
	})
	assert.ErrorIs(t, err, domain.ErrPersistence)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario completo: secuencia de movimientos sobre un producto
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_SecuenciaCompleta(t *testing.T) {
	// Producto con 10 unidades, precio 20.00, costo 12.00.
	uc, products, movements := buildUseCase(testProduct("p1", 10, "20.00", "12.00"))
	ctx := context.Background()

	// Entrada de 5 → existencia 15.
	_, err := uc.RecordMovement(ctx, ownerID, userName, dto.RecordMovementRequest{
		ProductID: "p1", Type: entity.MovementTypeEntry, Quantity: 5,
	})
	require.NoError(t, err)
	p, _ := products.GetByID("p1")
	assert.Equal(t, int64(15), p.Quantity)

	// Salida de 12 → existencia 3.
	_, err = uc.RecordMovement(ctx, ownerID, userName, dto.RecordMovementRequest{
		ProductID: "p1", Type: entity.MovementTypeExit, Quantity: 12,
	})
	require.NoError(t, err)
	p, _ = products.GetByID("p1")
	assert.Equal(t, int64(3), p.Quantity)

	// Salida de 4 → rechazada, existencia sigue en 3.
	_, err = uc.RecordMovement(ctx, ownerID, userName, dto.RecordMovementRequest{
		ProductID: "p1", Type: entity.MovementTypeExit, Quantity: 4,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	p, _ = products.GetByID("p1")
	assert.Equal(t, int64(3), p.Quantity)

	// El libro tiene exactamente los dos movimientos aplicados.
	require.Len(t, movements.movements, 2)
	assert.Equal(t, entity.MovementTypeEntry, movements.movements[0].Type)
	assert.Equal(t, entity.MovementTypeExit, movements.movements[1].Type)
}
