package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	apphttp "github.com/jhoicas/stock-ledger-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos para montar el handler sobre los casos de uso reales
// ──────────────────────────────────────────────────────────────────────────────

type stubProductRepo struct {
	product *entity.Product
}

func (r *stubProductRepo) Create(p *entity.Product) error { return nil }

func (r *stubProductRepo) GetByID(id string) (*entity.Product, error) {
	if r.product != nil && r.product.ID == id {
		cp := *r.product
		return &cp, nil
	}
	return nil, nil
}

func (r *stubProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }

func (r *stubProductRepo) ListByOwner(ownerID, category string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *stubProductRepo) Update(p *entity.Product) error { return nil }

func (r *stubProductRepo) UpdateQuantity(id string, quantity int64, updatedAt time.Time) error {
	if r.product != nil && r.product.ID == id {
		r.product.Quantity = quantity
	}
	return nil
}

func (r *stubProductRepo) Delete(id string) error { return nil }

type stubMovementRepo struct {
	movements  []*entity.Movement
	failCreate error
}

func (r *stubMovementRepo) Create(m *entity.Movement) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *stubMovementRepo) GetByID(id string) (*entity.Movement, error) { return nil, nil }

func (r *stubMovementRepo) ListByOwner(ownerID string, f repository.MovementFilter) ([]*entity.Movement, error) {
	return r.movements, nil
}

type stubTxRunner struct {
	products  *stubProductRepo
	movements *stubMovementRepo
}

func (t *stubTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(t.movements, t.products)
}

type stubValuationRepo struct{}

func (stubValuationRepo) GetInventoryTotals(ctx context.Context, ownerID string) (*repository.InventoryTotals, error) {
	return &repository.InventoryTotals{StockValue: decimal.Zero, EstimatedProfit: decimal.Zero}, nil
}

func (stubValuationRepo) GetMovementTotals(ctx context.Context, ownerID string, from, to *time.Time) (*repository.MovementTotals, error) {
	return &repository.MovementTotals{EntryValue: decimal.Zero}, nil
}

// buildLedgerApp monta las rutas del ledger con el middleware de auth real.
func buildLedgerApp(products *stubProductRepo, movements *stubMovementRepo) *fiber.App {
	tx := &stubTxRunner{products: products, movements: movements}
	handler := apphttp.NewLedgerHandler(
		ledger.NewRecordMovementUseCase(tx, products),
		ledger.NewMovementQueryUseCase(movements),
		ledger.NewValuationUseCase(stubValuationRepo{}),
	)

	app := fiber.New()
	group := app.Group("/api/ledger", apphttp.AuthMiddleware(testJWTSecret))
	group.Post("/movements", handler.RecordMovement)
	group.Get("/movements", handler.ListMovements)
	group.Get("/valuation", handler.GetValuation)
	return app
}

func ledgerProduct(qty int64) *entity.Product {
	return &entity.Product{
		ID:       "p1",
		OwnerID:  testUserID,
		Name:     "Café molido 500g",
		Category: "Bebidas",
		Quantity: qty,
		Price:    decimal.RequireFromString("20.00"),
	}
}

func postMovement(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/ledger/movements", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, "user"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/ledger/movements — mapeo de errores a códigos HTTP
// ──────────────────────────────────────────────────────────────────────────────

func TestLedgerHandler_RegistrarEntrada_Retorna201(t *testing.T) {
	products := &stubProductRepo{product: ledgerProduct(10)}
	app := buildLedgerApp(products, &stubMovementRepo{})

	resp := postMovement(t, app, `{"product_id":"p1","type":"entry","quantity":5}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, int64(15), products.product.Quantity, "la existencia debe subir 10 → 15")
}

func TestLedgerHandler_ProductoInexistente_Retorna404(t *testing.T) {
	app := buildLedgerApp(&stubProductRepo{}, &stubMovementRepo{})

	resp := postMovement(t, app, `{"product_id":"nope","type":"entry","quantity":5}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLedgerHandler_CantidadInvalida_Retorna400(t *testing.T) {
	app := buildLedgerApp(&stubProductRepo{product: ledgerProduct(10)}, &stubMovementRepo{})

	resp := postMovement(t, app, `{"product_id":"p1","type":"entry","quantity":0}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLedgerHandler_StockInsuficiente_Retorna409(t *testing.T) {
	products := &stubProductRepo{product: ledgerProduct(3)}
	app := buildLedgerApp(products, &stubMovementRepo{})

	resp := postMovement(t, app, `{"product_id":"p1","type":"exit","quantity":4}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, int64(3), products.product.Quantity, "el rechazo no debe tocar la existencia")
}

func TestLedgerHandler_TipoInvalido_Retorna400(t *testing.T) {
	app := buildLedgerApp(&stubProductRepo{product: ledgerProduct(10)}, &stubMovementRepo{})

	resp := postMovement(t, app, `{"product_id":"p1","type":"transfer","quantity":1}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLedgerHandler_FalloDePersistencia_Retorna502(t *testing.T) {
	movements := &stubMovementRepo{failCreate: errors.New("conexión perdida")}
	app := buildLedgerApp(&stubProductRepo{product: ledgerProduct(10)}, movements)

	resp := postMovement(t, app, `{"product_id":"p1","type":"entry","quantity":5}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestLedgerHandler_SinToken_Retorna401(t *testing.T) {
	app := buildLedgerApp(&stubProductRepo{}, &stubMovementRepo{})

	req := httptest.NewRequest(http.MethodPost, "/api/ledger/movements", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/ledger/movements y /valuation
// ──────────────────────────────────────────────────────────────────────────────

func TestLedgerHandler_ListarMovimientos_Retorna200(t *testing.T) {
	movements := &stubMovementRepo{movements: []*entity.Movement{
		{ID: "m1", OwnerID: testUserID, Type: entity.MovementTypeEntry, Quantity: 5, UnitPrice: decimal.RequireFromString("20.00")},
	}}
	app := buildLedgerApp(&stubProductRepo{}, movements)

	req := httptest.NewRequest(http.MethodGet, "/api/ledger/movements", nil)
	req.Header.Set("Authorization", tokenForRole(t, "user"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLedgerHandler_FechaMalformada_Retorna400(t *testing.T) {
	app := buildLedgerApp(&stubProductRepo{}, &stubMovementRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/ledger/movements?from=15-03-2024", nil)
	req.Header.Set("Authorization", tokenForRole(t, "user"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "from debe ser RFC 3339")
}

func TestLedgerHandler_Valoracion_Retorna200(t *testing.T) {
	app := buildLedgerApp(&stubProductRepo{}, &stubMovementRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/ledger/valuation", nil)
	req.Header.Set("Authorization", tokenForRole(t, "user"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
