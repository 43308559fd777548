package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/application/usecase"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
)

// LedgerHandler maneja las peticiones HTTP del libro de stock (protegido).
type LedgerHandler struct {
	record    *ledger.RecordMovementUseCase
	query     *ledger.MovementQueryUseCase
	valuation *ledger.ValuationUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(record *ledger.RecordMovementUseCase, query *ledger.MovementQueryUseCase, valuation *ledger.ValuationUseCase) *LedgerHandler {
	return &LedgerHandler{record: record, query: query, valuation: valuation}
}

// RecordMovement godoc
// @Summary      Registrar movimiento de stock
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "product_id, type (entry|exit), quantity, contraparte opcional"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/ledger/movements [post]
func (h *LedgerHandler) RecordMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	userName := GetUserName(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.record.RecordMovement(c.Context(), userID, userName, in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: "producto no encontrado"})
		case errors.Is(err, domain.ErrInvalidQuantity):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "la cantidad debe ser un entero positivo"})
		case errors.Is(err, domain.ErrInsufficientStock):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "type debe ser entry o exit"})
		case errors.Is(err, domain.ErrPersistence):
			// El llamador decide si reintenta; el libro no reintenta solo.
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "PERSISTENCE", Message: "fallo de persistencia, intente de nuevo"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Listar movimientos
// @Description  Historial de la cuenta, más reciente primero. Filtros
// @Description  opcionales por rango de fechas (RFC 3339) y categoría.
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        from      query  string  false  "Fecha inicial (RFC 3339)"
// @Param        to        query  string  false  "Fecha final (RFC 3339)"
// @Param        category  query  string  false  "Categoría del producto"
// @Param        limit     query  int     false  "Límite"   default(20)
// @Param        offset    query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/ledger/movements [get]
func (h *LedgerHandler) ListMovements(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	filter := ledger.MovementListFilter{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to deben ser RFC 3339"})
	}
	filter.From = from
	filter.To = to
	if cat := c.Query("category"); cat != "" {
		filter.Category = usecase.NormalizeCategory(cat)
	}
	out, err := h.query.ListMovements(userID, filter)
	if err != nil {
		if errors.Is(err, domain.ErrPersistence) {
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "PERSISTENCE", Message: "fallo de persistencia"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetValuation godoc
// @Summary      Valoración del stock
// @Description  Valor en mano, ganancia estimada, valor de entradas y
// @Description  unidades salidas. Solo lectura.
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Fecha inicial para los agregados de movimientos (RFC 3339)"
// @Param        to    query  string  false  "Fecha final (RFC 3339)"
// @Success      200  {object}  dto.ValuationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/ledger/valuation [get]
func (h *LedgerHandler) GetValuation(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to deben ser RFC 3339"})
	}
	out, err := h.valuation.ComputeStockValuation(c.Context(), userID, from, to)
	if err != nil {
		if errors.Is(err, domain.ErrPersistence) {
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "PERSISTENCE", Message: "fallo de persistencia"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// parseDateRange lee los query params from/to en RFC 3339.
func parseDateRange(c *fiber.Ctx) (from, to *time.Time, err error) {
	if s := c.Query("from"); s != "" {
		t, perr := time.Parse(time.RFC3339, s)
		if perr != nil {
			return nil, nil, perr
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, perr := time.Parse(time.RFC3339, s)
		if perr != nil {
			return nil, nil, perr
		}
		to = &t
	}
	return from, to, nil
}
