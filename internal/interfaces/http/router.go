package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger-api/internal/application/auth"
	"github.com/jhoicas/stock-ledger-api/internal/application/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	ProductUC      *usecase.ProductUseCase
	NoteUC         *usecase.NoteUseCase
	RecordMovement *ledger.RecordMovementUseCase
	MovementQuery  *ledger.MovementQueryUseCase
	Valuation      *ledger.ValuationUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público). Setup es el bootstrap explícito del primer admin.
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/setup", authHandler.Setup)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Ledger (protegido): movimientos y valoración
	ledgerGroup := protected.Group("/ledger")
	ledgerHandler := NewLedgerHandler(deps.RecordMovement, deps.MovementQuery, deps.Valuation)
	ledgerGroup.Post("/movements", ledgerHandler.RecordMovement)
	ledgerGroup.Get("/movements", ledgerHandler.ListMovements)
	ledgerGroup.Get("/valuation", ledgerHandler.GetValuation)

	// Notes (protegido)
	notes := protected.Group("/notes")
	noteHandler := NewNoteHandler(deps.NoteUC)
	notes.Post("/", noteHandler.Create)
	notes.Get("/", noteHandler.List)
	notes.Delete("/:id", noteHandler.Delete)
}
