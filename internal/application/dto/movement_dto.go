package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordMovementRequest body para POST /api/ledger/movements.
// Type es "entry" o "exit". Date es opcional (por defecto, ahora).
// Los campos de contraparte son libres: supplier_* para entradas,
// customer_* para salidas.
type RecordMovementRequest struct {
	ProductID string     `json:"product_id"`
	Type      string     `json:"type"`
	Quantity  int64      `json:"quantity"`
	Date      *time.Time `json:"date,omitempty"`

	Supplier      string `json:"supplier,omitempty"`
	SupplierPhone string `json:"supplier_phone,omitempty"`
	SupplierEmail string `json:"supplier_email,omitempty"`
	SupplierNotes string `json:"supplier_notes,omitempty"`
	Customer      string `json:"customer,omitempty"`
	CustomerPhone string `json:"customer_phone,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty"`
	CustomerNotes string `json:"customer_notes,omitempty"`
	Reason        string `json:"reason,omitempty"`
}

// MovementResponse salida de un movimiento (snapshot incluido).
type MovementResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Type        string          `json:"type"`
	Quantity    int64           `json:"quantity"`
	Date        time.Time       `json:"date"`

	Supplier      string `json:"supplier,omitempty"`
	SupplierPhone string `json:"supplier_phone,omitempty"`
	SupplierEmail string `json:"supplier_email,omitempty"`
	SupplierNotes string `json:"supplier_notes,omitempty"`
	Customer      string `json:"customer,omitempty"`
	CustomerPhone string `json:"customer_phone,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty"`
	CustomerNotes string `json:"customer_notes,omitempty"`
	Reason        string `json:"reason,omitempty"`

	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
}

// MovementListResponse lista paginada de movimientos, más reciente primero.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
