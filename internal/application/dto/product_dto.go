package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Quantity es la
// existencia inicial; después solo cambia vía movimientos.
type CreateProductRequest struct {
	Name        string           `json:"name" validate:"required,min=1,max=200"`
	Description string           `json:"description"`
	Category    string           `json:"category" validate:"required,min=1,max=100"`
	Quantity    int64            `json:"quantity" validate:"min=0"`
	Price       decimal.Decimal  `json:"price"`
	Cost        *decimal.Decimal `json:"cost,omitempty"`
	Supplier    string           `json:"supplier"`
	ImageURL    string           `json:"image_url"`
}

// UpdateProductRequest entrada para actualizar un producto.
// No permite modificar Quantity (se maneja vía movimientos).
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	Category    *string          `json:"category" validate:"omitempty,min=1,max=100"`
	Price       *decimal.Decimal `json:"price"`
	Cost        *decimal.Decimal `json:"cost"`
	Supplier    *string          `json:"supplier"`
	ImageURL    *string          `json:"image_url"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Quantity    int64            `json:"quantity"`
	Price       decimal.Decimal  `json:"price"`
	Cost        *decimal.Decimal `json:"cost,omitempty"`
	Supplier    string           `json:"supplier"`
	ImageURL    string           `json:"image_url,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
