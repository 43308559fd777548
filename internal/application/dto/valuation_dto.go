package dto

import "github.com/shopspring/decimal"

// ValuationResponse resumen de valoración del stock de la cuenta.
// Proyección de solo lectura: ninguna de estas cifras muta estado.
type ValuationResponse struct {
	StockValue      decimal.Decimal `json:"stock_value"`      // Σ(price × quantity)
	EstimatedProfit decimal.Decimal `json:"estimated_profit"` // Σ((price − cost) × quantity)
	EntryValue      decimal.Decimal `json:"entry_value"`      // Σ(qty × unit_price) de entradas
	ExitUnits       int64           `json:"exit_units"`       // unidades vendidas/retiradas
	ProductCount    int64           `json:"product_count"`
	MovementCount   int64           `json:"movement_count"`
}
