package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento. Se serializan exactamente como "entry" y "exit",
// tanto en la base de datos como en la API.
const (
	MovementTypeEntry = "entry" // entrada: compra o reposición
	MovementTypeExit  = "exit"  // salida: venta o retiro
)

// Movement representa un movimiento de stock. Es inmutable una vez creado:
// el libro no define operaciones de actualización ni borrado sobre él.
// ProductName y UnitPrice son una copia desnormalizada del producto al
// momento del movimiento, para que el historial siga siendo legible aunque
// el producto se edite o se elimine después.
type Movement struct {
	ID          string
	OwnerID     string
	ProductID   string
	ProductName string
	UnitPrice   decimal.Decimal
	Type        string // entry | exit
	Quantity    int64  // siempre > 0; el tipo indica el signo del efecto
	Date        time.Time

	// Contraparte opcional: proveedor en entradas, cliente en salidas.
	Supplier      string
	SupplierPhone string
	SupplierEmail string
	SupplierNotes string
	Customer      string
	CustomerPhone string
	CustomerEmail string
	CustomerNotes string
	Reason        string

	// Atribución de la identidad que registró el movimiento.
	UserID   string
	UserName string

	CreatedAt time.Time
}
