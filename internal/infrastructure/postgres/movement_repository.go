package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, owner_id, product_id, product_name, unit_price, type, quantity, date,
	supplier, supplier_phone, supplier_email, supplier_notes,
	customer, customer_phone, customer_email, customer_notes,
	reason, user_id, user_name, created_at`

// MovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// Solo inserta y lee: la tabla de movimientos es append-only.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.OwnerID, movement.ProductID, movement.ProductName,
		movement.UnitPrice, movement.Type, movement.Quantity, movement.Date,
		movement.Supplier, movement.SupplierPhone, movement.SupplierEmail, movement.SupplierNotes,
		movement.Customer, movement.CustomerPhone, movement.CustomerEmail, movement.CustomerNotes,
		movement.Reason, movement.UserID, movement.UserName, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	var m entity.Movement
	err := r.q.QueryRow(context.Background(), query, id).Scan(scanTargets(&m)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// ListByOwner lista movimientos de una cuenta, fecha descendente, con filtros
// opcionales por rango de fechas y categoría del producto. El filtro por
// categoría hace join con products: movimientos de productos eliminados no
// matchean categoría (la categoría vivía en el producto).
func (r *MovementRepo) ListByOwner(ownerID string, f repository.MovementFilter) ([]*entity.Movement, error) {
	query := `SELECT m.` + joinColumns() + ` FROM movements m`
	args := []any{ownerID}
	pos := 2
	if f.Category != "" {
		query += fmt.Sprintf(" JOIN products p ON p.id = m.product_id AND p.category = $%d", pos)
		args = append(args, f.Category)
		pos++
	}
	query += " WHERE m.owner_id = $1"
	if f.From != nil {
		query += fmt.Sprintf(" AND m.date >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		query += fmt.Sprintf(" AND m.date <= $%d", pos)
		args = append(args, *f.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY m.date DESC, m.created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(scanTargets(&m)...); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func scanTargets(m *entity.Movement) []any {
	return []any{
		&m.ID, &m.OwnerID, &m.ProductID, &m.ProductName, &m.UnitPrice, &m.Type, &m.Quantity, &m.Date,
		&m.Supplier, &m.SupplierPhone, &m.SupplierEmail, &m.SupplierNotes,
		&m.Customer, &m.CustomerPhone, &m.CustomerEmail, &m.CustomerNotes,
		&m.Reason, &m.UserID, &m.UserName, &m.CreatedAt,
	}
}

// joinColumns prefija cada columna con "m." para las consultas con join.
func joinColumns() string {
	return `id, m.owner_id, m.product_id, m.product_name, m.unit_price, m.type, m.quantity, m.date,
	m.supplier, m.supplier_phone, m.supplier_email, m.supplier_notes,
	m.customer, m.customer_phone, m.customer_email, m.customer_notes,
	m.reason, m.user_id, m.user_name, m.created_at`
}
