package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, owner_id, name, description, category, quantity, price, cost, supplier, image_url, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.OwnerID, product.Name, product.Description, product.Category,
		product.Quantity, product.Price, product.Cost, product.Supplier, product.ImageURL,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(query, id)
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
// Serializa movimientos concurrentes sobre el mismo producto.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

func (r *ProductRepo) scanOne(query string, args ...any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.Category, &p.Quantity,
		&p.Price, &p.Cost, &p.Supplier, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// ListByOwner lista productos de una cuenta con paginación y filtro opcional
// por categoría (label ya normalizado).
func (r *ProductRepo) ListByOwner(ownerID, category string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE owner_id = $1`
	args := []any{ownerID}
	pos := 2
	if category != "" {
		query += fmt.Sprintf(" AND category = $%d", pos)
		args = append(args, category)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.Category, &p.Quantity,
			&p.Price, &p.Cost, &p.Supplier, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza un producto existente. No toca Quantity (se maneja vía movimientos).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, category = $4, price = $5, cost = $6,
		    supplier = $7, image_url = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.Category,
		product.Price, product.Cost, product.Supplier, product.ImageURL, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateQuantity actualiza solo existencia y updated_at (uso exclusivo del libro de stock).
func (r *ProductRepo) UpdateQuantity(id string, quantity int64, updatedAt time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET quantity = $2, updated_at = $3 WHERE id = $1`,
		id, quantity, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product quantity: %w", err)
	}
	return nil
}

// Delete elimina un producto por ID. Los movimientos que lo referencian se
// conservan (snapshot desnormalizado).
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
