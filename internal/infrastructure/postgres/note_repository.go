package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.NoteRepository = (*NoteRepo)(nil)

// NoteRepo implementación del puerto NoteRepository sobre PostgreSQL.
type NoteRepo struct {
	pool *pgxpool.Pool
}

// NewNoteRepository construye el adaptador de persistencia para notas.
func NewNoteRepository(pool *pgxpool.Pool) *NoteRepo {
	return &NoteRepo{pool: pool}
}

// Create persiste una nota.
func (r *NoteRepo) Create(note *entity.Note) error {
	_, err := r.pool.Exec(context.Background(),
		`INSERT INTO notes (id, owner_id, content, created_at) VALUES ($1, $2, $3, $4)`,
		note.ID, note.OwnerID, note.Content, note.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

// GetByID obtiene una nota por ID.
func (r *NoteRepo) GetByID(id string) (*entity.Note, error) {
	var n entity.Note
	err := r.pool.QueryRow(context.Background(),
		`SELECT id, owner_id, content, created_at FROM notes WHERE id = $1`, id,
	).Scan(&n.ID, &n.OwnerID, &n.Content, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get note: %w", err)
	}
	return &n, nil
}

// ListByOwner lista notas de una cuenta, más reciente primero.
func (r *NoteRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.Note, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT id, owner_id, content, created_at FROM notes
		 WHERE owner_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		ownerID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Note
	for rows.Next() {
		var n entity.Note
		if err := rows.Scan(&n.ID, &n.OwnerID, &n.Content, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// Delete elimina una nota por ID.
func (r *NoteRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}
