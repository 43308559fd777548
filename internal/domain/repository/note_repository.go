package repository

import "github.com/jhoicas/stock-ledger-api/internal/domain/entity"

// NoteRepository puerto de persistencia para notas.
type NoteRepository interface {
	Create(note *entity.Note) error
	GetByID(id string) (*entity.Note, error)
	ListByOwner(ownerID string, limit, offset int) ([]*entity.Note, error)
	Delete(id string) error
}
