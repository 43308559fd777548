package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// NoteUseCase notas libres de la cuenta.
type NoteUseCase struct {
	repo repository.NoteRepository
}

// NewNoteUseCase construye el caso de uso.
func NewNoteUseCase(repo repository.NoteRepository) *NoteUseCase {
	return &NoteUseCase{repo: repo}
}

// Create crea una nota.
func (uc *NoteUseCase) Create(ownerID string, in dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, domain.ErrInvalidInput
	}
	note := &entity.Note{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Content:   in.Content,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(note); err != nil {
		return nil, err
	}
	return toNoteResponse(note), nil
}

// List lista las notas de la cuenta.
func (uc *NoteUseCase) List(ownerID string, limit, offset int) ([]dto.NoteResponse, error) {
	list, err := uc.repo.ListByOwner(ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.NoteResponse, 0, len(list))
	for _, n := range list {
		items = append(items, *toNoteResponse(n))
	}
	return items, nil
}

// Delete elimina una nota de la cuenta.
func (uc *NoteUseCase) Delete(ownerID, id string) error {
	note, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if note == nil || note.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toNoteResponse(n *entity.Note) *dto.NoteResponse {
	return &dto.NoteResponse{ID: n.ID, Content: n.Content, CreatedAt: n.CreatedAt}
}
