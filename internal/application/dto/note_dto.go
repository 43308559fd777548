package dto

import "time"

// CreateNoteRequest entrada para crear una nota.
type CreateNoteRequest struct {
	Content string `json:"content" validate:"required,min=1"`
}

// NoteResponse salida de una nota.
type NoteResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
