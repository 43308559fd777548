package entity

import "time"

// Note es una nota libre de la cuenta (recordatorios, pendientes).
type Note struct {
	ID        string
	OwnerID   string
	Content   string
	CreatedAt time.Time
}
