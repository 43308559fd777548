package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User representa una cuenta del sistema. Es la identidad que se atribuye
// a movimientos y notas (id + nombre visible).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano después de persistir
	Name         string
	Role         string // admin, user
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
