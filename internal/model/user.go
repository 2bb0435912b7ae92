package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser   = "USER"
	RoleViewer = "VIEWER"
)

type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
