package user

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the owner account of the CV workspace.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         *string   `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	// FindOwner returns the earliest created account, whose CV is public.
	FindOwner(ctx context.Context) (*User, error)
	// Upsert creates the account or replaces the password and name of the
	// account with the same email. u.ID is set to the stored ID.
	Upsert(ctx context.Context, u *User) error
}
