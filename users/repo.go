package users

import (
	"context"

	"github.com/google/uuid"
)

// Directory is the user lookup-or-create collaborator behind the login flow.
// Concurrent first logins for the same Telegram ID may race on Create; the
// unique telegram_id index rejects the loser, which retries the lookup.
type Directory interface {
	FindByTelegramID(ctx context.Context, telegramID string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	Create(ctx context.Context, user *User) (*User, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID) error
}
