package users

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is a job seeker known to the directory, keyed internally by ID and
// externally by the unique Telegram ID they log in with.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`

	ID         uuid.UUID  `bun:"id,pk,type:uuid" json:"id"`
	TelegramID string     `bun:"telegram_id,notnull,unique" json:"telegram_id"`
	FirstName  string     `bun:"first_name" json:"first_name,omitempty"`
	LastName   string     `bun:"last_name" json:"last_name,omitempty"`
	LastLogin  *time.Time `bun:"last_login,nullzero" json:"last_login,omitempty"`
	CreatedAt  time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at,omitempty"`
}

// DisplayName is the trimmed concatenation of first and last name. It
// collapses to the empty string when both are absent.
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName)
	return strings.TrimSpace(name)
}
