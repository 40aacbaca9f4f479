package registrations

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Registration is a job-seeker submission: the profile fields collected by
// the Mini App form plus the public URL of the uploaded CV.
type Registration struct {
	bun.BaseModel `bun:"table:registrations,alias:reg"`

	ID         uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	UserID     uuid.UUID `bun:"user_id,notnull,type:uuid" json:"user_id"`
	FullName   string    `bun:"full_name,notnull" json:"full_name"`
	Phone      string    `bun:"phone,notnull" json:"phone"`
	Email      string    `bun:"email" json:"email,omitempty"`
	City       string    `bun:"city" json:"city,omitempty"`
	Position   string    `bun:"position,notnull" json:"position"`
	Experience string    `bun:"experience" json:"experience,omitempty"`
	CVURL      string    `bun:"cv_url,notnull" json:"cv_url"`
	CreatedAt  time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

// Validate checks the submitted form fields. CVURL is filled in by the
// handler after upload, so it is not part of user-facing validation.
func (r *Registration) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.FullName, validation.Required, validation.Length(2, 120)),
		validation.Field(&r.Phone, validation.Required, validation.Length(5, 32)),
		validation.Field(&r.Email, is.Email),
		validation.Field(&r.City, validation.Length(0, 120)),
		validation.Field(&r.Position, validation.Required, validation.Length(2, 120)),
		validation.Field(&r.Experience, validation.Length(0, 4000)),
	)
}
