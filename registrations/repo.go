package registrations

import (
	"context"

	"github.com/google/uuid"
)

// Repo stores job-seeker submissions.
type Repo interface {
	Insert(ctx context.Context, registration *Registration) (*Registration, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Registration, error)
}
