package registrations

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunRepo is the sqlite-backed Repo implementation.
type BunRepo struct {
	db *bun.DB
}

var _ Repo = (*BunRepo)(nil)

func NewBunRepo(db *bun.DB) *BunRepo {
	return &BunRepo{db: db}
}

func (r *BunRepo) Insert(ctx context.Context, registration *Registration) (*Registration, error) {
	if registration.ID == uuid.Nil {
		registration.ID = uuid.New()
	}
	if registration.CreatedAt.IsZero() {
		registration.CreatedAt = time.Now()
	}
	if _, err := r.db.NewInsert().Model(registration).Exec(ctx); err != nil {
		return nil, fmt.Errorf("insert registration: %w", err)
	}
	return registration, nil
}

func (r *BunRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Registration, error) {
	var list []*Registration
	err := r.db.NewSelect().
		Model(&list).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return list, nil
}
