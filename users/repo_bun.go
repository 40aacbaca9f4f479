package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	apperrors "github.com/workgram/miniapp-server/internal/errors"
)

// BunDirectory is the sqlite-backed Directory implementation.
type BunDirectory struct {
	db *bun.DB
}

var _ Directory = (*BunDirectory)(nil)

func NewBunDirectory(db *bun.DB) *BunDirectory {
	return &BunDirectory{db: db}
}

func (d *BunDirectory) FindByTelegramID(ctx context.Context, telegramID string) (*User, error) {
	user := new(User)
	err := d.db.NewSelect().
		Model(user).
		Where("telegram_id = ?", telegramID).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by telegram id: %w", err)
	}
	return user, nil
}

func (d *BunDirectory) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	user := new(User)
	err := d.db.NewSelect().
		Model(user).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return user, nil
}

func (d *BunDirectory) Create(ctx context.Context, user *User) (*User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if _, err := d.db.NewInsert().Model(user).Exec(ctx); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (d *BunDirectory) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	_, err := d.db.NewUpdate().
		Model((*User)(nil)).
		Set("last_login = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("touch last login: %w", err)
	}
	return nil
}
