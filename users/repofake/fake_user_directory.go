package repofake

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/workgram/miniapp-server/internal/errors"
	"github.com/workgram/miniapp-server/users"
)

var _ users.Directory = (*FakeDirectory)(nil)

// FakeDirectory is an in-memory Directory for tests.
type FakeDirectory struct {
	lock        sync.RWMutex
	byID        map[uuid.UUID]*users.User
	telegramIDs map[string]uuid.UUID
}

func NewFakeDirectory() *FakeDirectory {
	return &FakeDirectory{
		byID:        make(map[uuid.UUID]*users.User),
		telegramIDs: make(map[string]uuid.UUID),
	}
}

func (d *FakeDirectory) FindByTelegramID(_ context.Context, telegramID string) (*users.User, error) {
	d.lock.RLock()
	defer d.lock.RUnlock()

	id, ok := d.telegramIDs[telegramID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return d.byID[id], nil
}

func (d *FakeDirectory) GetByID(_ context.Context, id uuid.UUID) (*users.User, error) {
	d.lock.RLock()
	defer d.lock.RUnlock()

	user, ok := d.byID[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (d *FakeDirectory) Create(_ context.Context, user *users.User) (*users.User, error) {
	d.lock.Lock()
	defer d.lock.Unlock()

	if _, exists := d.telegramIDs[user.TelegramID]; exists {
		// Mirrors the unique telegram_id constraint of the real directory.
		return nil, fmt.Errorf("telegram id %s already registered", user.TelegramID)
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	d.byID[user.ID] = user
	d.telegramIDs[user.TelegramID] = user.ID
	return user, nil
}

func (d *FakeDirectory) TouchLastLogin(_ context.Context, id uuid.UUID) error {
	d.lock.Lock()
	defer d.lock.Unlock()

	user, ok := d.byID[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	now := time.Now()
	user.LastLogin = &now
	return nil
}
