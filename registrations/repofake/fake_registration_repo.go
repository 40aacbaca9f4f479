package repofake

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/workgram/miniapp-server/registrations"
)

var _ registrations.Repo = (*FakeRepo)(nil)

// FakeRepo is an in-memory registrations.Repo for tests.
type FakeRepo struct {
	lock    sync.RWMutex
	records []*registrations.Registration
}

func NewFakeRepo() *FakeRepo {
	return &FakeRepo{}
}

func (r *FakeRepo) Insert(_ context.Context, registration *registrations.Registration) (*registrations.Registration, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if registration.ID == uuid.Nil {
		registration.ID = uuid.New()
	}
	if registration.CreatedAt.IsZero() {
		registration.CreatedAt = time.Now()
	}
	r.records = append(r.records, registration)
	return registration, nil
}

func (r *FakeRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*registrations.Registration, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	var list []*registrations.Registration
	for _, rec := range r.records {
		if rec.UserID == userID {
			list = append(list, rec)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}
