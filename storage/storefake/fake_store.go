package storefake

import (
	"bytes"
	"context"
	"io"
	"sync"

	apperrors "github.com/workgram/miniapp-server/internal/errors"
	"github.com/workgram/miniapp-server/storage"
)

var _ storage.Store = (*FakeStore)(nil)

// FakeStore is an in-memory storage.Store for tests.
type FakeStore struct {
	lock    sync.RWMutex
	objects map[string]fakeObject
	baseURL string

	// FailPuts makes every Put return an error, for exercising the
	// collaborator-failure path.
	FailPuts bool
}

type fakeObject struct {
	contentType string
	data        []byte
}

func New(baseURL string) *FakeStore {
	return &FakeStore{
		objects: make(map[string]fakeObject),
		baseURL: baseURL,
	}
}

func (s *FakeStore) Put(_ context.Context, name, contentType string, data []byte) (string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.FailPuts {
		return "", io.ErrClosedPipe
	}
	s.objects[name] = fakeObject{contentType: contentType, data: data}
	return s.baseURL + "/files/" + name, nil
}

func (s *FakeStore) Open(name string) (io.ReadCloser, string, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	obj, ok := s.objects[name]
	if !ok {
		return nil, "", apperrors.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(obj.data)), obj.contentType, nil
}

// Count returns the number of stored objects.
func (s *FakeStore) Count() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.objects)
}
