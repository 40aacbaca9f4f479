package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	apperrors "github.com/workgram/miniapp-server/internal/errors"
)

// DiskStore keeps uploads under a local folder and serves them back through
// the /files route. It stands in for a hosted bucket behind the Store
// interface.
type DiskStore struct {
	dir     string
	baseURL string
}

var _ Store = (*DiskStore)(nil)

// NewDiskStore creates a DiskStore rooted at dir. Returned URLs are
// baseURL + "/files/" + name.
func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload folder: %w", err)
	}
	return &DiskStore{dir: dir, baseURL: baseURL}, nil
}

func (s *DiskStore) Put(_ context.Context, name, contentType string, data []byte) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write object %s: %w", name, err)
	}
	// The content type is recovered from the extension on Open.
	return s.baseURL + "/files/" + name, nil
}

func (s *DiskStore) Open(name string) (io.ReadCloser, string, error) {
	if err := checkName(name); err != nil {
		return nil, "", err
	}
	f, err := os.Open(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil, "", apperrors.ErrObjectNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("open object %s: %w", name, err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return f, contentType, nil
}

// checkName rejects anything that could escape the upload folder.
func checkName(name string) error {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return fmt.Errorf("invalid object name %q", name)
	}
	return nil
}
