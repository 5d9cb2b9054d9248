package store

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/chartkit/pkg/errors"
)

// FileStore keeps artifacts on the local filesystem.
type FileStore struct {
	dir    string
	signer *URLSigner
}

// NewFileStore creates dir if needed.
func NewFileStore(dir string, signer *URLSigner) (*FileStore, error) {
	if signer == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "file store requires a URL signer")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "create artifact directory")
	}
	return &FileStore{dir: dir, signer: signer}, nil
}

// Put implements [Store].
func (s *FileStore) Put(_ context.Context, data []byte, contentType string) (string, error) {
	key := NewKey(contentType)
	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeStore, err, "create artifact directory")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrap(errors.ErrCodeStore, err, "write artifact")
	}
	return key, nil
}

// SignedGet implements [Store].
func (s *FileStore) SignedGet(_ context.Context, key string, ttl time.Duration) (string, error) {
	if err := errors.ValidateArtifactKey(key); err != nil {
		return "", err
	}
	return s.signer.Sign(key, ttl), nil
}

// Get implements [Reader].
func (s *FileStore) Get(_ context.Context, key string) ([]byte, string, error) {
	if err := errors.ValidateArtifactKey(key); err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(filepath.Join(s.dir, filepath.FromSlash(key)))
	if os.IsNotExist(err) {
		return nil, "", errors.New(errors.ErrCodeNotFound, "artifact not found: %s", key)
	}
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeStore, err, "read artifact")
	}
	return data, ContentTypeOf(key), nil
}

var (
	_ Store  = (*FileStore)(nil)
	_ Reader = (*FileStore)(nil)
)
