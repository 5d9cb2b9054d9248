package store

import (
	"context"
	"sync"
	"time"

	"github.com/matzehuels/chartkit/pkg/errors"
)

// MemoryStore keeps artifacts in process memory. It backs the "memory"
// store backend used for local development.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
	signer  *URLSigner
}

type memoryObject struct {
	data        []byte
	contentType string
}

// NewMemoryStore returns an empty store.
func NewMemoryStore(signer *URLSigner) *MemoryStore {
	return &MemoryStore{objects: make(map[string]memoryObject), signer: signer}
}

// Put implements [Store].
func (s *MemoryStore) Put(_ context.Context, data []byte, contentType string) (string, error) {
	key := NewKey(contentType)
	s.mu.Lock()
	s.objects[key] = memoryObject{data: append([]byte(nil), data...), contentType: contentType}
	s.mu.Unlock()
	return key, nil
}

// SignedGet implements [Store].
func (s *MemoryStore) SignedGet(_ context.Context, key string, ttl time.Duration) (string, error) {
	if s.signer == nil {
		return "", errors.New(errors.ErrCodeInternal, "memory store has no URL signer")
	}
	return s.signer.Sign(key, ttl), nil
}

// Get implements [Reader].
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, string, error) {
	s.mu.RLock()
	obj, ok := s.objects[key]
	s.mu.RUnlock()
	if !ok {
		return nil, "", errors.New(errors.ErrCodeNotFound, "artifact not found: %s", key)
	}
	return obj.data, obj.contentType, nil
}

// Len returns the number of stored artifacts.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

var (
	_ Store  = (*MemoryStore)(nil)
	_ Reader = (*MemoryStore)(nil)
)
