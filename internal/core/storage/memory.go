// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package storage

import (
	"context"
	"fmt"
	"os"
	"sync"
)

// MemoryStore is an in-process ObjectStore keyed by object name. It backs
// tests and environments without cloud credentials.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
	baseURL string

	// FailFetch and FailStore force the corresponding operation to report an
	// error, letting tests exercise the degraded and fallback policies.
	FailFetch bool
	FailStore bool
}

// NewMemoryStore creates an empty in-memory store whose Store URLs are
// rooted at baseURL.
func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{
		objects: make(map[string][]byte),
		baseURL: baseURL,
	}
}

// Put seeds an object directly, bypassing Store.
func (s *MemoryStore) Put(key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
}

// Fetch writes the object under key to a temp file and returns its path.
// A missing object returns an empty path with no error, mirroring the
// "unavailable, proceed degraded" contract.
func (s *MemoryStore) Fetch(_ context.Context, key string) (string, error) {
	if s.FailFetch {
		return "", fmt.Errorf("fetch of %q failed", key)
	}
	s.mu.RLock()
	data, ok := s.objects[key]
	s.mu.RUnlock()
	if !ok {
		return "", nil
	}

	tempFile, err := os.CreateTemp("", "memstore-")
	if err != nil {
		return "", fmt.Errorf("could not create temp file: %w", err)
	}
	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return "", fmt.Errorf("could not write temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return "", err
	}
	return tempFile.Name(), nil
}

// Store reads the local file into the object map and returns its URL.
func (s *MemoryStore) Store(_ context.Context, localPath string, key string, _ string) (string, error) {
	if s.FailStore {
		return "", fmt.Errorf("store of %q failed", key)
	}
	data, err := os.ReadFile(localPath)
	if err != nil {
		return "", fmt.Errorf("could not read %s: %w", localPath, err)
	}
	s.mu.Lock()
	s.objects[key] = data
	s.mu.Unlock()
	return fmt.Sprintf("%s/%s", s.baseURL, key), nil
}

// Has reports whether an object exists under key.
func (s *MemoryStore) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok
}
