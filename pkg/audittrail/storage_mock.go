// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package audittrail

import (
	"context"
	"sync"
	"time"
)

// MockStorage keeps saved files in memory, keyed by their Path.
type MockStorage struct {
	Err error

	mu    sync.Mutex
	files map[string][]byte
}

func (s *MockStorage) Close() error {
	return s.Err
}

func (s *MockStorage) SaveFile(ctx context.Context, filename string, createdAt time.Time, contents []byte) error {
	if s.Err != nil {
		return s.Err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.files == nil {
		s.files = make(map[string][]byte)
	}
	s.files[Path(filename, createdAt)] = append([]byte(nil), contents...)
	return nil
}

// Saved returns the contents saved at path and whether anything was.
func (s *MockStorage) Saved(path string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contents, ok := s.files[path]
	return contents, ok
}
