package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/busline/seatplan/pkg/cache"
	"github.com/busline/seatplan/pkg/integrations/seatdata"
)

// FileStore is a file-based draft store for CLI applications.
// Drafts are stored as JSON files named by the hash of their key.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a new file-based draft store.
// If baseDir is empty, defaults to ~/.config/seatplan/drafts/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("get config dir: %w", err)
		}
		baseDir = filepath.Join(dir, "seatplan", "drafts")
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, fmt.Errorf("create draft dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) draftPath(key seatdata.Key) string {
	return filepath.Join(s.baseDir, cache.Hash([]byte(key.CacheKey()))[:32]+".json")
}

func (s *FileStore) Get(ctx context.Context, key seatdata.Key) (*Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path := s.draftPath(key)
	d, err := readDraft(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if d.IsExpired() {
		os.Remove(path)
		return nil, nil
	}
	return d, nil
}

func (s *FileStore) Set(ctx context.Context, d *Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}

	path := s.draftPath(d.Key)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write draft file: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, key seatdata.Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.draftPath(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove draft file: %w", err)
	}
	return nil
}

func (s *FileStore) List(ctx context.Context) ([]*Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var drafts []*Draft
	err := s.each(func(path string, d *Draft) {
		if !d.IsExpired() {
			drafts = append(drafts, d)
		}
	})
	sort.Slice(drafts, func(i, j int) bool {
		return drafts[i].CreatedAt.Before(drafts[j].CreatedAt)
	})
	return drafts, err
}

func (s *FileStore) Cleanup(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	err := s.each(func(path string, d *Draft) {
		if d.IsExpired() && os.Remove(path) == nil {
			removed++
		}
	})
	return removed, err
}

// each calls fn for every readable draft file. Unreadable files are skipped.
func (s *FileStore) each(fn func(path string, d *Draft)) error {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return fmt.Errorf("read draft dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(s.baseDir, entry.Name())
		d, err := readDraft(path)
		if err != nil {
			continue
		}
		fn(path, d)
	}
	return nil
}

func readDraft(path string) (*Draft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse draft: %w", err)
	}
	return &d, nil
}

// Path returns the base directory for draft files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
