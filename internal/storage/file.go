package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/victorsuarez3/hangovershield-sub001/internal"
)

// AtomicWriteJSON writes data to a temp file and renames it into place, so a
// crash mid-write never leaves a torn record on disk.
func AtomicWriteJSON(filePath string, data interface{}) error {
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

// ReadJSONFile decodes a JSON file into out. A missing or empty file is not
// an error; out is left untouched.
func ReadJSONFile(filePath string, out interface{}) error {
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

// FileSubscriptionStore backs SubscriptionRepository with a JSON file, used
// in local-only mode. Writes are rare (purchase/restore events), so each Put
// persists synchronously.
type FileSubscriptionStore struct {
	subs   map[string]*internal.Subscription // userID -> subscription
	mu     sync.RWMutex
	path   string
	logger internal.Logger
}

func NewFileSubscriptionStore(path string, logger internal.Logger) (*FileSubscriptionStore, error) {
	s := &FileSubscriptionStore{
		subs:   make(map[string]*internal.Subscription),
		path:   path,
		logger: logger,
	}
	var loaded []*internal.Subscription
	if err := ReadJSONFile(path, &loaded); err != nil {
		logger.Errorf("storage: failed to load subscriptions: %v", err)
		return nil, err
	}
	for _, sub := range loaded {
		s.subs[sub.UserID] = sub
	}
	return s, nil
}

func (s *FileSubscriptionStore) GetSubscription(ctx context.Context, userID string) (*internal.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.subs[userID]
	if !ok {
		return nil, internal.ErrNotFound
	}
	copied := *sub
	return &copied, nil
}

func (s *FileSubscriptionStore) PutSubscription(ctx context.Context, sub *internal.Subscription) error {
	s.mu.Lock()
	copied := *sub
	s.subs[sub.UserID] = &copied
	all := make([]*internal.Subscription, 0, len(s.subs))
	for _, v := range s.subs {
		all = append(all, v)
	}
	s.mu.Unlock()

	if err := AtomicWriteJSON(s.path, all); err != nil {
		s.logger.Errorf("storage: failed to save subscriptions: %v", err)
		return err
	}
	return nil
}

// --- Compile-time assertions ---
var _ SubscriptionRepository = (*FileSubscriptionStore)(nil)
