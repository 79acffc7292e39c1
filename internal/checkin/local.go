package checkin

import (
	"sort"
	"sync"
	"time"

	"github.com/victorsuarez3/hangovershield-sub001/internal"
	"github.com/victorsuarez3/hangovershield-sub001/internal/storage"
)

// LocalCache is the fast path and the path that must work offline: an
// in-memory index of day-keyed records with debounced persistence to a single
// JSON file. Every write replaces the whole record, never a field patch.
type LocalCache struct {
	records      map[string]map[string]*internal.CheckIn // userID -> dayID -> record
	mu           sync.RWMutex
	path         string
	saveChan     chan struct{}
	shutdownChan chan struct{}
	shutdownOnce sync.Once
	saveDelay    time.Duration
	logger       internal.Logger
}

func NewLocalCache(path string, logger internal.Logger) (*LocalCache, error) {
	c := &LocalCache{
		records:      make(map[string]map[string]*internal.CheckIn),
		path:         path,
		saveChan:     make(chan struct{}, 1),
		shutdownChan: make(chan struct{}),
		saveDelay:    500 * time.Millisecond,
		logger:       logger,
	}

	var loaded []*internal.CheckIn
	if err := storage.ReadJSONFile(path, &loaded); err != nil {
		logger.Errorf("checkin: failed to load local cache: %v", err)
		return nil, err
	}
	for _, rec := range loaded {
		if c.records[rec.UserID] == nil {
			c.records[rec.UserID] = make(map[string]*internal.CheckIn)
		}
		c.records[rec.UserID][rec.ID] = rec
	}

	go c.saveWorker()

	return c, nil
}

func (c *LocalCache) Get(userID, dayID string) (*internal.CheckIn, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.records[userID][dayID]
	if !ok {
		return nil, internal.ErrNotFound
	}
	return rec.Clone(), nil
}

func (c *LocalCache) Put(rec *internal.CheckIn) error {
	c.mu.Lock()
	if c.records[rec.UserID] == nil {
		c.records[rec.UserID] = make(map[string]*internal.CheckIn)
	}
	c.records[rec.UserID][rec.ID] = rec.Clone()
	c.mu.Unlock()

	select {
	case c.saveChan <- struct{}{}:
	default:
	}
	return nil
}

// List returns a user's records, newest day first.
func (c *LocalCache) List(userID string) []internal.CheckIn {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]internal.CheckIn, 0, len(c.records[userID]))
	for _, rec := range c.records[userID] {
		out = append(out, *rec.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (c *LocalCache) save() error {
	c.mu.RLock()
	var all []*internal.CheckIn
	for _, days := range c.records {
		for _, rec := range days {
			all = append(all, rec)
		}
	}
	c.mu.RUnlock()
	if all == nil {
		all = make([]*internal.CheckIn, 0)
	}
	return storage.AtomicWriteJSON(c.path, all)
}

// saveWorker batches writes so a burst of step toggles hits the disk once.
func (c *LocalCache) saveWorker() {
	timer := time.NewTimer(c.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-c.saveChan:
			timer.Reset(c.saveDelay)
		case <-timer.C:
			if err := c.save(); err != nil {
				c.logger.Errorf("checkin: error saving local cache: %v", err)
			}
		case <-c.shutdownChan:
			return
		}
	}
}

// Close stops the worker and flushes pending records synchronously. Safe to
// call more than once.
func (c *LocalCache) Close() error {
	c.shutdownOnce.Do(func() { close(c.shutdownChan) })
	return c.save()
}
