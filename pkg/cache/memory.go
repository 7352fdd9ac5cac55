package cache

import (
	"container/list"
	"context"
	"encoding/json"
	"sync"
	"time"
)

type entry struct {
	key      string
	data     []byte
	expireAt time.Time
}

func (e *entry) expired(now time.Time) bool {
	return !e.expireAt.IsZero() && now.After(e.expireAt)
}

// MemoryCache is an in-process LRU Service. Values are stored as JSON so
// callers never share mutable state with the cache.
type MemoryCache struct {
	mu      sync.Mutex
	order   *list.List // front is most recently used
	items   map[string]*list.Element
	maxSize int
	now     func() time.Time
}

// NewMemoryCache creates an in-memory cache holding at most MaxSize entries.
func NewMemoryCache(opts ...MemoryOption) *MemoryCache {
	cfg := MemoryConfig{MaxSize: 1000, Now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.MaxSize < 1 {
		cfg.MaxSize = 1
	}
	return &MemoryCache{
		order:   list.New(),
		items:   make(map[string]*list.Element),
		maxSize: cfg.MaxSize,
		now:     cfg.Now,
	}
}

// Set stores value under key. A non-positive expiration keeps it until evicted.
func (mc *MemoryCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	mc.mu.Lock()
	defer mc.mu.Unlock()

	e := &entry{key: key, data: data}
	if expiration > 0 {
		e.expireAt = mc.now().Add(expiration)
	}
	if el, ok := mc.items[key]; ok {
		el.Value = e
		mc.order.MoveToFront(el)
		return nil
	}
	mc.items[key] = mc.order.PushFront(e)
	for mc.order.Len() > mc.maxSize {
		mc.remove(mc.order.Back())
	}
	return nil
}

func (mc *MemoryCache) Get(_ context.Context, key string, dest interface{}) error {
	mc.mu.Lock()
	el, ok := mc.items[key]
	if !ok {
		mc.mu.Unlock()
		return ErrCacheMiss
	}
	e := el.Value.(*entry)
	if e.expired(mc.now()) {
		mc.remove(el)
		mc.mu.Unlock()
		return ErrCacheMiss
	}
	mc.order.MoveToFront(el)
	mc.mu.Unlock()

	return json.Unmarshal(e.data, dest)
}

func (mc *MemoryCache) Delete(_ context.Context, keys ...string) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	for _, key := range keys {
		if el, ok := mc.items[key]; ok {
			mc.remove(el)
		}
	}
	return nil
}

func (mc *MemoryCache) Exists(_ context.Context, keys ...string) (bool, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	now := mc.now()
	for _, key := range keys {
		if el, ok := mc.items[key]; ok && !el.Value.(*entry).expired(now) {
			return true, nil
		}
	}
	return false, nil
}

// Len returns the number of stored entries, expired ones included.
func (mc *MemoryCache) Len() int {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.order.Len()
}

func (mc *MemoryCache) Close() error { return nil }

// remove expects mc.mu held.
func (mc *MemoryCache) remove(el *list.Element) {
	mc.order.Remove(el)
	delete(mc.items, el.Value.(*entry).key)
}
