package contentcache

import (
	"container/list"
	"sync"
)

// DefaultCapacity is the number of fragments kept when no capacity is configured.
const DefaultCapacity = 10

// Cache is a bounded key -> HTML store with insertion-order eviction.
//
// A map gives O(1) lookup and a list records insertion order:
// Front = oldest inserted, Back = newest inserted.
type Cache struct {
	mu sync.Mutex

	capacity int
	items    map[string]*list.Element
	order    *list.List
}

type entry struct {
	key  string
	html string
}

// New returns an empty cache holding at most capacity entries.
// A capacity <= 0 yields a cache that stores nothing.
func New(capacity int) *Cache {
	if capacity < 0 {
		capacity = 0
	}
	return &Cache{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		order:    list.New(),
	}
}

// Get is a pure lookup. It does not change eviction order.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return "", false
	}
	return el.Value.(*entry).html, true
}

// Put stores html under key.
//
// Overwriting an existing key keeps its original insertion position. Adding a
// new key to a full cache first evicts the single oldest-inserted entry.
func (c *Cache) Put(key, html string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capacity == 0 {
		return
	}

	if el, ok := c.items[key]; ok {
		el.Value.(*entry).html = html
		return
	}

	if len(c.items) >= c.capacity {
		c.evictOldestLocked()
	}

	c.items[key] = c.order.PushBack(&entry{key: key, html: html})
}

// Clear empties the cache unconditionally.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.order.Init()
}

// Len returns the number of stored fragments.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Capacity returns the configured bound.
func (c *Cache) Capacity() int { return c.capacity }

// Keys returns keys from oldest to newest insertion.
func (c *Cache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]string, 0, c.order.Len())
	for el := c.order.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value.(*entry).key)
	}
	return out
}

func (c *Cache) evictOldestLocked() {
	el := c.order.Front()
	if el == nil {
		return
	}
	c.order.Remove(el)
	delete(c.items, el.Value.(*entry).key)
}
