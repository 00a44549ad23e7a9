// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package cache

import (
	"context"
	"sync"
	"time"
)

// Default MemoryStore limits.
const (
	DefaultMemoryCapacity = 10000
	DefaultMemoryTTL      = 5 * time.Minute
)

// memoryEntry is a node of the recency list.
type memoryEntry struct {
	key       string
	value     []byte
	prev      *memoryEntry
	next      *memoryEntry
	expiresAt time.Time
}

// MemoryStats reports MemoryStore counters.
type MemoryStats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
}

// MemoryStore is a thread-safe least recently used store with TTL support.
//
// It uses a doubly-linked list for ordering and a map for lookups, so Get,
// Set and eviction are O(1). Expired entries are dropped lazily on access
// and in bulk by CleanupExpired.
type MemoryStore struct {
	mu sync.Mutex

	capacity   int
	defaultTTL time.Duration

	items map[string]*memoryEntry

	// head.next is the most recently used, tail.prev the least.
	head *memoryEntry
	tail *memoryEntry

	hits      int64
	misses    int64
	evictions int64

	now func() time.Time
}

// NewMemoryStore creates a store holding at most capacity entries. ttl is
// used when Set is called with a non-positive TTL.
func NewMemoryStore(capacity int, ttl time.Duration) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	if ttl <= 0 {
		ttl = DefaultMemoryTTL
	}

	s := &MemoryStore{
		capacity:   capacity,
		defaultTTL: ttl,
		items:      make(map[string]*memoryEntry, capacity),
		head:       &memoryEntry{},
		tail:       &memoryEntry{},
		now:        time.Now,
	}
	s.head.next = s.tail
	s.tail.prev = s.head

	return s
}

// Name implements Store.
func (s *MemoryStore) Name() string {
	return "memory"
}

// Get implements Store. Found entries become the most recently used.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.items[key]
	if !exists {
		s.misses++
		return nil, false, nil
	}

	if s.now().After(entry.expiresAt) {
		s.removeEntry(entry)
		s.evictions++
		s.misses++
		return nil, false, nil
	}

	s.moveToFront(entry)
	s.hits++
	return entry.value, true, nil
}

// Set implements Store. When full, the least recently used entry is evicted.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt := s.now().Add(ttl)

	if entry, exists := s.items[key]; exists {
		entry.value = value
		entry.expiresAt = expiresAt
		s.moveToFront(entry)
		return nil
	}

	entry := &memoryEntry{
		key:       key,
		value:     value,
		expiresAt: expiresAt,
	}
	s.addToFront(entry)
	s.items[key] = entry

	for len(s.items) > s.capacity {
		s.evictOldest()
	}
	return nil
}

// Remove deletes key and reports whether it was present.
func (s *MemoryStore) Remove(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, exists := s.items[key]; exists {
		s.removeEntry(entry)
		return true
	}
	return false
}

// Len returns the number of entries, including expired ones not yet dropped.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Clear removes all entries.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictions += int64(len(s.items))
	s.items = make(map[string]*memoryEntry, s.capacity)
	s.head.next = s.tail
	s.tail.prev = s.head
}

// CleanupExpired removes all expired entries and returns how many were removed.
func (s *MemoryStore) CleanupExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0

	for entry := s.tail.prev; entry != s.head; {
		prev := entry.prev
		if now.After(entry.expiresAt) {
			s.removeEntry(entry)
			removed++
		}
		entry = prev
	}

	s.evictions += int64(removed)
	return removed
}

// Stats returns a copy of the counters.
func (s *MemoryStore) Stats() MemoryStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return MemoryStats{
		Hits:      s.hits,
		Misses:    s.misses,
		Evictions: s.evictions,
		Size:      len(s.items),
	}
}

// HitRate returns the hit rate as a percentage.
func (s *MemoryStore) HitRate() float64 {
	st := s.Stats()
	total := st.Hits + st.Misses
	if total == 0 {
		return 0.0
	}
	return float64(st.Hits) / float64(total) * 100.0
}

// Internal methods (must be called with lock held)

func (s *MemoryStore) addToFront(entry *memoryEntry) {
	entry.prev = s.head
	entry.next = s.head.next
	s.head.next.prev = entry
	s.head.next = entry
}

func (s *MemoryStore) moveToFront(entry *memoryEntry) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	s.addToFront(entry)
}

func (s *MemoryStore) removeEntry(entry *memoryEntry) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	delete(s.items, entry.key)
}

func (s *MemoryStore) evictOldest() {
	oldest := s.tail.prev
	if oldest == s.head {
		return
	}
	s.removeEntry(oldest)
	s.evictions++
}
