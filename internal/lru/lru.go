//  Copyright 2026 Google LLC
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

// Package lru implements a small typed LRU cache safe for concurrent use.
package lru

import (
	"container/list"
	"sync"
)

// entry is a node of the recency ring.
type entry[K comparable, V any] struct {
	key   K
	value V
}

// Handle is the LRU cache. The zero value is not usable, see New.
type Handle[K comparable, V any] struct {
	// mu protects index and ring.
	mu sync.Mutex
	// index maps keys to their element in ring.
	index map[K]*list.Element
	// ring orders entries from most (front) to least (back) recently used.
	ring *list.List
	// capacity is the maximum number of entries kept.
	capacity uint
}

// New creates a cache holding at most capacity entries. A zero capacity cache
// never stores anything.
func New[K comparable, V any](capacity uint) *Handle[K, V] {
	return &Handle[K, V]{index: make(map[K]*list.Element), ring: list.New(), capacity: capacity}
}

// Get returns the value stored for key and whether it was found. A hit
// promotes the entry to most recently used.
func (h *Handle[K, V]) Get(key K) (V, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if elem, ok := h.index[key]; ok {
		h.ring.MoveToFront(elem)
		return elem.Value.(*entry[K, V]).value, true
	}

	var zero V
	return zero, false
}

// Put stores value for key, evicting the least recently used entry when the
// cache is full.
func (h *Handle[K, V]) Put(key K, value V) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.capacity == 0 {
		return
	}

	if elem, found := h.index[key]; found {
		elem.Value.(*entry[K, V]).value = value
		h.ring.MoveToFront(elem)
		return
	}

	if uint(len(h.index)) >= h.capacity {
		back := h.ring.Back()
		h.ring.Remove(back)
		delete(h.index, back.Value.(*entry[K, V]).key)
	}
	h.index[key] = h.ring.PushFront(&entry[K, V]{key: key, value: value})
}

// Len returns the number of entries in the cache.
func (h *Handle[K, V]) Len() uint {
	h.mu.Lock()
	defer h.mu.Unlock()
	return uint(len(h.index))
}
