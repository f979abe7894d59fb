// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"sync"

	"github.com/gogpu/pixbuf/channel"
	"github.com/gogpu/pixbuf/format"
)

// Pool reuses owned surfaces of one layout.
//
// Surfaces are bucketed by dimensions. A surface returned by Get is always
// black, whether it was reused or freshly allocated.
//
// Thread safety: all methods are safe for concurrent use.
type Pool[C channel.Channel, P any, F format.Format[C, P]] struct {
	mu      sync.Mutex
	buckets map[poolKey][]*Surface[C, P, F]
	maxSize int // max surfaces per bucket
}

type poolKey struct {
	width  int
	height int
}

// NewPool creates a pool retaining at most maxPerBucket surfaces of each
// size. Zero means unlimited.
func NewPool[C channel.Channel, P any, F format.Format[C, P]](maxPerBucket int) *Pool[C, P, F] {
	return &Pool[C, P, F]{
		buckets: make(map[poolKey][]*Surface[C, P, F]),
		maxSize: maxPerBucket,
	}
}

// Get returns a black w x h surface, reusing a pooled one when available.
func (p *Pool[C, P, F]) Get(w, h int) *Surface[C, P, F] {
	key := poolKey{width: w, height: h}

	p.mu.Lock()
	bucket := p.buckets[key]
	if n := len(bucket); n > 0 {
		s := bucket[n-1]
		bucket[n-1] = nil
		p.buckets[key] = bucket[:n-1]
		p.mu.Unlock()

		s.Clear()
		return s
	}
	p.mu.Unlock()

	return NewBlack[C, P, F](w, h)
}

// Put hands s back to the pool. The caller must not use s afterwards.
// Nil surfaces and surfaces beyond the bucket limit are dropped.
func (p *Pool[C, P, F]) Put(s *Surface[C, P, F]) {
	if s == nil {
		return
	}
	key := poolKey{width: s.width, height: s.height}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, s)
}

// Len returns the number of pooled surfaces of size w x h.
func (p *Pool[C, P, F]) Len(w, h int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buckets[poolKey{width: w, height: h}])
}
