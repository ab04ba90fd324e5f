package purefn

import (
	"sync"
	"sync/atomic"
)

// Memo is a bounded map safe for concurrent use. Entries are stored in the
// head generation; when it holds more than maxSize entries the other
// generation is emptied and becomes the head. Lookups check both, so the
// last maxSize to 2*maxSize stored entries are retained.
type Memo[K comparable, V any] struct {
	memos   [2]atomic.Pointer[sync.Map]
	headIdx atomic.Uint32
	size    atomic.Uint32
	maxSize uint32

	rotateMu sync.Mutex
}

func NewMemo[K comparable, V any](maxSize uint32) *Memo[K, V] {
	if maxSize == 0 {
		panic("maxSize should be greater than 0")
	}
	m := &Memo[K, V]{maxSize: maxSize}
	m.memos[0].Store(&sync.Map{})
	m.memos[1].Store(&sync.Map{})
	return m
}

func (m *Memo[K, V]) Load(key K) (V, bool) {
	headIdx := m.headIdx.Load()
	v, ok := m.memos[headIdx].Load().Load(key)
	if !ok {
		v, ok = m.memos[1-headIdx].Load().Load(key)
		if !ok {
			var zero V
			return zero, false
		}
	}
	return v.(V), true
}

func (m *Memo[K, V]) Store(key K, value V) {
	if m.size.Add(1) > m.maxSize {
		m.rotate()
	}
	m.memos[m.headIdx.Load()].Load().Store(key, value)
}

func (m *Memo[K, V]) rotate() {
	m.rotateMu.Lock()
	defer m.rotateMu.Unlock()
	// a concurrent Store may have rotated already
	if m.size.Load() <= m.maxSize {
		return
	}
	next := 1 - m.headIdx.Load()
	m.memos[next].Store(&sync.Map{})
	m.headIdx.Store(next)
	m.size.Store(1)
}
