package common

import (
	"sync"
	"time"
)

// SaveProcessor persists a batch of queued writes.
type SaveProcessor[V any] func(items []V)

// SaveQueue debounces best-effort persistence writes so that config
// saves never block or affect a recomputation. Items queue up and flush
// in chunks from a background goroutine.
type SaveQueue[V any] struct {
	mu        sync.Mutex
	queue     []V
	processor SaveProcessor[V]
	chunkSize int
	interval  time.Duration
	done      chan struct{}
}

func NewSaveQueue[V any](processor SaveProcessor[V], chunkSize int, interval time.Duration) *SaveQueue[V] {
	if interval <= 0 {
		interval = time.Second
	}
	q := &SaveQueue[V]{
		queue:     make([]V, 0),
		processor: processor,
		chunkSize: chunkSize,
		interval:  interval,
		done:      make(chan struct{}),
	}
	go q.run()
	return q
}

func (h *SaveQueue[V]) Add(item ...V) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.queue = append(h.queue, item...)
}

func (h *SaveQueue[V]) take() []V {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.queue) == 0 {
		return nil
	}
	n := min(h.chunkSize, len(h.queue))
	items := h.queue[:n]
	h.queue = h.queue[n:]
	return items
}

func (h *SaveQueue[V]) run() {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if items := h.take(); items != nil {
				h.processor(items)
			}
		case <-h.done:
			for items := h.take(); items != nil; items = h.take() {
				h.processor(items)
			}
			return
		}
	}
}

// Close flushes everything still queued and stops the worker.
func (h *SaveQueue[V]) Close() {
	close(h.done)
}
