package common

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSaveQueueFlushesInChunks(t *testing.T) {
	var mu sync.Mutex
	batches := make([][]int, 0)
	processor := func(items []int) {
		mu.Lock()
		batches = append(batches, items)
		mu.Unlock()
	}

	queue := NewSaveQueue(processor, 2, 10*time.Millisecond)
	queue.Add(1, 2, 3)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		total := 0
		for _, b := range batches {
			total += len(b)
		}
		return total == 3
	}, time.Second, 10*time.Millisecond, "queued items should flush")

	mu.Lock()
	assert.LessOrEqual(t, len(batches[0]), 2, "chunk size respected")
	mu.Unlock()
	queue.Close()
}

func TestSaveQueueCloseFlushesRemainder(t *testing.T) {
	var mu sync.Mutex
	saved := make([]string, 0)
	processor := func(items []string) {
		mu.Lock()
		saved = append(saved, items...)
		mu.Unlock()
	}

	queue := NewSaveQueue(processor, 10, time.Minute)
	queue.Add("a", "b")
	queue.Close()

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(saved) == 2
	}, time.Second, 5*time.Millisecond, "close should flush pending items")
}
