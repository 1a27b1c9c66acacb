package queue

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundedPushPopOrder(t *testing.T) {
	q := NewBounded[int](4)
	for i := 0; i < 4; i++ {
		q.Push(i)
	}
	for i := 0; i < 4; i++ {
		v, ok := q.Pop()
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
}

func TestBoundedCloseDeliversBuffered(t *testing.T) {
	q := NewBounded[int](4)
	q.Push(1)
	q.Push(2)
	q.Close()

	v, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = q.Pop()
	require.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = q.Pop()
	assert.False(t, ok, "pop after close and drain must report ok=false")
}

func TestBoundedPushAfterCloseIsNoOp(t *testing.T) {
	q := NewBounded[int](1)
	q.Close()

	done := make(chan struct{})
	go func() {
		q.Push(42) // must not block forever
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Push after Close blocked instead of no-op'ing")
	}

	_, ok := q.Pop()
	assert.False(t, ok)
}

func TestCountedCloserLastWorkerWins(t *testing.T) {
	c := NewCountedCloser(3)
	assert.False(t, c.Done())
	assert.False(t, c.Done())
	assert.True(t, c.Done(), "the third Done call must report isLast")
}

func TestCountedCloserConcurrentSafety(t *testing.T) {
	workers := 8
	c := NewCountedCloser(workers)
	var wg sync.WaitGroup
	var lastCount int32Counter
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if c.Done() {
				lastCount.add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, lastCount.value(), "exactly one goroutine must observe isLast")
}

type int32Counter struct {
	mu sync.Mutex
	n  int
}

func (c *int32Counter) add(d int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n += d
}

func (c *int32Counter) value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}
