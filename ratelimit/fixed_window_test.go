package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newLimiter(max int, window time.Duration) (*FixedWindow, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	return NewFixedWindow(max, window).WithClock(clock.Now), clock
}

func TestAllow_FourthCallDenied(t *testing.T) {
	l, _ := newLimiter(3, time.Minute)

	got := []bool{l.Allow("1.2.3.4"), l.Allow("1.2.3.4"), l.Allow("1.2.3.4"), l.Allow("1.2.3.4")}
	assert.Equal(t, []bool{true, true, true, false}, got)
}

func TestAllow_KeysAreIndependent(t *testing.T) {
	l, _ := newLimiter(1, time.Minute)

	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"))
}

func TestAllow_EmptyIPNeverLimited(t *testing.T) {
	l, _ := newLimiter(1, time.Minute)
	for i := 0; i < 10; i++ {
		assert.True(t, l.Allow(""))
	}
	assert.Equal(t, 0, l.Len())
}

func TestAllow_WindowIsFixed(t *testing.T) {
	l, clock := newLimiter(3, time.Minute)

	assert.True(t, l.Allow("ip"))
	clock.Advance(30 * time.Second)
	assert.True(t, l.Allow("ip"))
	assert.True(t, l.Allow("ip"))
	assert.False(t, l.Allow("ip"))

	// exactly one window after the first event is still inside it
	clock.Advance(30 * time.Second)
	assert.False(t, l.Allow("ip"))

	clock.Advance(time.Millisecond)
	assert.True(t, l.Allow("ip"))
	assert.True(t, l.Allow("ip"))
	assert.True(t, l.Allow("ip"))
	assert.False(t, l.Allow("ip"))
}

func TestAllow_DenialDoesNotExtendWindow(t *testing.T) {
	l, clock := newLimiter(1, time.Minute)

	assert.True(t, l.Allow("ip"))
	for i := 0; i < 5; i++ {
		clock.Advance(10 * time.Second)
		assert.False(t, l.Allow("ip"))
	}
	clock.Advance(11 * time.Second)
	assert.True(t, l.Allow("ip"))
}

func TestAllow_Concurrent(t *testing.T) {
	l, _ := newLimiter(3, time.Minute)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("shared") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 3, allowed)
}

func TestPrune(t *testing.T) {
	l, clock := newLimiter(3, time.Minute)

	for i := 0; i < 5; i++ {
		l.Allow(fmt.Sprintf("10.0.0.%d", i))
	}
	clock.Advance(30 * time.Second)
	l.Allow("fresh")

	assert.Equal(t, 0, l.Prune(clock.Now()))
	assert.Equal(t, 6, l.Len())

	clock.Advance(31 * time.Second)
	assert.Equal(t, 5, l.Prune(clock.Now()))
	assert.Equal(t, 1, l.Len())
}

func TestRun_StopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := NewFixedWindow(3, time.Millisecond)
	l.Allow("ip")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.Run(ctx, time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return l.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}
