package event

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/zephyr/internal/domain"
)

// flakyBus fails according to shouldFail and records every attempt
type flakyBus struct {
	mu           sync.Mutex
	calls        []Event
	callTimes    []time.Time
	shouldFail   func(attempt int) bool
	publishDelay time.Duration
}

func (b *flakyBus) Publish(ctx context.Context, event Event) error {
	b.mu.Lock()
	b.calls = append(b.calls, event)
	b.callTimes = append(b.callTimes, time.Now())
	attempt := len(b.calls)
	b.mu.Unlock()

	if b.publishDelay > 0 {
		time.Sleep(b.publishDelay)
	}
	if b.shouldFail != nil && b.shouldFail(attempt) {
		return errors.New("bus unavailable")
	}
	return nil
}

func (b *flakyBus) Subscribe(Type, Handler) {}

func (b *flakyBus) CallCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}

func (b *flakyBus) CallTimes() []time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]time.Time{}, b.callTimes...)
}

func xpEvent(amount int) Event {
	return New(domain.EventTypeXPGranted, "student-1", domain.XPGrantedPayload{Identity: "student-1", Amount: amount})
}

func deadLetterPath(t *testing.T) string {
	return filepath.Join(t.TempDir(), "deadletter.jsonl")
}

func TestResilientPublisher_SuccessfulPublish(t *testing.T) {
	path := deadLetterPath(t)
	bus := &flakyBus{}

	rp, err := NewResilientPublisher(bus, 3, 100*time.Millisecond, path)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	rp.PublishWithRetry(context.Background(), xpEvent(10))

	assert.Equal(t, 1, bus.CallCount(), "first attempt is synchronous")
	content, _ := os.ReadFile(path)
	assert.Empty(t, content)
}

func TestResilientPublisher_RetrySuccess(t *testing.T) {
	path := deadLetterPath(t)
	bus := &flakyBus{shouldFail: func(attempt int) bool { return attempt == 1 }}

	rp, err := NewResilientPublisher(bus, 3, 50*time.Millisecond, path)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	rp.PublishWithRetry(context.Background(), xpEvent(10))

	assert.Eventually(t, func() bool { return bus.CallCount() == 2 }, time.Second, 10*time.Millisecond)
	content, _ := os.ReadFile(path)
	assert.Empty(t, content)
}

func TestResilientPublisher_RetryExhaustion(t *testing.T) {
	path := deadLetterPath(t)
	bus := &flakyBus{shouldFail: func(int) bool { return true }}

	rp, err := NewResilientPublisher(bus, 3, 20*time.Millisecond, path)
	require.NoError(t, err)

	rp.PublishWithRetry(context.Background(), xpEvent(25))

	// initial attempt plus three retries at 20, 40 and 80ms
	assert.Eventually(t, func() bool { return bus.CallCount() >= 4 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, rp.Shutdown(context.Background()))

	entries, err := ReadDeadLetters(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, Type(domain.EventTypeXPGranted), entry.Event.Type)
	assert.Equal(t, 4, entry.Attempts)
	assert.NotEmpty(t, entry.LastError)
	assert.Equal(t, "student-1", entry.Event.Identity())

	payload, err := DecodePayload[domain.XPGrantedPayload](entry.Event.Payload)
	require.NoError(t, err)
	assert.Equal(t, 25, payload.Amount)
}

func TestResilientPublisher_QueueOverflow(t *testing.T) {
	path := deadLetterPath(t)
	bus := &flakyBus{shouldFail: func(int) bool { return true }}

	dl, err := NewDeadLetterWriter(path)
	require.NoError(t, err)
	// No worker is started, so the queue never drains
	rp := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, 2),
		maxRetries: 3,
		retryDelay: time.Hour,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}

	for i := 1; i <= 5; i++ {
		rp.PublishWithRetry(context.Background(), xpEvent(i))
	}
	require.NoError(t, dl.Close())

	entries, err := ReadDeadLetters(path)
	require.NoError(t, err)
	assert.Len(t, entries, 3, "events beyond the queue capacity are dead-lettered")
}

func TestResilientPublisher_ShutdownDrainsQueue(t *testing.T) {
	path := deadLetterPath(t)
	bus := &flakyBus{shouldFail: func(attempt int) bool { return attempt <= 3 }}

	rp, err := NewResilientPublisher(bus, 5, time.Hour, path)
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		rp.PublishWithRetry(context.Background(), xpEvent(i))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, rp.Shutdown(ctx))

	assert.Equal(t, 6, bus.CallCount(), "each queued event gets one final attempt")
	content, _ := os.ReadFile(path)
	assert.Empty(t, content)
}

func TestResilientPublisher_ExponentialBackoff(t *testing.T) {
	bus := &flakyBus{shouldFail: func(attempt int) bool { return attempt < 4 }}
	baseDelay := 50 * time.Millisecond

	rp, err := NewResilientPublisher(bus, 5, baseDelay, deadLetterPath(t))
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	rp.PublishWithRetry(context.Background(), xpEvent(1))
	require.Eventually(t, func() bool { return bus.CallCount() >= 4 }, 2*time.Second, 10*time.Millisecond)

	times := bus.CallTimes()
	assert.GreaterOrEqual(t, times[1].Sub(times[0]), baseDelay)
	assert.GreaterOrEqual(t, times[2].Sub(times[1]), 2*baseDelay)
	assert.GreaterOrEqual(t, times[3].Sub(times[2]), 4*baseDelay)
}

func TestResilientPublisher_ConcurrentPublishes(t *testing.T) {
	bus := &flakyBus{}
	rp, err := NewResilientPublisher(bus, 3, 50*time.Millisecond, deadLetterPath(t))
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	const goroutines = 10
	const perGoroutine = 5

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				require.NoError(t, rp.Publish(context.Background(), xpEvent(j+1)))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines*perGoroutine, bus.CallCount())
}

func TestCalculateRetryDelay(t *testing.T) {
	base := 2 * time.Second
	assert.Equal(t, 2*time.Second, CalculateRetryDelay(base, 1))
	assert.Equal(t, 8*time.Second, CalculateRetryDelay(base, 3))
	assert.Equal(t, 2*time.Second, CalculateRetryDelay(base, 0))
}
