package cooldown

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/zephyr/internal/clock"
	"github.com/osse101/zephyr/internal/concurrency"
	"github.com/osse101/zephyr/internal/logger"
)

// memoryBackend implements Service in process memory.
// Each identity and action pair is serialized through its own lock.
type memoryBackend struct {
	config Config
	clock  clock.Clock
	locks  *concurrency.LockManager

	mu       sync.RWMutex
	lastUsed map[string]time.Time
}

// NewMemoryService creates a cooldown service that keeps timestamps in memory
func NewMemoryService(config Config, clk clock.Clock, locks *concurrency.LockManager) Service {
	if clk == nil {
		clk = clock.NewRealClock(nil)
	}
	if locks == nil {
		locks = concurrency.NewLockManager()
	}
	return &memoryBackend{
		config:   config,
		clock:    clk,
		locks:    locks,
		lastUsed: make(map[string]time.Time),
	}
}

func (b *memoryBackend) CheckCooldown(ctx context.Context, identity, action string) (bool, time.Duration, error) {
	if b.config.DevMode {
		return false, 0, nil
	}
	last, _ := b.GetLastUsed(ctx, identity, action)
	onCooldown, remaining := checkCooldown(b.clock.Now(), last, b.config.GetCooldownDuration(action))
	return onCooldown, remaining, nil
}

func (b *memoryBackend) EnforceCooldown(ctx context.Context, identity, action string, fn func() error) error {
	log := logger.FromContext(logger.WithIdentity(ctx, identity))

	if b.config.DevMode {
		log.Debug(LogMsgDevModeBypass, "action", action)
		return fn()
	}

	lock := b.locks.GetLock(cooldownKey(identity, action))
	lock.Lock()
	defer lock.Unlock()

	onCooldown, remaining, _ := b.CheckCooldown(ctx, identity, action)
	if onCooldown {
		return ErrOnCooldown{Action: action, Remaining: remaining}
	}

	if err := fn(); err != nil {
		return err
	}

	b.mu.Lock()
	b.lastUsed[cooldownKey(identity, action)] = b.clock.Now()
	b.mu.Unlock()

	log.Debug(LogMsgCooldownEnforced, "action", action)
	return nil
}

func (b *memoryBackend) ResetCooldown(_ context.Context, identity, action string) error {
	b.mu.Lock()
	delete(b.lastUsed, cooldownKey(identity, action))
	b.mu.Unlock()
	return nil
}

func (b *memoryBackend) GetLastUsed(_ context.Context, identity, action string) (*time.Time, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	last, ok := b.lastUsed[cooldownKey(identity, action)]
	if !ok {
		return nil, nil
	}
	return &last, nil
}

func cooldownKey(identity, action string) string {
	return "cooldown" + HashSeparator + identity + HashSeparator + action
}
