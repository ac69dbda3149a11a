package cooldown

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/zephyr/internal/clock"
	"github.com/osse101/zephyr/internal/logger"
)

// postgresBackend implements Service using PostgreSQL so windows survive restarts
// and hold across several engine processes.
type postgresBackend struct {
	db     *pgxpool.Pool
	config Config
	clock  clock.Clock
}

// NewPostgresService creates a new cooldown service with Postgres backend
func NewPostgresService(db *pgxpool.Pool, config Config, clk clock.Clock) Service {
	if clk == nil {
		clk = clock.NewRealClock(nil)
	}
	return &postgresBackend{
		db:     db,
		config: config,
		clock:  clk,
	}
}

// CheckCooldown checks if a student's action is on cooldown (unlocked read)
func (b *postgresBackend) CheckCooldown(ctx context.Context, identity, action string) (bool, time.Duration, error) {
	if b.config.DevMode {
		return false, 0, nil
	}

	lastUsed, err := b.getLastUsed(ctx, b.db, identity, action)
	if err != nil {
		return false, 0, fmt.Errorf(ErrMsgCheckCooldownFailed, err)
	}

	onCooldown, remaining := b.checkCooldownInternal(b.clock.Now(), lastUsed, b.config.GetCooldownDuration(action))
	return onCooldown, remaining, nil
}

// EnforceCooldown atomically checks cooldown and executes action if allowed.
// A cheap unlocked read rejects most repeats before the advisory lock is taken.
func (b *postgresBackend) EnforceCooldown(ctx context.Context, identity, action string, fn func() error) error {
	log := logger.FromContext(logger.WithIdentity(ctx, identity))

	if b.config.DevMode {
		log.Debug(LogMsgDevModeBypass, "action", action)
		return fn()
	}

	duration := b.config.GetCooldownDuration(action)
	if duration <= 0 {
		return fn()
	}

	onCooldown, remaining, err := b.CheckCooldown(ctx, identity, action)
	if err != nil {
		return err
	}
	if onCooldown {
		return ErrOnCooldown{Action: action, Remaining: remaining}
	}

	tx, err := b.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	// Advisory locks work even when no row exists yet
	if _, err := tx.Exec(ctx, SQLAdvisoryLock, hashIdentityAction(identity, action)); err != nil {
		return fmt.Errorf(ErrMsgAcquireLockFailed, err)
	}

	lastUsed, err := b.getLastUsed(ctx, tx, identity, action)
	if err != nil {
		return fmt.Errorf(ErrMsgGetCooldownTxFailed, err)
	}
	if onCooldown, remaining := b.checkCooldownInternal(b.clock.Now(), lastUsed, duration); onCooldown {
		log.Debug(LogMsgRaceConditionDetected, "action", action, "remaining", remaining)
		return ErrOnCooldown{Action: action, Remaining: remaining}
	}

	if err := fn(); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, SQLUpsertCooldown, identity, action, b.clock.Now()); err != nil {
		return fmt.Errorf(ErrMsgUpdateCooldownFailed, err)
	}

	// Commit releases the advisory lock
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	log.Debug(LogMsgCooldownEnforced, "action", action)
	return nil
}

// ResetCooldown manually resets a cooldown
func (b *postgresBackend) ResetCooldown(ctx context.Context, identity, action string) error {
	if _, err := b.db.Exec(ctx, SQLDeleteCooldown, identity, action); err != nil {
		return fmt.Errorf(ErrMsgResetCooldownFailed, err)
	}
	return nil
}

// GetLastUsed returns when action was last performed
func (b *postgresBackend) GetLastUsed(ctx context.Context, identity, action string) (*time.Time, error) {
	return b.getLastUsed(ctx, b.db, identity, action)
}

// querier is satisfied by both the pool and a transaction
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (b *postgresBackend) getLastUsed(ctx context.Context, q querier, identity, action string) (*time.Time, error) {
	var lastUsed time.Time

	err := q.QueryRow(ctx, SQLSelectLastUsed, identity, action).Scan(&lastUsed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf(ErrMsgGetLastUsedFailed, err)
	}
	return &lastUsed, nil
}

func (b *postgresBackend) checkCooldownInternal(now time.Time, lastUsed *time.Time, duration time.Duration) (bool, time.Duration) {
	return checkCooldown(now, lastUsed, duration)
}

// hashIdentityAction creates a consistent int64 hash from identity + action for advisory locking
func hashIdentityAction(identity, action string) int64 {
	h := sha256.Sum256([]byte(identity + HashSeparator + action))
	return int64(binary.BigEndian.Uint64(h[:8]) & HashMaskPositiveInt64)
}
