// Package redis stores progression records in Redis hashes
package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/osse101/zephyr/internal/domain"
	"github.com/osse101/zephyr/internal/repository"
)

// Key layout and hash fields
const (
	DefaultKeyPrefix = "zephyr:progression:"

	fieldRevision  = "revision"
	fieldState     = "state"
	fieldUpdatedAt = "updated_at"

	// maxWatchRetries bounds optimistic retries when another writer touches the key
	maxWatchRetries = 5
	scanBatchSize   = 100
	dialTimeout     = 5 * time.Second
)

// ErrRedisConnection is returned when the server cannot be reached at startup
var ErrRedisConnection = errors.New("redis: connection failed")

// Options configures the redis client
type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewClient connects and pings the server
func NewClient(ctx context.Context, opts Options) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: dialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: %v", ErrRedisConnection, err)
	}
	return client, nil
}

// StateRepository keeps one hash per identity with the revision beside the JSON record,
// so the revision guard runs inside a WATCH transaction.
type StateRepository struct {
	client redis.UniversalClient
	prefix string
}

var _ repository.StateRepository = (*StateRepository)(nil)

// NewStateRepository wraps client; an empty prefix selects DefaultKeyPrefix
func NewStateRepository(client redis.UniversalClient, prefix string) *StateRepository {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &StateRepository{client: client, prefix: prefix}
}

func (r *StateRepository) key(identity string) string {
	return r.prefix + identity
}

func (r *StateRepository) LoadState(ctx context.Context, identity string) (*domain.ProgressionState, error) {
	if err := repository.ValidateIdentity(identity); err != nil {
		return nil, err
	}

	fields, err := r.client.HGetAll(ctx, r.key(identity)).Result()
	if err != nil {
		return nil, fmt.Errorf("load progression state: %w", err)
	}
	data, ok := fields[fieldState]
	if !ok {
		return nil, domain.ErrStateNotFound
	}
	revision, err := strconv.ParseInt(fields[fieldRevision], 10, 64)
	if err != nil {
		return nil, domain.CorruptStateError{Cause: fmt.Errorf("revision field: %w", err)}
	}
	return repository.DecodeStoredState([]byte(data), revision)
}

func (r *StateRepository) SaveState(ctx context.Context, identity string, state *domain.ProgressionState) error {
	if err := repository.ValidateIdentity(identity); err != nil {
		return err
	}
	data, err := repository.EncodeState(state)
	if err != nil {
		return err
	}
	key := r.key(identity)

	txf := func(tx *redis.Tx) error {
		current, err := tx.HGet(ctx, key, fieldRevision).Int64()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return err
		case current >= state.Revision:
			return fmt.Errorf("%w: %s revision %d (stored %d)", domain.ErrStaleRevision, identity, state.Revision, current)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key,
				fieldRevision, state.Revision,
				fieldState, data,
				fieldUpdatedAt, state.UpdatedAt.UTC().Format(time.RFC3339Nano),
			)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxWatchRetries; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil && !errors.Is(err, domain.ErrStaleRevision) {
			return fmt.Errorf("save progression state: %w", err)
		}
		return err
	}
	return fmt.Errorf("save progression state: %w", redis.TxFailedErr)
}

func (r *StateRepository) DeleteState(ctx context.Context, identity string) error {
	if err := r.client.Del(ctx, r.key(identity)).Err(); err != nil {
		return fmt.Errorf("delete progression state: %w", err)
	}
	return nil
}

func (r *StateRepository) ListIdentities(ctx context.Context) ([]string, error) {
	var identities []string
	iter := r.client.Scan(ctx, 0, r.prefix+"*", scanBatchSize).Iterator()
	for iter.Next(ctx) {
		identities = append(identities, strings.TrimPrefix(iter.Val(), r.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("list identities: %w", err)
	}
	sort.Strings(identities)
	return identities, nil
}

func (r *StateRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *StateRepository) Close() error {
	return r.client.Close()
}
