// Package store sits between the engine and a StateRepository. Loads never fail
// for a valid identity and saves are queued for a background writer.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/osse101/zephyr/internal/domain"
	"github.com/osse101/zephyr/internal/logger"
	"github.com/osse101/zephyr/internal/metrics"
	"github.com/osse101/zephyr/internal/repository"
)

// Options configures the background writer
type Options struct {
	// Backend labels metrics
	Backend      string
	Retries      int
	RetryDelay   time.Duration
	WriteTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.Backend == "" {
		o.Backend = "unknown"
	}
	if o.Retries < 0 {
		o.Retries = 0
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = DefaultRetryDelay
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = DefaultWriteTimeout
	}
	return o
}

// Store loads records with fallback to defaults and writes them asynchronously.
// Writes are latest-wins per identity: a queued snapshot replaced before the writer
// reaches it is never written. Loads see queued snapshots (read-your-writes).
type Store struct {
	repo repository.StateRepository
	opts Options

	mu      sync.Mutex
	latest  map[string]*domain.ProgressionState // saved but not yet durably written
	dirty   map[string]struct{}                 // identities waiting for the writer
	flushMu sync.Mutex                          // one batch at a time

	// detached identities run on defaults after a failed read, so the stored
	// revision is unknown and nothing may be written until it is learned
	detached map[string]struct{}
	// offsets shift the revisions of a re-attached session above the stored record
	offsets map[string]int64

	wake      chan struct{}
	shutdown  chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// New creates a store and starts its writer
func New(repo repository.StateRepository, opts Options) *Store {
	s := &Store{
		repo:     repo,
		opts:     opts.withDefaults(),
		latest:   make(map[string]*domain.ProgressionState),
		dirty:    make(map[string]struct{}),
		detached: make(map[string]struct{}),
		offsets:  make(map[string]int64),
		wake:     make(chan struct{}, 1),
		shutdown: make(chan struct{}),
	}
	s.wg.Add(1)
	go s.run()
	return s
}

// Load returns the newest known record of identity. Absent or unreadable
// records yield the default record; only an invalid identity is an error.
// A corrupt record is replaced by defaults at its stored revision so the next
// write supersedes it. Any other read failure detaches the identity: its
// snapshots stay pending until the writer can learn the stored revision.
func (s *Store) Load(ctx context.Context, identity string) (*domain.ProgressionState, LoadSource, error) {
	if err := repository.ValidateIdentity(identity); err != nil {
		return nil, "", err
	}
	ctx = logger.WithIdentity(ctx, identity)

	s.mu.Lock()
	pending := s.latest[identity]
	s.mu.Unlock()
	if pending != nil {
		return pending.Clone(), SourcePending, nil
	}

	state, err := s.repo.LoadState(ctx, identity)
	var corrupt domain.CorruptStateError
	switch {
	case err == nil:
		s.attach(identity, 0)
		metrics.StateLoads.WithLabelValues(s.opts.Backend, metrics.LoadResultStore).Inc()
		return state, SourceStore, nil
	case errors.Is(err, domain.ErrStateNotFound):
		s.attach(identity, 0)
		metrics.StateLoads.WithLabelValues(s.opts.Backend, metrics.LoadResultMissing).Inc()
		return domain.DefaultState(), SourceMissing, nil
	case errors.As(err, &corrupt):
		s.attach(identity, 0)
		logger.FromContext(ctx).Warn(LogMsgLoadFallback, "stored_revision", corrupt.Revision, "error", err)
		metrics.StateLoads.WithLabelValues(s.opts.Backend, metrics.LoadResultFallback).Inc()
		fallback := domain.DefaultState()
		fallback.Revision = corrupt.Revision
		return fallback, SourceFallback, nil
	default:
		s.mu.Lock()
		s.detached[identity] = struct{}{}
		delete(s.offsets, identity)
		s.mu.Unlock()
		logger.FromContext(ctx).Warn(LogMsgLoadDetached, "error", err)
		metrics.StateLoads.WithLabelValues(s.opts.Backend, metrics.LoadResultFallback).Inc()
		return domain.DefaultState(), SourceFallback, nil
	}
}

// Detached reports whether identity is waiting to learn its stored revision
func (s *Store) Detached(identity string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.detached[identity]
	return ok
}

func (s *Store) attach(identity string, offset int64) {
	s.mu.Lock()
	delete(s.detached, identity)
	if offset > 0 {
		s.offsets[identity] = offset
	} else {
		delete(s.offsets, identity)
	}
	s.mu.Unlock()
}

// Save queues a snapshot for writing. The caller must not mutate state afterwards.
// A snapshot older than the one already queued is ignored.
func (s *Store) Save(identity string, state *domain.ProgressionState) {
	s.mu.Lock()
	if current, ok := s.latest[identity]; ok && current.Revision >= state.Revision {
		s.mu.Unlock()
		return
	}
	s.latest[identity] = state
	s.dirty[identity] = struct{}{}
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Pending returns the number of snapshots not yet durably written
func (s *Store) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.latest)
}

// Flush writes every queued snapshot before returning
func (s *Store) Flush(ctx context.Context) {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()
	s.writeBatch(ctx)
}

// Shutdown stops the writer and writes whatever is still queued
func (s *Store) Shutdown(ctx context.Context) error {
	s.closeOnce.Do(func() { close(s.shutdown) })

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.FromContext(ctx).Debug(LogMsgWriterStopped)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Repository exposes the backend for read-only tooling
func (s *Store) Repository() repository.StateRepository {
	return s.repo
}

// Ping checks the backend
func (s *Store) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *Store) run() {
	defer s.wg.Done()
	ctx := context.Background()

	for {
		select {
		case <-s.wake:
			s.Flush(ctx)
		case <-s.shutdown:
			s.Flush(ctx)
			return
		}
	}
}

func (s *Store) writeBatch(ctx context.Context) {
	s.mu.Lock()
	identities := make([]string, 0, len(s.dirty))
	for id := range s.dirty {
		identities = append(identities, id)
	}
	s.dirty = make(map[string]struct{})
	s.mu.Unlock()

	for _, id := range identities {
		s.persist(ctx, id)
	}
}

func (s *Store) persist(ctx context.Context, identity string) {
	s.mu.Lock()
	state := s.latest[identity]
	_, detached := s.detached[identity]
	s.mu.Unlock()
	if state == nil {
		return
	}

	ctx = logger.WithIdentity(ctx, identity)
	log := logger.FromContext(ctx).With("revision", state.Revision)

	if detached && !s.reattach(ctx, identity) {
		// Keep the snapshot readable and retry on the next save or flush
		s.mu.Lock()
		s.dirty[identity] = struct{}{}
		s.mu.Unlock()
		metrics.StatePersists.WithLabelValues(s.opts.Backend, metrics.PersistResultDeferred).Inc()
		log.Warn(LogMsgPersistDeferred)
		return
	}

	s.mu.Lock()
	offset := s.offsets[identity]
	s.mu.Unlock()
	record := state
	if offset > 0 {
		record = state.Clone()
		record.Revision += offset
	}

	result := metrics.PersistResultFailed

	for attempt := 0; attempt <= s.opts.Retries; attempt++ {
		if attempt > 0 {
			delay := s.opts.RetryDelay * time.Duration(1<<(attempt-1))
			log.Debug(LogMsgPersistRetry, "attempt", attempt, "delay", delay)
			time.Sleep(delay)
		}

		err := s.write(ctx, identity, record)
		if err == nil {
			result = metrics.PersistResultOK
			log.Debug(LogMsgPersistedSnapshot)
			break
		}
		if errors.Is(err, domain.ErrStaleRevision) {
			result = metrics.PersistResultStale
			log.Debug(LogMsgPersistStale)
			break
		}
		if attempt == s.opts.Retries {
			log.Error(LogMsgPersistFailed, "attempts", attempt+1, "error", err)
		}
	}
	metrics.StatePersists.WithLabelValues(s.opts.Backend, result).Inc()

	// Failed snapshots stay readable; the next Save for identity queues a new write
	if result == metrics.PersistResultFailed {
		return
	}
	s.mu.Lock()
	if s.latest[identity] == state {
		delete(s.latest, identity)
	}
	s.mu.Unlock()
}

// reattach probes the backend for the stored revision of a detached identity.
// A missing or corrupt record lets the session take over above its revision;
// a readable record the session never saw is never overwritten.
func (s *Store) reattach(ctx context.Context, identity string) bool {
	_, err := s.repo.LoadState(ctx, identity)
	var corrupt domain.CorruptStateError
	switch {
	case errors.As(err, &corrupt):
		s.attach(identity, corrupt.Revision)
		return true
	case errors.Is(err, domain.ErrStateNotFound):
		s.attach(identity, 0)
		return true
	case err == nil:
		logger.FromContext(ctx).Error(LogMsgDetachedConflict)
		return false
	default:
		return false
	}
}

func (s *Store) write(ctx context.Context, identity string, state *domain.ProgressionState) error {
	writeCtx, cancel := context.WithTimeout(ctx, s.opts.WriteTimeout)
	defer cancel()

	start := time.Now()
	err := s.repo.SaveState(writeCtx, identity, state)
	metrics.PersistDuration.WithLabelValues(s.opts.Backend).Observe(time.Since(start).Seconds())
	return err
}
