package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/zephyr/internal/clock"
	"github.com/osse101/zephyr/internal/config"
	"github.com/osse101/zephyr/internal/domain"
	"github.com/osse101/zephyr/internal/event"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Environment:       "test",
		ServiceName:       "zephyr",
		Version:           "test",
		LogLevel:          "info",
		LogFormat:         "text",
		LogDir:            filepath.Join(dir, "logs"),
		StoreBackend:      config.BackendMemory,
		SQLitePath:        filepath.Join(dir, "data", "zephyr.db"),
		Timezone:          "UTC",
		ShieldPolicy:      string(domain.ShieldPolicyGraduated),
		CacheSize:         16,
		CacheTTL:          time.Minute,
		DeadLetterPath:    filepath.Join(dir, "events", "deadletter.jsonl"),
		EventMaxRetries:   1,
		EventRetryDelay:   time.Millisecond,
		PersistRetries:    0,
		PersistRetryDelay: time.Millisecond,
	}
}

func TestCleanupLogs_KeepsNewest(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 12; i++ {
		name := fmt.Sprintf(LogFileNamePattern, fmt.Sprintf("2026-10-%02d_10-00-00", i+1))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o600))

	cleanupLogs(dir, 8)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Len(t, names, 9)
	assert.Contains(t, names, "notes.txt")
	assert.Contains(t, names, "session_2026-10-12_10-00-00.log")
	assert.NotContains(t, names, "session_2026-10-04_10-00-00.log")
}

func TestCleanupLogs_UnderLimit(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session_a.log"), nil, 0o600))

	cleanupLogs(dir, 8)
	cleanupLogs(filepath.Join(dir, "missing"), 8)

	_, err := os.Stat(filepath.Join(dir, "session_a.log"))
	assert.NoError(t, err)
}

func TestSetupLogger_CreatesSessionFile(t *testing.T) {
	cfg := testConfig(t)

	f, err := SetupLogger(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	matches, err := filepath.Glob(filepath.Join(cfg.LogDir, "session_*.log"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestOpenBackend(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		b, err := OpenBackend(ctx, testConfig(t))
		require.NoError(t, err)
		assert.Nil(t, b.Pool)
		assert.NoError(t, b.Repo.Ping(ctx))
		assert.NoError(t, b.Close())
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.StoreBackend = config.BackendSQLite

		b, err := OpenBackend(ctx, cfg)
		require.NoError(t, err)
		t.Cleanup(func() { _ = b.Close() })

		state := domain.DefaultState()
		state.Revision = 1
		require.NoError(t, b.Repo.SaveState(ctx, "student-1", state))
		_, err = os.Stat(cfg.SQLitePath)
		assert.NoError(t, err)
	})

	t.Run("unknown", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.StoreBackend = "mongo"

		_, err := OpenBackend(ctx, cfg)
		assert.ErrorContains(t, err, "mongo")
	})
}

func TestNewCooldownService(t *testing.T) {
	cfg := testConfig(t)
	b := &Backend{Name: config.BackendMemory}
	clk := clock.NewSimulatedClock(time.Date(2026, 10, 12, 10, 0, 0, 0, time.UTC))

	assert.Nil(t, NewCooldownService(cfg, b, clk))

	cfg.PurchaseCooldown = time.Minute
	assert.NotNil(t, NewCooldownService(cfg, b, clk))
}

func TestInitializeEventSystem(t *testing.T) {
	cfg := testConfig(t)

	bus, publisher, err := InitializeEventSystem(cfg)
	require.NoError(t, err)
	require.NotNil(t, bus)
	require.NoError(t, RegisterEventHandlers(bus))

	require.NoError(t, publisher.Publish(context.Background(), event.New(domain.EventTypeStarsEarned, "student-1", domain.StarsEarnedPayload{Amount: 3})))
	assert.NoError(t, publisher.Shutdown(context.Background()))

	_, err = os.Stat(filepath.Dir(cfg.DeadLetterPath))
	assert.NoError(t, err)
}

func TestResolveEventSettings(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		s := resolveEventSettings(&config.Config{EventMaxRetries: -1})
		assert.Equal(t, EventDefaultMaxRetries, s.maxRetries)
		assert.Equal(t, EventDefaultRetryDelay, s.retryDelay)
		assert.Equal(t, EventDefaultDeadLetterPath, s.deadLetterPath)
	})

	t.Run("overrides", func(t *testing.T) {
		cfg := testConfig(t)
		s := resolveEventSettings(cfg)
		assert.Equal(t, 1, s.maxRetries)
		assert.Equal(t, time.Millisecond, s.retryDelay)
		assert.Equal(t, cfg.DeadLetterPath, s.deadLetterPath)
	})
}

func TestBuildEngine_EndToEnd(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	backend, err := OpenBackend(ctx, cfg)
	require.NoError(t, err)
	_, publisher, err := InitializeEventSystem(cfg)
	require.NoError(t, err)

	clk := clock.NewSimulatedClock(time.Date(2026, 10, 12, 10, 0, 0, 0, time.UTC))
	engine, err := BuildEngine(cfg, backend, publisher, clk)
	require.NoError(t, err)

	key := domain.LevelKey{Subject: "math", Topic: "numbers_1_10", Level: 1}
	completion, err := engine.Student.ReportLevelCompleted(ctx, "student-1", key, 0)
	require.NoError(t, err)
	assert.Equal(t, 30, completion.XPAwarded)
	require.NoError(t, engine.Student.EndSession(ctx, "student-1"))

	stored, err := backend.Repo.LoadState(ctx, "student-1")
	require.NoError(t, err)
	assert.Equal(t, 30, stored.XP)
	assert.True(t, stored.CompletedLevels.Has(key))

	GracefulShutdown(ctx, ShutdownComponents{
		StudentService:     engine.Student,
		ResilientPublisher: publisher,
		Backend:            backend,
	})
	assert.Equal(t, 0, engine.Store.Pending())
}

func TestBuildEngine_BadCatalogPath(t *testing.T) {
	cfg := testConfig(t)
	cfg.CurriculumPath = filepath.Join(t.TempDir(), "missing.json")

	_, err := BuildEngine(cfg, &Backend{Name: config.BackendMemory}, nil, nil)
	assert.ErrorContains(t, err, ErrMsgFailedLoadCurriculum)
}

func TestGracefulShutdown_NilComponents(t *testing.T) {
	assert.NotPanics(t, func() {
		GracefulShutdown(context.Background(), ShutdownComponents{})
	})
}
