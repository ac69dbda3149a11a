package bootstrap

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/osse101/zephyr/internal/catalog"
	"github.com/osse101/zephyr/internal/clock"
	"github.com/osse101/zephyr/internal/concurrency"
	"github.com/osse101/zephyr/internal/config"
	"github.com/osse101/zephyr/internal/cooldown"
	"github.com/osse101/zephyr/internal/domain"
	"github.com/osse101/zephyr/internal/economy"
	"github.com/osse101/zephyr/internal/event"
	"github.com/osse101/zephyr/internal/store"
	"github.com/osse101/zephyr/internal/student"
)

// Engine is the wired progression engine
type Engine struct {
	Student    student.Service
	Store      *store.Store
	Curriculum *catalog.Curriculum
	Shop       *economy.Shop
}

// LoadCatalogs reads the curriculum and shop catalog, using the embedded
// defaults for empty paths.
func LoadCatalogs(cfg *config.Config) (*catalog.Curriculum, *economy.Shop, error) {
	curriculum, err := catalog.LoadCurriculum(cfg.CurriculumPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCurriculum, err)
	}
	shopCatalog, err := catalog.LoadShopCatalog(cfg.ShopCatalogPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadShop, err)
	}
	shop, err := economy.NewShop(shopCatalog)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgInvalidShop, err)
	}

	slog.Info(LogMsgCatalogsLoaded,
		"subjects", len(curriculum.Subjects()),
		"curriculum_path", cfg.CurriculumPath,
		"shop_path", cfg.ShopCatalogPath)
	return curriculum, shop, nil
}

// NewCooldownService picks the purchase cooldown store. Postgres keeps the
// window across restarts; every other backend keeps it in memory. A zero
// PURCHASE_COOLDOWN disables the window and returns nil.
func NewCooldownService(cfg *config.Config, backend *Backend, clk clock.Clock) cooldown.Service {
	if cfg.PurchaseCooldown <= 0 {
		return nil
	}
	cdCfg := cooldown.Config{
		DevMode:   cfg.DevMode,
		Cooldowns: map[string]time.Duration{cooldown.ActionPurchase: cfg.PurchaseCooldown},
	}
	if backend.Pool != nil {
		slog.Info(LogMsgCooldownSelected, "backend", CooldownBackendPostgres, "window", cfg.PurchaseCooldown)
		return cooldown.NewPostgresService(backend.Pool, cdCfg, clk)
	}
	slog.Info(LogMsgCooldownSelected, "backend", CooldownBackendMemory, "window", cfg.PurchaseCooldown)
	return cooldown.NewMemoryService(cdCfg, clk, concurrency.NewLockManager())
}

// BuildEngine wires the write-behind store, catalogs and student service over backend.
// publisher receives every progression event.
func BuildEngine(cfg *config.Config, backend *Backend, publisher event.Bus, clk clock.Clock) (*Engine, error) {
	curriculum, shop, err := LoadCatalogs(cfg)
	if err != nil {
		return nil, err
	}
	if clk == nil {
		clk = clock.NewRealClock(cfg.Location())
	}

	st := store.New(backend.Repo, store.Options{
		Backend:    backend.Name,
		Retries:    cfg.PersistRetries,
		RetryDelay: cfg.PersistRetryDelay,
	})

	svc := student.NewService(st, curriculum, shop, clk, publisher, NewCooldownService(cfg, backend, clk), student.Config{
		ShieldPolicy: domain.ShieldPolicy(cfg.ShieldPolicy),
		CacheSize:    cfg.CacheSize,
		CacheTTL:     cfg.CacheTTL,
	})

	slog.Info(LogMsgEngineReady,
		"backend", backend.Name,
		"timezone", clk.Location().String(),
		"shield_policy", cfg.ShieldPolicy)

	return &Engine{Student: svc, Store: st, Curriculum: curriculum, Shop: shop}, nil
}
