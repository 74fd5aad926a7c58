package catalog

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/nochelabs/botilleria/internal/domain"
)

// localReadDelay preserves the perceived-loading pause of the local-only
// path. Not a correctness requirement; tests construct stores without it.
const localReadDelay = 500 * time.Millisecond

// FallbackStore composes a remote backend with the local cache per the
// documented policy: remote-first reads mirrored into the cache, built-in
// seeding when the remote collection is empty, silent degradation to the
// cache (and ultimately to the built-in catalog) on any remote failure.
// Writes are best-effort against the remote and mandatory against the cache.
type FallbackStore struct {
	remote Backend // nil when no cloud backend is configured
	local  *LocalBackend
	delay  time.Duration
}

// NewFallbackStore builds the facade. remote may be nil for local-only mode.
func NewFallbackStore(remote Backend, local *LocalBackend) *FallbackStore {
	return &FallbackStore{remote: remote, local: local, delay: localReadDelay}
}

// NewFallbackStoreNoDelay is NewFallbackStore without the artificial
// local-path pause, for tests.
func NewFallbackStoreNoDelay(remote Backend, local *LocalBackend) *FallbackStore {
	return &FallbackStore{remote: remote, local: local}
}

// CloudActive reports whether a remote backend is configured.
func (s *FallbackStore) CloudActive() bool {
	return s.remote != nil
}

// LoadProducts never fails from the caller's perspective: worst case it
// returns the built-in catalog.
func (s *FallbackStore) LoadProducts(ctx context.Context) []domain.Product {
	if s.remote != nil {
		rows, err := s.remote.ListProducts(ctx)
		switch {
		case err != nil:
			zap.L().Error("catalog: remote read failed, falling back to local cache", zap.Error(err))
		case len(rows) > 0:
			if err := s.local.ReplaceProducts(ctx, rows); err != nil {
				zap.L().Warn("catalog: failed to mirror remote catalog into cache", zap.Error(err))
			}
			return rows
		default:
			// first run: seed the remote store with the built-in catalog
			seed := BuiltinCatalog()
			if err := s.seedRemote(ctx, seed); err != nil {
				// permission errors and the like are swallowed, not surfaced
				zap.L().Warn("catalog: could not seed remote store", zap.Error(err))
			} else {
				return seed
			}
		}
	}

	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	rows, err := s.local.ListProducts(ctx)
	if err != nil {
		zap.L().Error("catalog: local cache unreadable, serving built-in catalog", zap.Error(err))
	}
	if len(rows) == 0 {
		seed := BuiltinCatalog()
		if err := s.local.ReplaceProducts(ctx, seed); err != nil {
			zap.L().Error("catalog: failed to initialize local cache", zap.Error(err))
		}
		return seed
	}
	return rows
}

func (s *FallbackStore) seedRemote(ctx context.Context, seed []domain.Product) error {
	for _, p := range seed {
		if err := s.remote.PutProduct(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// SaveProduct upserts on both sides. The remote write is best-effort; the
// local write is the last line of durability and its failure propagates.
func (s *FallbackStore) SaveProduct(ctx context.Context, p domain.Product) error {
	if s.remote != nil {
		if err := s.remote.PutProduct(ctx, p); err != nil {
			zap.L().Error("catalog: remote product write failed", zap.String("id", p.ID), zap.Error(err))
		}
	}
	return s.local.PutProduct(ctx, p)
}

// DeleteProduct mirrors SaveProduct: best-effort remote delete,
// unconditional local removal.
func (s *FallbackStore) DeleteProduct(ctx context.Context, id string) error {
	if s.remote != nil {
		if err := s.remote.DeleteProduct(ctx, id); err != nil {
			zap.L().Error("catalog: remote product delete failed", zap.String("id", id), zap.Error(err))
		}
	}
	return s.local.DeleteProduct(ctx, id)
}

// LoadConfig returns the store configuration, writing the default one to the
// remote store when no document exists yet. Reads never fail; they degrade
// to the built-in defaults.
func (s *FallbackStore) LoadConfig(ctx context.Context) domain.StoreConfig {
	if s.remote != nil {
		cfg, err := s.remote.GetConfig(ctx)
		switch {
		case err == nil:
			if err := s.local.PutConfig(ctx, *cfg); err != nil {
				zap.L().Warn("catalog: failed to mirror config into cache", zap.Error(err))
			}
			return *cfg
		case err == ErrNotFound:
			def := DefaultStoreConfig()
			if err := s.remote.PutConfig(ctx, def); err != nil {
				zap.L().Warn("catalog: could not initialize remote config", zap.Error(err))
			} else {
				return def
			}
		default:
			zap.L().Error("catalog: remote config read failed, falling back to local cache", zap.Error(err))
		}
	}

	cfg, err := s.local.GetConfig(ctx)
	if err != nil {
		if err != ErrNotFound {
			zap.L().Error("catalog: local config unreadable, serving defaults", zap.Error(err))
		}
		return DefaultStoreConfig()
	}
	return *cfg
}

// SaveConfig overwrites the configuration wholesale on both sides.
func (s *FallbackStore) SaveConfig(ctx context.Context, cfg domain.StoreConfig) error {
	cfg.ID = domain.StoreConfigID
	if s.remote != nil {
		if err := s.remote.PutConfig(ctx, cfg); err != nil {
			zap.L().Error("catalog: remote config write failed", zap.Error(err))
		}
	}
	return s.local.PutConfig(ctx, cfg)
}

// ResetLocal clears the local cache for both products and config. The
// remote state is untouched; the next load repopulates the cache.
func (s *FallbackStore) ResetLocal() error {
	return s.local.Reset()
}
