// Package catalog is the persistence facade for products and the store
// configuration singleton: a remote document store mirrored into a local
// cache, with seed-on-empty and fallback-on-error semantics.
package catalog

import (
	"context"

	"github.com/pkg/errors"

	"github.com/nochelabs/botilleria/internal/domain"
)

// ErrNotFound is returned by GetConfig when no config document exists yet.
var ErrNotFound = errors.New("catalog: not found")

// Backend is a keyed document store holding the product collection and the
// config singleton. Both RemoteBackend and LocalBackend implement it; the
// FallbackStore composes the two.
type Backend interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	PutProduct(ctx context.Context, p domain.Product) error
	DeleteProduct(ctx context.Context, id string) error
	GetConfig(ctx context.Context) (*domain.StoreConfig, error)
	PutConfig(ctx context.Context, cfg domain.StoreConfig) error
}
