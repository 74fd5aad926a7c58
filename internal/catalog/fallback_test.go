package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nochelabs/botilleria/internal/domain"
)

// fakeRemote is an in-memory Backend that can be switched into a failing
// state to exercise the fallback policy.
type fakeRemote struct {
	products map[string]domain.Product
	config   *domain.StoreConfig
	down     bool
	seedDeny bool // writes fail while reads work (permission error shape)
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{products: make(map[string]domain.Product)}
}

var errRemoteDown = errors.New("remote unavailable")

func (f *fakeRemote) ListProducts(context.Context) ([]domain.Product, error) {
	if f.down {
		return nil, errRemoteDown
	}
	out := make([]domain.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeRemote) PutProduct(_ context.Context, p domain.Product) error {
	if f.down || f.seedDeny {
		return errRemoteDown
	}
	f.products[p.ID] = p
	return nil
}

func (f *fakeRemote) DeleteProduct(_ context.Context, id string) error {
	if f.down {
		return errRemoteDown
	}
	delete(f.products, id)
	return nil
}

func (f *fakeRemote) GetConfig(context.Context) (*domain.StoreConfig, error) {
	if f.down {
		return nil, errRemoteDown
	}
	if f.config == nil {
		return nil, ErrNotFound
	}
	cfg := *f.config
	return &cfg, nil
}

func (f *fakeRemote) PutConfig(_ context.Context, cfg domain.StoreConfig) error {
	if f.down {
		return errRemoteDown
	}
	f.config = &cfg
	return nil
}

func openTestLocal(t *testing.T) *LocalBackend {
	t.Helper()
	local, err := OpenLocal(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = local.Close() })
	return local
}

func ids(rows []domain.Product) map[string]bool {
	out := make(map[string]bool, len(rows))
	for _, p := range rows {
		out[p.ID] = true
	}
	return out
}

func TestLoadProductsSeedsEmptyRemote(t *testing.T) {
	remote := newFakeRemote()
	store := NewFallbackStoreNoDelay(remote, openTestLocal(t))
	ctx := context.Background()

	rows := store.LoadProducts(ctx)
	require.Len(t, rows, len(BuiltinCatalog()))

	// the seed was persisted remotely: a second load sees the populated
	// remote collection and returns the same set
	again := store.LoadProducts(ctx)
	assert.Equal(t, ids(rows), ids(again))
	assert.Len(t, remote.products, len(BuiltinCatalog()))
}

func TestLoadProductsSeedFailureFallsThrough(t *testing.T) {
	remote := newFakeRemote()
	remote.seedDeny = true
	store := NewFallbackStoreNoDelay(remote, openTestLocal(t))

	// seed failures are swallowed; the local path serves the builtin catalog
	rows := store.LoadProducts(context.Background())
	require.NotEmpty(t, rows)
	assert.Equal(t, ids(BuiltinCatalog()), ids(rows))
	assert.Empty(t, remote.products)
}

func TestLoadProductsRemoteDown(t *testing.T) {
	remote := newFakeRemote()
	remote.down = true
	store := NewFallbackStoreNoDelay(remote, openTestLocal(t))

	rows := store.LoadProducts(context.Background())
	require.NotEmpty(t, rows)
	assert.Equal(t, ids(BuiltinCatalog()), ids(rows))
}

func TestLoadProductsLocalOnly(t *testing.T) {
	store := NewFallbackStoreNoDelay(nil, openTestLocal(t))
	ctx := context.Background()

	rows := store.LoadProducts(ctx)
	require.Len(t, rows, len(BuiltinCatalog()))

	// the cache was initialized; subsequent loads reuse it
	again := store.LoadProducts(ctx)
	assert.Equal(t, ids(rows), ids(again))
}

func TestLoadProductsMirrorsRemoteIntoCache(t *testing.T) {
	remote := newFakeRemote()
	remote.products["x"] = domain.Product{ID: "x", Name: "Pisco", Price: 5000}
	local := openTestLocal(t)
	store := NewFallbackStoreNoDelay(remote, local)
	ctx := context.Background()

	rows := store.LoadProducts(ctx)
	require.Len(t, rows, 1)

	// remote now fails; the mirrored cache still serves the remote content
	remote.down = true
	rows = store.LoadProducts(ctx)
	require.Len(t, rows, 1)
	assert.Equal(t, "Pisco", rows[0].Name)
}

func TestSaveProductDualWriteAndIdempotence(t *testing.T) {
	remote := newFakeRemote()
	local := openTestLocal(t)
	store := NewFallbackStoreNoDelay(remote, local)
	ctx := context.Background()

	p := domain.Product{ID: "42", Name: "Ron Abuelo", Price: 13990}
	require.NoError(t, store.SaveProduct(ctx, p))
	require.NoError(t, store.SaveProduct(ctx, p))

	assert.Len(t, remote.products, 1)

	cached, err := local.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, "42", cached[0].ID)
}

func TestSaveProductRemoteFailureIsNonFatal(t *testing.T) {
	remote := newFakeRemote()
	remote.down = true
	local := openTestLocal(t)
	store := NewFallbackStoreNoDelay(remote, local)
	ctx := context.Background()

	p := domain.Product{ID: "42", Name: "Ron Abuelo", Price: 13990}
	require.NoError(t, store.SaveProduct(ctx, p))

	cached, err := local.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, cached, 1)
}

func TestDeleteProductMirrors(t *testing.T) {
	remote := newFakeRemote()
	local := openTestLocal(t)
	store := NewFallbackStoreNoDelay(remote, local)
	ctx := context.Background()

	p := domain.Product{ID: "42", Name: "Ron Abuelo", Price: 13990}
	require.NoError(t, store.SaveProduct(ctx, p))
	require.NoError(t, store.DeleteProduct(ctx, "42"))

	assert.Empty(t, remote.products)
	cached, err := local.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, cached)
}

func TestLoadConfigWritesDefaultOnAbsence(t *testing.T) {
	remote := newFakeRemote()
	store := NewFallbackStoreNoDelay(remote, openTestLocal(t))

	cfg := store.LoadConfig(context.Background())
	assert.Equal(t, DefaultStoreConfig().StoreName, cfg.StoreName)
	require.NotNil(t, remote.config)
	assert.Equal(t, cfg.StoreName, remote.config.StoreName)
}

func TestLoadConfigDegradesToDefaults(t *testing.T) {
	remote := newFakeRemote()
	remote.down = true
	store := NewFallbackStoreNoDelay(remote, openTestLocal(t))

	cfg := store.LoadConfig(context.Background())
	assert.Equal(t, DefaultStoreConfig().StoreName, cfg.StoreName)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	remote := newFakeRemote()
	local := openTestLocal(t)
	store := NewFallbackStoreNoDelay(remote, local)
	ctx := context.Background()

	cfg := DefaultStoreConfig()
	cfg.StoreName = "LA NUEVA BOTI"
	require.NoError(t, store.SaveConfig(ctx, cfg))

	// remote down: the local mirror is the fresher source
	remote.down = true
	got := store.LoadConfig(ctx)
	assert.Equal(t, "LA NUEVA BOTI", got.StoreName)
}

func TestResetLocalClearsCacheOnly(t *testing.T) {
	remote := newFakeRemote()
	local := openTestLocal(t)
	store := NewFallbackStoreNoDelay(remote, local)
	ctx := context.Background()

	store.LoadProducts(ctx) // seeds the remote store
	require.NoError(t, store.ResetLocal())

	cached, err := local.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, cached)
	// remote untouched
	assert.Len(t, remote.products, len(BuiltinCatalog()))

	// next load repopulates from remote
	rows := store.LoadProducts(ctx)
	assert.Len(t, rows, len(BuiltinCatalog()))
}
