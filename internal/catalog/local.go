package catalog

import (
	"context"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"

	"github.com/nochelabs/botilleria/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Local cache layout: one bucket, two keys. The product collection is held
// as a single JSON array and the config as a single JSON object, mirroring
// the two logical keys the remote store is cached under.
var (
	bucketName  = []byte("botilleria")
	keyProducts = []byte("products_db_v3")
	keyConfig   = []byte("settings_v1")
)

// LocalBackend is the bbolt-backed local cache. It is the last line of
// durability: unlike the remote side, its write errors propagate.
type LocalBackend struct {
	db *bolt.DB
}

// OpenLocal opens (or creates) the cache file and ensures the bucket exists.
func OpenLocal(path string) (*LocalBackend, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, errors.Wrap(err, "local: open cache")
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "local: init bucket")
	}
	return &LocalBackend{db: db}, nil
}

func (b *LocalBackend) Close() error {
	return b.db.Close()
}

func (b *LocalBackend) ListProducts(_ context.Context) ([]domain.Product, error) {
	var raw []byte
	_ = b.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketName).Get(keyProducts); v != nil {
			raw = append(raw, v...)
		}
		return nil
	})
	if raw == nil {
		return nil, nil
	}
	var rows []domain.Product
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, errors.Wrap(err, "local: corrupt product cache")
	}
	return rows, nil
}

// ReplaceProducts overwrites the cached collection wholesale. Used when
// mirroring a fresh remote read.
func (b *LocalBackend) ReplaceProducts(_ context.Context, rows []domain.Product) error {
	raw, err := json.Marshal(rows)
	if err != nil {
		return errors.Wrap(err, "local: encode products")
	}
	err = b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put(keyProducts, raw)
	})
	return errors.Wrap(err, "local: write products")
}

// PutProduct upserts into the cached collection: the previous entry with the
// same id is dropped and the product appended.
func (b *LocalBackend) PutProduct(ctx context.Context, p domain.Product) error {
	rows, err := b.ListProducts(ctx)
	if err != nil {
		// a corrupt cache is rebuilt from the single product rather than lost
		rows = nil
	}
	out := rows[:0]
	for _, r := range rows {
		if r.ID != p.ID {
			out = append(out, r)
		}
	}
	out = append(out, p)
	return b.ReplaceProducts(ctx, out)
}

func (b *LocalBackend) DeleteProduct(ctx context.Context, id string) error {
	rows, err := b.ListProducts(ctx)
	if err != nil {
		return err
	}
	out := rows[:0]
	for _, r := range rows {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return b.ReplaceProducts(ctx, out)
}

func (b *LocalBackend) GetConfig(_ context.Context) (*domain.StoreConfig, error) {
	var raw []byte
	_ = b.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketName).Get(keyConfig); v != nil {
			raw = append(raw, v...)
		}
		return nil
	})
	if raw == nil {
		return nil, ErrNotFound
	}
	var cfg domain.StoreConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, errors.Wrap(err, "local: corrupt config cache")
	}
	return &cfg, nil
}

func (b *LocalBackend) PutConfig(_ context.Context, cfg domain.StoreConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "local: encode config")
	}
	err = b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put(keyConfig, raw)
	})
	return errors.Wrap(err, "local: write config")
}

// Reset removes both cache keys. Remote state is untouched.
func (b *LocalBackend) Reset() error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(bucketName)
		if err := bkt.Delete(keyProducts); err != nil {
			return err
		}
		return bkt.Delete(keyConfig)
	})
	return errors.Wrap(err, "local: reset cache")
}
