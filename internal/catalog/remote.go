package catalog

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nochelabs/botilleria/internal/domain"
)

// RemoteBackend stores documents in the shared database. It is the "cloud"
// side of the facade; every error it returns is treated as non-fatal by the
// FallbackStore.
type RemoteBackend struct {
	db *gorm.DB
}

func NewRemoteBackend(db *gorm.DB) *RemoteBackend {
	return &RemoteBackend{db: db}
}

func (b *RemoteBackend) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var rows []domain.Product
	if err := b.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "remote: list products")
	}
	return rows, nil
}

func (b *RemoteBackend) PutProduct(ctx context.Context, p domain.Product) error {
	p.UpdatedAt = time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = p.UpdatedAt
	}
	err := b.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&p).Error
	return errors.Wrap(err, "remote: put product")
}

func (b *RemoteBackend) DeleteProduct(ctx context.Context, id string) error {
	err := b.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Product{}).Error
	return errors.Wrap(err, "remote: delete product")
}

func (b *RemoteBackend) GetConfig(ctx context.Context) (*domain.StoreConfig, error) {
	var cfg domain.StoreConfig
	err := b.db.WithContext(ctx).Where("id = ?", domain.StoreConfigID).First(&cfg).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	case err != nil:
		return nil, errors.Wrap(err, "remote: get config")
	}
	return &cfg, nil
}

func (b *RemoteBackend) PutConfig(ctx context.Context, cfg domain.StoreConfig) error {
	cfg.ID = domain.StoreConfigID
	cfg.UpdatedAt = time.Now()
	err := b.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&cfg).Error
	return errors.Wrap(err, "remote: put config")
}
