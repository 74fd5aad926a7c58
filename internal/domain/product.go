package domain

import (
	"strings"
	"time"

	"github.com/nochelabs/botilleria/pkg/common"
)

// Product categories. Fixed enumeration; the spanish labels are the stored values.
const (
	CategoryLicores  = "Licores"
	CategoryCervezas = "Cervezas"
	CategoryBebidas  = "Bebidas"
	CategoryCigarros = "Cigarros"
	CategorySnacks   = "Snacks"
	CategoryPromos   = "Promos"
)

var Categories = []string{
	CategoryLicores,
	CategoryCervezas,
	CategoryBebidas,
	CategoryCigarros,
	CategorySnacks,
	CategoryPromos,
}

// FallbackImageURL is used when a product has no image reference.
const FallbackImageURL = "https://images.unsplash.com/photo-1569529465841-dfecdab7503b?q=80&w=800&auto=format&fit=crop"

// ValidCategory reports whether name is one of the fixed categories.
func ValidCategory(name string) bool {
	for _, c := range Categories {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}

// Product is a catalog entry. Price is in whole CLP, no minor units.
type Product struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	Name        string    `gorm:"index" json:"name"`
	Description string    `gorm:"size:1024" json:"description"`
	Price       int64     `json:"price"`
	Stock       int       `json:"stock"`
	Category    string    `gorm:"size:32;index" json:"category"`
	ImageURL    string    `gorm:"size:2048" json:"imageUrl"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// NewProduct builds a Product with defaults filled in explicitly: a generated
// identifier when none is supplied, the fallback image, and the Licores
// category when the given one is unknown.
func NewProduct(id, name, description string, price int64, stock int, category, imageURL string) Product {
	if id == "" {
		id = common.UUIDstr()
	}
	if imageURL == "" {
		imageURL = FallbackImageURL
	}
	if !ValidCategory(category) {
		category = CategoryLicores
	}
	now := time.Now()
	return Product{
		ID:          id,
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		Category:    category,
		ImageURL:    imageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
