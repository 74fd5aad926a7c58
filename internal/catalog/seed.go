package catalog

import "github.com/nochelabs/botilleria/internal/domain"

// BuiltinCatalog returns the fixed starter products used to seed an empty
// store. Callers receive a fresh slice and may mutate it freely.
func BuiltinCatalog() []domain.Product {
	return []domain.Product{
		{
			ID:          "1",
			Name:        "Promo Pisco Alto del Carmen 35° + Coca Cola",
			Description: "La promo sagrada. Incluye hielo de regalo. Ideal para comenzar la noche.",
			Price:       9990,
			Stock:       50,
			Category:    domain.CategoryPromos,
			ImageURL:    "https://images.unsplash.com/photo-1585553616435-2dc0a54e271d?q=80&w=800&auto=format&fit=crop",
		},
		{
			ID:          "2",
			Name:        "Cerveza Corona Extra - Pack 6",
			Description: "Botella 355cc. La cerveza más fina, sírvela con limón.",
			Price:       15000,
			Stock:       100,
			Category:    domain.CategoryCervezas,
			ImageURL:    "https://images.unsplash.com/photo-1623352720888-75c404620f3a?q=80&w=800&auto=format&fit=crop",
		},
		{
			ID:          "3",
			Name:        "Cerveza Heineken - Pack 6 Latas",
			Description: "Lata 350cc. Premium Quality. Siempre fría.",
			Price:       12000,
			Stock:       80,
			Category:    domain.CategoryCervezas,
			ImageURL:    "https://images.unsplash.com/photo-1571506538622-d3861c15c89c?q=80&w=800&auto=format&fit=crop",
		},
		{
			ID:          "4",
			Name:        "Ramazzotti Rosato",
			Description: "Aperitivo ideal para la previa. 700ml. Dulce y refrescante.",
			Price:       12990,
			Stock:       20,
			Category:    domain.CategoryLicores,
			ImageURL:    "https://images.unsplash.com/photo-1596711904470-36657c91e3e7?q=80&w=800&auto=format&fit=crop",
		},
		{
			ID:          "5",
			Name:        "Jack Daniels Old No. 7",
			Description: "Tennessee Whiskey. Botella 750cc. Un clásico mundial.",
			Price:       24990,
			Stock:       15,
			Category:    domain.CategoryLicores,
			ImageURL:    "https://images.unsplash.com/photo-1527281400683-1a221290a501?q=80&w=800&auto=format&fit=crop",
		},
		{
			ID:          "6",
			Name:        "Hielo Bolsa 2kg Premium",
			Description: "Cubos grandes macizos, no se derriten rápido.",
			Price:       1500,
			Stock:       30,
			Category:    domain.CategoryBebidas,
			ImageURL:    "https://images.unsplash.com/photo-1504548074900-53eb1c52109e?q=80&w=800&auto=format&fit=crop",
		},
		{
			ID:          "7",
			Name:        "Papas Fritas Lays Corte Americano",
			Description: "Formato grande para compartir. Sal de mar.",
			Price:       2500,
			Stock:       15,
			Category:    domain.CategorySnacks,
			ImageURL:    "https://images.unsplash.com/photo-1566478989037-eec170784d0b?q=80&w=800&auto=format&fit=crop",
		},
		{
			ID:          "8",
			Name:        "Jagermeister 700cc",
			Description: "Licor de hierbas alemán. Tómalo muy frío (shot).",
			Price:       18990,
			Stock:       10,
			Category:    domain.CategoryLicores,
			ImageURL:    "https://images.unsplash.com/photo-1628104332997-8c3104e1c7f9?q=80&w=800&auto=format&fit=crop",
		},
	}
}

// DefaultStoreConfig is written to both backends when no config document
// has been persisted yet.
func DefaultStoreConfig() domain.StoreConfig {
	return domain.StoreConfig{
		ID:             domain.StoreConfigID,
		StoreName:      "SALVANDO LA NOCHE",
		WhatsAppNumber: "56928973426",
		BankName:       "Cuenta RUT Banco Estado",
		BankAccount:    "12345678",
		BankRUT:        "11.111.111-1",
		BankEmail:      "pagos@salvandolanoche.cl",
		AdminPassword:  "1234",
	}
}
