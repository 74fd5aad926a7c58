package app

import (
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/nochelabs/botilleria/config"
	"github.com/nochelabs/botilleria/internal/assistant"
	"github.com/nochelabs/botilleria/internal/catalog"
	"github.com/nochelabs/botilleria/internal/geolocate"
)

// DBProvider provides database access. DB returns nil in local-only mode.
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// CatalogProvider provides the product/config persistence facade
type CatalogProvider interface {
	Catalog() *catalog.FallbackStore
}

// SessionsProvider provides assistant chat session access
type SessionsProvider interface {
	Sessions() *assistant.Manager
}

// GeoProvider provides the customer geolocation capability
type GeoProvider interface {
	Geo() geolocate.Provider
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// AppContext combines all provider interfaces for full application context.
// Handlers should depend on specific providers or this combined interface.
type AppContext interface {
	DBProvider
	ConfigProvider
	CatalogProvider
	SessionsProvider
	GeoProvider
	SchedulerProvider

	// Audit records an administrator action, best-effort.
	Audit(oprName, oprIP, action, desc string)
	// MigrateDB migrates the remote database schema.
	MigrateDB(track bool) error
}
