package app

import (
	"context"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"
	_ "time/tzdata"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"

	"github.com/nochelabs/botilleria/config"
	"github.com/nochelabs/botilleria/internal/assistant"
	"github.com/nochelabs/botilleria/internal/catalog"
	"github.com/nochelabs/botilleria/internal/domain"
	"github.com/nochelabs/botilleria/internal/geolocate"
	"github.com/nochelabs/botilleria/pkg/common"
)

const localCacheFile = "botilleria.cache"

// SessionMaxIdle is how long an assistant chat session may sit idle before
// the sweep job drops it.
const SessionMaxIdle = 30 * time.Minute

type Application struct {
	appConfig *config.AppConfig
	gormDB    *gorm.DB
	localDB   *catalog.LocalBackend
	store     *catalog.FallbackStore
	sessions  *assistant.Manager
	geo       geolocate.Provider
	sched     *cron.Cron
}

// Ensure Application implements all interfaces
var _ AppContext = (*Application)(nil)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig       { return a.appConfig }
func (a *Application) DB() *gorm.DB                    { return a.gormDB }
func (a *Application) Catalog() *catalog.FallbackStore { return a.store }
func (a *Application) Sessions() *assistant.Manager    { return a.sessions }
func (a *Application) Geo() geolocate.Provider         { return a.geo }
func (a *Application) Scheduler() *cron.Cron           { return a.sched }

// OverrideCatalog replaces the persistence facade (used in tests).
func (a *Application) OverrideCatalog(s *catalog.FallbackStore) {
	a.store = s
}

func (a *Application) Init(cfg *config.AppConfig) {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	// Initialize zap logger
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	zapConfig.OutputPaths = []string{"stdout"}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		logger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)

	// Remote document store: optional. No host configured means local-only.
	if cfg.Database.Host != "" {
		a.gormDB = getDatabase(cfg.Database)
	}
	if a.gormDB != nil {
		zap.S().Infof("remote store connected, type: %s", cfg.Database.Type)
		if err := a.MigrateDB(false); err != nil {
			zap.S().Errorf("database migration failed: %v", err)
		}
	} else {
		zap.S().Warn("no remote store configured, running in local-only mode")
	}

	// Local cache: mandatory, the last line of durability.
	a.localDB, err = catalog.OpenLocal(filepath.Join(cfg.GetDataDir(), localCacheFile))
	if err != nil {
		panic(err)
	}

	var remote catalog.Backend
	if a.gormDB != nil {
		remote = catalog.NewRemoteBackend(a.gormDB)
	}
	a.store = catalog.NewFallbackStore(remote, a.localDB)

	a.sessions = assistant.NewManager(assistant.NewRESTGenerator(cfg.Assistant), SessionMaxIdle)
	a.geo = geolocate.NewHTTPProvider(cfg.Location.GeoEndpoint)

	// Warm the catalog and seed on first run once boot settles.
	go func() {
		time.Sleep(3 * time.Second)
		a.checkCatalog()
		a.checkStoreConfig()
	}()

	a.initJob()
}

func (a *Application) MigrateDB(track bool) (err error) {
	defer func() {
		if err1 := recover(); err1 != nil {
			if os.Getenv("GO_DEBUG_TRACE") != "" {
				debug.PrintStack()
			}
			err2, ok := err1.(error)
			if ok {
				err = err2
				zap.S().Error(err2.Error())
			}
		}
	}()
	if track {
		if err := a.gormDB.Debug().Migrator().AutoMigrate(domain.Tables...); err != nil {
			zap.S().Error(err)
		}
	} else {
		if err := a.gormDB.Migrator().AutoMigrate(domain.Tables...); err != nil {
			zap.S().Error(err)
		}
	}
	return nil
}

// Audit records an administrator action. Best-effort: failures are logged,
// never surfaced. Without a remote database the entry goes to the log only.
func (a *Application) Audit(oprName, oprIP, action, desc string) {
	zap.L().Info("admin action",
		zap.String("opr", oprName),
		zap.String("ip", oprIP),
		zap.String("action", action),
		zap.String("desc", desc))
	if a.gormDB == nil {
		return
	}
	entry := domain.AuditLog{
		ID:        common.UUIDint64(),
		OprName:   oprName,
		OprIp:     oprIP,
		OptAction: action,
		OptDesc:   desc,
		OptTime:   time.Now(),
	}
	if err := a.gormDB.Create(&entry).Error; err != nil {
		zap.L().Error("failed to write audit log", zap.Error(err))
	}
}

// checkCatalog forces a first load so an empty store gets seeded with the
// built-in catalog before the first customer request.
func (a *Application) checkCatalog() {
	rows := a.store.LoadProducts(context.Background())
	zap.L().Info("catalog ready", zap.Int("products", len(rows)))
}

// checkStoreConfig ensures the config singleton exists, writing defaults
// when none was persisted yet.
func (a *Application) checkStoreConfig() {
	cfg := a.store.LoadConfig(context.Background())
	zap.L().Info("store config ready", zap.String("store", cfg.StoreName))
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	if a.localDB != nil {
		_ = a.localDB.Close()
	}
	_ = zap.L().Sync()
}
