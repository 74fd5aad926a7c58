package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/nochelabs/botilleria/internal/domain"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error

	// Refresh the local mirror from the remote store. LoadProducts already
	// mirrors on success and degrades silently on failure.
	_, err = a.sched.AddFunc("@every 10m", func() {
		a.SchedCatalogMirrorTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@every 15m", func() {
		if n := a.sessions.Sweep(); n > 0 {
			zap.L().Info("swept idle assistant sessions", zap.Int("count", n))
		}
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	// Audit log retention: one year.
	_, err = a.sched.AddFunc("@daily", func() {
		if a.gormDB == nil {
			return
		}
		a.gormDB.
			Where("opt_time < ? ", time.Now().
				Add(-time.Hour*24*365)).Delete(domain.AuditLog{})
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedCatalogMirrorTask refreshes the local cache from the remote store.
func (a *Application) SchedCatalogMirrorTask() {
	if !a.store.CloudActive() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	rows := a.store.LoadProducts(ctx)
	zap.L().Debug("catalog mirror refreshed", zap.Int("products", len(rows)))
}
