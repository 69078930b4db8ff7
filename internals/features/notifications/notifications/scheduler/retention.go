package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"schooldocs_backend/internals/configs"
	"schooldocs_backend/internals/features/notifications/notifications/model"
)

const (
	DefaultRetentionDays = 30
	DefaultRetentionCron = "@every 24h"
	sweepTimeout         = 4 * time.Minute
	sweepBatch           = 500
)

// cronLogger routes robfig/cron's logging into zap.
type cronLogger struct{ s *zap.SugaredLogger }

func (l cronLogger) Info(msg string, kv ...interface{}) { l.s.Debugw(msg, kv...) }

func (l cronLogger) Error(err error, msg string, kv ...interface{}) {
	l.s.Errorw(msg, append(kv, "error", err)...)
}

// StartRetentionScheduler sweeps once at start and then on RETENTION_CRON
// (default every 24h) until ctx is cancelled. The returned channel closes
// after the cron has stopped and any running sweep has finished.
func StartRetentionScheduler(ctx context.Context, db *gorm.DB) <-chan struct{} {
	days := configs.GetEnvInt("NOTIFICATION_RETENTION_DAYS", DefaultRetentionDays)
	spec := configs.GetEnv("RETENTION_CRON", DefaultRetentionCron)
	log := zap.L().Named("notifications.retention").With(zap.Int("retention_days", days))

	sweep := func() {
		runCtx, cancel := context.WithTimeout(ctx, sweepTimeout)
		defer cancel()
		n, err := SweepOnce(runCtx, db, time.Now(), days)
		switch {
		case err != nil:
			log.Warn("retention sweep failed", zap.Error(err))
		case n > 0:
			log.Info("retention sweep", zap.Int64("deleted", n))
		default:
			log.Debug("retention sweep: nothing to delete")
		}
	}

	cl := cronLogger{s: log.Sugar()}
	c := cron.New(cron.WithLogger(cl), cron.WithChain(cron.SkipIfStillRunning(cl)))
	if _, err := c.AddFunc(spec, sweep); err != nil {
		log.Warn("bad RETENTION_CRON, using default", zap.String("spec", spec), zap.Error(err))
		spec = DefaultRetentionCron
		if _, err := c.AddFunc(spec, sweep); err != nil {
			log.Error("retention scheduler disabled", zap.Error(err))
		}
	}
	c.Start()
	log.Info("retention scheduler started", zap.String("schedule", spec))

	done := make(chan struct{})
	go func() {
		defer close(done)
		sweep()
		<-ctx.Done()
		<-c.Stop().Done()
		log.Info("retention scheduler stopped")
	}()
	return done
}

// SweepOnce deletes read notifications created more than days ago, in
// batches. days <= 0 disables the sweep.
func SweepOnce(ctx context.Context, db *gorm.DB, now time.Time, days int) (int64, error) {
	if days <= 0 {
		return 0, nil
	}
	cutoff := now.Add(-time.Duration(days) * 24 * time.Hour)

	var total int64
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		var ids []int64
		if err := db.WithContext(ctx).
			Model(&model.NotificationModel{}).
			Where("is_read = ? AND created_at < ?", true, cutoff).
			Order("id").
			Limit(sweepBatch).
			Pluck("id", &ids).Error; err != nil {
			return total, err
		}
		if len(ids) == 0 {
			return total, nil
		}
		res := db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.NotificationModel{})
		if res.Error != nil {
			return total, res.Error
		}
		total += res.RowsAffected
		if len(ids) < sweepBatch {
			return total, nil
		}
	}
}
