package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	database "schooldocs_backend/internals/databases"
	"schooldocs_backend/internals/features/notifications/notifications/model"
	"schooldocs_backend/internals/testutil"
)

func TestSweepOnceDeletesOnlyOldReadRows(t *testing.T) {
	db := testutil.OpenDB(t)
	user := uuid.New()
	now := time.Now()
	old := now.Add(-45 * 24 * time.Hour)

	rows := []model.NotificationModel{
		{NotificationUserID: user, NotificationTitle: "old read", NotificationMessage: "m", NotificationIsRead: true},
		{NotificationUserID: user, NotificationTitle: "old unread", NotificationMessage: "m"},
		{NotificationUserID: user, NotificationTitle: "new read", NotificationMessage: "m", NotificationIsRead: true},
	}
	require.NoError(t, db.Create(&rows).Error)
	require.NoError(t, db.Model(&model.NotificationModel{}).
		Where("id IN ?", []int64{rows[0].NotificationID, rows[1].NotificationID}).
		Update("created_at", old).Error)

	n, err := SweepOnce(context.Background(), db, now, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var left []string
	require.NoError(t, db.Model(&model.NotificationModel{}).Order("id").Pluck("title", &left).Error)
	assert.Equal(t, []string{"old unread", "new read"}, left)

	n, err = SweepOnce(context.Background(), db, now, 0)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSweepOnceOnUnavailableDatabase(t *testing.T) {
	_, err := SweepOnce(context.Background(), database.NewUnavailable(), time.Now(), 30)
	assert.ErrorIs(t, err, database.ErrUnavailable)
}

func TestSchedulerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := StartRetentionScheduler(ctx, testutil.OpenDB(t))
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestSchedulerFallsBackOnBadCronSpec(t *testing.T) {
	t.Setenv("RETENTION_CRON", "every now and then")
	ctx, cancel := context.WithCancel(context.Background())
	done := StartRetentionScheduler(ctx, testutil.OpenDB(t))
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestDefaultRetentionCronParses(t *testing.T) {
	sched, err := cron.ParseStandard(DefaultRetentionCron)
	require.NoError(t, err)
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, from.Add(24*time.Hour), sched.Next(from))
}
