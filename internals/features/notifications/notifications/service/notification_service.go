package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schooldocs_backend/internals/features/notifications/notifications/model"
)

const ListLimit = 50

type ListFilter struct {
	UnreadOnly bool
	Type       string
}

func List(ctx context.Context, db *gorm.DB, userID uuid.UUID, f ListFilter) ([]model.NotificationModel, error) {
	q := db.WithContext(ctx).Where("user_id = ?", userID)
	if f.UnreadOnly {
		q = q.Where("is_read = ?", false)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	var rows []model.NotificationModel
	err := q.Order("created_at DESC").Order("id DESC").Limit(ListLimit).Find(&rows).Error
	return rows, err
}

func UnreadCount(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&model.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&n).Error
	return n, err
}

// Notify inserts a notification; db may be a surrounding transaction.
func Notify(db *gorm.DB, m *model.NotificationModel) error {
	if m.NotificationType == "" {
		m.NotificationType = model.NotificationTypeInfo
	}
	if m.NotificationPriority == "" {
		m.NotificationPriority = model.PriorityNormal
	}
	return db.Create(m).Error
}

// MarkRead is idempotent: an already-read row keeps its first read_at.
func MarkRead(ctx context.Context, db *gorm.DB, userID uuid.UUID, id int64, now time.Time) (model.NotificationModel, error) {
	var m model.NotificationModel
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&m).Error; err != nil {
			return err
		}
		if m.NotificationIsRead {
			return nil
		}
		m.NotificationIsRead = true
		m.NotificationReadAt = &now
		return tx.Model(&m).Updates(map[string]any{"is_read": true, "read_at": now}).Error
	})
	return m, err
}

func MarkAllRead(ctx context.Context, db *gorm.DB, userID uuid.UUID, now time.Time) (int64, error) {
	res := db.WithContext(ctx).Model(&model.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]any{"is_read": true, "read_at": now})
	return res.RowsAffected, res.Error
}

func Delete(ctx context.Context, db *gorm.DB, userID uuid.UUID, id int64) error {
	res := db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.NotificationModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// BulkDelete removes the user's rows among ids in one statement inside a
// transaction. Ids owned by other users are ignored.
func BulkDelete(ctx context.Context, db *gorm.DB, userID uuid.UUID, ids []int64) (int64, error) {
	var deleted int64
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND id IN ?", userID, ids).Delete(&model.NotificationModel{})
		deleted = res.RowsAffected
		return res.Error
	})
	return deleted, err
}
