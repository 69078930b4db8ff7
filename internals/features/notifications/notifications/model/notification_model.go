package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationTypeInfo     = "info"
	NotificationTypeSuccess  = "success"
	NotificationTypeWarning  = "warning"
	NotificationTypeError    = "error"
	NotificationTypePayment  = "payment"
	NotificationTypeMeeting  = "meeting"
	NotificationTypeDocument = "document"

	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

type NotificationModel struct {
	NotificationID        int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	NotificationUserID    uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	NotificationTitle     string     `gorm:"column:title;type:varchar(200);not null" json:"title"`
	NotificationTitleBn   *string    `gorm:"column:title_bn;type:varchar(300)" json:"title_bn,omitempty"`
	NotificationMessage   string     `gorm:"column:message;type:text;not null" json:"message"`
	NotificationMessageBn *string    `gorm:"column:message_bn;type:text" json:"message_bn,omitempty"`
	NotificationType      string     `gorm:"column:type;type:varchar(20);not null;default:'info'" json:"type"`
	NotificationPriority  string     `gorm:"column:priority;type:varchar(10);not null;default:'normal'" json:"priority"`
	NotificationIsRead    bool       `gorm:"column:is_read;not null;default:false;index" json:"is_read"`
	NotificationActionURL *string    `gorm:"column:action_url;type:text" json:"action_url,omitempty"`
	NotificationCreatedAt time.Time  `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	NotificationReadAt    *time.Time `gorm:"column:read_at" json:"read_at,omitempty"`
}

func (NotificationModel) TableName() string { return "notifications" }
