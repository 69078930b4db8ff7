package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	MeetingStatusScheduled = "scheduled"
	MeetingStatusOngoing   = "ongoing"
	MeetingStatusCompleted = "completed"
	MeetingStatusCancelled = "cancelled"
)

var MeetingStatuses = []string{
	MeetingStatusScheduled,
	MeetingStatusOngoing,
	MeetingStatusCompleted,
	MeetingStatusCancelled,
}

type VideoConferenceModel struct {
	VideoConferenceID                int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	VideoConferenceHostUserID        uuid.UUID `gorm:"column:host_user_id;type:uuid;not null;index" json:"host_user_id"`
	VideoConferenceTitle             string    `gorm:"column:title;type:varchar(200);not null" json:"title"`
	VideoConferenceTitleBn           *string   `gorm:"column:title_bn;type:varchar(300)" json:"title_bn,omitempty"`
	VideoConferenceDescription       *string   `gorm:"column:description;type:text" json:"description,omitempty"`
	VideoConferenceScheduledAt       time.Time `gorm:"column:scheduled_at;not null;index" json:"scheduled_at"`
	VideoConferenceDurationMinutes   int       `gorm:"column:duration_minutes;not null;default:60" json:"duration_minutes"`
	VideoConferenceRoomName          string    `gorm:"column:room_name;type:varchar(120);not null;uniqueIndex" json:"room_name"`
	VideoConferenceMeetingURL        string    `gorm:"column:meeting_url;type:text;not null" json:"meeting_url"`
	VideoConferencePasscodeHash      *string   `gorm:"column:passcode_hash;type:text" json:"-"`
	VideoConferenceStatus            string    `gorm:"column:status;type:varchar(20);not null;default:'scheduled'" json:"status"`
	VideoConferenceParticipantsCount int       `gorm:"column:participants_count;not null;default:0" json:"participants_count"`

	VideoConferenceCreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	VideoConferenceUpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
}

func (VideoConferenceModel) TableName() string { return "video_conferences" }

func (m *VideoConferenceModel) HasPasscode() bool {
	return m.VideoConferencePasscodeHash != nil && *m.VideoConferencePasscodeHash != ""
}

func (m *VideoConferenceModel) EndsAt() time.Time {
	return m.VideoConferenceScheduledAt.Add(time.Duration(m.VideoConferenceDurationMinutes) * time.Minute)
}
