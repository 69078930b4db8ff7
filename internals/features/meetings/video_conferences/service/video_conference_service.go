package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"schooldocs_backend/internals/features/meetings/video_conferences/model"
)

const ListLimit = 100

var (
	ErrWrongPasscode = errors.New("meeting: wrong passcode")
	ErrMeetingClosed = errors.New("meeting: no longer open")
)

// RoomName builds the public room slug; the uuid keeps it unguessable.
func RoomName() string {
	return "schooldocs-" + uuid.NewString()
}

func MeetingURL(baseURL, room string) string {
	return fmt.Sprintf("%s/%s", baseURL, room)
}

func HashPasscode(passcode string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func Create(ctx context.Context, db *gorm.DB, m *model.VideoConferenceModel, passcode *string) error {
	if passcode != nil && *passcode != "" {
		h, err := HashPasscode(*passcode)
		if err != nil {
			return err
		}
		m.VideoConferencePasscodeHash = &h
	}
	return db.WithContext(ctx).Create(m).Error
}

func List(ctx context.Context, db *gorm.DB, hostID uuid.UUID, status string) ([]model.VideoConferenceModel, error) {
	q := db.WithContext(ctx).Where("host_user_id = ?", hostID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var rows []model.VideoConferenceModel
	err := q.Order("scheduled_at DESC").Order("id DESC").Limit(ListLimit).Find(&rows).Error
	return rows, err
}

func GetOwned(ctx context.Context, db *gorm.DB, hostID uuid.UUID, id int64) (model.VideoConferenceModel, error) {
	var m model.VideoConferenceModel
	err := db.WithContext(ctx).Where("id = ? AND host_user_id = ?", id, hostID).First(&m).Error
	return m, err
}

// UpdateStatus overwrites the status; the last writer wins.
func UpdateStatus(ctx context.Context, db *gorm.DB, hostID uuid.UUID, id int64, status string) (model.VideoConferenceModel, error) {
	var m model.VideoConferenceModel
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.VideoConferenceModel{}).
			Where("id = ? AND host_user_id = ?", id, hostID).
			Update("status", status)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&m, id).Error
	})
	return m, err
}

type Stats struct {
	Total    int64
	Upcoming int64
	ByStatus map[string]int64
}

func ComputeStats(ctx context.Context, db *gorm.DB, hostID uuid.UUID, now time.Time) (Stats, error) {
	st := Stats{ByStatus: map[string]int64{}}
	var rows []struct {
		Status string
		N      int64
	}
	q := db.WithContext(ctx).Model(&model.VideoConferenceModel{}).Where("host_user_id = ?", hostID)
	if err := q.Session(&gorm.Session{}).
		Select("status, COUNT(*) AS n").Group("status").Scan(&rows).Error; err != nil {
		return st, err
	}
	for _, r := range rows {
		st.ByStatus[r.Status] = r.N
		st.Total += r.N
	}
	err := q.Session(&gorm.Session{}).
		Where("status = ? AND scheduled_at > ?", model.MeetingStatusScheduled, now).
		Count(&st.Upcoming).Error
	return st, err
}

// Join checks the passcode of an open meeting and counts the participant.
// Meetings without a passcode accept any input.
func Join(ctx context.Context, db *gorm.DB, id int64, passcode string) (model.VideoConferenceModel, error) {
	var m model.VideoConferenceModel
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&m, id).Error; err != nil {
			return err
		}
		switch m.VideoConferenceStatus {
		case model.MeetingStatusCompleted, model.MeetingStatusCancelled:
			return ErrMeetingClosed
		}
		if m.HasPasscode() {
			if bcrypt.CompareHashAndPassword([]byte(*m.VideoConferencePasscodeHash), []byte(passcode)) != nil {
				return ErrWrongPasscode
			}
		}
		if err := tx.Model(&m).
			UpdateColumn("participants_count", gorm.Expr("participants_count + 1")).Error; err != nil {
			return err
		}
		m.VideoConferenceParticipantsCount++
		return nil
	})
	return m, err
}
