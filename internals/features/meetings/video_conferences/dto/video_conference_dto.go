package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"schooldocs_backend/internals/features/documents/labels"
	"schooldocs_backend/internals/features/meetings/video_conferences/model"
)

const DefaultDurationMinutes = 60

/* ===== Requests ===== */

type CreateMeetingRequest struct {
	Title           string    `json:"title" validate:"required,max=200"`
	TitleBn         *string   `json:"title_bn" validate:"omitempty,max=300"`
	Description     *string   `json:"description" validate:"omitempty,max=2000"`
	ScheduledAt     time.Time `json:"scheduled_at" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"gte=5,lte=600"`
	Passcode        *string   `json:"passcode" validate:"omitempty,min=4,max=32"`
}

func (r *CreateMeetingRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.TitleBn = trimPtr(r.TitleBn)
	r.Description = trimPtr(r.Description)
	r.Passcode = trimPtr(r.Passcode)
	if r.DurationMinutes == 0 {
		r.DurationMinutes = DefaultDurationMinutes
	}
}

// ToModel fills everything except the passcode hash, which the service owns.
func (r *CreateMeetingRequest) ToModel(hostID uuid.UUID, roomName, meetingURL string) model.VideoConferenceModel {
	return model.VideoConferenceModel{
		VideoConferenceHostUserID:      hostID,
		VideoConferenceTitle:           r.Title,
		VideoConferenceTitleBn:         r.TitleBn,
		VideoConferenceDescription:     r.Description,
		VideoConferenceScheduledAt:     r.ScheduledAt,
		VideoConferenceDurationMinutes: r.DurationMinutes,
		VideoConferenceRoomName:        roomName,
		VideoConferenceMeetingURL:      meetingURL,
		VideoConferenceStatus:          model.MeetingStatusScheduled,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled ongoing completed cancelled"`
}

func (r *UpdateStatusRequest) Normalize() {
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
}

type VerifyPasscodeRequest struct {
	Passcode string `json:"passcode"`
}

/* ===== Responses ===== */

type MeetingResponse struct {
	ID                int64     `json:"id"`
	HostUserID        uuid.UUID `json:"host_user_id"`
	Title             string    `json:"title"`
	TitleBn           *string   `json:"title_bn,omitempty"`
	Description       *string   `json:"description,omitempty"`
	ScheduledAt       time.Time `json:"scheduled_at"`
	EndsAt            time.Time `json:"ends_at"`
	DurationMinutes   int       `json:"duration_minutes"`
	RoomName          string    `json:"room_name"`
	MeetingURL        string    `json:"meeting_url"`
	HasPasscode       bool      `json:"has_passcode"`
	Status            string    `json:"status"`
	StatusName        string    `json:"status_name"`
	StatusNameBn      string    `json:"status_name_bn"`
	ParticipantsCount int       `json:"participants_count"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func FromModel(m model.VideoConferenceModel) MeetingResponse {
	st := labels.Lookup(labels.KindMeetingStatus, m.VideoConferenceStatus)
	return MeetingResponse{
		ID:                m.VideoConferenceID,
		HostUserID:        m.VideoConferenceHostUserID,
		Title:             m.VideoConferenceTitle,
		TitleBn:           m.VideoConferenceTitleBn,
		Description:       m.VideoConferenceDescription,
		ScheduledAt:       m.VideoConferenceScheduledAt,
		EndsAt:            m.EndsAt(),
		DurationMinutes:   m.VideoConferenceDurationMinutes,
		RoomName:          m.VideoConferenceRoomName,
		MeetingURL:        m.VideoConferenceMeetingURL,
		HasPasscode:       m.HasPasscode(),
		Status:            m.VideoConferenceStatus,
		StatusName:        st.En,
		StatusNameBn:      st.Bn,
		ParticipantsCount: m.VideoConferenceParticipantsCount,
		CreatedAt:         m.VideoConferenceCreatedAt,
		UpdatedAt:         m.VideoConferenceUpdatedAt,
	}
}

func FromModels(rows []model.VideoConferenceModel) []MeetingResponse {
	out := make([]MeetingResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}

type StatusCount struct {
	Status   string `json:"status"`
	Name     string `json:"name"`
	NameBn   string `json:"name_bn"`
	Meetings int64  `json:"count"`
}

type StatsResponse struct {
	Total    int64         `json:"total"`
	Upcoming int64         `json:"upcoming"`
	ByStatus []StatusCount `json:"by_status"`
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
