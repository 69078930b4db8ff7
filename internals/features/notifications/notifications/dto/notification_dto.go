package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"schooldocs_backend/internals/features/documents/labels"
	"schooldocs_backend/internals/features/notifications/notifications/model"
)

type CreateNotificationRequest struct {
	// Admins may address another user; everyone else writes to themselves.
	UserID    *uuid.UUID `json:"user_id"`
	Title     string     `json:"title" validate:"required,max=200"`
	TitleBn   *string    `json:"title_bn" validate:"omitempty,max=300"`
	Message   string     `json:"message" validate:"required,max=5000"`
	MessageBn *string    `json:"message_bn" validate:"omitempty,max=5000"`
	Type      string     `json:"type" validate:"omitempty,oneof=info success warning error payment meeting document"`
	Priority  string     `json:"priority" validate:"omitempty,oneof=low normal high"`
	ActionURL *string    `json:"action_url" validate:"omitempty,max=500"`
}

func (r *CreateNotificationRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Message = strings.TrimSpace(r.Message)
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	r.Priority = strings.ToLower(strings.TrimSpace(r.Priority))
	if r.Type == "" {
		r.Type = model.NotificationTypeInfo
	}
	if r.Priority == "" {
		r.Priority = model.PriorityNormal
	}
}

func (r CreateNotificationRequest) ToModel(userID uuid.UUID) model.NotificationModel {
	return model.NotificationModel{
		NotificationUserID:    userID,
		NotificationTitle:     r.Title,
		NotificationTitleBn:   r.TitleBn,
		NotificationMessage:   r.Message,
		NotificationMessageBn: r.MessageBn,
		NotificationType:      r.Type,
		NotificationPriority:  r.Priority,
		NotificationActionURL: r.ActionURL,
	}
}

type BulkDeleteRequest struct {
	NotificationIDs []int64 `json:"notificationIds"`
}

type NotificationResponse struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	TitleBn        *string    `json:"title_bn,omitempty"`
	Message        string     `json:"message"`
	MessageBn      *string    `json:"message_bn,omitempty"`
	Type           string     `json:"type"`
	TypeName       string     `json:"type_name"`
	TypeNameBn     string     `json:"type_name_bn"`
	Icon           string     `json:"icon,omitempty"`
	Priority       string     `json:"priority"`
	PriorityName   string     `json:"priority_name"`
	PriorityNameBn string     `json:"priority_name_bn"`
	IsRead         bool       `json:"is_read"`
	ActionURL      *string    `json:"action_url,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
}

func FromModel(m model.NotificationModel) NotificationResponse {
	typ := labels.Lookup(labels.KindNotificationType, m.NotificationType)
	pr := labels.Lookup(labels.KindPriority, m.NotificationPriority)
	return NotificationResponse{
		ID:             m.NotificationID,
		Title:          m.NotificationTitle,
		TitleBn:        m.NotificationTitleBn,
		Message:        m.NotificationMessage,
		MessageBn:      m.NotificationMessageBn,
		Type:           m.NotificationType,
		TypeName:       typ.En,
		TypeNameBn:     typ.Bn,
		Icon:           typ.Icon,
		Priority:       m.NotificationPriority,
		PriorityName:   pr.En,
		PriorityNameBn: pr.Bn,
		IsRead:         m.NotificationIsRead,
		ActionURL:      m.NotificationActionURL,
		CreatedAt:      m.NotificationCreatedAt,
		ReadAt:         m.NotificationReadAt,
	}
}

func FromModels(rows []model.NotificationModel) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
