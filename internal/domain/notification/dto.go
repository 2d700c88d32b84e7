package notification

import "time"

type CreateNotificationRequest struct {
	RecipientID string                 `json:"recipient_id"`
	SenderID    *string                `json:"sender_id,omitempty"`
	Type        NotificationType       `json:"type"`
	Title       string                 `json:"title"`
	Message     string                 `json:"message"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

type NotificationResponse struct {
	ID        string                 `json:"id"`
	Type      NotificationType       `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	IsRead    bool                   `json:"is_read"`
	ReadAt    *time.Time             `json:"read_at,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int64                  `json:"total"`
	UnreadCount   int                    `json:"unread_count"`
	Page          int                    `json:"page"`
	PageSize      int                    `json:"page_size"`
}

type MarkAsReadRequest struct {
	IDs []string `json:"ids"`
}

// SSEEvent is the payload pushed to stream subscribers.
type SSEEvent struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}
