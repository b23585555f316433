package domain

type NotificationType string

const (
	NotificationTypeConnectionRequest  NotificationType = "CONNECTION_REQUEST"
	NotificationTypeConnectionAccepted NotificationType = "CONNECTION_ACCEPTED"
)

type Notification struct {
	ID         int32             `json:"id"`
	UserID     int32             `json:"user_id"`
	Type       NotificationType  `json:"type"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	IsRead     bool              `json:"is_read"`
	Attributes map[string]string `json:"attributes"`
	CreatedOn  string            `json:"created_on"`
}
