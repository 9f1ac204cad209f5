package domain

import "time"

// NotificationKind 通知类型
type NotificationKind string

const (
	FetchFailed     NotificationKind = "FetchFailed"
	UploadFailed    NotificationKind = "UploadFailed"
	UploadSucceeded NotificationKind = "UploadSucceeded"
)

// Message 面向用户的提示文案
func (k NotificationKind) Message() string {
	switch k {
	case FetchFailed:
		return "Error fetching reports"
	case UploadFailed:
		return "Error uploading report"
	case UploadSucceeded:
		return "Report uploaded successfully"
	default:
		return string(k)
	}
}

// Level 通知级别，决定前端样式
func (k NotificationKind) Level() string {
	if k == UploadSucceeded {
		return "success"
	}
	return "error"
}

// Notification 一条短暂、非阻塞的用户提示
type Notification struct {
	ID        string           `json:"id"`
	Kind      NotificationKind `json:"kind"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"created_at"`

	// DeliveredAt 首次展示给用户的时间，ExpiresAt 从这一刻开始计时，未展示时均为零值
	DeliveredAt time.Time `json:"delivered_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Delivered 是否已经展示过
func (n Notification) Delivered() bool {
	return !n.DeliveredAt.IsZero()
}
