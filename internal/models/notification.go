package models

import "time"

// Notification types emitted by the marketplace.
const (
	NotifInfo        = "info"
	NotifNewProperty = "new_property"
	NotifPriceChange = "price_change"
	NotifMessage     = "message"
	NotifSystem      = "system"
)

type Notification struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(64)"`
	UserID    string    `json:"user_id" gorm:"index;not null"`
	Type      string    `json:"type" gorm:"not null"`
	Title     string    `json:"title" gorm:"not null"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt time.Time `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
