package models

import "time"

// Favorite links a user to a saved property. One row per (user, property)
// pair; the unique index is what actually enforces it.
type Favorite struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(64)"`
	UserID     string    `json:"user_id" gorm:"uniqueIndex:idx_user_property;not null"`
	PropertyID string    `json:"property_id" gorm:"uniqueIndex:idx_user_property;not null"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Favorite) TableName() string {
	return "favorites"
}
