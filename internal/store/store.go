package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"

	"mboaimmo/server/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// Store is the persistence boundary shared by every service. Exactly one
// implementation is picked at startup: SQLStore when a database is
// configured, MockStore otherwise. Services never re-check which one they
// got.
type Store interface {
	ListProperties(ctx context.Context) ([]models.Property, error)
	GetProperty(ctx context.Context, id string) (*models.Property, error)
	CreateProperty(ctx context.Context, p *models.Property) error
	UpdateProperty(ctx context.Context, p *models.Property) error
	DeleteProperty(ctx context.Context, id string) error

	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	// GetUserByIdentifier matches the submitted identifier against the
	// stored email or phone, exact equality only.
	GetUserByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
	UpdateUser(ctx context.Context, u *models.User) error

	ListFavorites(ctx context.Context, userID string) ([]models.Favorite, error)
	AddFavorite(ctx context.Context, f *models.Favorite) error
	RemoveFavorite(ctx context.Context, userID, propertyID string) error

	ListNotifications(ctx context.Context, userID string) ([]models.Notification, error)
	CreateNotification(ctx context.Context, n *models.Notification) error
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context, userID string) error

	GetAdminByUserID(ctx context.Context, userID string) (*models.Admin, error)
	CreateAdmin(ctx context.Context, a *models.Admin) error

	Close() error
}

// NewID returns an opaque identifier for new rows.
func NewID() string {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
