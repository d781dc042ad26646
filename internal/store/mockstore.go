package store

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"mboaimmo/server/internal/models"
)

// MockStore is the fallback path used when no database is configured. It
// serves the static seed datasets, layered with whatever the installation
// has written since, and persists each collection as one JSON blob in the
// FileStore. Notifications are kept in memory only; the fallback path has
// no durable notification feed.
type MockStore struct {
	files  *FileStore
	logger *logrus.Logger

	mu            sync.RWMutex
	properties    []models.Property
	users         []models.User
	favorites     []models.Favorite
	notifications []models.Notification
	admins        []models.Admin
}

func NewMockStore(files *FileStore, log *logrus.Logger) (*MockStore, error) {
	m := &MockStore{
		files:  files,
		logger: log,
		admins: SeedAdmins(),
	}

	found, err := files.Read(KeyMockProperties, &m.properties)
	if err != nil {
		return nil, err
	}
	if !found {
		m.properties = SeedProperties()
	}

	found, err = files.Read(KeyMockUsers, &m.users)
	if err != nil {
		return nil, err
	}
	if !found {
		m.users = SeedUsers()
	}

	if _, err := files.Read(KeyFavorites, &m.favorites); err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"properties": len(m.properties),
		"users":      len(m.users),
		"favorites":  len(m.favorites),
	}).Info("Mock store loaded")

	return m, nil
}

func copyProperties(src []models.Property) []models.Property {
	out := make([]models.Property, len(src))
	copy(out, src)
	return out
}

func (m *MockStore) ListProperties(_ context.Context) ([]models.Property, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyProperties(m.properties), nil
}

func (m *MockStore) GetProperty(_ context.Context, id string) (*models.Property, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.properties {
		if m.properties[i].ID == id {
			p := m.properties[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MockStore) CreateProperty(_ context.Context, p *models.Property) error {
	if p.ID == "" {
		p.ID = NewID()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	m.mu.Lock()
	m.properties = append(m.properties, *p)
	snapshot := copyProperties(m.properties)
	m.mu.Unlock()

	return m.files.Write(KeyMockProperties, snapshot)
}

func (m *MockStore) UpdateProperty(_ context.Context, p *models.Property) error {
	p.UpdatedAt = time.Now()

	m.mu.Lock()
	found := false
	for i := range m.properties {
		if m.properties[i].ID == p.ID {
			p.CreatedAt = m.properties[i].CreatedAt
			m.properties[i] = *p
			found = true
			break
		}
	}
	snapshot := copyProperties(m.properties)
	m.mu.Unlock()

	if !found {
		return ErrNotFound
	}
	return m.files.Write(KeyMockProperties, snapshot)
}

func (m *MockStore) DeleteProperty(_ context.Context, id string) error {
	m.mu.Lock()
	found := false
	for i := range m.properties {
		if m.properties[i].ID == id {
			m.properties = append(m.properties[:i], m.properties[i+1:]...)
			found = true
			break
		}
	}
	snapshot := copyProperties(m.properties)
	m.mu.Unlock()

	if !found {
		return ErrNotFound
	}
	return m.files.Write(KeyMockProperties, snapshot)
}

func (m *MockStore) ListUsers(_ context.Context) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.User, len(m.users))
	copy(out, m.users)
	return out, nil
}

func (m *MockStore) GetUser(_ context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.users {
		if m.users[i].ID == id {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MockStore) GetUserByIdentifier(_ context.Context, identifier string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.users {
		if m.users[i].Email == identifier || (m.users[i].Phone != "" && m.users[i].Phone == identifier) {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MockStore) CreateUser(_ context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = NewID()
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	m.mu.Lock()
	for i := range m.users {
		if m.users[i].Email == u.Email || m.users[i].Username == u.Username {
			m.mu.Unlock()
			return ErrDuplicate
		}
	}
	m.users = append(m.users, *u)
	snapshot := make([]models.User, len(m.users))
	copy(snapshot, m.users)
	m.mu.Unlock()

	return m.files.Write(KeyMockUsers, snapshot)
}

func (m *MockStore) UpdateUser(_ context.Context, u *models.User) error {
	u.UpdatedAt = time.Now()

	m.mu.Lock()
	found := false
	for i := range m.users {
		if m.users[i].ID == u.ID {
			u.CreatedAt = m.users[i].CreatedAt
			m.users[i] = *u
			found = true
			break
		}
	}
	snapshot := make([]models.User, len(m.users))
	copy(snapshot, m.users)
	m.mu.Unlock()

	if !found {
		return ErrNotFound
	}
	return m.files.Write(KeyMockUsers, snapshot)
}

func (m *MockStore) ListFavorites(_ context.Context, userID string) ([]models.Favorite, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Favorite
	for _, f := range m.favorites {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *MockStore) AddFavorite(_ context.Context, f *models.Favorite) error {
	if f.ID == "" {
		f.ID = NewID()
	}
	f.CreatedAt = time.Now()

	m.mu.Lock()
	for i := range m.favorites {
		if m.favorites[i].UserID == f.UserID && m.favorites[i].PropertyID == f.PropertyID {
			m.mu.Unlock()
			return ErrDuplicate
		}
	}
	m.favorites = append(m.favorites, *f)
	snapshot := make([]models.Favorite, len(m.favorites))
	copy(snapshot, m.favorites)
	m.mu.Unlock()

	return m.files.Write(KeyFavorites, snapshot)
}

func (m *MockStore) RemoveFavorite(_ context.Context, userID, propertyID string) error {
	m.mu.Lock()
	for i := range m.favorites {
		if m.favorites[i].UserID == userID && m.favorites[i].PropertyID == propertyID {
			m.favorites = append(m.favorites[:i], m.favorites[i+1:]...)
			break
		}
	}
	snapshot := make([]models.Favorite, len(m.favorites))
	copy(snapshot, m.favorites)
	m.mu.Unlock()

	return m.files.Write(KeyFavorites, snapshot)
}

func (m *MockStore) ListNotifications(_ context.Context, userID string) ([]models.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Notification
	for i := len(m.notifications) - 1; i >= 0; i-- {
		if m.notifications[i].UserID == userID {
			out = append(out, m.notifications[i])
		}
	}
	return out, nil
}

func (m *MockStore) CreateNotification(_ context.Context, n *models.Notification) error {
	if n.ID == "" {
		n.ID = NewID()
	}
	n.CreatedAt = time.Now()

	m.mu.Lock()
	m.notifications = append(m.notifications, *n)
	m.mu.Unlock()
	return nil
}

func (m *MockStore) MarkNotificationRead(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.notifications {
		if m.notifications[i].ID == id {
			m.notifications[i].IsRead = true
			return nil
		}
	}
	return ErrNotFound
}

func (m *MockStore) MarkAllNotificationsRead(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.notifications {
		if m.notifications[i].UserID == userID {
			m.notifications[i].IsRead = true
		}
	}
	return nil
}

func (m *MockStore) GetAdminByUserID(_ context.Context, userID string) (*models.Admin, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.admins {
		if m.admins[i].UserID == userID {
			a := m.admins[i]
			return &a, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MockStore) CreateAdmin(_ context.Context, a *models.Admin) error {
	if a.ID == "" {
		a.ID = NewID()
	}
	a.CreatedAt = time.Now()

	m.mu.Lock()
	m.admins = append(m.admins, *a)
	m.mu.Unlock()
	return nil
}

func (m *MockStore) Close() error {
	return m.files.Close()
}
