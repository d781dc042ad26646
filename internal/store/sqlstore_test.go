package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mboaimmo/server/internal/models"
)

func newTestSQLStore(t *testing.T) *SQLStore {
	t.Helper()
	st, err := NewSQLStore("", ":memory:", testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSQLStoreRequiresConfig(t *testing.T) {
	_, err := NewSQLStore("", "", testLogger())
	assert.Error(t, err)
}

func TestSQLStoreUserLifecycle(t *testing.T) {
	st := newTestSQLStore(t)
	ctx := context.Background()

	u := &models.User{
		Username:     "jkamga",
		Email:        "jean.kamga@example.cm",
		PasswordHash: "hash",
		Phone:        "+237690000002",
		IsActive:     true,
	}
	require.NoError(t, st.CreateUser(ctx, u))
	require.NotEmpty(t, u.ID)

	// Identifier lookup by email then by phone.
	got, err := st.GetUserByIdentifier(ctx, "jean.kamga@example.cm")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	got, err = st.GetUserByIdentifier(ctx, "+237690000002")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = st.GetUserByIdentifier(ctx, "unknown@example.cm")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deactivation must stick even though it writes a zero value.
	got.IsActive = false
	require.NoError(t, st.UpdateUser(ctx, got))
	got, err = st.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	// Duplicate email rejected.
	err = st.CreateUser(ctx, &models.User{Username: "other", Email: "jean.kamga@example.cm", PasswordHash: "x"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestSQLStoreFavorites(t *testing.T) {
	st := newTestSQLStore(t)
	ctx := context.Background()

	require.NoError(t, st.AddFavorite(ctx, &models.Favorite{UserID: "u1", PropertyID: "p1"}))
	assert.ErrorIs(t, st.AddFavorite(ctx, &models.Favorite{UserID: "u1", PropertyID: "p1"}), ErrDuplicate)
	require.NoError(t, st.AddFavorite(ctx, &models.Favorite{UserID: "u2", PropertyID: "p1"}))

	favs, err := st.ListFavorites(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, favs, 1)

	require.NoError(t, st.RemoveFavorite(ctx, "u1", "p1"))
	favs, err = st.ListFavorites(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, favs)

	// Removing an absent pair is a no-op, like the mock path.
	assert.NoError(t, st.RemoveFavorite(ctx, "u1", "p1"))
}

func TestSQLStoreFavoriteCheckSurfacesError(t *testing.T) {
	st, err := NewSQLStore("", ":memory:", testLogger())
	require.NoError(t, err)
	require.NoError(t, st.Close())

	// A failed duplicate check must abort the insert with a real error,
	// not fall through to gorm's untranslated failure modes.
	err = st.AddFavorite(context.Background(), &models.Favorite{UserID: "u1", PropertyID: "p1"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicate)
}

func TestSQLStoreNotifications(t *testing.T) {
	st := newTestSQLStore(t)
	ctx := context.Background()

	n := &models.Notification{UserID: "u1", Type: models.NotifNewProperty, Title: "Nouvelle annonce"}
	require.NoError(t, st.CreateNotification(ctx, n))

	notifs, err := st.ListNotifications(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, notifs, 1)
	assert.False(t, notifs[0].IsRead)

	require.NoError(t, st.MarkNotificationRead(ctx, n.ID))
	assert.ErrorIs(t, st.MarkNotificationRead(ctx, "missing"), ErrNotFound)

	require.NoError(t, st.MarkAllNotificationsRead(ctx, "u1"))
	notifs, _ = st.ListNotifications(ctx, "u1")
	assert.True(t, notifs[0].IsRead)
}

func TestSQLStoreAdminRecords(t *testing.T) {
	st := newTestSQLStore(t)
	ctx := context.Background()

	require.NoError(t, st.CreateAdmin(ctx, &models.Admin{UserID: "u1", Role: models.RoleManager}))

	a, err := st.GetAdminByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleManager, a.Role)

	_, err = st.GetAdminByUserID(ctx, "u2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEnsureSeedIdempotent(t *testing.T) {
	st := newTestSQLStore(t)
	ctx := context.Background()

	require.NoError(t, EnsureSeed(ctx, st, testLogger()))
	require.NoError(t, EnsureSeed(ctx, st, testLogger()))

	props, err := st.ListProperties(ctx)
	require.NoError(t, err)
	assert.Len(t, props, len(SeedProperties()))

	users, err := st.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, len(SeedUsers()))
}
