package favorites

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mboaimmo/server/internal/models"
	"mboaimmo/server/internal/store"
)

var errBackend = errors.New("backend unreachable")

// flakyStore only implements the favorite operations; the embedded
// interface covers the rest of store.Store.
type flakyStore struct {
	store.Store
	fail      bool
	favorites []models.Favorite
}

func (f *flakyStore) ListFavorites(_ context.Context, userID string) ([]models.Favorite, error) {
	if f.fail {
		return nil, errBackend
	}
	var out []models.Favorite
	for _, fav := range f.favorites {
		if fav.UserID == userID {
			out = append(out, fav)
		}
	}
	return out, nil
}

func (f *flakyStore) AddFavorite(_ context.Context, fav *models.Favorite) error {
	if f.fail {
		return errBackend
	}
	f.favorites = append(f.favorites, *fav)
	return nil
}

func (f *flakyStore) RemoveFavorite(_ context.Context, userID, propertyID string) error {
	if f.fail {
		return errBackend
	}
	for i, fav := range f.favorites {
		if fav.UserID == userID && fav.PropertyID == propertyID {
			f.favorites = append(f.favorites[:i], f.favorites[i+1:]...)
			return nil
		}
	}
	return nil
}

func newTestService(st store.Store) *Service {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewService(st, logger)
}

func TestToggleAddAndRemove(t *testing.T) {
	st := &flakyStore{}
	svc := newTestService(st)

	added, err := svc.Toggle(context.Background(), "u1", "prop-1")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []string{"prop-1"}, svc.ListForUser("u1"))
	assert.Len(t, st.favorites, 1)

	added, err = svc.Toggle(context.Background(), "u1", "prop-1")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Empty(t, svc.ListForUser("u1"))
	assert.Empty(t, st.favorites)
}

func TestToggleRollbackOnFailure(t *testing.T) {
	st := &flakyStore{}
	svc := newTestService(st)

	// Failing backend: the optimistic add must be rolled back.
	st.fail = true
	_, err := svc.Toggle(context.Background(), "u1", "prop-1")
	assert.ErrorIs(t, err, errBackend)
	assert.Empty(t, svc.ListForUser("u1"))
	assert.False(t, svc.IsFavorite("u1", "prop-1"))
	assert.Empty(t, st.favorites)

	// Backend recovers: toggling again adds exactly one entry.
	st.fail = false
	added, err := svc.Toggle(context.Background(), "u1", "prop-1")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []string{"prop-1"}, svc.ListForUser("u1"))
	assert.Len(t, st.favorites, 1)
}

func TestToggleNotifiesObserversOnRollback(t *testing.T) {
	st := &flakyStore{fail: true}
	svc := newTestService(st)

	var updates [][]string
	svc.Subscribe(func(userID string, ids []string) {
		updates = append(updates, ids)
	})

	_, err := svc.Toggle(context.Background(), "u1", "prop-1")
	assert.Error(t, err)

	// Observers saw the optimistic set, then the reverted one.
	require.Len(t, updates, 2)
	assert.Equal(t, []string{"prop-1"}, updates[0])
	assert.Empty(t, updates[1])
}

func TestToggleObserverMayReenter(t *testing.T) {
	st := &flakyStore{}
	svc := newTestService(st)

	// An observer reading the service back must not deadlock.
	var sawFavorite bool
	var sawIDs []string
	svc.Subscribe(func(userID string, ids []string) {
		sawFavorite = svc.IsFavorite(userID, "prop-1")
		sawIDs = svc.ListForUser(userID)
	})

	added, err := svc.Toggle(context.Background(), "u1", "prop-1")
	require.NoError(t, err)
	assert.True(t, added)
	assert.True(t, sawFavorite)
	assert.Equal(t, []string{"prop-1"}, sawIDs)
}

func TestFetchForUser(t *testing.T) {
	st := &flakyStore{favorites: []models.Favorite{
		{ID: "f1", UserID: "u1", PropertyID: "prop-2"},
		{ID: "f2", UserID: "u1", PropertyID: "prop-1"},
		{ID: "f3", UserID: "u2", PropertyID: "prop-9"},
	}}
	svc := newTestService(st)

	ids, err := svc.FetchForUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"prop-1", "prop-2"}, ids)
	assert.True(t, svc.IsFavorite("u1", "prop-1"))
	assert.False(t, svc.IsFavorite("u2", "prop-1"))
}
