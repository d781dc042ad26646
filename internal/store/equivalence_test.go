package store

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"mboaimmo/server/internal/models"
)

// runScript drives the same create/read/update/delete sequence against
// any Store and returns the final collection, normalized for comparison.
func runScript(t *testing.T, st Store) []models.Property {
	t.Helper()
	ctx := context.Background()

	a := &models.Property{Title: "Duplex Bonamoussadi", PropertyType: models.TypeMaison, City: "Douala", Price: 95000000, Status: models.StatusDisponible}
	b := &models.Property{Title: "Chambre moderne Mvan", PropertyType: models.TypeChambre, City: "Yaoundé", Price: 3000000, Status: models.StatusDisponible}
	c := &models.Property{Title: "Terrain Lendi", PropertyType: models.TypeTerrain, City: "Douala", Price: 20000000, Status: models.StatusDisponible}

	require.NoError(t, st.CreateProperty(ctx, a))
	require.NoError(t, st.CreateProperty(ctx, b))
	require.NoError(t, st.CreateProperty(ctx, c))

	got, err := st.GetProperty(ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, "Chambre moderne Mvan", got.Title)

	a.Status = models.StatusReserve
	a.Price = 90000000
	require.NoError(t, st.UpdateProperty(ctx, a))

	require.NoError(t, st.DeleteProperty(ctx, c.ID))

	props, err := st.ListProperties(ctx)
	require.NoError(t, err)

	// Normalize: identity fields and timestamps differ between backends.
	out := make([]models.Property, len(props))
	for i, p := range props {
		out[i] = models.Property{
			Title:        p.Title,
			PropertyType: p.PropertyType,
			City:         p.City,
			Price:        p.Price,
			Status:       p.Status,
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}

// The observable final state of a fixed operation sequence must not
// depend on which backend served it.
func TestBackendEquivalence(t *testing.T) {
	sqlStore, err := NewSQLStore("", ":memory:", testLogger())
	require.NoError(t, err)
	defer sqlStore.Close()

	fs, err := NewFileStore(t.TempDir(), testLogger())
	require.NoError(t, err)
	mockStore, err := NewMockStore(fs, testLogger())
	require.NoError(t, err)
	defer mockStore.Close()

	// Clear the mock seeds so both stores start empty.
	for _, p := range SeedProperties() {
		require.NoError(t, mockStore.DeleteProperty(context.Background(), p.ID))
	}

	fromSQL := runScript(t, sqlStore)
	fromMock := runScript(t, mockStore)

	require.Equal(t, fromSQL, fromMock)
	require.Len(t, fromSQL, 2)
}
