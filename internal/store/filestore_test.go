package store

import (
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestFileStoreRoundTrip(t *testing.T) {
	fs, err := NewFileStore(t.TempDir(), testLogger())
	require.NoError(t, err)
	defer fs.Close()

	require.NoError(t, fs.Write("things", []string{"a", "b"}))

	var got []string
	found, err := fs.Read("things", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestFileStoreMissingKey(t *testing.T) {
	fs, err := NewFileStore(t.TempDir(), testLogger())
	require.NoError(t, err)
	defer fs.Close()

	var got []string
	found, err := fs.Read("never_written", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	fs, err := NewFileStore(dir, testLogger())
	require.NoError(t, err)
	require.NoError(t, fs.Write(KeyLanguage, "en"))
	require.NoError(t, fs.Close())

	fs2, err := NewFileStore(dir, testLogger())
	require.NoError(t, err)
	defer fs2.Close()

	var lang string
	found, err := fs2.Read(KeyLanguage, &lang)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "en", lang)
}

func TestFileStoreRemove(t *testing.T) {
	fs, err := NewFileStore(t.TempDir(), testLogger())
	require.NoError(t, err)
	defer fs.Close()

	require.NoError(t, fs.Write(KeySessionUser, map[string]string{"id": "u1"}))
	require.NoError(t, fs.Remove(KeySessionUser))

	var got map[string]string
	found, err := fs.Read(KeySessionUser, &got)
	require.NoError(t, err)
	assert.False(t, found)

	// Removing a key that was never written is not an error.
	assert.NoError(t, fs.Remove("never_written"))
}

func TestFileStoreSerializesWriters(t *testing.T) {
	fs, err := NewFileStore(t.TempDir(), testLogger())
	require.NoError(t, err)
	defer fs.Close()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			assert.NoError(t, fs.Write("counter", n))
		}(i)
	}
	wg.Wait()

	var got int
	found, err := fs.Read("counter", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.GreaterOrEqual(t, got, 0)
	assert.Less(t, got, 20)
}

func TestFileStoreClosedWrites(t *testing.T) {
	fs, err := NewFileStore(t.TempDir(), testLogger())
	require.NoError(t, err)
	require.NoError(t, fs.Close())

	assert.ErrorIs(t, fs.Write("k", 1), ErrStoreClosed)
	// Closing twice is a no-op.
	assert.NoError(t, fs.Close())
}
