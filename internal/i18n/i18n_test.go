package i18n

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mboaimmo/server/internal/store"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestDefaultsToFrench(t *testing.T) {
	tr := New(nil, testLogger())
	assert.Equal(t, FR, tr.Language())
	assert.Equal(t, "Identifiant ou mot de passe incorrect", tr.T("error.invalid_credentials"))
}

func TestSwitchLanguage(t *testing.T) {
	tr := New(nil, testLogger())

	require.NoError(t, tr.SetLanguage(EN))
	assert.Equal(t, "Invalid identifier or password", tr.T("error.invalid_credentials"))

	assert.Error(t, tr.SetLanguage("de"))
	assert.Equal(t, EN, tr.Language())
}

func TestUnknownKeyComesBackVerbatim(t *testing.T) {
	tr := New(nil, testLogger())
	assert.Equal(t, "no.such.key", tr.T("no.such.key"))
}

func TestLanguagePersists(t *testing.T) {
	dir := t.TempDir()

	fs, err := store.NewFileStore(dir, testLogger())
	require.NoError(t, err)
	tr := New(fs, testLogger())
	require.NoError(t, tr.SetLanguage(EN))
	require.NoError(t, fs.Close())

	fs2, err := store.NewFileStore(dir, testLogger())
	require.NoError(t, err)
	defer fs2.Close()

	tr2 := New(fs2, testLogger())
	assert.Equal(t, EN, tr2.Language())
}

func TestInSpecificLanguage(t *testing.T) {
	tr := New(nil, testLogger())
	assert.Equal(t, "Added to favorites", tr.In(EN, "notice.favorite_added"))
	assert.Equal(t, "Ajouté aux favoris", tr.In(FR, "notice.favorite_added"))
}
