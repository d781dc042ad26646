package images

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
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

// fakeHost answers like the image host and counts the requests it saw.
func fakeHost(t *testing.T, hits *int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt64(hits, 1)

		require.NoError(t, r.ParseMultipartForm(32<<20))
		assert.Equal(t, "test-key", r.FormValue("key"))
		_, header, err := r.FormFile("image")
		require.NoError(t, err)

		resp := map[string]interface{}{
			"success": true,
			"data":    map[string]string{"url": fmt.Sprintf("https://cdn.example/%d-%s", n, header.Filename)},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func valid(name string) File {
	return File{Name: name, ContentType: "image/jpeg", Data: []byte("jpegdata")}
}

func TestUploadReturnsURL(t *testing.T) {
	var hits int64
	srv := fakeHost(t, &hits)
	defer srv.Close()

	up := NewUploader(srv.URL, "test-key", 1<<20, testLogger())
	url, err := up.Upload(context.Background(), valid("villa.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/1-villa.jpg", url)
}

func TestValidationRunsBeforeNetwork(t *testing.T) {
	var hits int64
	srv := fakeHost(t, &hits)
	defer srv.Close()

	up := NewUploader(srv.URL, "test-key", 10, testLogger())

	// Over the byte cap.
	_, err := up.Upload(context.Background(), File{Name: "big.jpg", ContentType: "image/jpeg", Data: make([]byte, 11)})
	assert.ErrorIs(t, err, ErrFileTooLarge)

	// Outside the MIME allow-list.
	_, err = up.Upload(context.Background(), File{Name: "doc.pdf", ContentType: "application/pdf", Data: []byte("x")})
	assert.ErrorIs(t, err, ErrUnsupportedType)

	// No request ever left the process.
	assert.Equal(t, int64(0), atomic.LoadInt64(&hits))
}

func TestUploadManyOrderAndCount(t *testing.T) {
	var hits int64
	srv := fakeHost(t, &hits)
	defer srv.Close()

	up := NewUploader(srv.URL, "test-key", 1<<20, testLogger())

	files := []File{valid("a.jpg"), valid("b.jpg"), valid("c.jpg")}
	urls, err := up.UploadMany(context.Background(), files, 5)
	require.NoError(t, err)
	require.Len(t, urls, 3)
	assert.Equal(t, "https://cdn.example/1-a.jpg", urls[0])
	assert.Equal(t, "https://cdn.example/2-b.jpg", urls[1])
	assert.Equal(t, "https://cdn.example/3-c.jpg", urls[2])
}

func TestUploadManySlotLimit(t *testing.T) {
	var hits int64
	srv := fakeHost(t, &hits)
	defer srv.Close()

	up := NewUploader(srv.URL, "test-key", 1<<20, testLogger())

	_, err := up.UploadMany(context.Background(), []File{valid("a.jpg"), valid("b.jpg")}, 1)
	assert.ErrorIs(t, err, ErrTooManyImages)
	assert.Equal(t, int64(0), atomic.LoadInt64(&hits))
}

func TestUploadManyRejectsWholeBatchUpFront(t *testing.T) {
	var hits int64
	srv := fakeHost(t, &hits)
	defer srv.Close()

	up := NewUploader(srv.URL, "test-key", 1<<20, testLogger())

	// One bad file poisons the batch before any upload starts.
	files := []File{valid("a.jpg"), {Name: "bad.txt", ContentType: "text/plain", Data: []byte("x")}}
	_, err := up.UploadMany(context.Background(), files, 5)
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.Equal(t, int64(0), atomic.LoadInt64(&hits))
}

func TestUploadHostRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	up := NewUploader(srv.URL, "bad-key", 1<<20, testLogger())
	_, err := up.Upload(context.Background(), valid("a.jpg"))
	assert.ErrorContains(t, err, "API key")
}
