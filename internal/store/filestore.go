package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

// Durable keys used by the fallback path. Each key holds one
// whole-collection JSON blob, overwritten wholesale on every mutation.
// Mutations touching two keys are two independent writes, not a
// transaction.
const (
	KeySessionUser    = "session_user"
	KeyMockUsers      = "mock_users"
	KeyMockProperties = "mock_properties"
	KeyFavorites      = "favorites"
	KeyLanguage       = "language"
)

var ErrStoreClosed = errors.New("file store is closed")

type writeRequest struct {
	key    string
	data   []byte
	remove bool
	resp   chan error
}

// FileStore is the durable key-value area behind MockStore. Reads are
// served from an in-memory cache loaded lazily from disk; writes are
// serialized through a single writer goroutine so two callers can never
// interleave a read-modify-write on the same blob.
type FileStore struct {
	dir    string
	logger *logrus.Logger

	cacheLock sync.RWMutex
	cache     map[string]json.RawMessage

	writes chan writeRequest
	wg     sync.WaitGroup

	closeLock sync.Mutex
	closed    bool
}

func NewFileStore(dir string, log *logrus.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	f := &FileStore{
		dir:    dir,
		logger: log,
		cache:  make(map[string]json.RawMessage),
		writes: make(chan writeRequest, 16),
	}

	f.wg.Add(1)
	go f.writeLoop()

	return f, nil
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Read unmarshals the blob stored under key into dest. The second return
// is false when the key has never been written.
func (f *FileStore) Read(key string, dest interface{}) (bool, error) {
	f.cacheLock.RLock()
	raw, ok := f.cache[key]
	f.cacheLock.RUnlock()

	if !ok {
		data, err := os.ReadFile(f.path(key))
		if os.IsNotExist(err) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("failed to read %s: %w", key, err)
		}
		raw = data

		f.cacheLock.Lock()
		f.cache[key] = raw
		f.cacheLock.Unlock()
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return true, nil
}

// Write replaces the blob stored under key. The call returns once the
// writer goroutine has flushed the blob to disk.
func (f *FileStore) Write(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return f.enqueue(writeRequest{key: key, data: data, resp: make(chan error, 1)})
}

// Remove deletes the blob stored under key.
func (f *FileStore) Remove(key string) error {
	return f.enqueue(writeRequest{key: key, remove: true, resp: make(chan error, 1)})
}

func (f *FileStore) enqueue(req writeRequest) error {
	f.closeLock.Lock()
	if f.closed {
		f.closeLock.Unlock()
		return ErrStoreClosed
	}
	f.writes <- req
	f.closeLock.Unlock()
	return <-req.resp
}

func (f *FileStore) writeLoop() {
	defer f.wg.Done()

	for req := range f.writes {
		var err error
		if req.remove {
			err = os.Remove(f.path(req.key))
			if os.IsNotExist(err) {
				err = nil
			}
		} else {
			err = os.WriteFile(f.path(req.key), req.data, 0644)
		}

		if err != nil {
			f.logger.WithError(err).WithField("key", req.key).Error("File store write failed")
			req.resp <- err
			continue
		}

		f.cacheLock.Lock()
		if req.remove {
			delete(f.cache, req.key)
		} else {
			f.cache[req.key] = req.data
		}
		f.cacheLock.Unlock()

		req.resp <- nil
	}
}

// Close stops the writer goroutine after draining pending writes.
func (f *FileStore) Close() error {
	f.closeLock.Lock()
	if f.closed {
		f.closeLock.Unlock()
		return nil
	}
	f.closed = true
	close(f.writes)
	f.closeLock.Unlock()

	f.wg.Wait()
	return nil
}
