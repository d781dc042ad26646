package images

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Validation failures raised before any network call is attempted.
var (
	ErrFileTooLarge    = errors.New("image exceeds the size limit")
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrTooManyImages   = errors.New("not enough image slots left")
)

// Raster formats accepted by the listing editor.
var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/bmp":  true,
}

// File is one image submitted by the listing editor.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

type uploadResponse struct {
	Data struct {
		URL string `json:"url"`
	} `json:"data"`
	Success bool `json:"success"`
}

// Uploader posts image files to the external image host and returns the
// public URLs. The first URL of a listing is its primary image by
// convention; reordering means removing and re-adding.
type Uploader struct {
	client   *http.Client
	endpoint string
	apiKey   string
	maxBytes int64
	logger   *logrus.Logger
}

func NewUploader(endpoint, apiKey string, maxBytes int64, log *logrus.Logger) *Uploader {
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	return &Uploader{
		client:   &http.Client{Timeout: 30 * time.Second},
		endpoint: endpoint,
		apiKey:   apiKey,
		maxBytes: maxBytes,
		logger:   log,
	}
}

// Validate rejects files outside the MIME allow-list or over the byte
// cap. It runs before any network call.
func (u *Uploader) Validate(f File) error {
	if !allowedTypes[f.ContentType] {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, f.ContentType)
	}
	if int64(len(f.Data)) > u.maxBytes {
		return fmt.Errorf("%w: %d bytes (limit %d)", ErrFileTooLarge, len(f.Data), u.maxBytes)
	}
	return nil
}

// Upload validates and posts a single file, returning its public URL.
func (u *Uploader) Upload(ctx context.Context, f File) (string, error) {
	if err := u.Validate(f); err != nil {
		return "", err
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("key", u.apiKey); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	part, err := writer.CreateFormFile("image", f.Name)
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write(f.Data); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach image host: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return "", errors.New("image host rejected the API key")
		case http.StatusRequestEntityTooLarge:
			return "", ErrFileTooLarge
		default:
			return "", fmt.Errorf("image host error (status %d): %s", resp.StatusCode, string(raw))
		}
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to parse image host response: %w", err)
	}
	if parsed.Data.URL == "" {
		return "", errors.New("image host returned no URL")
	}

	u.logger.WithFields(logrus.Fields{
		"file": f.Name,
		"url":  parsed.Data.URL,
	}).Info("Image uploaded")

	return parsed.Data.URL, nil
}

// UploadMany validates every file and the remaining slot count up front,
// then uploads sequentially, returning URLs in submission order.
func (u *Uploader) UploadMany(ctx context.Context, files []File, remainingSlots int) ([]string, error) {
	if len(files) > remainingSlots {
		return nil, fmt.Errorf("%w: %d submitted, %d slots", ErrTooManyImages, len(files), remainingSlots)
	}
	for _, f := range files {
		if err := u.Validate(f); err != nil {
			return nil, err
		}
	}

	urls := make([]string, 0, len(files))
	for _, f := range files {
		url, err := u.Upload(ctx, f)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}
