package covers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultFetchTimeout = 15 * time.Second
	DefaultMaxBytes     = 5 << 20
)

var ErrTooLarge = errors.New("cover image exceeds size limit")

// Fetcher downloads cover images and returns them as data URIs.
type Fetcher struct {
	httpClient *http.Client
	maxBytes   int64
	userAgent  string
}

// NewFetcher creates a fetcher. Non-positive values fall back to the defaults.
func NewFetcher(timeout time.Duration, maxBytes int64) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
		maxBytes:   maxBytes,
		userAgent:  "PersonalLibrary/1.0",
	}
}

// Fetch downloads url and returns its contents encoded as a data URI.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch cover: status %d", resp.StatusCode)
	}

	// Read one byte past the limit to detect oversized images.
	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > f.maxBytes {
		return "", ErrTooLarge
	}
	if len(data) == 0 {
		return "", ErrEmptyPayload
	}

	return EncodeDataURI(contentType(resp.Header.Get("Content-Type"), data), data), nil
}

func contentType(header string, data []byte) string {
	if header != "" {
		if mediaType, _, err := mime.ParseMediaType(header); err == nil && strings.HasPrefix(mediaType, "image/") {
			return mediaType
		}
	}
	if sniffed := http.DetectContentType(data); strings.HasPrefix(sniffed, "image/") {
		return sniffed
	}
	return DefaultMIME
}
