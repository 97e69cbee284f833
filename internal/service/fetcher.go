package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
)

// Fetcher downloads a remote image in a single attempt.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, string, error)
}

type HTTPFetcher struct {
	Client   *http.Client
	MaxBytes int64
}

func NewHTTPFetcher(timeout time.Duration, maxBytes int64) *HTTPFetcher {
	return &HTTPFetcher{
		Client:   &http.Client{Timeout: timeout},
		MaxBytes: maxBytes,
	}
}

// Fetch returns the body and the declared Content-Type. Transport failures,
// non-2xx answers and oversized bodies are ErrFetch.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	req.Header.Set("Accept", "image/*")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("%w: remote answered %s", ErrFetch, resp.Status)
	}

	if f.MaxBytes > 0 && resp.ContentLength > f.MaxBytes {
		return nil, "", fmt.Errorf("%w: image is %s, limit is %s", ErrFetch,
			humanize.IBytes(uint64(resp.ContentLength)), humanize.IBytes(uint64(f.MaxBytes)))
	}

	var body io.Reader = resp.Body
	if f.MaxBytes > 0 {
		body = io.LimitReader(resp.Body, f.MaxBytes+1)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	if f.MaxBytes > 0 && int64(len(data)) > f.MaxBytes {
		return nil, "", fmt.Errorf("%w: image exceeds %s", ErrFetch, humanize.IBytes(uint64(f.MaxBytes)))
	}

	return data, resp.Header.Get("Content-Type"), nil
}
