package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const oembedEndpoint = "https://www.youtube.com/oembed"

var (
	ErrTitleRequest     = errors.New("title request failed")
	ErrTitleUnavailable = errors.New("title unavailable")
)

var titleClient = &http.Client{
	Timeout: 10 * time.Second,
}

// FetchTitle looks up the video title via the public oembed endpoint.
// It is best effort: callers should fall back to the URL on any error.
// The context cancels an in-flight lookup.
func FetchTitle(ctx context.Context, videoURL string) (string, error) {
	if !IsValidURL(videoURL) {
		return "", ErrTitleUnavailable
	}

	endpoint := fmt.Sprintf("%s?url=%s&format=json", oembedEndpoint, url.QueryEscape(videoURL))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}

	resp, err := titleClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTitleRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrTitleRequest, resp.StatusCode)
	}

	var payload struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTitleRequest, err)
	}
	if payload.Title == "" {
		return "", ErrTitleUnavailable
	}
	return payload.Title, nil
}
