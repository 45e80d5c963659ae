// Package checker probes video availability. YouTube's oembed endpoint
// answers 404 for removed or private videos, which is the only practical
// liveness signal without an API key.
package checker

import (
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/nikbrunner/vt/internal/model"
)

// Status represents the availability of a video.
type Status int

const (
	Available   Status = iota // oembed answered 200
	Gone                      // 404 or 410: removed or private
	Restricted                // 401 or 403: exists but embedding disabled
	Unreachable               // timeout, DNS failure, connection refused, etc.
)

// Result holds the check result for a single video.
type Result struct {
	Video      *model.Item
	Status     Status
	StatusCode int    // HTTP status code (0 if connection failed)
	Error      string // error message for unreachable videos
}

// ProgressFunc is called after each video is checked.
// completed is the number of videos checked so far, total is the total count.
type ProgressFunc func(completed, total int)

// oembedBase is overridable in tests.
var oembedBase = "https://www.youtube.com/oembed"

// CheckVideos probes all videos concurrently and returns one result per
// video, in input order.
func CheckVideos(videos []*model.Item, concurrency int, timeout time.Duration, onProgress ProgressFunc) []Result {
	if len(videos) == 0 {
		return nil
	}
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]Result, len(videos))
	jobs := make(chan int, len(videos))
	var wg sync.WaitGroup

	var progressMu sync.Mutex
	completed := 0

	client := &http.Client{Timeout: timeout}

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = checkVideo(client, videos[idx])

				if onProgress != nil {
					progressMu.Lock()
					completed++
					onProgress(completed, len(videos))
					progressMu.Unlock()
				}
			}
		}()
	}

	for i := range videos {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// checkVideo probes a single video via oembed.
func checkVideo(client *http.Client, video *model.Item) Result {
	result := Result{Video: video}

	endpoint := oembedBase + "?url=" + url.QueryEscape(video.SourceURL) + "&format=json"
	resp, err := client.Get(endpoint)
	if err != nil {
		result.Status = Unreachable
		result.Error = normalizeError(err.Error())
		return result
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		result.Status = Available
	case resp.StatusCode == 404 || resp.StatusCode == 410:
		result.Status = Gone
	case resp.StatusCode == 401 || resp.StatusCode == 403:
		result.Status = Restricted
	default:
		result.Status = Unreachable
		result.Error = http.StatusText(resp.StatusCode)
	}

	return result
}
